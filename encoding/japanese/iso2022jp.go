package japanese

import (
	enc "github.com/exeal/alpha-sub007/encoding"
)

// Variant selects one member of the ISO-2022-JP family: '0' ISO-2022-JP,
// '1' ISO-2022-JP-1, '2' ISO-2022-JP-2, '4' ISO-2022-JP-2004, 's'
// 2004-Strict, 'c' 2004-Compatible.
type Variant byte

const (
	VariantJP             Variant = '0'
	VariantJP1            Variant = '1'
	VariantJP2            Variant = '2'
	VariantJP2004         Variant = '4'
	VariantJP2004Strict   Variant = 's'
	VariantJP2004Compat   Variant = 'c'
)

// Designation and single-shift escape sequences.
var (
	escASCII       = []byte{0x1B, '(', 'B'}
	escJISX0201    = []byte{0x1B, '(', 'J'}
	escJISX0208old = []byte{0x1B, '$', '@'}
	escJISX0208    = []byte{0x1B, '$', 'B'}
	escGB2312      = []byte{0x1B, '$', 'A'}
	escKSC5601     = []byte{0x1B, '$', '(', 'C'}
	escJISX0212    = []byte{0x1B, '$', '(', 'D'}
	escJISX0213P1v0 = []byte{0x1B, '$', '(', 'O'}
	escJISX0213P1v4 = []byte{0x1B, '$', '(', 'Q'}
	escJISX0213P2  = []byte{0x1B, '$', '(', 'P'}
	escISO88591    = []byte{0x1B, '.', 'A'}
	escISO88597    = []byte{0x1B, '.', 'F'}
	escSS2         = []byte{0x1B, 'N'}
)

// Composing-character sample tables. These are representative entries,
// not the exhaustive JIS X 0213 combining-character appendix.
const (
	toneRisingFirst  = rune(0x02E9) // EXTRA-LOW TONE BAR
	toneFallingFirst = rune(0x02E5) // EXTRA-HIGH TONE BAR
)

var (
	// bidakuonBaseToKuTen maps a base kana rune to the ku/ten of its precomposed
	// bidakuon glyph (base + U+309A): か + ゜ → JIS 0x2477, ku=4
	// (hiragana row), ten=87.
	bidakuonBaseToKuTen = map[rune]int{'か': kuten(4, 87)}
	bidakuonKuTenToBase = map[int]rune{kuten(4, 87): 'か'}

	// Independent (non-ligated) tone bar glyphs.
	toneIndependentToKuTen = map[rune]int{toneRisingFirst: kuten(11, 1), toneFallingFirst: kuten(11, 2)}
	toneIndependentFromKuTen = map[int]rune{kuten(11, 1): toneRisingFirst, kuten(11, 2): toneFallingFirst}

	// Ligated rising/falling tone markers: <U+02E9,U+02E5> and
	// <U+02E5,U+02E9> each collapse to a single JIS glyph.
	toneLigatureKuTenRising  = kuten(11, 3)
	toneLigatureKuTenFalling = kuten(11, 4)
)

type decoderPending struct {
	active bool
	r      enc.CodePoint // first half of a ligature awaiting ZWNJ-vs-second-char decision
}

type iso2022JPEncoder struct {
	variant Variant
	state   enc.EncodingState
	// pending holds a code point read one-ahead of the cursor while the
	// encoder checks whether it participates in a composing sequence.
	pending    enc.CodePoint
	hasPending bool
}

// NewISO2022JPEncoder returns a fresh encoder/decoder for the given variant.
func NewISO2022JPEncoder(v Variant) enc.Encoder { return &iso2022JPEncoder{variant: v} }

func (e *iso2022JPEncoder) Reset() {
	e.state.Reset()
	e.hasPending = false
}

func (e *iso2022JPEncoder) acceptsGB2312() bool  { return e.variant == VariantJP2 }
func (e *iso2022JPEncoder) acceptsKSC5601() bool { return e.variant == VariantJP2 }
func (e *iso2022JPEncoder) acceptsJISX0212() bool {
	// Only variants '1' and '2' designate JIS X 0212 into G0.
	return e.variant == VariantJP1 || e.variant == VariantJP2
}
func (e *iso2022JPEncoder) acceptsJISX0213() bool {
	return e.variant == VariantJP2004 || e.variant == VariantJP2004Strict || e.variant == VariantJP2004Compat
}
func (e *iso2022JPEncoder) acceptsLatin() bool { return e.variant == VariantJP2 }

// ---- decode ----

func (e *iso2022JPEncoder) ToUnicode(out []uint16, in []byte, policy enc.SubstitutionPolicy, atEOF bool) (enc.Result, int, int) {
	var nOut, nIn int

	emit := func(r enc.CodePoint) (enc.Result, bool) {
		written, ok := enc.EncodeUTF16(out[nOut:], r)
		if !ok {
			return enc.InsufficientBuffer, false
		}
		nOut += written
		return 0, true
	}

	for nIn < len(in) {
		b := in[nIn]

		switch b {
		case 0x1B:
			seqLen, apply, ok := e.matchEscape(in[nIn:])
			if !ok {
				if !atEOF && seqLen < 0 {
					return enc.CompletedPending, nOut, nIn
				}
				return enc.MalformedInput, nOut, nIn
			}
			apply()
			nIn += seqLen
			continue

		case 0x0A, 0x0D:
			if res, ok := emit(enc.CodePoint(b)); !ok {
				return res, nOut, nIn
			}
			e.state.ResetDesignations()
			nIn++
			continue
		}

		if b < 0x20 || (b >= 0x7F && b <= 0x9F) {
			if res, ok := emit(enc.CodePoint(b)); !ok {
				return res, nOut, nIn
			}
			nIn++
			continue
		}

		if e.state.InvokedG2 {
			r, unmappable := e.decodeG2(b)
			e.state.InvokedG2 = false
			if unmappable {
				switch policy {
				case enc.IgnoreUnmappableCharacters:
					nIn++
					continue
				case enc.ReplaceUnmappableCharacters:
					r = enc.ReplacementCharacter
				default:
					return enc.UnmappableCharacter, nOut, nIn
				}
			}
			if res, ok := emit(r); !ok {
				return res, nOut, nIn
			}
			nIn++
			continue
		}

		width := g0Width(e.state.G0)
		if nIn+width > len(in) {
			if !atEOF {
				return enc.CompletedPending, nOut, nIn
			}
			return enc.MalformedInput, nOut, nIn
		}

		rs, unmappable, ok := e.decodeG0(in[nIn : nIn+width])
		if !ok {
			return enc.MalformedInput, nOut, nIn
		}
		if unmappable {
			switch policy {
			case enc.IgnoreUnmappableCharacters:
				nIn += width
				continue
			case enc.ReplaceUnmappableCharacters:
				rs = []enc.CodePoint{enc.ReplacementCharacter}
			default:
				return enc.UnmappableCharacter, nOut, nIn
			}
		}
		for _, r := range rs {
			if res, ok := emit(r); !ok {
				return res, nOut, nIn
			}
		}
		nIn += width
	}
	return enc.Completed, nOut, nIn
}

func g0Width(g enc.G0Set) int {
	switch g {
	case enc.JISX0208, enc.JISX0212, enc.JISX0213Plane1, enc.JISX0213Plane2, enc.GB2312, enc.KSC5601:
		return 2
	default:
		return 1
	}
}

// decodeG0 decodes one designated-width unit from the currently
// designated G0 table. It may return two code points for a decomposed
// bidakuon or tone ligature.
func (e *iso2022JPEncoder) decodeG0(b []byte) (rs []enc.CodePoint, unmappable bool, ok bool) {
	switch e.state.G0 {
	case enc.ASCII:
		return []enc.CodePoint{enc.CodePoint(b[0])}, false, true
	case enc.JISX0201Roman:
		return []enc.CodePoint{jisX0201RomanToUnicode(b[0])}, false, true
	case enc.JISX0208, enc.JISX0212, enc.JISX0213Plane1, enc.JISX0213Plane2, enc.GB2312, enc.KSC5601:
		if len(b) < 2 || b[0] < 0x21 || b[0] > 0x7E || b[1] < 0x21 || b[1] > 0x7E {
			return nil, false, false
		}
		k := kuten(int(b[0])-0x20, int(b[1])-0x20)
		if base, found := bidakuonKuTenToBase[k]; found && e.state.G0 == enc.JISX0208 {
			return []enc.CodePoint{base, 0x309A}, false, true
		}
		if k == toneLigatureKuTenRising {
			return []enc.CodePoint{toneRisingFirst, toneFallingFirst}, false, true
		}
		if k == toneLigatureKuTenFalling {
			return []enc.CodePoint{toneFallingFirst, toneRisingFirst}, false, true
		}
		if r, found := toneIndependentFromKuTen[k]; found {
			return []enc.CodePoint{r}, false, true
		}
		var r enc.CodePoint
		var found bool
		switch e.state.G0 {
		case enc.JISX0208:
			r, found = jis0208ToUnicode[k]
		case enc.JISX0212:
			r, found = jis0212ToUnicode[k]
		case enc.JISX0213Plane1:
			r, found = jis0213Plane1ToUnicode[k]
		case enc.JISX0213Plane2:
			r, found = jis0213Plane2ToUnicode[k]
		case enc.GB2312:
			r, found = gb2312ToUnicode[k]
		case enc.KSC5601:
			r, found = ksc5601ToUnicode[k]
		}
		if !found {
			return nil, true, true
		}
		return []enc.CodePoint{r}, false, true
	default:
		return nil, false, false
	}
}

func (e *iso2022JPEncoder) decodeG2(b byte) (r enc.CodePoint, unmappable bool) {
	switch e.state.G2 {
	case enc.ISO88591:
		return iso88591ToUnicode(b), false
	case enc.ISO88597:
		if r, ok := iso88597ToUnicode[b]; ok {
			return r, false
		}
		return 0, true
	default:
		return 0, true
	}
}

// matchEscape recognizes one escape sequence at the start of in (which
// begins with ESC). It returns the sequence length, a closure applying its
// effect to e.state, and whether the match succeeded. seqLen is returned
// negative (with ok=false) when in is merely a truncated prefix of some
// known sequence, so the caller can distinguish "need more input" from
// "not an escape sequence we know."
func (e *iso2022JPEncoder) matchEscape(in []byte) (seqLen int, apply func(), ok bool) {
	type entry struct {
		seq    []byte
		accept func() bool
		apply  func()
	}
	always := func() bool { return true }
	entries := []entry{
		{escASCII, always, func() { e.state.G0 = enc.ASCII }},
		{escJISX0201, always, func() { e.state.G0 = enc.JISX0201Roman }},
		{escJISX0208old, always, func() { e.state.G0 = enc.JISX0208 }},
		{escJISX0208, always, func() { e.state.G0 = enc.JISX0208 }},
		{escGB2312, e.acceptsGB2312, func() { e.state.G0 = enc.GB2312 }},
		{escKSC5601, e.acceptsKSC5601, func() { e.state.G0 = enc.KSC5601 }},
		{escJISX0212, e.acceptsJISX0212, func() { e.state.G0 = enc.JISX0212 }},
		{escJISX0213P1v0, e.acceptsJISX0213, func() { e.state.G0 = enc.JISX0213Plane1 }},
		{escJISX0213P1v4, e.acceptsJISX0213, func() { e.state.G0 = enc.JISX0213Plane1 }},
		{escJISX0213P2, e.acceptsJISX0213, func() { e.state.G0 = enc.JISX0213Plane2 }},
		{escISO88591, e.acceptsLatin, func() { e.state.G2 = enc.ISO88591 }},
		{escISO88597, e.acceptsLatin, func() { e.state.G2 = enc.ISO88597 }},
		{escSS2, always, func() { e.state.InvokedG2 = true }},
	}

	bestPartial := false
	for _, ent := range entries {
		if len(in) < len(ent.seq) {
			if bytesHasPrefix(ent.seq, in) {
				bestPartial = true
			}
			continue
		}
		if bytesEqual(in[:len(ent.seq)], ent.seq) && ent.accept() {
			return len(ent.seq), ent.apply, true
		}
	}
	if bestPartial {
		return -1, nil, false
	}
	return 0, nil, false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func bytesHasPrefix(full, prefix []byte) bool {
	if len(prefix) > len(full) {
		return false
	}
	return bytesEqual(full[:len(prefix)], prefix)
}

// ---- encode ----

func (e *iso2022JPEncoder) FromUnicode(out []byte, in []uint16, policy enc.SubstitutionPolicy, atEOF bool) (enc.Result, int, int) {
	var nOut, nIn int

	writeBytes := func(b []byte) bool {
		if nOut+len(b) > len(out) {
			return false
		}
		copy(out[nOut:], b)
		nOut += len(b)
		return true
	}
	designate := func(g0 enc.G0Set, esc []byte) bool {
		if e.state.G0 == g0 {
			return true
		}
		if !writeBytes(esc) {
			return false
		}
		e.state.G0 = g0
		return true
	}

	for nIn < len(in) {
		r, consumed, ok := enc.DecodeUTF16(in[nIn:])
		if !ok {
			if !atEOF {
				return enc.CompletedPending, nOut, nIn
			}
			return enc.MalformedInput, nOut, nIn
		}

		// Composing-character lookahead: bidakuon (base + U+309A) and
		// tone-bar ligatures/ZWNJ-separated pairs.
		if k, found := bidakuonBaseToKuTen[r]; found {
			next, nextConsumed, nextOK := enc.DecodeUTF16(in[nIn+consumed:])
			if !nextOK {
				if len(in[nIn+consumed:]) == 0 && !atEOF {
					return enc.CompletedPending, nOut, nIn
				}
			} else if next == 0x309A {
				if !designate(enc.JISX0208, escJISX0208) {
					return enc.InsufficientBuffer, nOut, nIn
				}
				b0, b1 := byte(k/100)+0x20, byte(k%100)+0x20
				if !writeBytes([]byte{b0, b1}) {
					return enc.InsufficientBuffer, nOut, nIn
				}
				nIn += consumed + nextConsumed
				continue
			}
		}
		if r == toneRisingFirst || r == toneFallingFirst {
			next, nextConsumed, nextOK := enc.DecodeUTF16(in[nIn+consumed:])
			if !nextOK && len(in[nIn+consumed:]) == 0 && !atEOF {
				return enc.CompletedPending, nOut, nIn
			}
			if nextOK && next == enc.ZeroWidthNonJoiner {
				// ZWNJ forces two independent tone bars: encode r now,
				// then drop the ZWNJ and continue from the character
				// after it.
				if !designate(enc.JISX0208, escJISX0208) {
					return enc.InsufficientBuffer, nOut, nIn
				}
				k := toneIndependentToKuTen[r]
				if !writeBytes([]byte{byte(k/100) + 0x20, byte(k%100) + 0x20}) {
					return enc.InsufficientBuffer, nOut, nIn
				}
				nIn += consumed + nextConsumed
				continue
			}
			if nextOK && ((r == toneRisingFirst && next == toneFallingFirst) || (r == toneFallingFirst && next == toneRisingFirst)) {
				if !designate(enc.JISX0208, escJISX0208) {
					return enc.InsufficientBuffer, nOut, nIn
				}
				var k int
				if r == toneRisingFirst {
					k = toneLigatureKuTenRising
				} else {
					k = toneLigatureKuTenFalling
				}
				if !writeBytes([]byte{byte(k/100) + 0x20, byte(k%100) + 0x20}) {
					return enc.InsufficientBuffer, nOut, nIn
				}
				nIn += consumed + nextConsumed
				continue
			}
			// Not part of a ligature: encode r as an independent tone bar.
			if !designate(enc.JISX0208, escJISX0208) {
				return enc.InsufficientBuffer, nOut, nIn
			}
			k := toneIndependentToKuTen[r]
			if !writeBytes([]byte{byte(k/100) + 0x20, byte(k%100) + 0x20}) {
				return enc.InsufficientBuffer, nOut, nIn
			}
			nIn += consumed
			continue
		}

		res, handled := e.encodeOne(r, writeBytes, designate, policy)
		if res != 0 {
			return res, nOut, nIn
		}
		if !handled {
			switch policy {
			case enc.IgnoreUnmappableCharacters:
				nIn += consumed
				continue
			default:
				return enc.UnmappableCharacter, nOut, nIn
			}
		}
		nIn += consumed
	}

	if atEOF && e.state.G0 != enc.ASCII {
		if !writeBytes(escASCII) {
			return enc.InsufficientBuffer, nOut, nIn
		}
		e.state.G0 = enc.ASCII
	}
	return enc.Completed, nOut, nIn
}

// encodeOne tries JIS X 0201 Roman, then JIS X 0208, then JIS X 0212 (if
// the variant accepts it), then JIS X 0213 planes 1/2, then GB2312,
// KSC5601, ISO-8859-1, ISO-8859-7, in that order, returning a non-zero
// Result only on buffer exhaustion.
func (e *iso2022JPEncoder) encodeOne(r enc.CodePoint, writeBytes func([]byte) bool, designate func(enc.G0Set, []byte) bool, policy enc.SubstitutionPolicy) (enc.Result, bool) {
	emit2 := func(g0 enc.G0Set, esc []byte, k int) (enc.Result, bool) {
		if !designate(g0, esc) {
			return enc.InsufficientBuffer, true
		}
		if !writeBytes([]byte{byte(k/100) + 0x20, byte(k%100) + 0x20}) {
			return enc.InsufficientBuffer, true
		}
		return 0, true
	}

	if r < 0x80 {
		if !designate(enc.ASCII, escASCII) {
			return enc.InsufficientBuffer, true
		}
		if !writeBytes([]byte{byte(r)}) {
			return enc.InsufficientBuffer, true
		}
		return 0, true
	}
	if b, ok := unicodeToJISX0201Roman(r); ok {
		if !designate(enc.JISX0201Roman, escJISX0201) {
			return enc.InsufficientBuffer, true
		}
		if !writeBytes([]byte{b}) {
			return enc.InsufficientBuffer, true
		}
		return 0, true
	}

	k0208, inX0208 := unicodeToJIS0208[r]
	if inX0208 && e.variant == VariantJP2004Strict && prohibitedIdeographs[r] {
		// Strict mode: don't let a 2004-reassigned ideograph ride the old
		// JIS X 0208 escape; fall through to the JIS X 0213 branch below.
		inX0208 = false
	}
	if inX0208 {
		return emit2(enc.JISX0208, escJISX0208, k0208)
	}

	if e.acceptsJISX0212() {
		if k, ok := unicodeToJIS0212[r]; ok {
			return emit2(enc.JISX0212, escJISX0212, k)
		}
	}
	if e.acceptsJISX0213() {
		if k, ok := unicodeToJIS0213Plane1[r]; ok {
			return emit2(enc.JISX0213Plane1, escJISX0213P1v4, k)
		}
		if k, ok := unicodeToJIS0213Plane2[r]; ok {
			return emit2(enc.JISX0213Plane2, escJISX0213P2, k)
		}
	}
	if e.acceptsGB2312() {
		if k, ok := unicodeToGB2312[r]; ok {
			return emit2(enc.GB2312, escGB2312, k)
		}
	}
	if e.acceptsKSC5601() {
		if k, ok := unicodeToKSC5601[r]; ok {
			return emit2(enc.KSC5601, escKSC5601, k)
		}
	}
	if e.acceptsLatin() {
		if b, ok := unicodeToISO88591(r); ok {
			if e.state.G2 != enc.ISO88591 {
				if !writeBytes(escISO88591) {
					return enc.InsufficientBuffer, true
				}
				e.state.G2 = enc.ISO88591
			}
			if !writeBytes(escSS2) {
				return enc.InsufficientBuffer, true
			}
			if !writeBytes([]byte{b}) {
				return enc.InsufficientBuffer, true
			}
			return 0, true
		}
		if b, ok := unicodeToISO88597[r]; ok {
			if e.state.G2 != enc.ISO88597 {
				if !writeBytes(escISO88597) {
					return enc.InsufficientBuffer, true
				}
				e.state.G2 = enc.ISO88597
			}
			if !writeBytes(escSS2) {
				return enc.InsufficientBuffer, true
			}
			if !writeBytes([]byte{b}) {
				return enc.InsufficientBuffer, true
			}
			return 0, true
		}
	}

	if policy == enc.ReplaceUnmappableCharacters {
		if !designate(enc.ASCII, escASCII) {
			return enc.InsufficientBuffer, true
		}
		if !writeBytes([]byte{'?'}) {
			return enc.InsufficientBuffer, true
		}
		return 0, true
	}
	return 0, false
}
