package japanese

import (
	enc "github.com/exeal/alpha-sub007/encoding"
)

type eucJPVariant int

const (
	eucJP1997 eucJPVariant = iota
	eucJIS2004
)

type eucJPEncoder struct {
	variant eucJPVariant
}

// NewEUCJPEncoder returns a fresh EUC-JP encoder instance.
func NewEUCJPEncoder() enc.Encoder { return &eucJPEncoder{variant: eucJP1997} }

// NewEUCJIS2004Encoder returns a fresh EUC-JIS-2004 encoder instance.
func NewEUCJIS2004Encoder() enc.Encoder { return &eucJPEncoder{variant: eucJIS2004} }

func (e *eucJPEncoder) Reset() {}

// ToUnicode decodes EUC-JP/EUC-JIS-2004 bytes to UTF-16. Every branch
// re-reads from the current cursor (in[nIn+k]) rather than a stale outer
// index, so the SS3 plane-selection byte is always the post-advance one.
func (e *eucJPEncoder) ToUnicode(out []uint16, in []byte, policy enc.SubstitutionPolicy, atEOF bool) (enc.Result, int, int) {
	var nOut, nIn int
	for nIn < len(in) {
		c0 := in[nIn]
		var r enc.CodePoint
		var size int
		unmappable := false

		switch {
		case c0 < 0x80:
			r, size = enc.CodePoint(c0), 1

		case c0 == 0x8E: // SS2: JIS X 0201 kana
			if nIn+1 >= len(in) {
				if !atEOF {
					return enc.CompletedPending, nOut, nIn
				}
				return enc.MalformedInput, nOut, nIn
			}
			c1 := in[nIn+1]
			if c1 < halfwidthKatakanaFirst || c1 > halfwidthKatakanaLast {
				return enc.MalformedInput, nOut, nIn
			}
			r, size = halfwidthKatakanaToUnicode(c1), 2

		case c0 == 0x8F: // SS3: JIS X 0212 / JIS X 0213 plane 2
			if nIn+2 >= len(in) {
				if !atEOF {
					return enc.CompletedPending, nOut, nIn
				}
				return enc.MalformedInput, nOut, nIn
			}
			c1, c2 := in[nIn+1], in[nIn+2]
			if c1 < 0xA1 || c1 > 0xFE || c2 < 0xA1 || c2 > 0xFE {
				return enc.MalformedInput, nOut, nIn
			}
			size = 3
			k := kuten(int(c1)-0xA0, int(c2)-0xA0)
			var ok bool
			if e.variant == eucJIS2004 {
				r, ok = jis0213Plane2ToUnicode[k]
			} else {
				r, ok = jis0212ToUnicode[k]
			}
			if !ok {
				unmappable = true
			}

		case c0 >= 0xA1 && c0 <= 0xFE:
			if nIn+1 >= len(in) {
				if !atEOF {
					return enc.CompletedPending, nOut, nIn
				}
				return enc.MalformedInput, nOut, nIn
			}
			c1 := in[nIn+1]
			if c1 < 0xA1 || c1 > 0xFE {
				return enc.MalformedInput, nOut, nIn
			}
			size = 2
			k := kuten(int(c0)-0xA0, int(c1)-0xA0)
			var ok bool
			if e.variant == eucJIS2004 {
				r, ok = jis0213Plane1ToUnicode[k]
				if !ok {
					r, ok = jis0208ToUnicode[k]
				}
			} else {
				r, ok = jis0208ToUnicode[k]
			}
			if !ok {
				unmappable = true
			}

		default:
			return enc.MalformedInput, nOut, nIn
		}

		if unmappable {
			switch policy {
			case enc.IgnoreUnmappableCharacters:
				nIn += size
				continue
			case enc.ReplaceUnmappableCharacters:
				r = enc.ReplacementCharacter
			default:
				return enc.UnmappableCharacter, nOut, nIn
			}
		}

		written, ok := enc.EncodeUTF16(out[nOut:], r)
		if !ok {
			return enc.InsufficientBuffer, nOut, nIn
		}
		nOut += written
		nIn += size
	}
	return enc.Completed, nOut, nIn
}

// FromUnicode encodes UTF-16 to EUC-JP/EUC-JIS-2004 bytes.
func (e *eucJPEncoder) FromUnicode(out []byte, in []uint16, policy enc.SubstitutionPolicy, atEOF bool) (enc.Result, int, int) {
	var nOut, nIn int
	for nIn < len(in) {
		r, consumed, ok := enc.DecodeUTF16(in[nIn:])
		if !ok {
			if !atEOF {
				return enc.CompletedPending, nOut, nIn
			}
			return enc.MalformedInput, nOut, nIn
		}

		if r < 0x80 {
			if nOut+1 > len(out) {
				return enc.InsufficientBuffer, nOut, nIn
			}
			out[nOut] = byte(r)
			nOut++
			nIn += consumed
			continue
		}
		if b, ok := unicodeToHalfwidthKatakana(r); ok {
			if nOut+2 > len(out) {
				return enc.InsufficientBuffer, nOut, nIn
			}
			out[nOut], out[nOut+1] = 0x8E, b
			nOut += 2
			nIn += consumed
			continue
		}

		if e.variant == eucJIS2004 {
			if k, ok := unicodeToJIS0213Plane1[r]; ok {
				if nOut+2 > len(out) {
					return enc.InsufficientBuffer, nOut, nIn
				}
				out[nOut], out[nOut+1] = byte(k/100)+0xA0, byte(k%100)+0xA0
				nOut += 2
				nIn += consumed
				continue
			}
			if k, ok := unicodeToJIS0213Plane2[r]; ok {
				if nOut+3 > len(out) {
					return enc.InsufficientBuffer, nOut, nIn
				}
				out[nOut], out[nOut+1], out[nOut+2] = 0x8F, byte(k/100)+0xA0, byte(k%100)+0xA0
				nOut += 3
				nIn += consumed
				continue
			}
		}
		if k, ok := unicodeToJIS0208[r]; ok {
			if nOut+2 > len(out) {
				return enc.InsufficientBuffer, nOut, nIn
			}
			out[nOut], out[nOut+1] = byte(k/100)+0xA0, byte(k%100)+0xA0
			nOut += 2
			nIn += consumed
			continue
		}
		if k, ok := unicodeToJIS0212[r]; ok && e.variant == eucJP1997 {
			if nOut+3 > len(out) {
				return enc.InsufficientBuffer, nOut, nIn
			}
			out[nOut], out[nOut+1], out[nOut+2] = 0x8F, byte(k/100)+0xA0, byte(k%100)+0xA0
			nOut += 3
			nIn += consumed
			continue
		}

		switch policy {
		case enc.IgnoreUnmappableCharacters:
			nIn += consumed
			continue
		case enc.ReplaceUnmappableCharacters:
			if nOut+1 > len(out) {
				return enc.InsufficientBuffer, nOut, nIn
			}
			out[nOut] = '?'
			nOut++
			nIn += consumed
			continue
		default:
			return enc.UnmappableCharacter, nOut, nIn
		}
	}
	return enc.Completed, nOut, nIn
}
