package japanese

import (
	enc "github.com/exeal/alpha-sub007/encoding"
)

// shiftJISVariant distinguishes the 1997 table from the 2004 (JIS X 0213)
// table; both share the same lead/trail byte structure.
type shiftJISVariant int

const (
	shiftJIS1997 shiftJISVariant = iota
	shiftJIS2004
)

type shiftJISEncoder struct {
	variant shiftJISVariant
}

// NewShiftJISEncoder returns a fresh Shift_JIS encoder instance.
func NewShiftJISEncoder() enc.Encoder { return &shiftJISEncoder{variant: shiftJIS1997} }

// NewShiftJIS2004Encoder returns a fresh Shift_JIS-2004 encoder instance.
func NewShiftJIS2004Encoder() enc.Encoder { return &shiftJISEncoder{variant: shiftJIS2004} }

func (e *shiftJISEncoder) Reset() {}

// ToUnicode decodes Shift_JIS bytes to UTF-16.
//
// 0xA0 is treated as substitution-policy-driven (not an automatic
// MalformedInput) in both variants, for consistency between ShiftJis and
// ShiftJis2004.
func (e *shiftJISEncoder) ToUnicode(out []uint16, in []byte, policy enc.SubstitutionPolicy, atEOF bool) (enc.Result, int, int) {
	var nOut, nIn int
	for nIn < len(in) {
		c0 := in[nIn]
		var r enc.CodePoint
		var size int
		unmappable := false

		switch {
		case c0 < 0x80:
			r, size = enc.CodePoint(c0), 1
		case c0 == 0xA0:
			r, size, unmappable = 0, 1, true
		case c0 >= halfwidthKatakanaFirst && c0 <= halfwidthKatakanaLast:
			r, size = halfwidthKatakanaToUnicode(c0), 1
		case (c0 >= 0x81 && c0 <= 0x9F) || (c0 >= 0xE0 && c0 <= 0xEF):
			if nIn+1 >= len(in) {
				if !atEOF {
					return enc.CompletedPending, nOut, nIn
				}
				return enc.MalformedInput, nOut, nIn
			}
			ku, ten, ok := shiftJISLeadTrailToKuTen(c0, in[nIn+1])
			if !ok {
				return enc.MalformedInput, nOut, nIn
			}
			size = 2
			var rr enc.CodePoint
			found := false
			if e.variant == shiftJIS2004 {
				rr, found = jis0213Plane1ToUnicode[kuten(ku, ten)]
			}
			if !found {
				rr, found = jis0208ToUnicode[kuten(ku, ten)]
			}
			if found {
				r = rr
			} else {
				r, unmappable = 0, true
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

// FromUnicode encodes UTF-16 to Shift_JIS bytes.
func (e *shiftJISEncoder) FromUnicode(out []byte, in []uint16, policy enc.SubstitutionPolicy, atEOF bool) (enc.Result, int, int) {
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
			if nOut+1 > len(out) {
				return enc.InsufficientBuffer, nOut, nIn
			}
			out[nOut] = b
			nOut++
			nIn += consumed
			continue
		}

		k, found := e.lookupDBCS(r)
		if !found {
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

		if nOut+2 > len(out) {
			return enc.InsufficientBuffer, nOut, nIn
		}
		c0, c1 := kuTenToShiftJISLeadTrail(k / 100, k%100)
		out[nOut], out[nOut+1] = c0, c1
		nOut += 2
		nIn += consumed
	}
	return enc.Completed, nOut, nIn
}

func (e *shiftJISEncoder) lookupDBCS(r enc.CodePoint) (int, bool) {
	if e.variant == shiftJIS2004 {
		if k, ok := unicodeToJIS0213Plane1[r]; ok {
			return k, true
		}
		if k, ok := unicodeToJIS0213Plane2[r]; ok {
			return k, true
		}
	}
	k, ok := unicodeToJIS0208[r]
	return k, ok
}

// shiftJISLeadTrailToKuTen performs the ku/ten decomposition ("unshift")
// of a Shift_JIS lead/trail byte pair, in terms of 1-based ku/ten instead
// of a flat table index.
func shiftJISLeadTrailToKuTen(c0byte, c1byte byte) (ku, ten int, ok bool) {
	if c1byte < 0x40 || c1byte == 0x7F || c1byte > 0xFC {
		return 0, 0, false
	}
	var c0 int
	if c0byte <= 0x9F {
		c0 = int(c0byte) - 0x70
	} else {
		c0 = int(c0byte) - 0xB0
	}
	row0pre := 2*c0 - 0x21

	var row0, col0 int
	switch {
	case c1byte < 0x7F:
		row0, col0 = row0pre-1, int(c1byte)-0x40
	case c1byte < 0x9F:
		row0, col0 = row0pre-1, int(c1byte)-0x41
	default:
		row0, col0 = row0pre, int(c1byte)-0x9F
	}
	ku, ten = row0+1, col0+1
	if ku < 1 || ku > 94 || ten < 1 || ten > 94 {
		return 0, 0, false
	}
	return ku, ten, true
}

// kuTenToShiftJISLeadTrail is the inverse ("shift") of
// shiftJISLeadTrailToKuTen above.
func kuTenToShiftJISLeadTrail(ku, ten int) (byte, byte) {
	row0, col0 := ku-1, ten-1
	var c0, c1byte int
	if row0%2 == 1 {
		c0 = (row0 + 0x21) / 2
		c1byte = col0 + 0x9F
	} else {
		c0 = (row0 + 0x22) / 2
		if col0 <= 0x3E {
			c1byte = col0 + 0x40
		} else {
			c1byte = col0 + 0x41
		}
	}
	var c0byte int
	if c0 <= 0x2F {
		c0byte = c0 + 0x70
	} else {
		c0byte = c0 + 0xB0
	}
	return byte(c0byte), byte(c1byte)
}
