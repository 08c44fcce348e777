package encoding

// DecodeUTF16 reads one code point starting at in[0]. It returns the code
// point, the number of uint16 units consumed (1 or 2), and true if the
// units decoded to a complete code point. If in[0] is a high surrogate and
// len(in) == 1, it returns (0, 0, false) so the caller can treat the tail
// as CompletedPending rather than guessing. A lone low surrogate or an
// unpaired high surrogate followed by a non-low-surrogate decodes as
// ReplacementCharacter, consuming one unit, with ok=true (it is complete,
// just malformed).
func DecodeUTF16(in []uint16) (r CodePoint, consumed int, ok bool) {
	if len(in) == 0 {
		return 0, 0, false
	}
	u := in[0]
	switch {
	case IsHighSurrogate(u):
		if len(in) < 2 {
			return 0, 0, false
		}
		u2 := in[1]
		if !IsLowSurrogate(u2) {
			return ReplacementCharacter, 1, true
		}
		r := (CodePoint(u-0xD800) << 10) | CodePoint(u2-0xDC00)
		return r + 0x10000, 2, true
	case IsLowSurrogate(u):
		return ReplacementCharacter, 1, true
	default:
		return CodePoint(u), 1, true
	}
}

// EncodeUTF16 appends r's UTF-16 encoding to out, returning the number of
// units written (1 or 2) and whether out had room.
func EncodeUTF16(out []uint16, r CodePoint) (written int, ok bool) {
	if r < 0x10000 {
		if len(out) < 1 {
			return 0, false
		}
		out[0] = uint16(r)
		return 1, true
	}
	if len(out) < 2 {
		return 0, false
	}
	r -= 0x10000
	out[0] = uint16(0xD800 + (r >> 10))
	out[1] = uint16(0xDC00 + (r & 0x3FF))
	return 2, true
}
