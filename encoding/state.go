package encoding

// G0Set identifies the character set currently designated into G0 for an
// ISO-2022-JP family encoder/decoder.
type G0Set int

const (
	ASCII G0Set = iota
	JISX0201Roman
	JISX0208
	JISX0212
	JISX0213Plane1
	JISX0213Plane2
	GB2312
	KSC5601
)

// G2Set identifies the character set currently designated into G2 (only
// reachable via a single-shift SS2).
type G2Set int

const (
	Undesignated G2Set = iota
	ISO88591
	ISO88597
)

// EncodingState holds the mutable ISO-2022-JP designation state that
// persists across from_unicode/to_unicode calls. The zero value is the
// correct initial state: G0=ASCII, G2=Undesignated, no SS2 pending.
type EncodingState struct {
	G0        G0Set
	G2        G2Set
	InvokedG2 bool // set by ESC N (SS2) for exactly the next character
}

// Reset returns the state to its initial value.
func (s *EncodingState) Reset() {
	*s = EncodingState{}
}

// ResetDesignations applies the line-break normalization rule: on any
// 0x0A/0x0D byte, G0 reverts to ASCII and G2 becomes undesignated. InvokedG2
// is not defined by the spec to survive a line break either way; we clear it
// since a single-shift can only ever apply to the very next character and a
// line break always intervenes before any further character is decoded.
func (s *EncodingState) ResetDesignations() {
	s.G0 = ASCII
	s.G2 = Undesignated
	s.InvokedG2 = false
}
