// Package encoding provides the codec registry and the bidirectional
// conversion contract between UTF-16 text and the Japanese encoding
// families implemented in the encoding/japanese subpackage.
//
// The shape of Encoder mirrors golang.org/x/text/encoding's
// Encoding/Transformer split (Transform(dst, src, atEOF) (nDst, nSrc int,
// err error)), adapted to the richer Result vocabulary a text editor needs:
// a lone surrogate or a base kana that might still combine with a following
// voice mark must be reported as "come back with more input" rather than
// folded into a generic short-source error.
package encoding

import "fmt"

// CodePoint is a Unicode scalar value in [0, 0x10FFFF] excluding surrogates.
type CodePoint = rune

const (
	// ReplacementCharacter is substituted for unmappable to-Unicode input
	// under the REPLACE substitution policy.
	ReplacementCharacter CodePoint = 0xFFFD

	// ZeroWidthNonJoiner disambiguates adjacent tone-bar code points that
	// would otherwise compose into a ligature.
	ZeroWidthNonJoiner CodePoint = 0x200C
)

// IsHighSurrogate reports whether u is a UTF-16 high surrogate code unit.
func IsHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }

// IsLowSurrogate reports whether u is a UTF-16 low surrogate code unit.
func IsLowSurrogate(u uint16) bool { return u >= 0xDC00 && u <= 0xDFFF }

// Result is the outcome of one from_unicode/to_unicode conversion call.
type Result int

const (
	// Completed means all of the input was consumed and decoded/encoded.
	Completed Result = iota
	// InsufficientBuffer means the output buffer filled before the input
	// was exhausted; the caller may resume with a larger buffer.
	InsufficientBuffer
	// UnmappableCharacter means the strict substitution policy rejected an
	// unmappable code point or byte.
	UnmappableCharacter
	// MalformedInput means a byte sequence could not be decoded at all.
	MalformedInput
	// CompletedPending means the tail of the input is the first half of a
	// multi-code-point sequence (lone surrogate, base kana awaiting a voice
	// mark, tone-bar lead code point) and the caller has not asserted
	// end-of-input.
	CompletedPending
)

func (r Result) String() string {
	switch r {
	case Completed:
		return "completed"
	case InsufficientBuffer:
		return "insufficient buffer"
	case UnmappableCharacter:
		return "unmappable character"
	case MalformedInput:
		return "malformed input"
	case CompletedPending:
		return "completed (pending)"
	default:
		return "unknown result"
	}
}

// SubstitutionPolicy governs how a conversion handles characters or bytes
// it cannot map.
type SubstitutionPolicy int

const (
	// Strict halts conversion with UnmappableCharacter on first failure.
	Strict SubstitutionPolicy = iota
	// IgnoreUnmappableCharacters silently drops unmappable input.
	IgnoreUnmappableCharacters
	// ReplaceUnmappableCharacters substitutes the encoding's substitution
	// byte (to-bytes direction) or ReplacementCharacter (to-Unicode
	// direction) for each unmappable unit.
	ReplaceUnmappableCharacters
)

// ConversionError reports a MalformedInput failure together with the input
// cursor at the first bad unit, so callers can report a precise location.
type ConversionError struct {
	Encoding string
	Cursor   int
	Reason   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: malformed input at byte %d: %s", e.Encoding, e.Cursor, e.Reason)
}

// Encoder performs stateful bidirectional conversion for one Encoding.
// An Encoder instance is not safe for concurrent use; each caller obtains
// its own instance from an Encoding's factory.
type Encoder interface {
	// FromUnicode converts UTF-16 input into this encoding's bytes.
	// It returns the conversion Result, the number of output bytes
	// written, and the number of input UTF-16 units consumed.
	FromUnicode(out []byte, in []uint16, policy SubstitutionPolicy, atEOF bool) (Result, int, int)

	// ToUnicode converts this encoding's bytes into UTF-16.
	// It returns the conversion Result, the number of output UTF-16 units
	// written, and the number of input bytes consumed.
	ToUnicode(out []uint16, in []byte, policy SubstitutionPolicy, atEOF bool) (Result, int, int)

	// Reset returns the encoder to its initial state (G0=ASCII, G2=none,
	// no pending lookahead), as if freshly created.
	Reset()
}

// Encoding is a named, registered codec family.
type Encoding struct {
	// Name is the canonical, IANA-style name (e.g. "ISO-2022-JP").
	Name string
	// Aliases are additional case-insensitive names that resolve to this
	// Encoding (e.g. "csISO2022JP").
	Aliases []string
	// MIB is the IANA MIBenum, or 0 if unassigned.
	MIB int
	// Title is a human-readable description.
	Title string
	// MaxBytesPerChar bounds how many output bytes one code point can
	// produce, for buffer sizing.
	MaxBytesPerChar int
	// SubstitutionByte is emitted in place of an unmappable code point
	// under ReplaceUnmappableCharacters on the to-bytes side.
	SubstitutionByte byte
	// NewEncoder returns a fresh, independent Encoder instance.
	NewEncoder func() Encoder
}
