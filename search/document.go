// Package search implements the batch TextSearcher and the live
// IncrementalSearcher over an abstract Document collaborator. Document is
// the minimal contract this package needs from whatever owns the text
// buffer; layout, rendering, and the viewer are out of scope here.
package search

import "github.com/exeal/alpha-sub007/encoding"

// Position is an offset in code points from the start of a Document.
type Position int

// Direction is the scan direction for a search.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Region is a half-open code point range [Begin, End) within a Document.
type Region struct {
	Begin, End Position
}

// IsEmpty reports whether the region spans zero code points.
func (r Region) IsEmpty() bool { return r.Begin == r.End }

// Len returns the number of code points the region spans.
func (r Region) Len() int { return int(r.End - r.Begin) }

// Document is the text buffer collaborator a TextSearcher/IncrementalSearcher
// operates on. It is borrowed, never owned, by the searchers.
type Document interface {
	// Length returns the document length in code points.
	Length() int

	// At returns the code point at position p. Callers must not call At
	// with p outside [0, Length()).
	At(p Position) encoding.CodePoint

	// Slice returns the code points in [begin, end) as a rune slice.
	Slice(begin, end Position) []rune

	// Revision returns a monotonically increasing counter bumped on every
	// edit, used by TextSearcher's last-result cache.
	Revision() uint64

	// Replace substitutes the code points in region with replacement,
	// bumping Revision. It returns an error if the document is read-only.
	Replace(region Region, replacement []rune) error

	// Undo reverts the most recent Replace. It returns an error if there is
	// nothing to undo.
	Undo() error
}

// ErrReadOnly is returned by Document.Replace when the document rejects
// edits.
var ErrReadOnly = documentError("document is read-only")

type documentError string

func (e documentError) Error() string { return string(e) }
