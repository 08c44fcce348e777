package search

import "unicode"

// horspoolTableSize is the size of LiteralPattern's Boyer-Moore-Horspool
// skip table, covering the BMP directly; code points above it fall back
// to the overflow map.
const horspoolTableSize = 0x10000

// LiteralPattern is a compiled literal search pattern, matched with the
// Boyer-Moore-Horspool algorithm. Compile direction is fixed at
// construction time so the skip table is keyed off the character at the
// boundary the scan actually advances from.
type LiteralPattern struct {
	codePoints    []rune
	caseSensitive bool
	direction     Direction

	// skip[c] is how far a window may advance when its boundary character
	// (window's last code point scanning forward, first scanning
	// backward) is c; the default entry, the pattern length (filled in by
	// compileSkipTable), means "c does not occur anywhere useful in the
	// pattern, shift past the whole window".
	skip     [horspoolTableSize]int32
	overflow map[rune]int32
}

// NewLiteralPattern compiles pattern for searching in the given direction.
// When caseSensitive is false, pattern is folded to its simple lower case
// form at compile time, and Search folds candidate text the same way.
func NewLiteralPattern(pattern []rune, caseSensitive bool, direction Direction) *LiteralPattern {
	l := &LiteralPattern{
		caseSensitive: caseSensitive,
		direction:     direction,
		overflow:      make(map[rune]int32),
	}
	l.codePoints = make([]rune, len(pattern))
	for i, r := range pattern {
		if !caseSensitive {
			r = unicode.ToLower(r)
		}
		l.codePoints[i] = r
	}
	l.compileSkipTable()
	return l
}

func (l *LiteralPattern) compileSkipTable() {
	n := len(l.codePoints)
	def := int32(n)
	for i := range l.skip {
		l.skip[i] = def
	}

	if direction := l.direction; direction == Forward {
		// Every position but the last can serve as a later alignment
		// target; the last position only ever sits at the window boundary
		// itself, so it is excluded (a char occurring only there gets the
		// default full-length shift).
		for i := 0; i < n-1; i++ {
			l.setSkip(l.codePoints[i], int32(n-1-i))
		}
	} else {
		for i := n - 1; i > 0; i-- {
			l.setSkip(l.codePoints[i], int32(i))
		}
	}
}

func (l *LiteralPattern) setSkip(c rune, shift int32) {
	if c >= 0 && c < horspoolTableSize {
		l.skip[c] = shift
		return
	}
	l.overflow[c] = shift
}

func (l *LiteralPattern) skipFor(c rune) int32 {
	if c >= 0 && c < horspoolTableSize {
		return l.skip[c]
	}
	if s, ok := l.overflow[c]; ok {
		return s
	}
	return int32(len(l.codePoints))
}

// Len returns the number of code points in the compiled pattern.
func (l *LiteralPattern) Len() int { return len(l.codePoints) }

// String returns the compiled (possibly case-folded) pattern text.
func (l *LiteralPattern) String() string { return string(l.codePoints) }

func (l *LiteralPattern) fold(r rune) rune {
	if l.caseSensitive {
		return r
	}
	return unicode.ToLower(r)
}

// matchesAt reports whether the pattern matches text starting at text[at].
func (l *LiteralPattern) matchesAt(text []rune, at int) bool {
	n := len(l.codePoints)
	if at < 0 || at+n > len(text) {
		return false
	}
	for i := 0; i < n; i++ {
		if l.fold(text[at+i]) != l.codePoints[i] {
			return false
		}
	}
	return true
}

// Search scans text for the compiled pattern starting from position from
// and proceeding in the pattern's compile direction, returning the region
// of the first occurrence found.
func (l *LiteralPattern) Search(text []rune, from Position) (Region, bool) {
	n := len(l.codePoints)
	if n == 0 {
		return Region{from, from}, true
	}
	if l.direction == Forward {
		return l.searchForward(text, int(from))
	}
	return l.searchBackward(text, int(from))
}

func (l *LiteralPattern) searchForward(text []rune, from int) (Region, bool) {
	n := len(l.codePoints)
	i := from
	for i+n <= len(text) {
		if l.matchesAt(text, i) {
			return Region{Position(i), Position(i + n)}, true
		}
		shift := l.skipFor(l.fold(text[i+n-1]))
		if shift < 1 {
			shift = 1
		}
		i += int(shift)
	}
	return Region{}, false
}

func (l *LiteralPattern) searchBackward(text []rune, from int) (Region, bool) {
	n := len(l.codePoints)
	i := from - n
	for i >= 0 {
		if l.matchesAt(text, i) {
			return Region{Position(i), Position(i + n)}, true
		}
		shift := l.skipFor(l.fold(text[i]))
		if shift < 1 {
			shift = 1
		}
		i -= int(shift)
	}
	return Region{}, false
}
