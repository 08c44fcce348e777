package regexadapter

import (
	"regexp/syntax"
	"unicode"

	"github.com/exeal/alpha-sub007/internal/conv"
	"github.com/exeal/alpha-sub007/internal/sparse"
	"github.com/exeal/alpha-sub007/search"
)

// boundaryContext answers the zero-width assertions (^, $, \b) a pattern
// may contain, honoring the region-restriction and anchoring/transparent
// bounds a Matcher was configured with.
type boundaryContext struct {
	text              []rune
	region            search.Region
	anchoringBounds   bool
	transparentBounds bool
}

// charAt returns the character a literal/class node may consume at pos;
// consumption never crosses the region's edges, regardless of
// transparentBounds (that flag only affects assertions, not consumption).
func (b *boundaryContext) charAt(pos int) (rune, bool) {
	if pos < int(b.region.Begin) || pos >= int(b.region.End) {
		return 0, false
	}
	if pos < 0 || pos >= len(b.text) {
		return 0, false
	}
	return b.text[pos], true
}

// peek returns the character at pos for an assertion's benefit, crossing
// the region's edges when transparentBounds is set.
func (b *boundaryContext) peek(pos int) (rune, bool) {
	if !b.transparentBounds && (pos < int(b.region.Begin) || pos >= int(b.region.End)) {
		return 0, false
	}
	if pos < 0 || pos >= len(b.text) {
		return 0, false
	}
	return b.text[pos], true
}

func (b *boundaryContext) isTextStart(pos int) bool {
	if b.anchoringBounds {
		return pos == int(b.region.Begin)
	}
	return pos == 0
}

func (b *boundaryContext) isTextEnd(pos int) bool {
	if b.anchoringBounds {
		return pos == int(b.region.End)
	}
	return pos == len(b.text)
}

func (b *boundaryContext) isLineStart(pos int) bool {
	if b.isTextStart(pos) {
		return true
	}
	r, ok := b.peek(pos - 1)
	return ok && r == '\n'
}

func (b *boundaryContext) isLineEnd(pos int) bool {
	if b.isTextEnd(pos) {
		return true
	}
	r, ok := b.peek(pos)
	return ok && r == '\n'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (b *boundaryContext) isWordBoundary(pos int) bool {
	before, hasBefore := b.peek(pos - 1)
	after, hasAfter := b.peek(pos)
	beforeWord := hasBefore && isWordRune(before)
	afterWord := hasAfter && isWordRune(after)
	return beforeWord != afterWord
}

// matchState carries the mutable capture slots through one backtracking
// attempt. caps is 2*(numCaptures+1) long: caps[0:2] is the whole match,
// caps[2*g:2*g+2] is capture group g.
type matchState struct {
	bc   *boundaryContext
	caps []int
}

// tryMatch attempts to match re starting exactly at start, returning the
// capture slots of the first (leftmost, greedy-preferred) successful
// match.
func tryMatch(re *syntax.Regexp, bc *boundaryContext, start int, numCaptures int) ([]int, bool) {
	caps := make([]int, 2*(numCaptures+1))
	for i := range caps {
		caps[i] = -1
	}
	caps[0] = start
	s := &matchState{bc: bc, caps: caps}

	matched := false
	s.match(re, start, func(pos int) bool {
		caps[1] = pos
		matched = true
		return true
	})
	if !matched {
		return nil, false
	}
	return append([]int(nil), caps...), true
}

func runeEqualFold(pattern, text rune) bool {
	if pattern == text {
		return true
	}
	for r := unicode.SimpleFold(pattern); r != pattern; r = unicode.SimpleFold(r) {
		if r == text {
			return true
		}
	}
	return false
}

func classContains(re *syntax.Regexp, c rune) bool {
	folded := re.Flags&syntax.FoldCase != 0
	for i := 0; i+1 < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		if c >= lo && c <= hi {
			return true
		}
		if folded {
			for r := unicode.SimpleFold(c); r != c; r = unicode.SimpleFold(r) {
				if r >= lo && r <= hi {
					return true
				}
			}
		}
	}
	return false
}

// match attempts to match re starting at pos, invoking k with the
// position just past the match on success. k returning true stops the
// search (a match was accepted); k returning false asks match to try any
// remaining backtracking alternative.
func (s *matchState) match(re *syntax.Regexp, pos int, k func(int) bool) bool {
	switch re.Op {
	case syntax.OpNoMatch:
		return false

	case syntax.OpEmptyMatch:
		return k(pos)

	case syntax.OpLiteral:
		p := pos
		for _, r := range re.Rune {
			c, ok := s.bc.charAt(p)
			if !ok {
				return false
			}
			if re.Flags&syntax.FoldCase != 0 {
				if !runeEqualFold(r, c) {
					return false
				}
			} else if c != r {
				return false
			}
			p++
		}
		return k(p)

	case syntax.OpCharClass:
		c, ok := s.bc.charAt(pos)
		if !ok || !classContains(re, c) {
			return false
		}
		return k(pos + 1)

	case syntax.OpAnyCharNotNL:
		c, ok := s.bc.charAt(pos)
		if !ok || c == '\n' {
			return false
		}
		return k(pos + 1)

	case syntax.OpAnyChar:
		if _, ok := s.bc.charAt(pos); !ok {
			return false
		}
		return k(pos + 1)

	case syntax.OpBeginLine:
		if !s.bc.isLineStart(pos) {
			return false
		}
		return k(pos)

	case syntax.OpEndLine:
		if !s.bc.isLineEnd(pos) {
			return false
		}
		return k(pos)

	case syntax.OpBeginText:
		if !s.bc.isTextStart(pos) {
			return false
		}
		return k(pos)

	case syntax.OpEndText:
		if !s.bc.isTextEnd(pos) {
			return false
		}
		return k(pos)

	case syntax.OpWordBoundary:
		if !s.bc.isWordBoundary(pos) {
			return false
		}
		return k(pos)

	case syntax.OpNoWordBoundary:
		if s.bc.isWordBoundary(pos) {
			return false
		}
		return k(pos)

	case syntax.OpCapture:
		return s.matchCapture(re, pos, k)

	case syntax.OpConcat:
		return s.matchConcat(re.Sub, 0, pos, k)

	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if s.match(sub, pos, k) {
				return true
			}
		}
		return false

	case syntax.OpStar:
		return s.matchRepeat(re.Sub[0], pos, 0, -1, re.Flags&syntax.NonGreedy == 0, k)

	case syntax.OpPlus:
		return s.matchRepeat(re.Sub[0], pos, 1, -1, re.Flags&syntax.NonGreedy == 0, k)

	case syntax.OpQuest:
		return s.matchRepeat(re.Sub[0], pos, 0, 1, re.Flags&syntax.NonGreedy == 0, k)

	case syntax.OpRepeat:
		return s.matchRepeat(re.Sub[0], pos, re.Min, re.Max, re.Flags&syntax.NonGreedy == 0, k)

	default:
		return false
	}
}

func (s *matchState) matchConcat(subs []*syntax.Regexp, idx int, pos int, k func(int) bool) bool {
	if idx == len(subs) {
		return k(pos)
	}
	return s.match(subs[idx], pos, func(p2 int) bool {
		return s.matchConcat(subs, idx+1, p2, k)
	})
}

func (s *matchState) matchCapture(re *syntax.Regexp, pos int, k func(int) bool) bool {
	g := re.Cap
	if g <= 0 || 2*g+1 >= len(s.caps) {
		return s.match(re.Sub[0], pos, k)
	}
	savedBegin, savedEnd := s.caps[2*g], s.caps[2*g+1]
	s.caps[2*g] = pos
	ok := s.match(re.Sub[0], pos, func(p2 int) bool {
		prevEnd := s.caps[2*g+1]
		s.caps[2*g+1] = p2
		if k(p2) {
			return true
		}
		s.caps[2*g+1] = prevEnd
		return false
	})
	if !ok {
		s.caps[2*g], s.caps[2*g+1] = savedBegin, savedEnd
	}
	return ok
}

// matchRepeat matches sub between min and max times (max == -1 means
// unbounded), preferring the longest match first when greedy is true. A
// per-call sparse set guards against infinite recursion when sub can
// match the empty string, by refusing to re-enter the loop at a position
// already tried without consuming anything.
func (s *matchState) matchRepeat(sub *syntax.Regexp, pos int, min, max int, greedy bool, k func(int) bool) bool {
	seen := sparse.NewSparseSet(conv.IntToUint32(len(s.bc.text) + 2))
	return s.repeatFrom(sub, pos, 0, min, max, greedy, seen, k)
}

func (s *matchState) repeatFrom(sub *syntax.Regexp, pos int, count int, min, max int, greedy bool, seen *sparse.SparseSet, k func(int) bool) bool {
	canStop := count >= min
	canContinue := max == -1 || count < max

	tryContinue := func() bool {
		if !canContinue {
			return false
		}
		if seen.Contains(uint32(pos)) {
			return false
		}
		seen.Insert(uint32(pos))
		return s.match(sub, pos, func(p2 int) bool {
			if p2 == pos {
				// Zero-width repetition: stop the loop here rather than
				// recursing forever.
				if canStop {
					return k(pos)
				}
				return false
			}
			return s.repeatFrom(sub, p2, count+1, min, max, greedy, seen, k)
		})
	}
	tryStop := func() bool {
		if !canStop {
			return false
		}
		return k(pos)
	}

	if greedy {
		if tryContinue() {
			return true
		}
		return tryStop()
	}
	if tryStop() {
		return true
	}
	return tryContinue()
}
