package regexadapter

import (
	"regexp/syntax"

	"github.com/exeal/alpha-sub007/search"
)

// Matcher runs a compiled pattern against rune text, with region-
// restriction and anchoring/transparent bounds controls. The defaults
// (anchoringBounds=false, transparentBounds=true) mean a
// restricted region behaves like a plain substring search: `^`/`$` still
// refer to the real start/end of the whole document, but lookaround and
// word-boundary checks are still allowed to see past the region's edges.
type Matcher struct {
	re          *syntax.Regexp
	numCaptures int

	region            search.Region
	regionSet         bool
	anchoringBounds   bool
	transparentBounds bool
}

// NumCaptures returns the number of capturing groups in the pattern,
// excluding the implicit whole-match group 0.
func (m *Matcher) NumCaptures() int { return m.numCaptures }

// SetRegion restricts every later Find/LookingAt/ReplaceInPlace call to
// [begin, end).
func (m *Matcher) SetRegion(region search.Region) { m.region = region; m.regionSet = true }

// Region returns the currently configured search region.
func (m *Matcher) Region() search.Region { return m.region }

// SetAnchoringBounds controls whether `^` and `$` treat the region's edges
// as the start/end of input. Default false.
func (m *Matcher) SetAnchoringBounds(v bool) { m.anchoringBounds = v }

// SetTransparentBounds controls whether boundary assertions may look past
// the region's edges into the rest of the text. Default true.
func (m *Matcher) SetTransparentBounds(v bool) { m.transparentBounds = v }

// Find locates the first match within the configured region, scanning in
// direction: a Forward scan tries start positions at or after from, a
// Backward scan tries start positions at or before from.
func (m *Matcher) Find(text []rune, from search.Position, direction search.Direction) (search.MatchedRegion, bool) {
	region := m.effectiveRegion(text)
	bc := &boundaryContext{text: text, region: region, anchoringBounds: m.anchoringBounds, transparentBounds: m.transparentBounds}

	if direction == search.Forward {
		for start := int(from); start <= int(region.End); start++ {
			if start < int(region.Begin) {
				continue
			}
			if caps, ok := tryMatch(m.re, bc, start, m.numCaptures); ok {
				return capsToMatchedRegion(caps), true
			}
		}
		return search.MatchedRegion{}, false
	}

	for start := int(from); start >= int(region.Begin); start-- {
		if start > int(region.End) {
			continue
		}
		if caps, ok := tryMatch(m.re, bc, start, m.numCaptures); ok {
			return capsToMatchedRegion(caps), true
		}
	}
	return search.MatchedRegion{}, false
}

// FindIn adapts Matcher to search.CompiledPattern.
func (m *Matcher) FindIn(text []rune, from search.Position, direction search.Direction) (search.MatchedRegion, bool) {
	return m.Find(text, from, direction)
}

// LookingAt reports whether the pattern matches text starting exactly at
// position from (an anchored, non-scanning match).
func (m *Matcher) LookingAt(text []rune, from search.Position) (search.MatchedRegion, bool) {
	region := m.effectiveRegion(text)
	bc := &boundaryContext{text: text, region: region, anchoringBounds: m.anchoringBounds, transparentBounds: m.transparentBounds}
	caps, ok := tryMatch(m.re, bc, int(from), m.numCaptures)
	if !ok {
		return search.MatchedRegion{}, false
	}
	return capsToMatchedRegion(caps), true
}

// ReplaceInPlace substitutes every occurrence of the pattern in text
// within the configured region with replacement, returning the rewritten
// rune slice and the number of replacements made. `$1`-style references
// to capture groups in replacement are substituted using each match's
// captures.
func (m *Matcher) ReplaceInPlace(text []rune, replacement []rune) ([]rune, int) {
	region := m.effectiveRegion(text)
	bc := &boundaryContext{text: text, region: region, anchoringBounds: m.anchoringBounds, transparentBounds: m.transparentBounds}

	var out []rune
	out = append(out, text[:region.Begin]...)

	count := 0
	pos := int(region.Begin)
	for pos <= int(region.End) {
		caps, ok := tryMatch(m.re, bc, pos, m.numCaptures)
		if !ok {
			if pos < int(region.End) {
				out = append(out, text[pos])
			}
			pos++
			continue
		}
		count++
		out = append(out, expandReplacement(replacement, text, caps)...)
		matchEnd := caps[1]
		if matchEnd == caps[0] {
			if matchEnd < int(region.End) {
				out = append(out, text[matchEnd])
			}
			pos = matchEnd + 1
		} else {
			pos = matchEnd
		}
	}
	if int(region.End) < len(text) {
		out = append(out, text[region.End:]...)
	}
	return out, count
}

func (m *Matcher) effectiveRegion(text []rune) search.Region {
	if !m.regionSet {
		return search.Region{Begin: 0, End: search.Position(len(text))}
	}
	return m.region
}

func capsToMatchedRegion(caps []int) search.MatchedRegion {
	mr := search.MatchedRegion{Matched: search.Region{Begin: search.Position(caps[0]), End: search.Position(caps[1])}}
	if len(caps) > 2 {
		groups := make([]search.Region, len(caps)/2)
		for g := 1; g < len(caps)/2; g++ {
			b, e := caps[2*g], caps[2*g+1]
			if b < 0 || e < 0 {
				continue
			}
			groups[g] = search.Region{Begin: search.Position(b), End: search.Position(e)}
		}
		mr.Groups = groups
	}
	return mr
}

// expandReplacement substitutes `$1`..`$9` and `$$` in replacement with
// the corresponding capture group text from caps.
func expandReplacement(replacement []rune, text []rune, caps []int) []rune {
	var out []rune
	for i := 0; i < len(replacement); i++ {
		if replacement[i] == '$' && i+1 < len(replacement) {
			next := replacement[i+1]
			if next == '$' {
				out = append(out, '$')
				i++
				continue
			}
			if next >= '0' && next <= '9' {
				g := int(next - '0')
				i++
				if 2*g+1 < len(caps) {
					b, e := caps[2*g], caps[2*g+1]
					if b >= 0 && e >= 0 {
						out = append(out, text[b:e]...)
					}
				}
				continue
			}
		}
		out = append(out, replacement[i])
	}
	return out
}
