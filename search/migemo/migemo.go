// Package migemo implements the Migemo pattern type: a romaji query
// expanded into literal kana/katakana candidate forms and searched in one
// pass with an Aho-Corasick automaton, the same multi-pattern-literal
// technique used above a threshold of alternated literals, applied here
// to a handful of transliteration candidates instead of a user's own
// alternation.
package migemo

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/exeal/alpha-sub007/search"
)

// CompileError reports a query that produced no searchable candidate
// forms, or whose automaton failed to build.
type CompileError struct {
	Query string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("migemo: cannot compile query %q: %v", e.Query, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Pattern is a compiled Migemo query: the candidate forms expandCandidates
// produced, backed by one Aho-Corasick automaton so a search over a large
// document is a single linear pass regardless of how many candidates the
// query expanded into.
type Pattern struct {
	query      string
	candidates []string
	automaton  *ahocorasick.Automaton
}

// Compile expands query into its candidate forms and builds the
// automaton that searches for all of them at once.
func Compile(query string) (*Pattern, error) {
	candidates := expandCandidates(query)
	if len(candidates) == 0 {
		return nil, &CompileError{Query: query, Err: fmt.Errorf("no candidate forms")}
	}
	builder := ahocorasick.NewBuilder()
	for _, c := range candidates {
		builder.AddPattern([]byte(c))
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, &CompileError{Query: query, Err: err}
	}
	return &Pattern{query: query, candidates: candidates, automaton: automaton}, nil
}

// Candidates returns the literal forms the query expanded into, for
// diagnostics and tests.
func (p *Pattern) Candidates() []string { return p.candidates }

// runeIndex maps rune positions to byte offsets in the UTF-8 encoding of
// text, since the Aho-Corasick automaton operates on bytes.
type runeIndex struct {
	bytes   []byte
	offsets []int
}

func buildRuneIndex(text []rune) runeIndex {
	offsets := make([]int, len(text)+1)
	var buf []byte
	for i, r := range text {
		offsets[i] = len(buf)
		buf = append(buf, []byte(string(r))...)
	}
	offsets[len(text)] = len(buf)
	return runeIndex{bytes: buf, offsets: offsets}
}

func (idx runeIndex) byteAt(pos search.Position) int {
	p := int(pos)
	if p < 0 {
		p = 0
	}
	if p > len(idx.offsets)-1 {
		p = len(idx.offsets) - 1
	}
	return idx.offsets[p]
}

func (idx runeIndex) runeAt(byteOffset int) search.Position {
	for i, off := range idx.offsets {
		if off == byteOffset {
			return search.Position(i)
		}
	}
	return search.Position(len(idx.offsets) - 1)
}

// FindIn implements search.CompiledPattern, scanning for the nearest
// occurrence of any candidate form at or after from (Forward) or at or
// before from (Backward).
func (p *Pattern) FindIn(text []rune, from search.Position, direction search.Direction) (search.MatchedRegion, bool) {
	idx := buildRuneIndex(text)

	if direction == search.Forward {
		m := p.automaton.Find(idx.bytes, idx.byteAt(from))
		if m == nil {
			return search.MatchedRegion{}, false
		}
		return search.MatchedRegion{Matched: search.Region{Begin: idx.runeAt(m.Start), End: idx.runeAt(m.End)}}, true
	}

	// The automaton only finds matches scanning forward, so a backward
	// search collects every match up to the cursor and keeps the last
	// one, mirroring how LiteralPattern's backward scan looks for the
	// occurrence nearest to the cursor.
	limit := idx.byteAt(from)
	found := false
	var bestStart, bestEnd int
	at := 0
	for at <= limit {
		m := p.automaton.Find(idx.bytes, at)
		if m == nil || m.Start > limit {
			break
		}
		found = true
		bestStart, bestEnd = m.Start, m.End
		if m.End > m.Start {
			at = m.End
		} else {
			at = m.Start + 1
		}
	}
	if !found {
		return search.MatchedRegion{}, false
	}
	return search.MatchedRegion{Matched: search.Region{Begin: idx.runeAt(bestStart), End: idx.runeAt(bestEnd)}}, true
}
