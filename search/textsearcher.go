package search

import (
	"fmt"
	"unicode"
)

// DefaultHistoryCapacity and MinHistoryCapacity bound how many recent
// patterns TextSearcher.History keeps.
const (
	DefaultHistoryCapacity = 16
	MinHistoryCapacity     = 4
)

// CompiledPattern is whatever a Type's compiler produces: LiteralPattern
// for Literal, or a Matcher-shaped value from regexadapter/migemo for the
// other two. TextSearcher only needs to find the next/previous region, so
// that's all it asks of one.
type CompiledPattern interface {
	// FindIn locates the next match at or after from (Forward) or at or
	// before from (Backward), scanning within text.
	FindIn(text []rune, from Position, direction Direction) (MatchedRegion, bool)
}

// literalCompiled adapts LiteralPattern to CompiledPattern. A literal
// pattern is compiled for one direction, so a searcher that needs both
// directions keeps one compiled pattern per direction.
type literalCompiled struct{ pattern *LiteralPattern }

func (c literalCompiled) FindIn(text []rune, from Position, _ Direction) (MatchedRegion, bool) {
	region, ok := c.pattern.Search(text, from)
	if !ok {
		return MatchedRegion{}, false
	}
	return MatchedRegion{Matched: region}, true
}

// CompileError reports a pattern that failed to compile, giving every
// failure mode its own typed error.
type CompileError struct {
	Pattern string
	Reason  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("search: cannot compile pattern %q: %s", e.Pattern, e.Reason)
}

// Config configures a TextSearcher instance.
type Config struct {
	// HistoryCapacity bounds the MRU pattern history. Clamped to at least
	// MinHistoryCapacity by Validate.
	HistoryCapacity int
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{HistoryCapacity: DefaultHistoryCapacity}
}

// Validate normalizes and checks cfg, clamping HistoryCapacity up to
// MinHistoryCapacity rather than rejecting a too-small value outright.
func (cfg *Config) Validate() error {
	if cfg.HistoryCapacity < MinHistoryCapacity {
		cfg.HistoryCapacity = MinHistoryCapacity
	}
	return nil
}

// historyEntry pairs the pattern text and search options it was last used
// with, so re-selecting a history entry restores the whole search state.
type historyEntry struct {
	pattern string
	options Options
}

// lastResult caches a TextSearcher's most recent find, invalidated
// whenever the underlying Document's Revision moves out from under it.
type lastResult struct {
	valid    bool
	revision uint64
	options  Options
	pattern  string
	from     Position
	result   Result
}

// TextSearcher performs one-shot find/replace operations over a Document.
// It caches compiled patterns, keeps an MRU pattern history, and memoizes
// the last result against the document's revision so repeated Find
// calls after an unrelated read don't recompile or rescan from scratch.
type TextSearcher struct {
	cfg     Config
	history []historyEntry
	cache   map[string]CompiledPattern
	last    lastResult
}

// NewTextSearcher constructs a TextSearcher. A zero Config is replaced
// with DefaultConfig.
func NewTextSearcher(cfg Config) *TextSearcher {
	if cfg.HistoryCapacity == 0 {
		cfg = DefaultConfig()
	}
	cfg.Validate()
	return &TextSearcher{
		cfg:   cfg,
		cache: make(map[string]CompiledPattern),
	}
}

// History returns the pattern history, most recently used first.
func (s *TextSearcher) History() []string {
	out := make([]string, len(s.history))
	for i, e := range s.history {
		out[i] = e.pattern
	}
	return out
}

// IsMigemoAvailable reports whether a Migemo pattern compiler has been
// registered, which happens as a side effect of importing search/migemo.
// Callers can use this to gray out a Migemo option in a search dialog
// when the package was never linked in.
func (s *TextSearcher) IsMigemoAvailable() bool {
	return IsPatternTypeAvailable(Migemo)
}

func (s *TextSearcher) remember(pattern string, options Options) {
	for i, e := range s.history {
		if e.pattern == pattern {
			s.history = append(s.history[:i], s.history[i+1:]...)
			break
		}
	}
	s.history = append([]historyEntry{{pattern, options}}, s.history...)
	if len(s.history) > s.cfg.HistoryCapacity {
		s.history = s.history[:s.cfg.HistoryCapacity]
	}
}

func (s *TextSearcher) cacheKey(pattern string, options Options, direction Direction) string {
	return fmt.Sprintf("%d\x00%v\x00%v\x00%s", options.Type, options.CaseSensitive, direction, pattern)
}

// compile resolves pattern into a CompiledPattern for options.Type,
// caching the result by (pattern, options, direction). Literal patterns
// are compiled in place; RegularExpression and Migemo are handed off to
// whichever pattern package has registered itself for that Type via
// RegisterPatternCompiler. A Type with nothing registered for it (its
// package was never imported) is reported as a CompileError rather than
// silently falling back to literal matching.
func (s *TextSearcher) compile(pattern string, options Options, direction Direction) (CompiledPattern, error) {
	if pattern == "" {
		return nil, &CompileError{Pattern: pattern, Reason: "pattern must not be empty"}
	}
	key := s.cacheKey(pattern, options, direction)
	if p, ok := s.cache[key]; ok {
		return p, nil
	}

	var compiled CompiledPattern
	if options.Type == Literal {
		compiled = literalCompiled{NewLiteralPattern([]rune(pattern), options.CaseSensitive, direction)}
	} else {
		compiler, ok := patternCompilers[options.Type]
		if !ok {
			return nil, &CompileError{Pattern: pattern, Reason: fmt.Sprintf("no compiler registered for %v patterns", options.Type)}
		}
		c, err := compiler(pattern, options, direction)
		if err != nil {
			return nil, err
		}
		compiled = c
	}
	s.cache[key] = compiled
	return compiled, nil
}

// Find performs one search in doc for pattern using options, starting from
// position from, returning a Result. Dispatches on options.Type to a
// literal, regular-expression, or Migemo compile, reusing a cached
// compiled pattern when one already exists for this (pattern, options,
// direction).
func (s *TextSearcher) Find(doc Document, pattern string, options Options, from Position) (Result, error) {
	if s.last.valid && s.last.revision == doc.Revision() && s.last.options == options &&
		s.last.pattern == pattern && s.last.from == from {
		return s.last.result, nil
	}

	compiled, err := s.compile(pattern, options, options.Direction)
	if err != nil {
		return Result{}, err
	}
	s.remember(pattern, options)

	result := s.scan(doc, compiled, options, from)
	s.last = lastResult{valid: true, revision: doc.Revision(), options: options, pattern: pattern, from: from, result: result}
	return result, nil
}

// FindCompiled runs an already-compiled pattern (e.g. from regexadapter or
// migemo) against doc, applying the same wraparound and whole-match
// boundary rules as Find.
func (s *TextSearcher) FindCompiled(doc Document, compiled CompiledPattern, options Options, from Position) Result {
	return s.scan(doc, compiled, options, from)
}

func (s *TextSearcher) scan(doc Document, compiled CompiledPattern, options Options, from Position) Result {
	length := Position(doc.Length())
	text := doc.Slice(0, length)

	if r, ok := s.tryFind(text, compiled, options, from); ok {
		return Result{Found: true, Match: r}
	}

	// Wraparound: restart from the opposite end.
	wrapFrom := Position(0)
	if options.Direction == Backward {
		wrapFrom = length
	}
	if r, ok := s.tryFind(text, compiled, options, wrapFrom); ok {
		return Result{Found: true, Match: r, WrappedAround: true}
	}
	return Result{Found: false}
}

func (s *TextSearcher) tryFind(text []rune, compiled CompiledPattern, options Options, from Position) (MatchedRegion, bool) {
	cursor := from
	for {
		m, ok := compiled.FindIn(text, cursor, options.Direction)
		if !ok {
			return MatchedRegion{}, false
		}
		if satisfiesWholeMatch(text, m.Matched, options.WholeMatch) {
			return m, true
		}
		if options.Direction == Forward {
			cursor = m.Matched.Begin + 1
		} else {
			cursor = m.Matched.End - 1
			if cursor < 0 {
				return MatchedRegion{}, false
			}
		}
	}
}

// satisfiesWholeMatch checks that region's boundaries coincide with the
// requested boundary kind. The grapheme-cluster check treats a boundary as
// valid when the neighboring code point is not a combining mark; the word
// check uses Go's Unicode letter/digit classification, a simplified
// stand-in for full UAX #29 word segmentation.
func satisfiesWholeMatch(text []rune, region Region, kind WholeMatch) bool {
	switch kind {
	case NoWholeMatchConstraint:
		return true
	case WholeGraphemeCluster:
		return !isCombining(text, region.Begin) && !isCombining(text, region.End)
	case WholeWord:
		return !sameWordClass(text, region.Begin) && !sameWordClass(text, region.End)
	default:
		return true
	}
}

func isCombining(text []rune, at Position) bool {
	if int(at) <= 0 || int(at) >= len(text) {
		return false
	}
	return unicode.Is(unicode.Mn, text[at]) || unicode.Is(unicode.Me, text[at])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func sameWordClass(text []rune, at Position) bool {
	if int(at) <= 0 || int(at) >= len(text) {
		return false
	}
	return isWordRune(text[at-1]) == isWordRune(text[at])
}

// ReplaceAction is the action an interactive ReplaceAll callback returns
// after inspecting one candidate match.
type ReplaceAction int

const (
	// ActionReplace replaces this match and continues to the next one.
	ActionReplace ReplaceAction = iota
	// ActionSkip leaves this match untouched and continues to the next one.
	ActionSkip
	// ActionReplaceAll replaces this match and every remaining one without
	// querying the callback again.
	ActionReplaceAll
	// ActionReplaceAndExit replaces this match and stops.
	ActionReplaceAndExit
	// ActionUndo reverts the most recent replacement and re-offers the
	// match it had consumed.
	ActionUndo
	// ActionExit stops without replacing this match.
	ActionExit
)

// ReplaceQuery is consulted once per candidate match during an interactive
// ReplaceAll, and decides what happens to it. canUndo reports whether
// there is a prior replacement available to revert with ActionUndo. A nil
// ReplaceQuery behaves as though it always returned ActionReplace.
type ReplaceQuery func(matched MatchedRegion, canUndo bool) ReplaceAction

// undoEntry records enough of one applied replacement to resume scanning
// from the right place after an ActionUndo.
type undoEntry struct {
	matchBegin Position
	replaceEnd Position
}

// ReplaceAll finds every non-overlapping match of pattern in doc, in
// document order, and for each one consults query before deciding what to
// do with it. It maintains an undo stack of the replacements it has made
// so ActionUndo can revert the most recent one and resume scanning from
// where it started. ReplaceAll stops immediately, without error, if the
// document's revision changes for a reason other than its own edits
// (detecting a concurrent external change), and returns the number of
// replacements actually applied.
func (s *TextSearcher) ReplaceAll(doc Document, pattern string, options Options, replacement []rune, query ReplaceQuery) (int, error) {
	forward := options
	forward.Direction = Forward

	compiled, err := s.compile(pattern, forward, Forward)
	if err != nil {
		return 0, err
	}
	s.remember(pattern, options)

	var undoStack []undoEntry
	count := 0
	cursor := Position(0)
	revision := doc.Revision()

	advancePast := func(region Region) Position {
		if region.IsEmpty() {
			return region.End + 1
		}
		return region.End
	}

	for {
		if doc.Revision() != revision {
			break
		}
		length := Position(doc.Length())
		text := doc.Slice(0, length)
		m, ok := s.tryFind(text, compiled, forward, cursor)
		if !ok {
			break
		}

		action := ActionReplace
		if query != nil {
			action = query(m, len(undoStack) > 0)
		}

		switch action {
		case ActionSkip:
			cursor = advancePast(m.Matched)
			continue

		case ActionReplaceAll:
			query = nil
			action = ActionReplace

		case ActionExit:
			s.last = lastResult{}
			return count, nil

		case ActionUndo:
			if len(undoStack) == 0 {
				cursor = advancePast(m.Matched)
				continue
			}
			if err := doc.Undo(); err != nil {
				return count, err
			}
			last := undoStack[len(undoStack)-1]
			undoStack = undoStack[:len(undoStack)-1]
			count--
			cursor = last.matchBegin
			revision = doc.Revision()
			continue
		}

		begin := m.Matched.Begin
		if err := doc.Replace(m.Matched, replacement); err != nil {
			return count, err
		}
		count++
		replaceEnd := begin + Position(len(replacement))
		undoStack = append(undoStack, undoEntry{matchBegin: begin, replaceEnd: replaceEnd})
		cursor = replaceEnd
		revision = doc.Revision()

		if action == ActionReplaceAndExit {
			break
		}
	}

	s.last = lastResult{}
	return count, nil
}
