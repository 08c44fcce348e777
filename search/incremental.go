package search

import "errors"

// Status reports the live state of an IncrementalSearcher after each edit.
type Status int

const (
	// Found reports the current pattern has at least one match.
	Found Status = iota
	// NotFound reports the current pattern has no match anywhere in the
	// document, including after trying to wrap around.
	NotFound
	// FoundWrapped reports the current match was only found after
	// wrapping past an end of the document.
	FoundWrapped
)

// CompileErrorKind distinguishes why a live pattern failed to compile, so
// a caller can word the two cases differently: a pattern that is simply
// malformed versus one that is well-formed but too large to compile.
type CompileErrorKind int

const (
	// BadRegex reports a pattern that could not be parsed.
	BadRegex CompileErrorKind = iota
	// ComplexRegex reports a pattern that parsed but exceeded a compiler's
	// complexity bound.
	ComplexRegex
)

// operationKind distinguishes the entries pushed onto an
// IncrementalSearcher's undo stack.
type operationKind int

const (
	opAddCharacter operationKind = iota
	opAddString
	opNext
)

// operation is one step of incremental search history, enough to restore
// the previous pattern text, last Result, search cursor and direction on
// Undo.
type operation struct {
	kind            operationKind
	patternBefore   []rune
	resultBefore    Result
	statusBefore    Status
	cursorBefore    Position
	directionBefore Direction
}

// IncrementalSearcher drives a character-at-a-time live search over a
// Document. It borrows a TextSearcher (for pattern compilation and MRU
// history) and a Document for the lifetime of one session, and keeps the
// in-progress pattern plus an undo stack of every edit made to it, so
// typing a character and then backspacing restores the exact prior match.
type IncrementalSearcher struct {
	searcher       *TextSearcher
	doc            Document
	options        Options
	pattern        []rune
	status         Status
	result         Result
	cursor         Position
	history        []operation
	running        bool
	aborted        bool
	onAbort        func()
	onCompileError func(CompileErrorKind)
	textCache      []rune
}

// ErrNotRunning is returned by any IncrementalSearcher method other than
// Start when the searcher has not been started (or has since ended).
var ErrNotRunning = errors.New("search: incremental searcher is not running")

// Start begins a new incremental search session over doc from position
// from, with the given initial options, borrowing searcher to compile
// patterns and, on End, to remember the session's final pattern. It
// replaces any previous session.
func (s *IncrementalSearcher) Start(doc Document, from Position, searcher *TextSearcher, options Options) {
	s.searcher = searcher
	s.doc = doc
	s.options = options
	s.pattern = nil
	s.status = NotFound
	s.result = Result{}
	s.cursor = from
	s.history = nil
	s.running = true
	s.aborted = false
	s.textCache = doc.Slice(0, Position(doc.Length()))
}

// SetAbortListener registers a callback invoked by Abort, the way an
// editor wires an incremental search session to its document/bookmark
// listener hooks for abrupt cancellation.
func (s *IncrementalSearcher) SetAbortListener(f func()) { s.onAbort = f }

// SetCompileErrorListener registers a callback invoked whenever the live
// pattern fails to compile (e.g. a malformed or overly complex regular
// expression). A compile error does not end the session; the searcher
// simply reports NotFound until the pattern becomes compilable again.
func (s *IncrementalSearcher) SetCompileErrorListener(f func(CompileErrorKind)) {
	s.onCompileError = f
}

func (s *IncrementalSearcher) requireRunning() error {
	if !s.running {
		return ErrNotRunning
	}
	return nil
}

// IsRunning reports whether a session is currently active.
func (s *IncrementalSearcher) IsRunning() bool { return s.running }

// CanUndo reports whether Undo has a step to revert.
func (s *IncrementalSearcher) CanUndo() bool { return len(s.history) > 0 }

// Direction returns the current scan direction.
func (s *IncrementalSearcher) Direction() Direction { return s.options.Direction }

// MatchedRegion returns the region of the most recent match; zero-valued
// when the last step found nothing.
func (s *IncrementalSearcher) MatchedRegion() Region { return s.result.Match.Matched }

// AddCharacter appends one code point to the live pattern and re-searches.
func (s *IncrementalSearcher) AddCharacter(r rune) (Status, error) {
	return s.AddString([]rune{r})
}

// AddString appends code points to the live pattern and re-searches.
func (s *IncrementalSearcher) AddString(text []rune) (Status, error) {
	if err := s.requireRunning(); err != nil {
		return s.status, err
	}
	s.push(opAddString)
	s.pattern = append(append([]rune{}, s.pattern...), text...)
	s.reevaluate()
	return s.status, nil
}

// Next advances to the next match in direction without changing the
// pattern. Forward, the search cursor moves to the end of the current match
// (one past it for an empty match); backward, it moves to one before the
// current match's end.
func (s *IncrementalSearcher) Next(direction Direction) (Status, error) {
	if err := s.requireRunning(); err != nil {
		return s.status, err
	}
	s.push(opNext)
	s.options.Direction = direction
	if s.result.Found {
		if direction == Forward {
			m := s.result.Match.Matched
			s.cursor = m.End
			if m.End == m.Begin {
				s.cursor = m.End + 1
			}
		} else {
			s.cursor = s.result.Match.Matched.End - 1
		}
	}
	s.reevaluate()
	return s.status, nil
}

// Undo reverts the most recent AddCharacter/AddString/Next step, restoring
// the prior pattern, result, search cursor and direction without
// re-scanning the document.
func (s *IncrementalSearcher) Undo() (Status, error) {
	if err := s.requireRunning(); err != nil {
		return s.status, err
	}
	if len(s.history) == 0 {
		return s.status, errors.New("search: no incremental search step to undo")
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.pattern = last.patternBefore
	s.result = last.resultBefore
	s.status = last.statusBefore
	s.cursor = last.cursorBefore
	s.options.Direction = last.directionBefore
	return s.status, nil
}

// Reset clears the live pattern and undo history but keeps the session
// running.
func (s *IncrementalSearcher) Reset() error {
	if err := s.requireRunning(); err != nil {
		return err
	}
	s.pattern = nil
	s.history = nil
	s.status = NotFound
	s.result = Result{}
	return nil
}

// End finishes the session, leaving the document's selection (if any) on
// the last match, and remembers the final pattern in the underlying
// TextSearcher's MRU history so a later batch search can reuse it. The
// caller is responsible for acting on the final Result before calling End.
func (s *IncrementalSearcher) End() Result {
	s.running = false
	if len(s.pattern) > 0 && s.searcher != nil {
		s.searcher.remember(string(s.pattern), s.options)
	}
	return s.result
}

// Abort cancels the session, invoking the registered abort listener,
// without remembering the in-progress pattern.
func (s *IncrementalSearcher) Abort() {
	s.running = false
	s.aborted = true
	if s.onAbort != nil {
		s.onAbort()
	}
}

// Aborted reports whether the most recently ended session was aborted
// rather than ended normally.
func (s *IncrementalSearcher) Aborted() bool { return s.aborted }

// Pattern returns the live pattern text built up so far.
func (s *IncrementalSearcher) Pattern() string { return string(s.pattern) }

// Result returns the most recent search outcome.
func (s *IncrementalSearcher) Result() Result { return s.result }

func (s *IncrementalSearcher) push(kind operationKind) {
	s.history = append(s.history, operation{
		kind:            kind,
		patternBefore:   append([]rune{}, s.pattern...),
		resultBefore:    s.result,
		statusBefore:    s.status,
		cursorBefore:    s.cursor,
		directionBefore: s.options.Direction,
	})
}

// reevaluate compiles the live pattern through the borrowed TextSearcher
// (so it supports all three pattern types, and shares its compiled-pattern
// cache) and re-scans from the current cursor. A compile failure is
// reported to onCompileError, classified as BadRegex or ComplexRegex, and
// leaves the session NotFound rather than ending it.
func (s *IncrementalSearcher) reevaluate() {
	if len(s.pattern) == 0 {
		s.status = NotFound
		s.result = Result{}
		return
	}

	compiled, err := s.searcher.compile(string(s.pattern), s.options, s.options.Direction)
	if err != nil {
		if s.onCompileError != nil {
			s.onCompileError(classifyCompileError(err))
		}
		s.status = NotFound
		s.result = Result{}
		return
	}

	s.result = s.searchFrom(compiled)
	switch {
	case !s.result.Found:
		s.status = NotFound
	case s.result.WrappedAround:
		s.status = FoundWrapped
	default:
		s.status = Found
	}
}

// searchFrom applies the same wraparound rule TextSearcher.scan uses,
// against the searcher's shared tryFind so whole-match boundary handling
// stays identical between batch and incremental search.
func (s *IncrementalSearcher) searchFrom(compiled CompiledPattern) Result {
	if r, ok := s.searcher.tryFind(s.textCache, compiled, s.options, s.cursor); ok {
		return Result{Found: true, Match: r}
	}
	wrapFrom := Position(0)
	if s.options.Direction == Backward {
		wrapFrom = Position(len(s.textCache))
	}
	if r, ok := s.searcher.tryFind(s.textCache, compiled, s.options, wrapFrom); ok {
		return Result{Found: true, Match: r, WrappedAround: true}
	}
	return Result{}
}

// classifyCompileError distinguishes a complexity rejection from a plain
// parse failure without importing regexadapter: it asks whether err's
// chain implements a TooComplex() bool method.
func classifyCompileError(err error) CompileErrorKind {
	var tc tooComplexer
	if errors.As(err, &tc) && tc.TooComplex() {
		return ComplexRegex
	}
	return BadRegex
}
