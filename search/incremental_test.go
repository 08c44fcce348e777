package search

import "testing"

func TestIncrementalSearcherFindsAsCharactersAreAdded(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	s.Start(doc, 0, NewTextSearcher(DefaultConfig()), DefaultOptions())

	status, err := s.AddString([]rune("fox"))
	if err != nil {
		t.Fatal(err)
	}
	if status != Found {
		t.Fatalf("status = %v, want Found", status)
	}
	if s.Result().Match.Matched != (Region{4, 7}) {
		t.Fatalf("match = %+v, want {4 7}", s.Result().Match.Matched)
	}
}

func TestIncrementalSearcherNextWrapsAround(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	s.Start(doc, 0, NewTextSearcher(DefaultConfig()), DefaultOptions())
	s.AddString([]rune("fox"))

	status, err := s.Next(Forward)
	if err != nil {
		t.Fatal(err)
	}
	if status != FoundWrapped {
		t.Fatalf("status = %v, want FoundWrapped", status)
	}
	if s.Result().Match.Matched != (Region{4, 7}) {
		t.Fatalf("match = %+v, want {4 7}", s.Result().Match.Matched)
	}
}

func TestIncrementalSearcherUndoRestoresPriorStep(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	s.Start(doc, 0, NewTextSearcher(DefaultConfig()), DefaultOptions())
	s.AddString([]rune("fox"))
	firstResult := s.Result()

	s.Next(Forward)
	if s.Result().WrappedAround == firstResult.WrappedAround {
		t.Fatal("Next should have changed the wraparound flag")
	}

	status, err := s.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if status != Found || s.Result().Match.Matched != firstResult.Match.Matched || s.Result().WrappedAround != firstResult.WrappedAround {
		t.Fatalf("undo did not restore the step before Next: status=%v result=%+v", status, s.Result())
	}
}

func TestIncrementalSearcherNotFoundWhenPatternAbsent(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	s.Start(doc, 0, NewTextSearcher(DefaultConfig()), DefaultOptions())
	status, _ := s.AddString([]rune("zzz"))
	if status != NotFound {
		t.Fatalf("status = %v, want NotFound", status)
	}
}

func TestIncrementalSearcherResetClearsPattern(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	s.Start(doc, 0, NewTextSearcher(DefaultConfig()), DefaultOptions())
	s.AddString([]rune("fox"))
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.Pattern() != "" {
		t.Fatalf("pattern = %q, want empty after Reset", s.Pattern())
	}
}

func TestIncrementalSearcherAbortInvokesListener(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	s.Start(doc, 0, NewTextSearcher(DefaultConfig()), DefaultOptions())
	invoked := false
	s.SetAbortListener(func() { invoked = true })
	s.Abort()
	if !invoked || !s.Aborted() {
		t.Fatal("Abort should invoke the listener and mark the session aborted")
	}
	if _, err := s.AddCharacter('x'); err != ErrNotRunning {
		t.Fatalf("expected ErrNotRunning after Abort, got %v", err)
	}
}

func TestIncrementalSearcherAccessorsReflectLiveState(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	searcher := NewTextSearcher(DefaultConfig())
	opts := DefaultOptions()
	opts.Direction = Backward
	s.Start(doc, Position(doc.Length()), searcher, opts)

	if !s.IsRunning() {
		t.Fatal("IsRunning should be true right after Start")
	}
	if s.CanUndo() {
		t.Fatal("CanUndo should be false before any step is taken")
	}
	if s.Direction() != Backward {
		t.Fatalf("Direction() = %v, want Backward", s.Direction())
	}

	s.AddString([]rune("fox"))
	if !s.CanUndo() {
		t.Fatal("CanUndo should be true after a step")
	}
	if s.MatchedRegion() != (Region{4, 7}) {
		t.Fatalf("MatchedRegion() = %+v, want {4 7}", s.MatchedRegion())
	}

	s.End()
	if s.IsRunning() {
		t.Fatal("IsRunning should be false after End")
	}
}

func TestIncrementalSearcherEndRemembersPatternInTextSearcherHistory(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	searcher := NewTextSearcher(DefaultConfig())
	s.Start(doc, 0, searcher, DefaultOptions())
	s.AddString([]rune("fox"))
	s.End()

	history := searcher.History()
	if len(history) != 1 || history[0] != "fox" {
		t.Fatalf("searcher history = %v, want [\"fox\"]", history)
	}
}

func TestIncrementalSearcherAbortDoesNotRememberPattern(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &IncrementalSearcher{}
	searcher := NewTextSearcher(DefaultConfig())
	s.Start(doc, 0, searcher, DefaultOptions())
	s.AddString([]rune("fox"))
	s.Abort()

	if history := searcher.History(); len(history) != 0 {
		t.Fatalf("searcher history = %v, want empty after Abort", history)
	}
}
