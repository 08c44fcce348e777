package search_test

import (
	"strings"
	"testing"

	"github.com/exeal/alpha-sub007/search"
	_ "github.com/exeal/alpha-sub007/search/migemo"
	_ "github.com/exeal/alpha-sub007/search/regexadapter"
)

// memDocument is a tiny read-only Document, enough to drive Find and
// IncrementalSearcher in these dispatch tests; ReplaceAll's Document.Undo
// path is covered by the internal test suite's richer memDocument.
type memDocument struct {
	runes []rune
}

func newMemDocument(s string) *memDocument { return &memDocument{runes: []rune(s)} }

func (d *memDocument) Length() int                { return len(d.runes) }
func (d *memDocument) At(p search.Position) rune   { return d.runes[p] }
func (d *memDocument) Slice(begin, end search.Position) []rune {
	out := make([]rune, end-begin)
	copy(out, d.runes[begin:end])
	return out
}
func (d *memDocument) Revision() uint64 { return 0 }
func (d *memDocument) Replace(search.Region, []rune) error {
	return search.ErrReadOnly
}
func (d *memDocument) Undo() error { return search.ErrReadOnly }

func TestTextSearcherFindDispatchesToRegexadapter(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := search.NewTextSearcher(search.DefaultConfig())
	opts := search.DefaultOptions()
	opts.Type = search.RegularExpression

	result, err := s.Find(doc, "f.x", opts, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Found || result.Match.Matched != (search.Region{Begin: 4, End: 7}) {
		t.Fatalf("result = %+v, want a match at {4 7}", result)
	}
}

func TestTextSearcherFindDispatchesToMigemo(t *testing.T) {
	doc := newMemDocument("あ")
	s := search.NewTextSearcher(search.DefaultConfig())
	opts := search.DefaultOptions()
	opts.Type = search.Migemo

	result, err := s.Find(doc, "a", opts, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Found || result.Match.Matched != (search.Region{Begin: 0, End: 1}) {
		t.Fatalf("result = %+v, want a match at {0 1}", result)
	}
}

func TestTextSearcherIsMigemoAvailableOnceImported(t *testing.T) {
	s := search.NewTextSearcher(search.DefaultConfig())
	if !s.IsMigemoAvailable() {
		t.Fatal("IsMigemoAvailable should be true once search/migemo has been imported")
	}
}

func TestIncrementalSearcherReportsBadRegexWithoutEndingSession(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &search.IncrementalSearcher{}
	opts := search.DefaultOptions()
	opts.Type = search.RegularExpression
	s.Start(doc, 0, search.NewTextSearcher(search.DefaultConfig()), opts)

	var kinds []search.CompileErrorKind
	s.SetCompileErrorListener(func(k search.CompileErrorKind) { kinds = append(kinds, k) })

	status, err := s.AddString([]rune("fox("))
	if err != nil {
		t.Fatal(err)
	}
	if status != search.NotFound {
		t.Fatalf("status = %v, want NotFound for an unparseable pattern", status)
	}
	if len(kinds) != 1 || kinds[0] != search.BadRegex {
		t.Fatalf("compile error callback = %v, want exactly one BadRegex", kinds)
	}
	if !s.IsRunning() {
		t.Fatal("a compile error should not end the session")
	}
}

func TestIncrementalSearcherReportsComplexRegexWithoutEndingSession(t *testing.T) {
	doc := newMemDocument("the fox jumps")
	s := &search.IncrementalSearcher{}
	opts := search.DefaultOptions()
	opts.Type = search.RegularExpression
	s.Start(doc, 0, search.NewTextSearcher(search.DefaultConfig()), opts)

	var kinds []search.CompileErrorKind
	s.SetCompileErrorListener(func(k search.CompileErrorKind) { kinds = append(kinds, k) })

	// An alternation of 20,000 capturing groups blows past regexadapter's
	// default 10,000-node program size ceiling without being malformed.
	huge := strings.Repeat("(a)|", 19999) + "(a)"
	status, err := s.AddString([]rune(huge))
	if err != nil {
		t.Fatal(err)
	}
	if status != search.NotFound {
		t.Fatalf("status = %v, want NotFound for an over-complex pattern", status)
	}
	if len(kinds) != 1 || kinds[0] != search.ComplexRegex {
		t.Fatalf("compile error callback = %v, want exactly one ComplexRegex", kinds)
	}
	if !s.IsRunning() {
		t.Fatal("a compile error should not end the session")
	}
}
