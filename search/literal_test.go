package search

import "testing"

func TestLiteralPatternForwardFindsMatch(t *testing.T) {
	p := NewLiteralPattern([]rune("abc"), true, Forward)
	text := []rune("xxabcxx")
	region, ok := p.Search(text, 0)
	if !ok {
		t.Fatal("expected a match")
	}
	if region != (Region{2, 5}) {
		t.Fatalf("region = %+v, want {2 5}", region)
	}
}

func TestLiteralPatternForwardNoMatch(t *testing.T) {
	p := NewLiteralPattern([]rune("abc"), true, Forward)
	text := []rune("xyz")
	if _, ok := p.Search(text, 0); ok {
		t.Fatal("expected no match")
	}
}

func TestLiteralPatternForwardFromOffset(t *testing.T) {
	p := NewLiteralPattern([]rune("ab"), true, Forward)
	text := []rune("ababab")
	region, ok := p.Search(text, 1)
	if !ok {
		t.Fatal("expected a match")
	}
	if region != (Region{2, 4}) {
		t.Fatalf("region = %+v, want {2 4}", region)
	}
}

func TestLiteralPatternBackwardFindsNearestMatch(t *testing.T) {
	p := NewLiteralPattern([]rune("ab"), true, Backward)
	text := []rune("axbxabxx")
	region, ok := p.Search(text, Position(len(text)))
	if !ok {
		t.Fatal("expected a match")
	}
	if region != (Region{4, 6}) {
		t.Fatalf("region = %+v, want {4 6}", region)
	}
}

func TestLiteralPatternBackwardNoMatch(t *testing.T) {
	p := NewLiteralPattern([]rune("ab"), true, Backward)
	text := []rune("bxaxbx")
	if _, ok := p.Search(text, Position(len(text))); ok {
		t.Fatal("expected no match: no \"ab\" pair exists in text")
	}
}

func TestLiteralPatternCaseInsensitive(t *testing.T) {
	p := NewLiteralPattern([]rune("ABC"), false, Forward)
	text := []rune("xxabcxx")
	region, ok := p.Search(text, 0)
	if !ok {
		t.Fatal("expected a case-insensitive match")
	}
	if region != (Region{2, 5}) {
		t.Fatalf("region = %+v, want {2 5}", region)
	}
}

func TestLiteralPatternEmptyPatternMatchesAtCursor(t *testing.T) {
	p := NewLiteralPattern(nil, true, Forward)
	text := []rune("abc")
	region, ok := p.Search(text, 1)
	if !ok || region != (Region{1, 1}) {
		t.Fatalf("region = %+v ok=%v, want {1 1} true", region, ok)
	}
}
