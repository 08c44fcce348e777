package migemo

import (
	"testing"

	"github.com/exeal/alpha-sub007/search"
)

func TestExpandCandidatesIncludesHiraganaAndKatakana(t *testing.T) {
	candidates := expandCandidates("kanji")
	want := map[string]bool{"kanji": true, "かんじ": true, "カンジ": true}
	for w := range want {
		found := false
		for _, c := range candidates {
			if c == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expandCandidates(%q) = %v, missing %q", "kanji", candidates, w)
		}
	}
}

func TestPatternFindsHiraganaForm(t *testing.T) {
	p, err := Compile("ka")
	if err != nil {
		t.Fatal(err)
	}
	text := []rune("テスト か text")
	region, ok := p.FindIn(text, 0, search.Forward)
	if !ok {
		t.Fatal("expected to find the hiragana candidate")
	}
	if text[region.Matched.Begin] != 'か' {
		t.Fatalf("matched rune = %q, want か", string(text[region.Matched.Begin]))
	}
}

func TestPatternFindsLiteralFallback(t *testing.T) {
	p, err := Compile("漢字")
	if err != nil {
		t.Fatal(err)
	}
	text := []rune("a 漢字 b")
	region, ok := p.FindIn(text, 0, search.Forward)
	if !ok || region.Matched.Begin != 2 {
		t.Fatalf("region = %+v ok=%v, want Begin=2", region.Matched, ok)
	}
}
