package migemo

import "github.com/exeal/alpha-sub007/search"

func init() {
	search.RegisterPatternCompiler(search.Migemo, compileForSearch)
}

// compileForSearch adapts Compile to search.PatternCompiler. Migemo's
// candidate expansion already produces both hiragana and katakana forms
// regardless of case, so options.CaseSensitive has no analogue here and is
// ignored.
func compileForSearch(pattern string, _ search.Options, _ search.Direction) (search.CompiledPattern, error) {
	p, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p, nil
}
