package regexadapter

import "github.com/exeal/alpha-sub007/search"

func init() {
	search.RegisterPatternCompiler(search.RegularExpression, compileForSearch)
}

// compileForSearch adapts Compile to search.PatternCompiler, translating
// Options into this package's Config.
func compileForSearch(pattern string, options search.Options, _ search.Direction) (search.CompiledPattern, error) {
	cfg := DefaultConfig()
	cfg.CaseSensitive = options.CaseSensitive
	m, err := Compile(pattern, cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}
