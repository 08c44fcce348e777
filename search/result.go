package search

// MatchedRegion describes one successful search, the matched region plus
// any capture groups a regular-expression or migemo pattern produced.
type MatchedRegion struct {
	// Matched is the region of the whole match.
	Matched Region

	// Groups holds capture group regions for RegularExpression/Migemo
	// searches, indexed from 1; Groups[0] is unused so the slice can be
	// indexed directly by group number. Nil for Literal searches.
	Groups []Region
}

// Result is the outcome of one TextSearcher.Find call, or
// of IncrementalSearcher's latest step.
type Result struct {
	// Found reports whether a match was located.
	Found bool

	// Match is valid only when Found is true.
	Match MatchedRegion

	// WrappedAround reports whether this search wrapped past the start or
	// end of the document to find Match.
	WrappedAround bool
}
