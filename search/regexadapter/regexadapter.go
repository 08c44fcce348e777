// Package regexadapter implements the regular-expression pattern type: a
// minimal backtracking matcher compiled from regexp/syntax, carrying the
// region-restriction and anchoring/transparent bounds controls an
// editor's live search needs.
package regexadapter

import (
	"errors"
	"fmt"
	"regexp/syntax"
)

// Config configures a Matcher's compilation.
type Config struct {
	// CaseSensitive controls whether the pattern folds case at compile
	// time (applied the same way across the whole pattern, like Perl's
	// (?i) but pattern-wide).
	CaseSensitive bool

	// MaxProgramSize bounds how large a compiled pattern's syntax tree may
	// be, guarding against pathological input.
	MaxProgramSize int
}

// DefaultMaxProgramSize bounds compiled pattern complexity.
const DefaultMaxProgramSize = 10000

// DefaultConfig returns the documented default: case-sensitive, with the
// default program size ceiling.
func DefaultConfig() Config {
	return Config{CaseSensitive: true, MaxProgramSize: DefaultMaxProgramSize}
}

// Validate normalizes cfg, filling in a zero MaxProgramSize with the
// default rather than rejecting it.
func (cfg *Config) Validate() error {
	if cfg.MaxProgramSize <= 0 {
		cfg.MaxProgramSize = DefaultMaxProgramSize
	}
	return nil
}

// CompileError reports a pattern regexp/syntax could not parse, or one
// that parsed but exceeded Config.MaxProgramSize.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("regexadapter: cannot compile pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// TooComplex reports whether the failure was specifically
// Config.MaxProgramSize being exceeded, rather than a parse error. Lets a
// caller distinguish a complexity rejection from a malformed pattern
// without importing this package's ErrTooComplex sentinel directly.
func (e *CompileError) TooComplex() bool { return errors.Is(e.Err, ErrTooComplex) }

// ErrTooComplex is wrapped by CompileError when a pattern's syntax tree
// exceeds Config.MaxProgramSize.
var ErrTooComplex = fmt.Errorf("pattern too complex")

// Compile parses pattern with regexp/syntax.Parse and returns a Matcher
// ready to search rune text. It is the sole entry point other packages
// use to obtain a Matcher.
func Compile(pattern string, cfg Config) (*Matcher, error) {
	cfg.Validate()
	flags := syntax.Perl
	if !cfg.CaseSensitive {
		flags |= syntax.FoldCase
	}
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	re = re.Simplify()

	size := countNodes(re)
	if size > cfg.MaxProgramSize {
		return nil, &CompileError{Pattern: pattern, Err: ErrTooComplex}
	}

	m := &Matcher{
		re:                re,
		numCaptures:       countCaptures(re),
		anchoringBounds:   false,
		transparentBounds: true,
	}
	return m, nil
}

func countNodes(re *syntax.Regexp) int {
	n := 1
	for _, sub := range re.Sub {
		n += countNodes(sub)
	}
	return n
}

func countCaptures(re *syntax.Regexp) int {
	max := 0
	var walk func(*syntax.Regexp)
	walk = func(r *syntax.Regexp) {
		if r.Op == syntax.OpCapture && r.Cap > max {
			max = r.Cap
		}
		for _, sub := range r.Sub {
			walk(sub)
		}
	}
	walk(re)
	return max
}
