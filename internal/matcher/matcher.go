// Package matcher compiles and applies the ordered find/replace rules for refile.
package matcher

import (
	"fmt"
	"regexp"

	"refile/internal/config"
)

// Pattern is one compiled rule.
type Pattern struct {
	Regexp      *regexp.Regexp
	Replacement string
}

// Set is an ordered, immutable list of patterns. Each pattern sees the output
// of the one before it.
type Set struct {
	patterns   []Pattern
	replaceAll bool
}

// CompileError reports a rule that could not be turned into a Pattern.
type CompileError struct {
	Index   int    // Position of the rule in the rule list
	Pattern string // The offending find expression
	Reason  string
	Err     error // Underlying regexp error, if any
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid pattern %q (rule %d): %v", e.Pattern, e.Index+1, e.Err)
	}
	return fmt.Sprintf("invalid pattern %q (rule %d): %s", e.Pattern, e.Index+1, e.Reason)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile builds a Set from rules. Every rule is compiled and its replacement
// template checked before Compile returns, so a single bad rule yields an
// error and no Set.
//
// A replacement that references a capture group its own pattern does not
// define is rejected rather than expanded to the empty string.
func Compile(rules []config.Rule, replaceAll bool) (*Set, error) {
	if len(rules) == 0 {
		return nil, &CompileError{Index: -1, Reason: "no rules given"}
	}

	patterns := make([]Pattern, 0, len(rules))
	for i, rule := range rules {
		re, err := regexp.Compile(rule.Find)
		if err != nil {
			return nil, &CompileError{Index: i, Pattern: rule.Find, Err: err}
		}
		if missing, ok := undefinedGroup(re, rule.Replace); ok {
			return nil, &CompileError{
				Index:   i,
				Pattern: rule.Find,
				Reason:  fmt.Sprintf("replacement %q references undefined group %q", rule.Replace, missing),
			}
		}
		patterns = append(patterns, Pattern{Regexp: re, Replacement: rule.Replace})
	}

	return &Set{patterns: patterns, replaceAll: replaceAll}, nil
}

// Transform applies every pattern in order to filename and returns the
// result. It returns filename unchanged when nothing matches.
func (s *Set) Transform(filename string) string {
	for _, p := range s.patterns {
		filename = s.apply(p, filename)
	}
	return filename
}

// Step records the effect of one pattern during a Trace.
type Step struct {
	Pattern string
	Before  string
	After   string
}

// Trace is Transform with the intermediate value after each pattern.
func (s *Set) Trace(filename string) []Step {
	steps := make([]Step, 0, len(s.patterns))
	for _, p := range s.patterns {
		next := s.apply(p, filename)
		steps = append(steps, Step{
			Pattern: p.Regexp.String(),
			Before:  filename,
			After:   next,
		})
		filename = next
	}
	return steps
}

func (s *Set) apply(p Pattern, filename string) string {
	if s.replaceAll {
		return p.Regexp.ReplaceAllString(filename, p.Replacement)
	}
	return replaceFirst(p.Regexp, filename, p.Replacement)
}

// replaceFirst replaces the leftmost match of re in src, expanding
// capture-group references in repl.
func replaceFirst(re *regexp.Regexp, src, repl string) string {
	m := re.FindStringSubmatchIndex(src)
	if m == nil {
		return src
	}
	dst := make([]byte, 0, len(src)+len(repl))
	dst = append(dst, src[:m[0]]...)
	dst = re.ExpandString(dst, repl, src, m)
	dst = append(dst, src[m[1]:]...)
	return string(dst)
}

// ReplaceAll reports whether every match is replaced, not just the first.
func (s *Set) ReplaceAll() bool {
	return s.replaceAll
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	return len(s.patterns)
}

// Rules returns the source rules of the set, in order.
func (s *Set) Rules() []config.Rule {
	rules := make([]config.Rule, len(s.patterns))
	for i, p := range s.patterns {
		rules[i] = config.Rule{Find: p.Regexp.String(), Replace: p.Replacement}
	}
	return rules
}
