package rules

import "regexp"

// PatternRule is a rule whose adblock wildcard pattern is compiled to a
// regular expression and matched against the whole request URL.
type PatternRule struct {
	baseRule

	pattern *regexp.Regexp
}

// type check
var _ Rule = (*PatternRule)(nil)

// newPatternRule compiles the wildcard pattern case-insensitively.
func newPatternRule(base baseRule, pattern string) (r *PatternRule, err error) {
	re, err := regexp.Compile("(?i)" + patternToRegexText(pattern))
	if err != nil {
		return nil, ErrInvalidRegex
	}

	return &PatternRule{
		baseRule: base,
		pattern:  re,
	}, nil
}

// Match implements the [Rule] interface for *PatternRule.
func (r *PatternRule) Match(req *Request) (ok bool) {
	return r.matchScope(req) && r.pattern.MatchString(req.URL)
}

// RegexRule is a rule given as a "/…/" regular expression literal, matched
// against the whole request URL.
type RegexRule struct {
	baseRule

	pattern *regexp.Regexp
}

// type check
var _ Rule = (*RegexRule)(nil)

// newRegexRule compiles the regex literal interior case-insensitively.  A
// compile failure invalidates the rule at parse time, so it can never fail
// at match time.
func newRegexRule(base baseRule, pattern string) (r *RegexRule, err error) {
	inner := pattern[len(maskRegex) : len(pattern)-len(maskRegex)]

	re, err := regexp.Compile("(?i)" + inner)
	if err != nil {
		return nil, ErrInvalidRegex
	}

	return &RegexRule{
		baseRule: base,
		pattern:  re,
	}, nil
}

// Match implements the [Rule] interface for *RegexRule.
func (r *RegexRule) Match(req *Request) (ok bool) {
	return r.matchScope(req) && r.pattern.MatchString(req.URL)
}
