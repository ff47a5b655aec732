package rules

import (
	"regexp"
	"strings"
)

// DomainRule is a "||host^"-anchored rule matching a hostname and all of
// its subdomains.
type DomainRule struct {
	baseRule

	// pattern is only set for wildcard domains; it is matched against the
	// request hostname instead of the suffix test.
	pattern *regexp.Regexp

	// Domain is the lowercase rule domain.
	Domain string
}

// type check
var _ Rule = (*DomainRule)(nil)

// newDomainRule parses the "||…" pattern of a domain rule.  The pattern is
// cut at the first '^', a trailing '*' is dropped, and the rest is stored
// lowercase.  A remaining inner '*' turns the rule into a wildcard domain
// rule backed by a hostname regex.
func newDomainRule(base baseRule, pattern string) (r *DomainRule, err error) {
	d := pattern[len(MaskDomain):]
	if i := strings.IndexByte(d, '^'); i != -1 {
		d = d[:i]
	}

	d = strings.TrimSuffix(d, "*")
	d = strings.ToLower(d)
	if d == "" {
		return nil, ErrEmptyPattern
	}

	r = &DomainRule{
		baseRule: base,
		Domain:   d,
	}

	if strings.ContainsRune(d, '*') {
		r.pattern, err = regexp.Compile("(?i)" + patternToRegexText(d))
		if err != nil {
			return nil, ErrInvalidRegex
		}
	}

	return r, nil
}

// Wildcard returns true if the rule domain contains a wildcard.  Wildcard
// domain rules cannot be looked up exactly and are scanned linearly.
func (r *DomainRule) Wildcard() (ok bool) { return r.pattern != nil }

// Match implements the [Rule] interface for *DomainRule.
func (r *DomainRule) Match(req *Request) (ok bool) {
	if !r.matchScope(req) {
		return false
	}

	if r.pattern != nil {
		return r.pattern.MatchString(req.Hostname)
	}

	return req.Hostname == r.Domain ||
		strings.HasSuffix(req.Hostname, "."+r.Domain)
}
