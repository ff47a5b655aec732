// Package rules contains parsing and matching of single EasyList-style
// filtering rules.
package rules

import (
	"strings"

	"github.com/AdguardTeam/golibs/errors"
)

// Rule masks and delimiters.
const (
	MaskWhitelist = "@@"
	MaskDomain    = "||"

	maskRegex        = "/"
	optionsDelimiter = '$'
	escapeCharacter  = '\\'
)

// Parsing errors.
const (
	// ErrCosmeticRule is returned by ParseRule for rules that carry
	// cosmetic-only options.  Such rules never take part in network
	// blocking and are counted separately by the scanner.
	ErrCosmeticRule errors.Error = "cosmetic rules are not supported"

	// ErrEmptyPattern is returned for rules with an empty pattern part.
	ErrEmptyPattern errors.Error = "the rule pattern is empty"

	// ErrUnsupportedOption is returned for unknown rule options.
	ErrUnsupportedOption errors.Error = "unsupported rule option"

	// ErrInvalidRegex is returned when a rule regular expression does not
	// compile.
	ErrInvalidRegex errors.Error = "invalid regular expression"

	// ErrInvalidDomains is returned for malformed $domain option values.
	ErrInvalidDomains errors.Error = "invalid $domain value"
)

// Rule is a single parsed filtering rule.  A Rule is immutable once
// constructed and safe for concurrent use.
type Rule interface {
	// Text returns the original rule text.
	Text() string

	// Whitelist returns true if this is an exception rule.
	Whitelist() bool

	// ThirdPartyOnly returns true if the rule carries the $third-party
	// modifier.
	ThirdPartyOnly() bool

	// FirstPartyOnly returns true if the rule carries the $first-party or
	// $~third-party modifier.
	FirstPartyOnly() bool

	// HasPermittedType returns true if typ is among the rule's permitted
	// resource types.  typ must be in its normalized form.
	HasPermittedType(typ string) (ok bool)

	// Match checks if the rule matches the specified request.
	Match(r *Request) (ok bool)

	// MatchScope checks the rule's scope conditions ($domain
	// restrictions, party flags, and resource types) without the pattern
	// condition.  It is used for rules found via the exact-domain lookup
	// maps, where the domain condition is already satisfied by the map
	// key.
	MatchScope(r *Request) (ok bool)
}

// IsComment returns true if the line is a comment.  Lines that begin with
// a cosmetic marker are not comments.
func IsComment(line string) (ok bool) {
	if line == "" {
		return false
	}

	if line[0] == '!' {
		return true
	}

	if line[0] == '#' {
		return !strings.HasPrefix(line, "##") && !strings.HasPrefix(line, "#@#")
	}

	return false
}

// IsCosmetic returns true if the line is a cosmetic (element-hiding) rule.
// Cosmetic rules do not affect network blocking and are dropped at parse
// time.
func IsCosmetic(line string) (ok bool) {
	return strings.Contains(line, "##") || strings.Contains(line, "#@#")
}

// ParseRule parses a single non-empty, non-comment, non-cosmetic filter
// line into a Rule.  A leading "@@" marks the rule as an exception.  The
// returned rule keeps line as its original text.
func ParseRule(line string) (r Rule, err error) {
	text := line
	whitelist := strings.HasPrefix(text, MaskWhitelist)
	if whitelist {
		text = text[len(MaskWhitelist):]
	}

	if text == "" {
		return nil, ErrEmptyPattern
	}

	pattern, options := splitOptions(text)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	base := baseRule{
		text:      line,
		whitelist: whitelist,
	}
	base.scope, err = parseOptions(options)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(pattern, MaskDomain):
		return newDomainRule(base, pattern)
	case len(pattern) > 1 &&
		strings.HasPrefix(pattern, maskRegex) &&
		strings.HasSuffix(pattern, maskRegex):
		return newRegexRule(base, pattern)
	default:
		return newPatternRule(base, pattern)
	}
}

// splitOptions splits the rule text on the first unescaped options
// delimiter into the pattern and the options string.  Regex rules are
// never split, since their bodies commonly contain the delimiter.
func splitOptions(text string) (pattern, options string) {
	if len(text) > 1 &&
		strings.HasPrefix(text, maskRegex) &&
		strings.HasSuffix(text, maskRegex) {
		return text, ""
	}

	for i := 0; i < len(text); i++ {
		if text[i] == optionsDelimiter {
			if i > 0 && text[i-1] == escapeCharacter {
				continue
			}

			return text[:i], text[i+1:]
		}
	}

	return text, ""
}

// baseRule carries the parts shared by all rule kinds: the original text,
// the exception flag, and the option-derived scope.
type baseRule struct {
	text      string
	whitelist bool
	scope     ruleScope
}

// Text implements the [Rule] interface for *baseRule.
func (r *baseRule) Text() (text string) { return r.text }

// Whitelist implements the [Rule] interface for *baseRule.
func (r *baseRule) Whitelist() (ok bool) { return r.whitelist }

// ThirdPartyOnly implements the [Rule] interface for *baseRule.
func (r *baseRule) ThirdPartyOnly() (ok bool) { return r.scope.thirdPartyOnly }

// FirstPartyOnly implements the [Rule] interface for *baseRule.
func (r *baseRule) FirstPartyOnly() (ok bool) { return r.scope.firstPartyOnly }

// HasPermittedType implements the [Rule] interface for *baseRule.
func (r *baseRule) HasPermittedType(typ string) (ok bool) {
	return r.scope.permittedTypes != nil && r.scope.permittedTypes.Has(typ)
}

// MatchScope implements the [Rule] interface for *baseRule.
func (r *baseRule) MatchScope(req *Request) (ok bool) {
	return r.matchScope(req)
}

// matchScope checks the request against the scope conditions common to all
// rule kinds: $domain restrictions, party flags, and resource types.  The
// rule-kind-specific pattern check is left to the caller.
func (r *baseRule) matchScope(req *Request) (ok bool) {
	s := &r.scope

	switch {
	case
		!s.matchSourceDomain(req.SourceHostname),
		s.thirdPartyOnly && !req.ThirdParty,
		s.firstPartyOnly && req.ThirdParty:
		return false
	}

	// An empty resource type fails open and skips the permitted-type
	// check.
	if s.permittedTypes != nil && req.ResourceType != "" &&
		!s.permittedTypes.Has(req.ResourceType) {
		return false
	}

	if s.restrictedTypes != nil && s.restrictedTypes.Has(req.ResourceType) {
		return false
	}

	return true
}
