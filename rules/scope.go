package rules

import (
	"strings"

	"github.com/AdguardTeam/golibs/container"
	"github.com/trackscan/filterengine/internal/fenet"
)

// ruleScope is the option-derived part of a rule: party flags, resource
// types, and $domain restrictions.
type ruleScope struct {
	permittedTypes  *container.MapSet[string]
	restrictedTypes *container.MapSet[string]

	permittedDomains  []string
	restrictedDomains []string

	thirdPartyOnly bool
	firstPartyOnly bool
}

// Cosmetic-only option keys.  A rule carrying one of these only affects
// element hiding, so it is dropped before it can reach the rule set.
var cosmeticOptions = container.NewMapSet(
	"elemhide",
	"genericblock",
	"generichide",
	"specifichide",
)

// resourceTypeAliases maps resource-type tokens to their canonical form.
// Tokens without an alias are canonical already.
var resourceTypeAliases = map[string]string{
	"css":            "stylesheet",
	"fetch":          "xhr",
	"iframe":         "subdocument",
	"xmlhttprequest": "xhr",
}

// resourceTypes is the set of canonical resource-type tokens recognized in
// rule options.
var resourceTypes = container.NewMapSet(
	"document",
	"font",
	"image",
	"media",
	"other",
	"ping",
	"script",
	"stylesheet",
	"subdocument",
	"websocket",
	"xhr",
)

// NormalizeResourceType brings a resource-type token to its canonical
// form.  Unknown tokens are returned unchanged.
func NormalizeResourceType(typ string) (norm string) {
	if alias, ok := resourceTypeAliases[typ]; ok {
		return alias
	}

	return typ
}

// parseOptions parses the comma-separated rule options string.
func parseOptions(options string) (s ruleScope, err error) {
	if options == "" {
		return s, nil
	}

	for _, opt := range strings.Split(options, ",") {
		name, value, _ := strings.Cut(opt, "=")

		switch name {
		case "third-party", "3p":
			s.thirdPartyOnly = true
		case "first-party", "1p", "~third-party":
			s.firstPartyOnly = true
		case "domain":
			s.permittedDomains, s.restrictedDomains, err = parseDomainsOption(value)
			if err != nil {
				return ruleScope{}, err
			}
		default:
			if cosmeticOptions.Has(name) {
				return ruleScope{}, ErrCosmeticRule
			}

			err = s.addTypeOption(name)
			if err != nil {
				return ruleScope{}, err
			}
		}
	}

	return s, nil
}

// addTypeOption handles a resource-type option token, with "~" marking a
// restricted type.
func (s *ruleScope) addTypeOption(name string) (err error) {
	restricted := strings.HasPrefix(name, "~")
	if restricted {
		name = name[1:]
	}

	typ := NormalizeResourceType(name)
	if !resourceTypes.Has(typ) {
		return ErrUnsupportedOption
	}

	if restricted {
		if s.restrictedTypes == nil {
			s.restrictedTypes = container.NewMapSet[string]()
		}

		s.restrictedTypes.Add(typ)
	} else {
		if s.permittedTypes == nil {
			s.permittedTypes = container.NewMapSet[string]()
		}

		s.permittedTypes.Add(typ)
	}

	return nil
}

// parseDomainsOption parses the pipe-separated $domain option value.  A
// "~" prefix marks a restricted domain.
func parseDomainsOption(value string) (permitted, restricted []string, err error) {
	if value == "" {
		return nil, nil, ErrInvalidDomains
	}

	for _, d := range strings.Split(value, "|") {
		neg := strings.HasPrefix(d, "~")
		if neg {
			d = d[1:]
		}

		d = strings.ToLower(d)
		if !fenet.IsDomainName(d) {
			return nil, nil, ErrInvalidDomains
		}

		if neg {
			restricted = append(restricted, d)
		} else {
			permitted = append(permitted, d)
		}
	}

	return permitted, restricted, nil
}

// matchSourceDomain checks the $domain restrictions against the source
// hostname.  A rule without restrictions, or a request without a known
// source, always passes.  Restricted domains win over permitted ones.
func (s *ruleScope) matchSourceDomain(srcHostname string) (ok bool) {
	if srcHostname == "" {
		return true
	}

	if len(s.permittedDomains) == 0 && len(s.restrictedDomains) == 0 {
		return true
	}

	if fenet.IsDomainOrSubdomainOfAny(srcHostname, s.restrictedDomains) {
		return false
	}

	if len(s.permittedDomains) > 0 {
		return fenet.IsDomainOrSubdomainOfAny(srcHostname, s.permittedDomains)
	}

	return true
}
