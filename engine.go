package filterengine

import (
	"strings"

	"github.com/trackscan/filterengine/internal/fenet"
	"github.com/trackscan/filterengine/rules"
)

// MatchResult is the outcome of classifying one request.
type MatchResult struct {
	// Rule is the text of the rule that produced the decision, empty when
	// no rule matched.
	Rule string

	// Reason identifies which check was decisive.
	Reason Reason

	// Blocked is true if the request should be aborted.
	Blocked bool
}

// Matcher classifies requests against a shared rule set.  Each matcher
// owns a URL cache, so a single matcher must not be used from several
// goroutines at once; create one matcher per worker instead.
type Matcher struct {
	ruleSet *RuleSet
	cache   *urlCache
}

// Build loads filter-list text and creates a matcher for it in one step.
func Build(text string, conf *Config) (m *Matcher) {
	return NewMatcher(LoadRuleSet(text, conf), conf)
}

// NewMatcher creates a matcher on top of rs.  Any number of matchers may
// share one rule set.
func NewMatcher(rs *RuleSet, conf *Config) (m *Matcher) {
	return &Matcher{
		ruleSet: rs,
		cache:   newURLCache(conf.cacheSize()),
	}
}

// Stats returns the rule-set counters together with this matcher's cache
// counters.
func (m *Matcher) Stats() (st EngineStats) {
	return EngineStats{
		Rules: m.ruleSet.Stats(),
		Cache: m.cache.stats(),
	}
}

// Match decides whether the request for url should be blocked.  sourceURL
// is the URL of the initiating page and resourceType the request's
// resource-type token; both may be empty when unknown.  Exception rules
// are always consulted before block rules, and block categories are
// checked in a fixed precedence order, cheapest first.
func (m *Matcher) Match(url, sourceURL, resourceType string) (res MatchResult) {
	_, lowerHost, ok := m.resolveHostname(url)
	if !ok {
		return MatchResult{Reason: ReasonError}
	}

	srcHost := ""
	if sourceURL != "" {
		_, srcHost, ok = m.resolveHostname(sourceURL)
		if !ok {
			return MatchResult{Reason: ReasonError}
		}
	}

	rs := m.ruleSet

	// Computing the third-party flag needs the base domains, so skip it
	// unless some rule actually depends on it.
	thirdParty := false
	if srcHost != "" && (len(rs.thirdParty) > 0 || len(rs.firstParty) > 0) {
		thirdParty = fenet.BaseDomain(lowerHost) != fenet.BaseDomain(srcHost)
	}

	req := rules.NewRequest(url, lowerHost, srcHost, resourceType, thirdParty)
	parents := fenet.ParentDomains(lowerHost)

	if r, matched := m.matchWhitelist(req, parents); matched {
		return MatchResult{Rule: r.Text(), Reason: ReasonWhitelisted}
	}

	return m.matchBlock(req, parents)
}

// matchWhitelist checks the exception rules: the exact-domain map for the
// hostname and its parent domains, most specific first, then the wildcard
// exception rules in insertion order.
func (m *Matcher) matchWhitelist(
	req *rules.Request,
	parents []string,
) (r rules.Rule, matched bool) {
	rs := m.ruleSet

	if wr, ok := rs.domainWhitelist[req.Hostname]; ok && wr.MatchScope(req) {
		return wr, true
	}

	for _, p := range parents {
		if wr, ok := rs.domainWhitelist[p]; ok && wr.MatchScope(req) {
			return wr, true
		}
	}

	for _, wr := range rs.whitelistWildcard {
		if wr.Match(req) {
			return wr, true
		}
	}

	return nil, false
}

// matchBlock checks the block rule buckets in their fixed precedence
// order: exact domains, wildcard domains, party rules, script rules, path
// rules, and finally the regex rules, which are the most expensive.
func (m *Matcher) matchBlock(req *rules.Request, parents []string) (res MatchResult) {
	rs := m.ruleSet

	if br, ok := rs.domainBlock[req.Hostname]; ok && br.MatchScope(req) {
		return blockedBy(br, ReasonDomainRule)
	}

	for _, p := range parents {
		if br, ok := rs.domainBlock[p]; ok && br.MatchScope(req) {
			return blockedBy(br, ReasonDomainRule)
		}
	}

	if r, ok := scanRules(rs.domainWildcard, req); ok {
		return blockedBy(r, ReasonDomainRule)
	}

	if req.ThirdParty {
		if r, ok := scanRules(rs.thirdParty, req); ok {
			return blockedBy(r, ReasonThirdPartyRule)
		}
	} else {
		if r, ok := scanRules(rs.firstParty, req); ok {
			return blockedBy(r, ReasonFirstPartyRule)
		}
	}

	if isScriptRequest(req) {
		if r, ok := scanRules(rs.script, req); ok {
			return blockedBy(r, ReasonScriptRule)
		}
	}

	if r, ok := scanRules(rs.path, req); ok {
		return blockedBy(r, ReasonPathRule)
	}

	if r, ok := scanRules(rs.regex, req); ok {
		return blockedBy(r, ReasonRegexRule)
	}

	return MatchResult{Reason: ReasonNoMatch}
}

// resolveHostname returns the hostname of url, parsing it on a cache miss.
func (m *Matcher) resolveHostname(url string) (hostname, lowerHostname string, ok bool) {
	if e, found := m.cache.get(url); found {
		return e.hostname, e.lowerHostname, true
	}

	hostname = fenet.ExtractHostname(url)
	if hostname == "" {
		return "", "", false
	}

	lowerHostname = strings.ToLower(hostname)
	m.cache.set(url, urlCacheEntry{
		hostname:      hostname,
		lowerHostname: lowerHostname,
	})

	return hostname, lowerHostname, true
}

// scanRules returns the first rule in rs matching req.
func scanRules(rs []rules.Rule, req *rules.Request) (r rules.Rule, ok bool) {
	for _, r = range rs {
		if r.Match(req) {
			return r, true
		}
	}

	return nil, false
}

// isScriptRequest reports whether the request is for a script: either by
// its resource type or by the URL path extension.
func isScriptRequest(req *rules.Request) (ok bool) {
	if req.ResourceType == "script" {
		return true
	}

	path := req.URL
	if i := strings.IndexAny(path, "?#"); i != -1 {
		path = path[:i]
	}

	return len(path) >= 3 && strings.EqualFold(path[len(path)-3:], ".js")
}

// blockedBy builds a blocking result for the given rule.
func blockedBy(r rules.Rule, reason Reason) (res MatchResult) {
	return MatchResult{
		Blocked: true,
		Rule:    r.Text(),
		Reason:  reason,
	}
}
