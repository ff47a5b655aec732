// Package filterengine decides, for every outbound request a scanner
// observes, whether an EasyList-style filter list blocks it.  A RuleSet is
// built once from filter-list text and is then read-only; every concurrent
// consumer (e.g. a crawl worker) creates its own Matcher on top of the
// shared RuleSet.
package filterengine

import (
	"log/slog"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/trackscan/filterengine/filterlist"
	"github.com/trackscan/filterengine/rules"
)

// Config configures rule-set loading and matchers.
type Config struct {
	// Logger is used for load-time diagnostics.  It is ignored unless
	// EnableLogging is true.
	Logger *slog.Logger

	// CacheSize is the capacity of each matcher's URL cache.  Zero means
	// [DefaultCacheSize].
	CacheSize int

	// EnableLogging enables debug logging of skipped and invalid rules.
	EnableLogging bool

	// CaseSensitive is accepted for compatibility with older consumers.
	// All domain and URL comparisons are case-insensitive regardless.
	CaseSensitive bool
}

// logger returns the configured logger, or a discarding one.
func (c *Config) logger() (l *slog.Logger) {
	if c != nil && c.EnableLogging && c.Logger != nil {
		return c.Logger
	}

	return slogutil.NewDiscardLogger()
}

// cacheSize returns the configured cache capacity.
func (c *Config) cacheSize() (n int) {
	if c != nil && c.CacheSize > 0 {
		return c.CacheSize
	}

	return DefaultCacheSize
}

// RuleSet holds parsed rules classified into lookup-optimized buckets.  It
// is immutable after construction and safe to share across any number of
// matchers.
type RuleSet struct {
	// domainBlock and domainWhitelist map exact lowercase domains to
	// their rules for the O(1) lookup path.
	domainBlock     map[string]*rules.DomainRule
	domainWhitelist map[string]*rules.DomainRule

	// The remaining buckets are scanned linearly in insertion order.
	domainWildcard    []rules.Rule
	thirdParty        []rules.Rule
	firstParty        []rules.Rule
	script            []rules.Rule
	path              []rules.Rule
	regex             []rules.Rule
	whitelistWildcard []rules.Rule

	stats Stats
}

// LoadRuleSet builds a rule set from a single filter-list text.  It always
// produces a usable rule set: a list where every line is invalid simply
// blocks nothing.
func LoadRuleSet(text string, conf *Config) (rs *RuleSet) {
	return LoadRuleSets([]filterlist.RuleList{&filterlist.StringRuleList{
		RulesText: text,
	}}, conf)
}

// LoadRuleSets builds one rule set from several rule lists, e.g. EasyList
// plus EasyPrivacy.  Rules keep the relative order of the lists.
func LoadRuleSets(lists []filterlist.RuleList, conf *Config) (rs *RuleSet) {
	rs = &RuleSet{
		domainBlock:     map[string]*rules.DomainRule{},
		domainWhitelist: map[string]*rules.DomainRule{},
	}

	logger := conf.logger()
	for _, l := range lists {
		s := l.NewScanner(logger)
		for s.Scan() {
			rs.add(s.Rule())
		}

		st := s.Stats()
		rs.stats.Comments += st.Comments
		rs.stats.ElementHiding += st.Cosmetic
		rs.stats.Invalid += st.Invalid
	}

	logger.Debug(
		"rule set loaded",
		"total", rs.stats.Total,
		"whitelist", rs.stats.Whitelist,
		"invalid", rs.stats.Invalid,
	)

	return rs
}

// add routes a parsed rule into its bucket.  Block rules go to the first
// bucket whose condition they satisfy, in a fixed precedence order.
func (rs *RuleSet) add(r rules.Rule) {
	rs.stats.Total++

	if r.Whitelist() {
		rs.stats.Whitelist++
		if dr, ok := r.(*rules.DomainRule); ok && !dr.Wildcard() {
			rs.domainWhitelist[dr.Domain] = dr
		} else {
			rs.whitelistWildcard = append(rs.whitelistWildcard, r)
		}

		return
	}

	switch {
	case r.ThirdPartyOnly():
		rs.stats.ThirdParty++
		rs.thirdParty = append(rs.thirdParty, r)
	case r.FirstPartyOnly():
		rs.stats.FirstParty++
		rs.firstParty = append(rs.firstParty, r)
	default:
		rs.addByKind(r)
	}
}

// addByKind routes a block rule without party flags by its kind and
// resource types.
func (rs *RuleSet) addByKind(r rules.Rule) {
	if dr, ok := r.(*rules.DomainRule); ok {
		rs.stats.Domain++
		if dr.Wildcard() {
			rs.domainWildcard = append(rs.domainWildcard, dr)
		} else {
			rs.domainBlock[dr.Domain] = dr
		}

		return
	}

	switch {
	case r.HasPermittedType("script"):
		rs.stats.Script++
		rs.script = append(rs.script, r)
	default:
		if _, ok := r.(*rules.RegexRule); ok {
			rs.stats.Regex++
			rs.regex = append(rs.regex, r)
		} else {
			rs.stats.Path++
			rs.path = append(rs.path, r)
		}
	}
}

// Stats returns the rule counters of the set.
func (rs *RuleSet) Stats() (st Stats) {
	st = rs.stats
	st.DomainMapEntries = len(rs.domainBlock)

	return st
}
