package filterengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_domainRules(t *testing.T) {
	m := Build("||example.com^\n||ad*.example.net^\n", nil)

	testCases := []struct {
		name       string
		url        string
		wantReason Reason
		wantBlock  bool
	}{{
		name:       "exact",
		url:        "https://example.com/index.html",
		wantReason: ReasonDomainRule,
		wantBlock:  true,
	}, {
		name:       "subdomain",
		url:        "https://tracker.cdn.example.com/pixel.gif",
		wantReason: ReasonDomainRule,
		wantBlock:  true,
	}, {
		name:       "uppercase_host",
		url:        "https://EXAMPLE.COM/index.html",
		wantReason: ReasonDomainRule,
		wantBlock:  true,
	}, {
		name:       "suffix_but_not_subdomain",
		url:        "https://notexample.com/",
		wantReason: ReasonNoMatch,
		wantBlock:  false,
	}, {
		name:       "wildcard_domain",
		url:        "https://ads1.example.net/banner",
		wantReason: ReasonDomainRule,
		wantBlock:  true,
	}, {
		name:       "wildcard_domain_no_match",
		url:        "https://images.example.net/logo.png",
		wantReason: ReasonNoMatch,
		wantBlock:  false,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := m.Match(tc.url, "", "")
			assert.Equal(t, tc.wantBlock, res.Blocked)
			assert.Equal(t, tc.wantReason, res.Reason)
		})
	}
}

func TestMatcher_whitelist(t *testing.T) {
	m := Build("||example.com^\n@@||safe.example.com^\n", nil)

	res := m.Match("https://safe.example.com/app.js", "", "")
	assert.False(t, res.Blocked)
	assert.Equal(t, ReasonWhitelisted, res.Reason)
	assert.Equal(t, "@@||safe.example.com^", res.Rule)

	// A sibling subdomain is still covered by the block rule.
	res = m.Match("https://ads.example.com/app.js", "", "")
	assert.True(t, res.Blocked)
	assert.Equal(t, ReasonDomainRule, res.Reason)
}

func TestMatcher_party(t *testing.T) {
	m := Build("||tracker.io^$third-party\n||media.io^$first-party\n", nil)

	// Same registrable domain, so the third-party rule does not apply.
	res := m.Match("https://cdn.tracker.io/t.gif", "https://www.tracker.io/", "")
	assert.False(t, res.Blocked)

	res = m.Match("https://cdn.tracker.io/t.gif", "https://news.example/", "")
	assert.True(t, res.Blocked)
	assert.Equal(t, ReasonThirdPartyRule, res.Reason)

	res = m.Match("https://media.io/player.js", "https://www.media.io/", "")
	assert.True(t, res.Blocked)
	assert.Equal(t, ReasonFirstPartyRule, res.Reason)

	res = m.Match("https://media.io/player.js", "https://news.example/", "")
	assert.False(t, res.Blocked)
}

func TestMatcher_resourceTypes(t *testing.T) {
	m := Build("||cdn.io^$script\n", nil)

	res := m.Match("https://cdn.io/lib.js", "", "script")
	assert.True(t, res.Blocked)

	// The type restriction excludes other resource kinds.
	res = m.Match("https://cdn.io/logo.png", "", "image")
	assert.False(t, res.Blocked)
	assert.Equal(t, ReasonNoMatch, res.Reason)

	// Requests with an unknown type fail open into the rule.
	res = m.Match("https://cdn.io/thing", "", "")
	assert.True(t, res.Blocked)
}

func TestMatcher_scriptRules(t *testing.T) {
	m := Build("/analytics/*$script\n", nil)

	res := m.Match("https://site.example/analytics/core.js", "", "script")
	assert.True(t, res.Blocked)
	assert.Equal(t, ReasonScriptRule, res.Reason)

	// The ".js" extension marks the request as a script even without a
	// declared resource type.
	res = m.Match("https://site.example/analytics/core.js?v=2", "", "")
	assert.True(t, res.Blocked)
	assert.Equal(t, ReasonScriptRule, res.Reason)
}

func TestMatcher_pathAndRegex(t *testing.T) {
	m := Build("/ads/banner/*\n/pixel[0-9]+[.]gif/\n", nil)

	res := m.Match("https://site.example/ads/banner/top.png", "", "")
	assert.True(t, res.Blocked)
	assert.Equal(t, ReasonPathRule, res.Reason)

	res = m.Match("https://site.example/img/pixel42.gif", "", "")
	assert.True(t, res.Blocked)
	assert.Equal(t, ReasonRegexRule, res.Reason)

	res = m.Match("https://site.example/img/photo.gif", "", "")
	assert.False(t, res.Blocked)
}

func TestMatcher_domainOption(t *testing.T) {
	m := Build("/promo/*$domain=shop.example|~ads.shop.example\n", nil)

	res := m.Match("https://cdn.example/promo/1", "https://shop.example/", "")
	assert.True(t, res.Blocked)

	res = m.Match("https://cdn.example/promo/1", "https://www.shop.example/", "")
	assert.True(t, res.Blocked)

	// An excluded subdomain wins over the included parent.
	res = m.Match("https://cdn.example/promo/1", "https://ads.shop.example/", "")
	assert.False(t, res.Blocked)

	// With a non-empty include list, unrelated sources do not match.
	res = m.Match("https://cdn.example/promo/1", "https://other.example/", "")
	assert.False(t, res.Blocked)
}

func TestMatcher_precedence(t *testing.T) {
	// Both rules match the URL; the cheaper domain bucket wins.
	m := Build("/ads[0-9]*[.]example[.]org/\n||ad*.example.org^\n", nil)

	res := m.Match("https://ads1.example.org/banner", "", "")
	require.True(t, res.Blocked)
	assert.Equal(t, ReasonDomainRule, res.Reason)
	assert.Equal(t, "||ad*.example.org^", res.Rule)
}

func TestMatcher_invalidRegexDropped(t *testing.T) {
	m := Build("/[unterminated/\n", nil)

	res := m.Match("https://site.example/[unterminated/x", "", "")
	assert.False(t, res.Blocked)
	assert.Equal(t, ReasonNoMatch, res.Reason)
	assert.Equal(t, 1, m.Stats().Rules.Invalid)
}

func TestMatcher_errors(t *testing.T) {
	m := Build("||example.com^\n", nil)

	res := m.Match("not a url", "", "")
	assert.False(t, res.Blocked)
	assert.Equal(t, ReasonError, res.Reason)

	// A bad source URL also fails open.
	res = m.Match("https://example.com/", "bad source", "")
	assert.False(t, res.Blocked)
	assert.Equal(t, ReasonError, res.Reason)
}

func TestMatcher_cache(t *testing.T) {
	m := Build("||example.com^\n", &Config{CacheSize: 8})

	first := m.Match("https://example.com/a", "", "")
	for i := 0; i < 3; i++ {
		res := m.Match("https://example.com/a", "", "")
		assert.Equal(t, first, res)
	}

	st := m.Stats().Cache
	assert.Equal(t, uint64(3), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
	assert.Equal(t, 1, st.Size)
}

func TestMatcher_sharedRuleSet(t *testing.T) {
	rs := LoadRuleSet("||example.com^\n", nil)

	m1 := NewMatcher(rs, nil)
	m2 := NewMatcher(rs, nil)

	assert.True(t, m1.Match("https://example.com/", "", "").Blocked)
	assert.True(t, m2.Match("https://example.com/", "", "").Blocked)

	// Cache counters are per matcher.
	assert.Equal(t, uint64(1), m1.Stats().Cache.Misses)
	assert.Equal(t, uint64(1), m2.Stats().Cache.Misses)
}
