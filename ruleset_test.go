package filterengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackscan/filterengine/filterlist"
)

func TestLoadRuleSet_classification(t *testing.T) {
	const text = `! EasyList fragment
||ads.example.org^
||ad*.example.net^
||cdn.io^$third-party
||media.io^$~third-party
/banner[0-9]+/
/js/tracker.js$script
/ads/*
@@||good.example.org^
@@/allowed/*
example.org##.ad
/[unterminated/
`

	rs := LoadRuleSet(text, nil)
	st := rs.Stats()

	assert.Equal(t, 9, st.Total)
	assert.Equal(t, 2, st.Domain)
	assert.Equal(t, 1, st.DomainMapEntries)
	assert.Equal(t, 1, st.ThirdParty)
	assert.Equal(t, 1, st.FirstParty)
	assert.Equal(t, 1, st.Script)
	assert.Equal(t, 1, st.Path)
	assert.Equal(t, 1, st.Regex)
	assert.Equal(t, 2, st.Whitelist)
	assert.Equal(t, 1, st.ElementHiding)
	assert.Equal(t, 1, st.Comments)
	assert.Equal(t, 1, st.Invalid)

	require.Contains(t, rs.domainBlock, "ads.example.org")
	require.Contains(t, rs.domainWhitelist, "good.example.org")
	assert.Len(t, rs.domainWildcard, 1)
	assert.Len(t, rs.whitelistWildcard, 1)
}

func TestLoadRuleSet_empty(t *testing.T) {
	rs := LoadRuleSet("", nil)
	st := rs.Stats()
	assert.Equal(t, 0, st.Total)

	m := NewMatcher(rs, nil)
	res := m.Match("https://example.org/", "", "")
	assert.False(t, res.Blocked)
	assert.Equal(t, ReasonNoMatch, res.Reason)
}

func TestLoadRuleSet_duplicateDomain(t *testing.T) {
	// The later rule for the same exact domain wins the map slot.
	rs := LoadRuleSet("||dup.io^$image\n||dup.io^$script\n", nil)

	dr := rs.domainBlock["dup.io"]
	require.NotNil(t, dr)
	assert.Equal(t, "||dup.io^$script", dr.Text())
}

func TestLoadRuleSets_multipleLists(t *testing.T) {
	lists := []filterlist.RuleList{&filterlist.StringRuleList{
		ID:        1,
		RulesText: "||ads.first.example^\n! first list\n",
	}, &filterlist.StringRuleList{
		ID:        2,
		RulesText: "||ads.second.example^\nsecond.example##.banner\n",
	}}

	rs := LoadRuleSets(lists, nil)
	st := rs.Stats()

	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Comments)
	assert.Equal(t, 1, st.ElementHiding)
	assert.Contains(t, rs.domainBlock, "ads.first.example")
	assert.Contains(t, rs.domainBlock, "ads.second.example")
}
