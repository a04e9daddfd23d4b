package structure

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/keyword"
)

func kws(texts ...string) []keyword.Keyword {
	out := make([]keyword.Keyword, len(texts))
	for i, t := range texts {
		out[i] = keyword.Keyword{
			ID:        fmt.Sprintf("kw-%04d", i+1),
			Text:      t,
			MatchType: keyword.DetectMatchType(t),
			Intent:    keyword.ClassifyIntent(keyword.StripDecoration(t), ""),
		}
	}
	return out
}

func numbered(n int, format string) []keyword.Keyword {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf(format, i+1)
	}
	return kws(texts...)
}

func groupTexts(g campaign.AdGroup) []string {
	return keyword.Texts(g.Keywords)
}

func TestAssign_SKAG(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	input := numbered(25, "service %d")

	groups := a.Assign(input, "skag")
	require.Len(t, groups, 20)
	for i, g := range groups {
		require.Len(t, g.Keywords, 1)
		assert.Equal(t, input[i].ID, g.Keywords[0].ID)
		assert.Equal(t, fmt.Sprintf("service %d", i+1), g.Name)
		assert.Equal(t, fmt.Sprintf("ag-%03d", i+1), g.ID)
	}

	aliased := a.Assign(input, "single-keyword-per-group")
	assert.Len(t, aliased, 20)
}

func TestAssign_SKAGNameTruncated(t *testing.T) {
	a := NewAssigner(Config{NameLimit: 10})
	groups := a.Assign(kws("emergency plumber near me"), SKAG)
	require.Len(t, groups, 1)
	assert.Equal(t, "emergency", groups[0].Name)
}

func TestAssign_STAG(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	groups := a.Assign(kws("plumber near me", "plumber cost", "electrician near me"), STAG)

	require.Len(t, groups, 2)
	assert.Equal(t, "plumber", groups[0].Name)
	assert.Equal(t, []string{"plumber near me", "plumber cost"}, groupTexts(groups[0]))
	assert.Equal(t, "electrician", groups[1].Name)
	assert.Equal(t, []string{"electrician near me"}, groupTexts(groups[1]))
}

func TestAssign_STAGCapsAndDuplicateBase(t *testing.T) {
	a := NewAssigner(DefaultConfig())

	groups := a.Assign(numbered(12, "word%d plumber"), STAG)
	assert.Len(t, groups, DefaultThemeGroupCap)

	groups = a.Assign(numbered(25, "plumber option %d"), STAG)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Keywords, DefaultThemeKeywordCap)

	groups = a.Assign(kws("plumber near me", `"plumber near me"`, "Plumber near me", "[plumber near me]", "plumber cost"), STAG)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"plumber near me", `"plumber near me"`, "[plumber near me]", "plumber cost"}, groupTexts(groups[0]))
}

func expanded(bases ...string) []keyword.Keyword {
	return keyword.ExpandMatchTypes(kws(bases...), nil, nil)
}

func byMatchType(groups []campaign.AdGroup) map[keyword.MatchType]int {
	counts := make(map[keyword.MatchType]int)
	for _, g := range groups {
		for _, k := range g.Keywords {
			counts[k.MatchType]++
		}
	}
	return counts
}

func assertUniqueNames(t *testing.T, groups []campaign.AdGroup) {
	t.Helper()
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		key := strings.ToLower(g.Name)
		assert.False(t, seen[key], "duplicate ad group name %q", g.Name)
		seen[key] = true
	}
}

func TestAssign_KeepsEveryMatchType(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	input := expanded("plumber near me", "plumber cost", "emergency plumber", "drain cleaning",
		"drain repair", "water heater repair", "plumber", "toilet repair")
	require.Len(t, input, 24)

	for _, id := range []string{SKAG, STAG, Hybrid, NGram, Intent, Geo, Funnel, LongTail, FallbackStrategy.ID} {
		groups := a.Assign(input, id)
		assert.Equal(t, map[keyword.MatchType]int{keyword.Broad: 8, keyword.Phrase: 8, keyword.Exact: 8}, byMatchType(groups), id)
		assertUniqueNames(t, groups)
	}
}

func TestAssign_SKAGCountsBaseKeywords(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	groups := a.Assign(keyword.ExpandMatchTypes(numbered(25, "service %d"), nil, nil), SKAG)

	require.Len(t, groups, DefaultSKAGCap)
	for i, g := range groups {
		assert.Equal(t, fmt.Sprintf("service %d", i+1), g.Name)
		require.Len(t, g.Keywords, 3)
		assert.Equal(t, []string{
			fmt.Sprintf("service %d", i+1),
			fmt.Sprintf(`"service %d"`, i+1),
			fmt.Sprintf("[service %d]", i+1),
		}, groupTexts(g))
	}
}

func TestAssign_STAGCapsCountBaseKeywords(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	groups := a.Assign(keyword.ExpandMatchTypes(numbered(25, "plumber option %d"), nil, nil), STAG)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Keywords, DefaultThemeKeywordCap*3)
}

func TestAssign_HybridNamesStayUnique(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	groups := a.Assign(expanded("plumber", "plumber cost", "plumber near me"), Hybrid)

	require.Len(t, groups, 2)
	assert.Equal(t, "plumber", groups[0].Name)
	assert.Equal(t, []string{"plumber", `"plumber"`, "[plumber]"}, groupTexts(groups[0]))
	assert.Equal(t, "plumber 2", groups[1].Name)
	assert.Len(t, groups[1].Keywords, 6)
}

func TestAssign_DuplicateNamesWithinLimit(t *testing.T) {
	a := NewAssigner(Config{NameLimit: 10})
	groups := a.Assign(kws("emergency plumber", "emergency drains", "emergency heating"), SKAG)

	require.Len(t, groups, 3)
	assert.Equal(t, "emergency", groups[0].Name)
	assert.Equal(t, "emergenc 2", groups[1].Name)
	assert.Equal(t, "emergenc 3", groups[2].Name)
	assertUniqueNames(t, groups)
}

func TestAssign_DefaultSlicer(t *testing.T) {
	a := NewAssigner(DefaultConfig())

	groups := a.Assign(numbered(20, "service %d"), "no-such-structure")
	require.Len(t, groups, 7)
	total := 0
	for i, g := range groups {
		assert.Equal(t, fmt.Sprintf("Ad Group %d", i+1), g.Name)
		assert.LessOrEqual(t, len(g.Keywords), 3)
		total += len(g.Keywords)
	}
	assert.Equal(t, 20, total)
	assert.Equal(t, "service 1", groups[0].Keywords[0].Text)
	assert.Equal(t, "service 20", groups[6].Keywords[1].Text)

	assert.Len(t, a.Assign(numbered(64, "service %d"), BrandSplit), 8)
	assert.Len(t, a.Assign(numbered(3, "service %d"), MLCluster), 3)
}

func TestAssign_EmptyInput(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	for _, s := range Strategies {
		groups := a.Assign(nil, s.ID)
		assert.NotNil(t, groups)
		assert.Empty(t, groups, s.ID)
	}
}

func TestAssign_Variations(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	input := kws("plumber near me", "[plumber near me]", "best plumber", "how to unclog a drain", `"call plumber"`)

	groups := a.Assign(input, Intent)
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	assert.Equal(t, []string{"Local Intent", "Commercial Intent", "Informational Intent", "Transactional Intent"}, names)

	groups = a.Assign(input, MatchType)
	require.Len(t, groups, 3)
	assert.Equal(t, "Broad Match", groups[0].Name)
	assert.Equal(t, "Exact Match", groups[1].Name)
	assert.Equal(t, "Phrase Match", groups[2].Name)

	groups = a.Assign(input, AlphaBeta)
	require.Len(t, groups, 2)
	assert.Equal(t, "Alpha", groups[0].Name)
	assert.Equal(t, []string{"[plumber near me]"}, groupTexts(groups[0]))
	assert.Equal(t, "Beta", groups[1].Name)
	require.Len(t, groups[1].NegativeKeywords, 1)
	assert.Equal(t, keyword.NegativeExact, groups[1].NegativeKeywords[0].MatchType)

	groups = a.Assign(input, Geo)
	require.Len(t, groups, 2)
	assert.Equal(t, "Local", groups[0].Name)
	assert.Len(t, groups[0].Keywords, 2)

	groups = a.Assign(input, Funnel)
	require.Len(t, groups, 3)
	assert.Equal(t, "Consideration", groups[0].Name)
	assert.Equal(t, "Awareness", groups[1].Name)
	assert.Equal(t, "Conversion", groups[2].Name)

	groups = a.Assign(input, LongTail)
	require.Len(t, groups, 2)
	assert.Equal(t, "Head Terms", groups[0].Name)
	assert.Equal(t, []string{"how to unclog a drain"}, groupTexts(groups[1]))

	groups = a.Assign(input, NGram)
	assert.Equal(t, "plumber near", groups[0].Name)
}

func TestAssign_Hybrid(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	groups := a.Assign(kws("plumber near me", "plumber cost", "electrician near me"), Hybrid)

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"plumber near me"}, groupTexts(groups[0]))
	assert.Equal(t, "plumber", groups[1].Name)
	assert.Equal(t, []string{"plumber cost"}, groupTexts(groups[1]))
	assert.Equal(t, "electrician", groups[2].Name)
}

func TestAssign_DoesNotModifyInput(t *testing.T) {
	a := NewAssigner(DefaultConfig())
	input := numbered(10, "service %d")
	before := append([]keyword.Keyword(nil), input...)
	a.Assign(input, Hybrid)
	a.Assign(input, "default")
	assert.Equal(t, before, input)
}

func TestRank_TieBreak(t *testing.T) {
	r := NewRanker([]Strategy{{ID: "first"}, {ID: "second"}}, nil, Deltas{}, Deltas{})
	ranked := r.Rank("anything", "")

	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, 1.5, ranked[0].Score)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, 1.0, ranked[1].Score)
	assert.Contains(t, ranked[0].Reasons, "tie-break +0.5")
}

func TestRank_DefaultCatalog(t *testing.T) {
	ranked := Rank("unknown vertical", "")
	require.Len(t, ranked, len(Strategies))
	assert.Equal(t, STAG, ranked[0].ID)
	assert.Equal(t, 2.5, ranked[0].Score)
	assert.Equal(t, Hybrid, ranked[1].ID)
	assert.Equal(t, 2.0, ranked[1].Score)

	ranked = Rank("Plumbing", "phone")
	assert.Equal(t, Geo, ranked[0].ID)
	assert.Equal(t, 6.0, ranked[0].Score)
	assert.Equal(t, SKAG, ranked[1].ID)
	assert.Equal(t, []string{"vertical home_services +3", "intent call +2"}, ranked[0].Reasons)

	ranked = Rank("hotel", "buy")
	assert.Equal(t, Funnel, ranked[0].ID)
	assert.Equal(t, 6.0, ranked[0].Score)
}

func TestRank_StableForEqualScores(t *testing.T) {
	ranked := Rank("travel", "")
	// everything below the boosted strategies keeps catalog order
	var tail []string
	for _, r := range ranked {
		if r.Score == baseScore {
			tail = append(tail, r.ID)
		}
	}
	assert.Equal(t, []string{SKAG, STAG, AlphaBeta, MatchType, BrandSplit, Competitor, NGram, LongTail, Hybrid, MLCluster}, tail)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("Single Theme")
	require.True(t, ok)
	assert.Equal(t, STAG, id)

	_, ok = ParseID("bogus")
	assert.False(t, ok)

	s, ok := Lookup("ML-Cluster")
	require.True(t, ok)
	assert.Equal(t, "ML-Assisted Clusters", s.Name)
}
