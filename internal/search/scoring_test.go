package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineRedistributesMissingWeight(t *testing.T) {
	// a single present axis carries the full weight regardless of its own
	full := combine([]axis{{value: 0.8, weight: 0.5}})
	assert.InDelta(t, 0.8, full, 1e-9)

	// two axes split proportionally
	two := combine([]axis{
		{value: 1.0, weight: 0.6},
		{value: 0.0, weight: 0.2},
	})
	assert.InDelta(t, 0.75, two, 1e-9)

	assert.Zero(t, combine(nil))
}

func TestSemanticScoreMapsCosineRange(t *testing.T) {
	assert.InDelta(t, 1.0, semanticScore(1), 1e-9)
	assert.InDelta(t, 0.5, semanticScore(0), 1e-9)
	assert.InDelta(t, 0.0, semanticScore(-1), 1e-9)
	assert.InDelta(t, 1.0, semanticScore(1.2), 1e-9, "out-of-range similarity is clamped")
}

func TestRecencyScoreDecay(t *testing.T) {
	halfLife := 90.0

	assert.InDelta(t, 1.0, recencyScore(0, halfLife), 1e-9)
	assert.InDelta(t, 0.5, recencyScore(90*24*time.Hour, halfLife), 1e-9)
	assert.InDelta(t, 0.25, recencyScore(180*24*time.Hour, halfLife), 1e-9)
	assert.InDelta(t, 1.0, recencyScore(-time.Hour, halfLife), 1e-9, "future timestamps do not boost")
}

func TestScoreMemberAxes(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	active := now.Add(-24 * time.Hour)
	sim := 0.9

	m := testMember("m1", "Ada Lovelace", now.Add(-time.Hour))
	m.Skills = []string{"Go", "Postgres"}
	m.ProfileCompleted = true
	m.IsVerified = true
	m.IsAvailable = true
	m.LastActiveAt = &active

	c := memberCandidate{member: m, similarity: &sim, textRank: floatPtr(0.7)}
	score, exp := scoreMember(c, []string{"go", "postgres"}, "go postgres", DefaultWeights(), true, now)

	require.NotNil(t, exp.Semantic)
	require.NotNil(t, exp.Text)
	require.NotNil(t, exp.SkillOverlap)
	require.NotNil(t, exp.Recency)
	assert.InDelta(t, 1.0, *exp.SkillOverlap, 1e-9)
	assert.InDelta(t, 1.0, *exp.Completeness, 1e-9)
	assert.InDelta(t, 1.0, *exp.Availability, 1e-9)
	assert.Greater(t, score, 0.8)
	assert.LessOrEqual(t, score, 1.0)
	assert.Equal(t, "matched via semantic and text search", exp.Explanation)
}

func TestScoreMemberWithoutEmbeddingRedistributes(t *testing.T) {
	now := time.Now()
	m := testMember("m1", "Ada Lovelace", now)
	m.Skills = []string{"go"}

	withSim := memberCandidate{member: m, similarity: floatPtr(0.9), textRank: floatPtr(0.5)}
	without := memberCandidate{member: m, textRank: floatPtr(0.5)}

	w := DefaultWeights()
	scoreWith, _ := scoreMember(withSim, []string{"go"}, "go", w, false, now)
	scoreWithout, expWithout := scoreMember(without, []string{"go"}, "go", w, false, now)

	assert.Nil(t, expWithout.Semantic)
	assert.Greater(t, scoreWithout, 0.0, "missing semantic evidence must not zero the score")
	assert.NotEqual(t, scoreWith, scoreWithout)
}

func TestScoreStoryBoostToggles(t *testing.T) {
	now := time.Now()
	s := testStory("s1", "Scaling Postgres", now.Add(-24*time.Hour))
	s.ViewCount = 500
	s.LikeCount = 100
	c := storyCandidate{story: s, textRank: floatPtr(0.6)}

	w := DefaultWeights()
	_, boosted := scoreStory(c, []string{"postgres"}, "postgres", w, true, true, now)
	_, flat := scoreStory(c, []string{"postgres"}, "postgres", w, false, false, now)

	require.NotNil(t, boosted.Recency)
	require.NotNil(t, boosted.Engagement)
	assert.Nil(t, flat.Recency)
	assert.Nil(t, flat.Engagement)
}

func TestScoreStoryFreshBeatsStale(t *testing.T) {
	now := time.Now()
	fresh := storyCandidate{story: testStory("s1", "Scaling Postgres", now.Add(-24*time.Hour)), textRank: floatPtr(0.6)}
	stale := storyCandidate{story: testStory("s2", "Scaling Postgres", now.Add(-2*365*24*time.Hour)), textRank: floatPtr(0.6)}

	w := DefaultWeights()
	freshScore, _ := scoreStory(fresh, []string{"postgres"}, "postgres", w, true, false, now)
	staleScore, _ := scoreStory(stale, []string{"postgres"}, "postgres", w, true, false, now)

	assert.Greater(t, freshScore, staleScore)
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	broken := DefaultWeights()
	broken.Member.Semantic = 0.9
	assert.Error(t, broken.Validate())

	noHalfLife := DefaultWeights()
	noHalfLife.StoryRecencyHalfLife = 0
	assert.Error(t, noHalfLife.Validate())
}

func TestLoadWeightsEnvOverride(t *testing.T) {
	t.Setenv("SEARCH_WEIGHT_MEMBER_SEMANTIC", "0.40")
	t.Setenv("SEARCH_WEIGHT_MEMBER_TEXT", "0.30")

	w, err := LoadWeights()
	require.NoError(t, err)
	assert.InDelta(t, 0.40, w.Member.Semantic, 1e-9)
	assert.InDelta(t, 0.30, w.Member.Text, 1e-9)
}

func TestLoadWeightsRejectsBrokenOverride(t *testing.T) {
	t.Setenv("SEARCH_WEIGHT_MEMBER_SEMANTIC", "0.90")

	_, err := LoadWeights()
	require.Error(t, err)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"drops stopwords", "the engineers who love Go", []string{"engineers", "love", "go"}},
		{"dedupes", "go go go", []string{"go"}},
		{"keeps symbols in terms", "C# and C++ developers", []string{"c#", "c++", "developers"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
