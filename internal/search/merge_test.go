package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

func TestMergeMembersKeepsBothSignals(t *testing.T) {
	now := time.Now()
	a := testMember("m1", "Ada", now)
	b := testMember("m2", "Grace", now)
	c := testMember("m3", "Alan", now)

	merged := mergeMembers(
		[]members.TextMatch{{Member: a, Rank: 0.8}, {Member: b, Rank: 0.4}},
		[]members.VectorMatch{{Member: a, Similarity: 0.9}, {Member: c, Similarity: 0.7}},
	)
	require.Len(t, merged, 3)

	byID := map[string]memberCandidate{}
	for _, m := range merged {
		byID[m.member.ID] = m
	}

	both := byID["m1"]
	require.NotNil(t, both.textRank)
	require.NotNil(t, both.similarity)
	assert.InDelta(t, 0.8, *both.textRank, 1e-9)
	assert.InDelta(t, 0.9, *both.similarity, 1e-9)

	textOnly := byID["m2"]
	assert.NotNil(t, textOnly.textRank)
	assert.Nil(t, textOnly.similarity)

	vectorOnly := byID["m3"]
	assert.Nil(t, vectorOnly.textRank)
	assert.NotNil(t, vectorOnly.similarity)
}

func TestMergeStoriesDeduplicates(t *testing.T) {
	now := time.Now()
	s := testStory("s1", "Scaling Postgres", now)

	merged := mergeStories(
		[]stories.TextMatch{{Story: s, Rank: 0.5}},
		[]stories.VectorMatch{{Story: s, Similarity: 0.6}},
	)
	require.Len(t, merged, 1)
	assert.NotNil(t, merged[0].textRank)
	assert.NotNil(t, merged[0].similarity)
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, mergeMembers(nil, nil))
	assert.Empty(t, mergeStories(nil, nil))
}

func TestPageMembersBounds(t *testing.T) {
	now := time.Now()
	results := []MemberResult{
		{Member: testMember("m1", "A", now)},
		{Member: testMember("m2", "B", now)},
		{Member: testMember("m3", "C", now)},
	}

	assert.Len(t, pageMembers(results, 1, 2), 2)
	assert.Len(t, pageMembers(results, 2, 2), 1)
	assert.Empty(t, pageMembers(results, 3, 2))
	assert.NotNil(t, pageMembers(results, 3, 2), "out-of-range pages return an empty slice, not nil")
}
