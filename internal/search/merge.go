package search

import (
	"sort"

	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// a member seen by one or both retrieval paths before scoring
type memberCandidate struct {
	member     members.Member
	textRank   *float64
	similarity *float64
}

// a story seen by one or both retrieval paths before scoring
type storyCandidate struct {
	story      stories.Story
	textRank   *float64
	similarity *float64
}

// collapses the text and vector hit lists into one candidate per member id,
// keeping both signals when a member appears in both
func mergeMembers(text []members.TextMatch, vector []members.VectorMatch) []memberCandidate {
	index := make(map[string]int, len(text)+len(vector))
	merged := make([]memberCandidate, 0, len(text)+len(vector))

	for _, m := range text {
		rank := m.Rank
		index[m.ID] = len(merged)
		merged = append(merged, memberCandidate{member: m.Member, textRank: &rank})
	}
	for _, m := range vector {
		sim := m.Similarity
		if i, ok := index[m.ID]; ok {
			merged[i].similarity = &sim
			continue
		}
		index[m.ID] = len(merged)
		merged = append(merged, memberCandidate{member: m.Member, similarity: &sim})
	}
	return merged
}

func mergeStories(text []stories.TextMatch, vector []stories.VectorMatch) []storyCandidate {
	index := make(map[string]int, len(text)+len(vector))
	merged := make([]storyCandidate, 0, len(text)+len(vector))

	for _, s := range text {
		rank := s.Rank
		index[s.ID] = len(merged)
		merged = append(merged, storyCandidate{story: s.Story, textRank: &rank})
	}
	for _, s := range vector {
		sim := s.Similarity
		if i, ok := index[s.ID]; ok {
			merged[i].similarity = &sim
			continue
		}
		index[s.ID] = len(merged)
		merged = append(merged, storyCandidate{story: s.Story, similarity: &sim})
	}
	return merged
}

// orders results by score descending, breaking ties by newest creation
// time and then by id, so equal inputs always rank identically
func sortMemberResults(results []MemberResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if !results[i].Member.CreatedAt.Equal(results[j].Member.CreatedAt) {
			return results[i].Member.CreatedAt.After(results[j].Member.CreatedAt)
		}
		return results[i].Member.ID < results[j].Member.ID
	})
}

func sortStoryResults(results []StoryResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if !results[i].Story.CreatedAt.Equal(results[j].Story.CreatedAt) {
			return results[i].Story.CreatedAt.After(results[j].Story.CreatedAt)
		}
		return results[i].Story.ID < results[j].Story.ID
	})
}

// returns the slice of results for the requested page, never nil
func pageMembers(results []MemberResult, page, pageSize int) []MemberResult {
	lo := (page - 1) * pageSize
	if lo >= len(results) {
		return []MemberResult{}
	}
	hi := lo + pageSize
	if hi > len(results) {
		hi = len(results)
	}
	return results[lo:hi]
}

func pageStories(results []StoryResult, page, pageSize int) []StoryResult {
	lo := (page - 1) * pageSize
	if lo >= len(results) {
		return []StoryResult{}
	}
	hi := lo + pageSize
	if hi > len(results) {
		hi = len(results)
	}
	return results[lo:hi]
}
