package search

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// one contributing sub-score and its configured weight
type axis struct {
	value  float64
	weight float64
}

// convex combination over the axes actually present; when an axis is
// missing its weight is redistributed proportionally across the rest
func combine(axes []axis) float64 {
	var sumVW, sumW float64
	for _, a := range axes {
		sumVW += a.value * a.weight
		sumW += a.weight
	}
	if sumW == 0 {
		return 0
	}
	return clamp01(sumVW / sumW)
}

// maps raw cosine similarity from [-1, 1] onto [0, 1]
func semanticScore(similarity float64) float64 {
	return clamp01((similarity + 1) / 2)
}

// exponential decay with the given half-life in days
func recencyScore(age time.Duration, halfLifeDays float64) float64 {
	days := age.Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Exp2(-days / halfLifeDays)
}

// scores one member candidate and reports which axes contributed
func scoreMember(c memberCandidate, tokens []string, query string, w Weights, boostRecent bool, now time.Time) (float64, *ScoreExplanation) {
	exp := &ScoreExplanation{}
	axes := make([]axis, 0, 6)
	paths := make([]string, 0, 2)

	if c.similarity != nil {
		v := semanticScore(*c.similarity)
		exp.Semantic = floatPtr(v)
		axes = append(axes, axis{v, w.Member.Semantic})
		paths = append(paths, "semantic")
	}
	if c.textRank != nil {
		paths = append(paths, "text")
	}

	if len(tokens) > 0 {
		coverage := termCoverage(tokens, c.member.Name, derefOr(c.member.Bio),
			derefOr(c.member.Title), derefOr(c.member.Company), strings.Join(c.member.Skills, " "))
		v := 0.75 * coverage
		if strings.EqualFold(strings.TrimSpace(query), c.member.Name) {
			v += 0.25
		}
		exp.Text = floatPtr(v)
		axes = append(axes, axis{v, w.Member.Text})

		overlap := termCoverage(tokens, strings.Join(c.member.Skills, " "))
		exp.SkillOverlap = floatPtr(overlap)
		axes = append(axes, axis{overlap, w.Member.SkillOverlap})
	}

	completeness := 0.5
	if c.member.ProfileCompleted {
		completeness = 0.9
	}
	if c.member.IsVerified {
		completeness = clamp01(completeness + 0.1)
	}
	exp.Completeness = floatPtr(completeness)
	axes = append(axes, axis{completeness, w.Member.Completeness})

	if boostRecent && c.member.LastActiveAt != nil {
		v := recencyScore(now.Sub(*c.member.LastActiveAt), w.MemberRecencyHalfLife)
		exp.Recency = floatPtr(v)
		axes = append(axes, axis{v, w.Member.Recency})
	}

	availability := 0.0
	if c.member.IsAvailable {
		availability = 1.0
	}
	exp.Availability = floatPtr(availability)
	axes = append(axes, axis{availability, w.Member.Availability})

	exp.FinalScore = combine(axes)
	exp.Explanation = describeMatch(paths)
	return exp.FinalScore, exp
}

// scores one story candidate and reports which axes contributed
func scoreStory(c storyCandidate, tokens []string, query string, w Weights, boostRecent, boostPopular bool, now time.Time) (float64, *ScoreExplanation) {
	exp := &ScoreExplanation{}
	axes := make([]axis, 0, 5)
	paths := make([]string, 0, 2)

	if c.similarity != nil {
		v := semanticScore(*c.similarity)
		exp.Semantic = floatPtr(v)
		axes = append(axes, axis{v, w.Story.Semantic})
		paths = append(paths, "semantic")
	}
	if c.textRank != nil {
		paths = append(paths, "text")
	}

	if len(tokens) > 0 {
		coverage := termCoverage(tokens, c.story.Title, c.story.Content, derefOr(c.story.Summary),
			strings.Join(c.story.Tags, " "), strings.Join(c.story.SkillsDemonstrated, " "))
		v := 0.75 * coverage
		if strings.EqualFold(strings.TrimSpace(query), c.story.Title) {
			v += 0.25
		}
		exp.Text = floatPtr(v)
		axes = append(axes, axis{v, w.Story.Text})
	}

	if boostRecent {
		ts := c.story.CreatedAt
		if c.story.PublishedAt != nil {
			ts = *c.story.PublishedAt
		}
		v := recencyScore(now.Sub(ts), w.StoryRecencyHalfLife)
		exp.Recency = floatPtr(v)
		axes = append(axes, axis{v, w.Story.Recency})
	}

	if boostPopular {
		raw := float64(c.story.ViewCount + 2*c.story.LikeCount)
		v := clamp01(math.Log1p(raw) / math.Log1p(1000))
		exp.Engagement = floatPtr(v)
		axes = append(axes, axis{v, w.Story.Engagement})
	}

	quality := 0.6 * clamp01(float64(len(c.story.Content))/2000)
	if c.story.Summary != nil && *c.story.Summary != "" {
		quality += 0.2
	}
	if len(c.story.Tags) > 0 {
		quality += 0.2
	}
	exp.Quality = floatPtr(quality)
	axes = append(axes, axis{quality, w.Story.Quality})

	exp.FinalScore = combine(axes)
	exp.Explanation = describeMatch(paths)
	return exp.FinalScore, exp
}

func describeMatch(paths []string) string {
	if len(paths) == 0 {
		return "matched on filters"
	}
	return fmt.Sprintf("matched via %s search", strings.Join(paths, " and "))
}
