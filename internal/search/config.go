package search

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// relative importance of each member scoring axis; must sum to 1
type MemberWeights struct {
	Semantic     float64
	Text         float64
	SkillOverlap float64
	Completeness float64
	Recency      float64
	Availability float64
}

// relative importance of each story scoring axis; must sum to 1
type StoryWeights struct {
	Semantic   float64
	Text       float64
	Recency    float64
	Engagement float64
	Quality    float64
}

// the versioned scoring configuration applied to every candidate
type Weights struct {
	Version int
	Member  MemberWeights
	Story   StoryWeights

	// half-lives for the exponential recency decay, in days
	MemberRecencyHalfLife float64
	StoryRecencyHalfLife  float64
}

// returns the built-in scoring configuration
func DefaultWeights() Weights {
	return Weights{
		Version: 1,
		Member: MemberWeights{
			Semantic:     0.50,
			Text:         0.20,
			SkillOverlap: 0.15,
			Completeness: 0.05,
			Recency:      0.05,
			Availability: 0.05,
		},
		Story: StoryWeights{
			Semantic:   0.45,
			Text:       0.20,
			Recency:    0.15,
			Engagement: 0.10,
			Quality:    0.10,
		},
		MemberRecencyHalfLife: 30,
		StoryRecencyHalfLife:  90,
	}
}

// returns the default weights with any SEARCH_WEIGHT_* environment
// overrides applied; an override set that no longer sums to 1 is rejected
func LoadWeights() (Weights, error) {
	w := DefaultWeights()

	overrideFloat(&w.Member.Semantic, "SEARCH_WEIGHT_MEMBER_SEMANTIC")
	overrideFloat(&w.Member.Text, "SEARCH_WEIGHT_MEMBER_TEXT")
	overrideFloat(&w.Member.SkillOverlap, "SEARCH_WEIGHT_MEMBER_SKILLS")
	overrideFloat(&w.Member.Completeness, "SEARCH_WEIGHT_MEMBER_COMPLETENESS")
	overrideFloat(&w.Member.Recency, "SEARCH_WEIGHT_MEMBER_RECENCY")
	overrideFloat(&w.Member.Availability, "SEARCH_WEIGHT_MEMBER_AVAILABILITY")

	overrideFloat(&w.Story.Semantic, "SEARCH_WEIGHT_STORY_SEMANTIC")
	overrideFloat(&w.Story.Text, "SEARCH_WEIGHT_STORY_TEXT")
	overrideFloat(&w.Story.Recency, "SEARCH_WEIGHT_STORY_RECENCY")
	overrideFloat(&w.Story.Engagement, "SEARCH_WEIGHT_STORY_ENGAGEMENT")
	overrideFloat(&w.Story.Quality, "SEARCH_WEIGHT_STORY_QUALITY")

	overrideFloat(&w.MemberRecencyHalfLife, "SEARCH_MEMBER_RECENCY_HALF_LIFE_DAYS")
	overrideFloat(&w.StoryRecencyHalfLife, "SEARCH_STORY_RECENCY_HALF_LIFE_DAYS")

	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// checks that each axis set forms a convex combination
func (w Weights) Validate() error {
	m := w.Member.Semantic + w.Member.Text + w.Member.SkillOverlap +
		w.Member.Completeness + w.Member.Recency + w.Member.Availability
	if math.Abs(m-1) > 1e-6 {
		return fmt.Errorf("member weights sum to %.4f, want 1", m)
	}
	s := w.Story.Semantic + w.Story.Text + w.Story.Recency +
		w.Story.Engagement + w.Story.Quality
	if math.Abs(s-1) > 1e-6 {
		return fmt.Errorf("story weights sum to %.4f, want 1", s)
	}
	if w.MemberRecencyHalfLife <= 0 || w.StoryRecencyHalfLife <= 0 {
		return fmt.Errorf("recency half-lives must be positive")
	}
	return nil
}

func overrideFloat(dst *float64, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*dst = v
	}
}

// operational knobs for a single search execution
type Options struct {
	// per-collaborator timeouts
	EmbedTimeout   time.Duration
	StoreTimeout   time.Duration
	SummaryTimeout time.Duration

	// candidates fetched per retrieval path before merge
	FetchLimit int

	// minimum cosine similarity for a vector hit
	DefaultThreshold float64

	MaxSuggestions int
	MaxPageSize    int
	MaxQueryLength int
}

// returns the standard execution options
func DefaultOptions() Options {
	return Options{
		EmbedTimeout:     5 * time.Second,
		StoreTimeout:     10 * time.Second,
		SummaryTimeout:   4 * time.Second,
		FetchLimit:       200,
		DefaultThreshold: 0.3,
		MaxSuggestions:   8,
		MaxPageSize:      100,
		MaxQueryLength:   500,
	}
}
