package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/searchlog"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// which entity kinds a search covers
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeMembers Scope = "members"
	ScopeStories Scope = "stories"
)

// which retrieval paths a search uses
type Mode string

const (
	ModeText     Mode = "text"
	ModeSemantic Mode = "semantic"
	ModeHybrid   Mode = "hybrid"
)

// the store is unreachable; callers may retry
var ErrBackendUnavailable = errors.New("search backend unavailable")

// a malformed query field, rejected before any collaborator is called
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *FieldError) FieldName() string {
	return e.Field
}

// member read operations the engine depends on; implemented by members.Repository
type MemberStore interface {
	SearchText(ctx context.Context, cauldronID, query string, f members.Filter, limit int) ([]members.TextMatch, error)
	SearchVector(ctx context.Context, cauldronID string, embedding []float32, k int, threshold float64, f members.Filter) ([]members.VectorMatch, error)
	Count(ctx context.Context, cauldronID, query string, f members.Filter) (int, error)
}

// story read operations the engine depends on; implemented by stories.Repository
type StoryStore interface {
	SearchText(ctx context.Context, cauldronID, query string, f stories.Filter, limit int) ([]stories.TextMatch, error)
	SearchVector(ctx context.Context, cauldronID string, embedding []float32, k int, threshold float64, f stories.Filter) ([]stories.VectorMatch, error)
	Count(ctx context.Context, cauldronID, query string, f stories.Filter) (int, error)
}

// converts text into a fixed-dimension vector; implemented by llm.Embedder
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// produces a narrative synopsis of ranked results; implemented by llm.TextGenerator
type Summarizer interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// read access to the per-cauldron query log; implemented by searchlog.Repository
type QueryLog interface {
	TopQueries(ctx context.Context, cauldronID string, limit int) ([]searchlog.PopularQuery, error)
	TopQueriesMatching(ctx context.Context, cauldronID, prefix string, limit int) ([]searchlog.PopularQuery, error)
}

// a fully-configured search request
type Request struct {
	Query    string   `json:"query"`
	Scope    Scope    `json:"scope,omitempty"`
	Mode     Mode     `json:"search_type,omitempty"`
	Page     int      `json:"page,omitempty"`
	PageSize int      `json:"page_size,omitempty"`
	Filters  *Filters `json:"filters,omitempty"`

	SemanticThreshold *float64 `json:"semantic_threshold,omitempty"`
	BoostRecent       bool     `json:"boost_recent,omitempty"`
	BoostPopular      bool     `json:"boost_popular,omitempty"`

	GenerateSummary    bool `json:"generate_summary,omitempty"`
	IncludeSuggestions bool `json:"include_suggestions,omitempty"`
	IncludeHighlights  bool `json:"include_highlights,omitempty"`
	ExplainScores      bool `json:"explain_scores,omitempty"`
}

// optional constraints on both entity kinds
type Filters struct {
	Skills     []string `json:"skills,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	Companies  []string `json:"companies,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	StoryTypes []string `json:"story_types,omitempty"`

	AvailableMembersOnly bool `json:"available_members_only,omitempty"`
	VerifiedMembersOnly  bool `json:"verified_members_only,omitempty"`
	AIGeneratedOnly      bool `json:"ai_generated_only,omitempty"`

	MinExperience *float64 `json:"min_experience,omitempty"`
	MaxExperience *float64 `json:"max_experience,omitempty"`
	MinRate       *float64 `json:"min_rate,omitempty"`
	MaxRate       *float64 `json:"max_rate,omitempty"`

	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
}

// named sub-scores behind an overall score; axes absent from the
// candidate's evidence are nil rather than zero
type ScoreExplanation struct {
	Semantic     *float64 `json:"semantic,omitempty"`
	Text         *float64 `json:"text,omitempty"`
	SkillOverlap *float64 `json:"skill_overlap,omitempty"`
	Completeness *float64 `json:"completeness,omitempty"`
	Recency      *float64 `json:"recency,omitempty"`
	Availability *float64 `json:"availability,omitempty"`
	Engagement   *float64 `json:"engagement,omitempty"`
	Quality      *float64 `json:"quality,omitempty"`
	FinalScore   float64  `json:"final_score"`
	Explanation  string   `json:"explanation"`
}

// a ranked member hit
type MemberResult struct {
	Member     members.Member      `json:"member"`
	Score      float64             `json:"score"`
	Breakdown  *ScoreExplanation   `json:"score_explanation,omitempty"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// a ranked story hit
type StoryResult struct {
	Story      stories.Story       `json:"story"`
	Score      float64             `json:"score"`
	Breakdown  *ScoreExplanation   `json:"score_explanation,omitempty"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// execution metadata attached to every response
type Metadata struct {
	Query           string    `json:"query"`
	ExecutionTimeMS float64   `json:"execution_time_ms"`
	SearchType      Mode      `json:"search_type"`
	SemanticUsed    bool      `json:"semantic_search_used"`
	FiltersApplied  []string  `json:"filters_applied"`
	Timestamp       time.Time `json:"timestamp"`
}

// the unified search response: two independently-paginated lists
type Response struct {
	MemberResults []MemberResult `json:"member_results"`
	MemberTotal   int            `json:"member_total"`
	StoryResults  []StoryResult  `json:"story_results"`
	StoryTotal    int            `json:"story_total"`

	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`

	Metadata    Metadata `json:"search_metadata"`
	Explanation string   `json:"hybrid_explanation"`
	Suggestions []string `json:"suggestions,omitempty"`
	AISummary   *string  `json:"ai_summary,omitempty"`
}

// a popular-query suggestion served by the suggestions endpoint
type Suggestion struct {
	Query   string  `json:"query"`
	Score   float64 `json:"score"`
	Popular bool    `json:"popular"`
}
