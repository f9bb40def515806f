package stories

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles story database operations, always scoped to one cauldron
type Repository struct {
	db *pgxpool.Pool
}

// story lifecycle states; only published stories are searchable
const (
	StatusDraft         = "draft"
	StatusPendingReview = "pending_review"
	StatusPublished     = "published"
	StatusArchived      = "archived"
	StatusRejected      = "rejected"
)

// represents a story: a piece of content demonstrating a member's work
type Story struct {
	ID                 string     `json:"id"`
	CauldronID         string     `json:"cauldron_id"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Summary            *string    `json:"summary,omitempty"`
	StoryType          string     `json:"story_type"`
	Status             string     `json:"status"`
	Tags               []string   `json:"tags"`
	SkillsDemonstrated []string   `json:"skills_demonstrated"`
	Company            *string    `json:"company,omitempty"`
	ExternalURL        *string    `json:"external_url,omitempty"`
	AIGenerated        bool       `json:"ai_generated"`
	ViewCount          int        `json:"view_count"`
	LikeCount          int        `json:"like_count"`
	HasEmbedding       bool       `json:"has_embedding"`
	MemberNames        []string   `json:"member_names"`
	OccurredAt         *time.Time `json:"occurred_at,omitempty"`
	PublishedAt        *time.Time `json:"published_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// a story matched by the full-text path, with its ts_rank
type TextMatch struct {
	Story
	Rank float64 `json:"rank"`
}

// a story matched by the vector path, with its cosine similarity
type VectorMatch struct {
	Story
	Similarity float64 `json:"similarity"`
}

// narrows story lookups; zero value matches all published stories
type Filter struct {
	Types           []string
	Tags            []string
	Skills          []string
	AIGeneratedOnly bool
	DateFrom        *time.Time
	DateTo          *time.Time
}

// reports whether the filter constrains anything
func (f Filter) Empty() bool {
	return len(f.Types) == 0 && len(f.Tags) == 0 && len(f.Skills) == 0 &&
		!f.AIGeneratedOnly && f.DateFrom == nil && f.DateTo == nil
}
