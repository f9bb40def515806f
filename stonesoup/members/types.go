package members

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles member database operations, always scoped to one cauldron
type Repository struct {
	db *pgxpool.Pool
}

// represents a member profile in the talent marketplace
type Member struct {
	ID                string     `json:"id"`
	CauldronID        string     `json:"cauldron_id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	Username          *string    `json:"username,omitempty"`
	Bio               *string    `json:"bio,omitempty"`
	Location          *string    `json:"location,omitempty"`
	Title             *string    `json:"title,omitempty"`
	Company           *string    `json:"company,omitempty"`
	YearsOfExperience *float64   `json:"years_of_experience,omitempty"`
	HourlyRate        *float64   `json:"hourly_rate,omitempty"`
	Skills            []string   `json:"skills"`
	IsActive          bool       `json:"is_active"`
	IsVerified        bool       `json:"is_verified"`
	IsAvailable       bool       `json:"is_available"`
	ProfileCompleted  bool       `json:"profile_completed"`
	HasEmbedding      bool       `json:"has_embedding"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	LastActiveAt      *time.Time `json:"last_active_at,omitempty"`
}

// a member matched by the full-text path, with its ts_rank
type TextMatch struct {
	Member
	Rank float64 `json:"rank"`
}

// a member matched by the vector path, with its cosine similarity
type VectorMatch struct {
	Member
	Similarity float64 `json:"similarity"`
}

// narrows member lookups; zero value matches all active members
type Filter struct {
	Skills        []string
	Locations     []string
	Companies     []string
	AvailableOnly bool
	VerifiedOnly  bool
	MinExperience *float64
	MaxExperience *float64
	MinRate       *float64
	MaxRate       *float64
}

// reports whether the filter constrains anything
func (f Filter) Empty() bool {
	return len(f.Skills) == 0 && len(f.Locations) == 0 && len(f.Companies) == 0 &&
		!f.AvailableOnly && !f.VerifiedOnly &&
		f.MinExperience == nil && f.MaxExperience == nil &&
		f.MinRate == nil && f.MaxRate == nil
}
