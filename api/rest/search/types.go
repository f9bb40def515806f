package search

import (
	"context"

	"github.com/Starling-Strategy/stonesoup/internal/search"
)

// the search operations this feature exposes over HTTP
type Engine interface {
	Execute(ctx context.Context, req search.Request, cauldronID string) (*search.Response, error)
	QuickSearch(ctx context.Context, query string, scope search.Scope, limit int, cauldronID string) (*search.Response, error)
	Suggest(ctx context.Context, cauldronID, prefix string, limit int) ([]search.Suggestion, error)
}

// records executed queries for the suggestions feature
type Recorder interface {
	Record(ctx context.Context, cauldronID, query string, resultCount int) error
}

// QuickRequest is the body of POST /search/quick
type QuickRequest struct {
	Query string `json:"query" binding:"required"`
	Scope string `json:"scope"`
	Limit int    `json:"limit"`
}

// SuggestionsResponse is the body of GET /search/suggestions
type SuggestionsResponse struct {
	Query       string              `json:"query"`
	Suggestions []search.Suggestion `json:"suggestions"`
}
