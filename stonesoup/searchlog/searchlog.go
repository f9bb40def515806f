package searchlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Record stores one executed search. Called outside the search path, so a
// failure here never affects a search response.
func (r *Repository) Record(ctx context.Context, cauldronID, query string, resultCount int) error {
	if _, err := r.db.Exec(ctx, queryRecord, cauldronID, query, resultCount); err != nil {
		return fmt.Errorf("failed to record search query: %w", err)
	}

	return nil
}

// TopQueries returns the most-searched query strings for a cauldron.
func (r *Repository) TopQueries(ctx context.Context, cauldronID string, limit int) ([]PopularQuery, error) {
	return r.top(ctx, queryTop, cauldronID, limit)
}

// TopQueriesMatching returns popular queries sharing the given prefix.
func (r *Repository) TopQueriesMatching(ctx context.Context, cauldronID, prefix string, limit int) ([]PopularQuery, error) {
	rows, err := r.db.Query(ctx, queryTopMatching, cauldronID, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("popular query lookup failed: %w", err)
	}

	defer rows.Close()

	return collect(rows)
}

func (r *Repository) top(ctx context.Context, sql, cauldronID string, limit int) ([]PopularQuery, error) {
	rows, err := r.db.Query(ctx, sql, cauldronID, limit)
	if err != nil {
		return nil, fmt.Errorf("popular query lookup failed: %w", err)
	}

	defer rows.Close()

	return collect(rows)
}
