package stories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

var (
	ErrStoryNotFound = errors.New("story not found")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// SearchText runs a full-text lookup over published stories scoped to one
// cauldron. An empty query matches on filters alone with a zero rank.
func (r *Repository) SearchText(ctx context.Context, cauldronID, query string, f Filter, limit int) ([]TextMatch, error) {
	args := []any{cauldronID}
	conds := []string{"s.cauldron_id = $1", "s.status = 'published'"}
	rank := "0::float8 AS rank"
	order := "s.created_at DESC, s.id"

	if query != "" {
		args = append(args, query)
		qp := fmt.Sprintf("$%d", len(args))
		conds = append(conds, storyDocument+" @@ plainto_tsquery('english', "+qp+")")
		rank = "ts_rank(" + storyDocument + ", plainto_tsquery('english', " + qp + ")) AS rank"
		order = "rank DESC, s.created_at DESC, s.id"
	}

	conds = append(conds, filterConditions(f, &args)...)

	args = append(args, limit)
	sql := fmt.Sprintf(
		"SELECT %s, %s FROM stories s WHERE %s ORDER BY %s LIMIT $%d",
		storyColumns, rank, strings.Join(conds, " AND "), order, len(args),
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("story text search failed: %w", err)
	}

	defer rows.Close()

	var results []TextMatch

	for rows.Next() {
		var s TextMatch
		if err := scanStory(rows, &s.Story, &s.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}

		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating story rows: %w", err)
	}

	return results, nil
}

// SearchVector returns the k nearest published stories by cosine similarity
// against the stored content embedding, scoped to one cauldron.
func (r *Repository) SearchVector(ctx context.Context, cauldronID string, embedding []float32, k int, threshold float64, f Filter) ([]VectorMatch, error) {
	args := []any{cauldronID, pgvector.NewVector(embedding), threshold}
	conds := []string{
		"s.cauldron_id = $1",
		"s.status = 'published'",
		"s.embedding IS NOT NULL",
		"1 - (s.embedding <=> $2) >= $3",
	}

	conds = append(conds, filterConditions(f, &args)...)

	args = append(args, k)
	sql := fmt.Sprintf(
		"SELECT %s, 1 - (s.embedding <=> $2) AS similarity FROM stories s WHERE %s ORDER BY s.embedding <=> $2 LIMIT $%d",
		storyColumns, strings.Join(conds, " AND "), len(args),
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("story vector search failed: %w", err)
	}

	defer rows.Close()

	var results []VectorMatch

	for rows.Next() {
		var s VectorMatch
		if err := scanStory(rows, &s.Story, &s.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}

		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating story rows: %w", err)
	}

	return results, nil
}

// Count returns the number of stories matching the text predicate and filters.
func (r *Repository) Count(ctx context.Context, cauldronID, query string, f Filter) (int, error) {
	args := []any{cauldronID}
	conds := []string{"s.cauldron_id = $1", "s.status = 'published'"}

	if query != "" {
		args = append(args, query)
		conds = append(conds, fmt.Sprintf(storyDocument+" @@ plainto_tsquery('english', $%d)", len(args)))
	}

	conds = append(conds, filterConditions(f, &args)...)

	sql := "SELECT COUNT(*) FROM stories s WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("story count failed: %w", err)
	}

	return total, nil
}

// Get fetches one story by id within a cauldron
func (r *Repository) Get(ctx context.Context, cauldronID, id string) (*Story, error) {
	var s Story
	var rank float64

	row := r.db.QueryRow(ctx, queryGet, cauldronID, id)
	if err := scanStory(row, &s, &rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStoryNotFound
		}

		return nil, err
	}

	return &s, nil
}

// List returns a page of published stories plus the total published count
func (r *Repository) List(ctx context.Context, cauldronID string, limit, offset int) ([]Story, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountPublished, cauldronID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("story count failed: %w", err)
	}

	rows, err := r.db.Query(ctx, queryList, cauldronID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("story list failed: %w", err)
	}

	defer rows.Close()

	var result []Story

	for rows.Next() {
		var s Story
		var rank float64

		if err := scanStory(rows, &s, &rank); err != nil {
			return nil, 0, fmt.Errorf("failed to scan story row: %w", err)
		}

		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating story rows: %w", err)
	}

	return result, total, nil
}
