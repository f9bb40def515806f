package members

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
	ErrMemberNotFound = errors.New("member not found")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// SearchText runs a full-text lookup over member profiles scoped to one
// cauldron. An empty query matches on filters alone with a zero rank.
func (r *Repository) SearchText(ctx context.Context, cauldronID, query string, f Filter, limit int) ([]TextMatch, error) {
	args := []any{cauldronID}
	conds := []string{"cauldron_id = $1", "is_active = true"}
	rank := "0::float8 AS rank"
	order := "created_at DESC, id"

	if query != "" {
		args = append(args, query)
		qp := fmt.Sprintf("$%d", len(args))
		conds = append(conds, memberDocument+" @@ plainto_tsquery('english', "+qp+")")
		rank = "ts_rank(" + memberDocument + ", plainto_tsquery('english', " + qp + ")) AS rank"
		order = "rank DESC, created_at DESC, id"
	}

	conds = append(conds, filterConditions(f, &args)...)

	args = append(args, limit)
	sql := fmt.Sprintf(
		"SELECT %s, %s FROM members WHERE %s ORDER BY %s LIMIT $%d",
		memberColumns, rank, strings.Join(conds, " AND "), order, len(args),
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("member text search failed: %w", err)
	}

	defer rows.Close()

	var results []TextMatch

	for rows.Next() {
		var m TextMatch
		if err := scanMember(rows, &m.Member, &m.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}

		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return results, nil
}

// SearchVector returns the k nearest member profiles by cosine similarity
// against the stored profile embedding, scoped to one cauldron.
func (r *Repository) SearchVector(ctx context.Context, cauldronID string, embedding []float32, k int, threshold float64, f Filter) ([]VectorMatch, error) {
	args := []any{cauldronID, pgvector.NewVector(embedding), threshold}
	conds := []string{
		"cauldron_id = $1",
		"is_active = true",
		"profile_embedding IS NOT NULL",
		"1 - (profile_embedding <=> $2) >= $3",
	}

	conds = append(conds, filterConditions(f, &args)...)

	args = append(args, k)
	sql := fmt.Sprintf(
		"SELECT %s, 1 - (profile_embedding <=> $2) AS similarity FROM members WHERE %s ORDER BY profile_embedding <=> $2 LIMIT $%d",
		memberColumns, strings.Join(conds, " AND "), len(args),
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("member vector search failed: %w", err)
	}

	defer rows.Close()

	var results []VectorMatch

	for rows.Next() {
		var m VectorMatch
		if err := scanMember(rows, &m.Member, &m.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}

		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return results, nil
}

// Count returns the number of members matching the text predicate and filters.
func (r *Repository) Count(ctx context.Context, cauldronID, query string, f Filter) (int, error) {
	args := []any{cauldronID}
	conds := []string{"cauldron_id = $1", "is_active = true"}

	if query != "" {
		args = append(args, query)
		conds = append(conds, fmt.Sprintf(memberDocument+" @@ plainto_tsquery('english', $%d)", len(args)))
	}

	conds = append(conds, filterConditions(f, &args)...)

	sql := "SELECT COUNT(*) FROM members WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("member count failed: %w", err)
	}

	return total, nil
}

// Get fetches one member by id within a cauldron
func (r *Repository) Get(ctx context.Context, cauldronID, id string) (*Member, error) {
	var m Member
	var rank float64 // scanMember wants a trailing metric

	row := r.db.QueryRow(ctx, queryGet, cauldronID, id)
	if err := scanMember(row, &m, &rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}

		return nil, err
	}

	return &m, nil
}

// List returns a page of active members plus the total active count
func (r *Repository) List(ctx context.Context, cauldronID string, limit, offset int) ([]Member, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountActive, cauldronID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("member count failed: %w", err)
	}

	rows, err := r.db.Query(ctx, queryList, cauldronID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("member list failed: %w", err)
	}

	defer rows.Close()

	var result []Member

	for rows.Next() {
		var m Member
		var rank float64

		if err := scanMember(rows, &m, &rank); err != nil {
			return nil, 0, fmt.Errorf("failed to scan member row: %w", err)
		}

		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating member rows: %w", err)
	}

	return result, total, nil
}
