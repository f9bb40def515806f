package search

import (
	"context"
	"strings"
)

// builds alternate queries for a thin result set: popular queries from
// the cauldron's log plus filter-relaxation hints; never echoes the
// query back verbatim and never exceeds the configured cap
func (e *Engine) buildSuggestions(ctx context.Context, req Request, cauldronID string, totalHits int) []string {
	seen := map[string]struct{}{strings.ToLower(strings.TrimSpace(req.Query)): {}}
	suggestions := make([]string, 0, e.opts.MaxSuggestions)

	add := func(s string) {
		if len(suggestions) >= e.opts.MaxSuggestions {
			return
		}
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, s)
	}

	if e.queryLog != nil {
		popular, err := e.queryLog.TopQueries(ctx, cauldronID, e.opts.MaxSuggestions)
		if err != nil {
			e.log.Warn("popular query lookup failed", "error", err)
		} else {
			for _, p := range popular {
				add(p.Query)
			}
		}
	}

	// relaxation hints only help when the current query found little
	if totalHits < 3 && req.Filters != nil && !req.Filters.Empty() {
		if len(req.Filters.Skills) > 1 {
			add(req.Query + " (fewer skills)")
		}
		if len(req.Filters.Locations) > 0 {
			add(req.Query + " (any location)")
		}
		if req.Filters.AvailableMembersOnly {
			add(req.Query + " (include unavailable)")
		}
	}
	if totalHits < 3 {
		tokens := tokenize(req.Query)
		if len(tokens) > 2 {
			add(strings.Join(tokens[:2], " "))
		}
	}
	return suggestions
}

// returns type-ahead completions for a query prefix, most popular first
func (e *Engine) Suggest(ctx context.Context, cauldronID, prefix string, limit int) ([]Suggestion, error) {
	if cauldronID == "" {
		return nil, &FieldError{Field: "cauldron_id", Reason: "required"}
	}
	if limit <= 0 || limit > e.opts.MaxSuggestions {
		limit = e.opts.MaxSuggestions
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || e.queryLog == nil {
		return []Suggestion{}, nil
	}

	popular, err := e.queryLog.TopQueriesMatching(ctx, cauldronID, strings.ToLower(prefix), limit)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	out := make([]Suggestion, 0, len(popular))
	var max int
	for _, p := range popular {
		if p.Count > max {
			max = p.Count
		}
	}
	for _, p := range popular {
		score := 1.0
		if max > 0 {
			score = float64(p.Count) / float64(max)
		}
		out = append(out, Suggestion{Query: p.Query, Score: score, Popular: true})
	}
	return out, nil
}
