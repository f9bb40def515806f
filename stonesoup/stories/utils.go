package stories

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// appends SQL conditions for the filter, extending args with bind values
func filterConditions(f Filter, args *[]any) []string {
	var conds []string

	if len(f.Types) > 0 {
		*args = append(*args, f.Types)
		conds = append(conds, fmt.Sprintf("s.story_type = ANY($%d)", len(*args)))
	}

	if len(f.Tags) > 0 {
		*args = append(*args, f.Tags)
		conds = append(conds, fmt.Sprintf("s.tags && $%d", len(*args)))
	}

	if len(f.Skills) > 0 {
		*args = append(*args, f.Skills)
		conds = append(conds, fmt.Sprintf("s.skills_demonstrated && $%d", len(*args)))
	}

	if f.AIGeneratedOnly {
		conds = append(conds, "s.ai_generated = true")
	}

	if f.DateFrom != nil {
		*args = append(*args, *f.DateFrom)
		conds = append(conds, fmt.Sprintf("s.created_at >= $%d", len(*args)))
	}

	if f.DateTo != nil {
		*args = append(*args, *f.DateTo)
		conds = append(conds, fmt.Sprintf("s.created_at <= $%d", len(*args)))
	}

	return conds
}

// scans one story row plus a trailing metric column (rank or similarity)
func scanStory(row pgx.Row, s *Story, metric *float64) error {
	return row.Scan(
		&s.ID,
		&s.CauldronID,
		&s.Title,
		&s.Content,
		&s.Summary,
		&s.StoryType,
		&s.Status,
		&s.Tags,
		&s.SkillsDemonstrated,
		&s.Company,
		&s.ExternalURL,
		&s.AIGenerated,
		&s.ViewCount,
		&s.LikeCount,
		&s.HasEmbedding,
		&s.MemberNames,
		&s.OccurredAt,
		&s.PublishedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
		metric,
	)
}
