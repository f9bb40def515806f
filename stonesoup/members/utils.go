package members

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// appends SQL conditions for the filter, extending args with bind values
func filterConditions(f Filter, args *[]any) []string {
	var conds []string

	if len(f.Skills) > 0 {
		*args = append(*args, f.Skills)
		conds = append(conds, fmt.Sprintf("skills && $%d", len(*args)))
	}

	if len(f.Locations) > 0 {
		*args = append(*args, f.Locations)
		conds = append(conds, fmt.Sprintf("location = ANY($%d)", len(*args)))
	}

	if len(f.Companies) > 0 {
		*args = append(*args, f.Companies)
		conds = append(conds, fmt.Sprintf("company = ANY($%d)", len(*args)))
	}

	if f.AvailableOnly {
		conds = append(conds, "is_available = true")
	}

	if f.VerifiedOnly {
		conds = append(conds, "is_verified = true")
	}

	if f.MinExperience != nil {
		*args = append(*args, *f.MinExperience)
		conds = append(conds, fmt.Sprintf("years_of_experience >= $%d", len(*args)))
	}

	if f.MaxExperience != nil {
		*args = append(*args, *f.MaxExperience)
		conds = append(conds, fmt.Sprintf("years_of_experience <= $%d", len(*args)))
	}

	if f.MinRate != nil {
		*args = append(*args, *f.MinRate)
		conds = append(conds, fmt.Sprintf("hourly_rate >= $%d", len(*args)))
	}

	if f.MaxRate != nil {
		*args = append(*args, *f.MaxRate)
		conds = append(conds, fmt.Sprintf("hourly_rate <= $%d", len(*args)))
	}

	return conds
}

// scans one member row plus a trailing metric column (rank or similarity)
func scanMember(row pgx.Row, m *Member, metric *float64) error {
	return row.Scan(
		&m.ID,
		&m.CauldronID,
		&m.Email,
		&m.Name,
		&m.Username,
		&m.Bio,
		&m.Location,
		&m.Title,
		&m.Company,
		&m.YearsOfExperience,
		&m.HourlyRate,
		&m.Skills,
		&m.IsActive,
		&m.IsVerified,
		&m.IsAvailable,
		&m.ProfileCompleted,
		&m.HasEmbedding,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.LastActiveAt,
		metric,
	)
}
