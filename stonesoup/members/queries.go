package members

const (
	memberColumns = `
		id::text, cauldron_id::text, email, name, username, bio, location, title, company,
		years_of_experience, hourly_rate, skills,
		is_active, is_verified, is_available, profile_completed,
		(profile_embedding IS NOT NULL) AS has_embedding,
		created_at, updated_at, last_active_at
	`

	// searchable text over a member profile, kept in sync with the
	// text-search GIN index created by the migration tool
	memberDocument = `
		to_tsvector('english',
			coalesce(name, '') || ' ' ||
			coalesce(bio, '') || ' ' ||
			coalesce(title, '') || ' ' ||
			coalesce(company, '') || ' ' ||
			array_to_string(skills, ' ')
		)
	`

	queryGet = `
		SELECT ` + memberColumns + `, 0::float8
		FROM members
		WHERE cauldron_id = $1 AND id = $2
	`

	queryList = `
		SELECT ` + memberColumns + `, 0::float8
		FROM members
		WHERE cauldron_id = $1 AND is_active = true
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	queryCountActive = `
		SELECT COUNT(*)
		FROM members
		WHERE cauldron_id = $1 AND is_active = true
	`
)
