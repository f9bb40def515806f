package stories

const (
	storyColumns = `
		s.id::text, s.cauldron_id::text, s.title, s.content, s.summary,
		s.story_type, s.status, s.tags, s.skills_demonstrated,
		s.company, s.external_url, s.ai_generated,
		s.view_count, s.like_count,
		(s.embedding IS NOT NULL) AS has_embedding,
		COALESCE(
			(SELECT array_agg(m.name ORDER BY m.name)
			 FROM story_members sm
			 JOIN members m ON m.id = sm.member_id
			 WHERE sm.story_id = s.id),
			'{}'
		) AS member_names,
		s.occurred_at, s.published_at, s.created_at, s.updated_at
	`

	// searchable text over a story, kept in sync with the text-search
	// GIN index created by the migration tool
	storyDocument = `
		to_tsvector('english',
			coalesce(s.title, '') || ' ' ||
			coalesce(s.content, '') || ' ' ||
			coalesce(s.summary, '') || ' ' ||
			array_to_string(s.tags, ' ') || ' ' ||
			array_to_string(s.skills_demonstrated, ' ')
		)
	`

	queryGet = `
		SELECT ` + storyColumns + `, 0::float8
		FROM stories s
		WHERE s.cauldron_id = $1 AND s.id = $2
	`

	queryList = `
		SELECT ` + storyColumns + `, 0::float8
		FROM stories s
		WHERE s.cauldron_id = $1 AND s.status = 'published'
		ORDER BY s.created_at DESC, s.id
		LIMIT $2 OFFSET $3
	`

	queryCountPublished = `
		SELECT COUNT(*)
		FROM stories s
		WHERE s.cauldron_id = $1 AND s.status = 'published'
	`
)
