package searchlog

const (
	queryRecord = `
		INSERT INTO search_queries (cauldron_id, query, result_count)
		VALUES ($1, $2, $3)
	`

	// popularity window is 30 days; older searches stop influencing suggestions
	queryTop = `
		SELECT lower(query) AS q, COUNT(*) AS n
		FROM search_queries
		WHERE cauldron_id = $1
		  AND created_at > NOW() - INTERVAL '30 days'
		GROUP BY q
		ORDER BY n DESC, q
		LIMIT $2
	`

	queryTopMatching = `
		SELECT lower(query) AS q, COUNT(*) AS n
		FROM search_queries
		WHERE cauldron_id = $1
		  AND created_at > NOW() - INTERVAL '30 days'
		  AND lower(query) LIKE lower($2) || '%'
		GROUP BY q
		ORDER BY n DESC, q
		LIMIT $3
	`
)
