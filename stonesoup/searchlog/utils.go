package searchlog

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

func collect(rows pgx.Rows) ([]PopularQuery, error) {
	var result []PopularQuery

	for rows.Next() {
		var pq PopularQuery
		if err := rows.Scan(&pq.Query, &pq.Count); err != nil {
			return nil, fmt.Errorf("failed to scan popular query row: %w", err)
		}

		result = append(result, pq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating popular query rows: %w", err)
	}

	return result, nil
}
