package searchlog

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// records executed searches and serves popular-query lookups per cauldron
type Repository struct {
	db *pgxpool.Pool
}

// an aggregated query string with how often it was searched
type PopularQuery struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}
