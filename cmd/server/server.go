package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Starling-Strategy/stonesoup/internal/config"
	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/searchlog"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small for managed postgres poolers
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgBouncer in transaction mode doesn't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	memberRepo := members.NewRepository(db)
	storyRepo := stories.NewRepository(db)
	searchLogRepo := searchlog.NewRepository(db)

	services, err := InitializeServices(memberRepo, storyRepo, searchLogRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	router := gin.Default()

	server := &Server{
		db:            db,
		config:        cfg,
		memberRepo:    memberRepo,
		storyRepo:     storyRepo,
		searchLogRepo: searchLogRepo,
		services:      services,
		router:        router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
