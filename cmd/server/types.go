package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Starling-Strategy/stonesoup/internal/config"
	"github.com/Starling-Strategy/stonesoup/internal/llm"
	"github.com/Starling-Strategy/stonesoup/internal/search"
	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/searchlog"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// holds all dependencies and state for the API server
type Server struct {
	db            *pgxpool.Pool
	config        *config.Config
	memberRepo    *members.Repository
	storyRepo     *stories.Repository
	searchLogRepo *searchlog.Repository
	services      *Services
	router        *gin.Engine
}

// holds all external service clients (LLM, search engine)
type Services struct {
	LLM    llm.LLM
	Engine *search.Engine
}
