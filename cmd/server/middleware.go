package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Starling-Strategy/stonesoup/internal/logger"
)

// configures cross-origin access; CORS_ALLOWED_ORIGINS is a
// comma-separated list, absent means localhost development origins
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		cfg.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	} else {
		cfg.AllowOrigins = strings.Split(raw, ",")
	}

	return cors.New(cfg)
}

// per-client rate limit for the search endpoints; search fans out to
// the embedding provider, so it is the expensive surface to protect
func SearchRateLimitMiddleware() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(rateLimitFormat())
	if err != nil {
		logger.FatalErr(err, "invalid search rate limit")
	}
	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}

func rateLimitFormat() string {
	if v := os.Getenv("SEARCH_RATE_LIMIT"); v != "" {
		return v
	}
	return "60-M"
}
