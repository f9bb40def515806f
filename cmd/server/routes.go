package main

import (
	"github.com/gin-gonic/gin"

	"github.com/Starling-Strategy/stonesoup/api/rest/health"
	"github.com/Starling-Strategy/stonesoup/api/rest/members"
	"github.com/Starling-Strategy/stonesoup/api/rest/search"
	"github.com/Starling-Strategy/stonesoup/api/rest/stories"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler(server.db))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		searchGroup := v1.Group("")
		searchGroup.Use(SearchRateLimitMiddleware())
		search.RegisterRoutes(searchGroup, server.services.Engine, server.searchLogRepo)

		members.RegisterRoutes(v1, server.memberRepo)
		stories.RegisterRoutes(v1, server.storyRepo)
	}
}
