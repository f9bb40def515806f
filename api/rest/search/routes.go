package search

import (
	"github.com/gin-gonic/gin"

	"github.com/Starling-Strategy/stonesoup/internal/auth"
)

// RegisterRoutes mounts the search endpoints; every route requires a
// token carrying a cauldron binding
func RegisterRoutes(router *gin.RouterGroup, engine Engine, recorder Recorder) {
	group := router.Group("/search")
	group.Use(auth.AuthMiddleware())
	{
		group.POST("", SearchHandler(engine, recorder))
		group.POST("/quick", QuickSearchHandler(engine, recorder))
		group.GET("/suggestions", SuggestionsHandler(engine))
	}
}
