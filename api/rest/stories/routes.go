package stories

import (
	"github.com/gin-gonic/gin"

	"github.com/Starling-Strategy/stonesoup/internal/auth"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// RegisterRoutes mounts the story browse endpoints
func RegisterRoutes(router *gin.RouterGroup, storyRepo *stories.Repository) {
	group := router.Group("/stories")
	group.Use(auth.AuthMiddleware())
	{
		group.GET("", ListStoriesHandler(storyRepo))
		group.GET("/:id", GetStoryHandler(storyRepo))
	}
}
