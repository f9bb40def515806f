package stories

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Starling-Strategy/stonesoup/api/rest/pagination"
	"github.com/Starling-Strategy/stonesoup/internal/auth"
	"github.com/Starling-Strategy/stonesoup/internal/errors"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// ListStoriesHandler lists published stories in the caller's cauldron
func ListStoriesHandler(storyRepo *stories.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cauldronID, exists := auth.GetCauldronID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		params := pagination.FromQuery(c, 20, 100)
		list, total, err := storyRepo.List(c.Request.Context(), cauldronID, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list stories", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"stories":    list,
			"pagination": pagination.NewMeta(params, total),
		})
	}
}

// GetStoryHandler gets a single published story by ID
func GetStoryHandler(storyRepo *stories.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cauldronID, exists := auth.GetCauldronID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		story, err := storyRepo.Get(c.Request.Context(), cauldronID, c.Param("id"))
		if err != nil {
			if stderrors.Is(err, stories.ErrStoryNotFound) {
				errors.NotFound(c, "story")
				return
			}
			errors.InternalError(c, "failed to get story", err)
			return
		}

		c.JSON(http.StatusOK, story)
	}
}
