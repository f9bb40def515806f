package members

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Starling-Strategy/stonesoup/api/rest/pagination"
	"github.com/Starling-Strategy/stonesoup/internal/auth"
	"github.com/Starling-Strategy/stonesoup/internal/errors"
	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
)

// ListMembersHandler lists active members in the caller's cauldron
func ListMembersHandler(memberRepo *members.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cauldronID, exists := auth.GetCauldronID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		params := pagination.FromQuery(c, 20, 100)
		list, total, err := memberRepo.List(c.Request.Context(), cauldronID, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list members", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"members":    list,
			"pagination": pagination.NewMeta(params, total),
		})
	}
}

// GetMemberHandler gets a single member by ID
func GetMemberHandler(memberRepo *members.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cauldronID, exists := auth.GetCauldronID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		member, err := memberRepo.Get(c.Request.Context(), cauldronID, c.Param("id"))
		if err != nil {
			if stderrors.Is(err, members.ErrMemberNotFound) {
				errors.NotFound(c, "member")
				return
			}
			errors.InternalError(c, "failed to get member", err)
			return
		}

		c.JSON(http.StatusOK, member)
	}
}
