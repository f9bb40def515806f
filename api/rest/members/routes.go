package members

import (
	"github.com/gin-gonic/gin"

	"github.com/Starling-Strategy/stonesoup/internal/auth"
	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
)

// RegisterRoutes mounts the member browse endpoints
func RegisterRoutes(router *gin.RouterGroup, memberRepo *members.Repository) {
	group := router.Group("/members")
	group.Use(auth.AuthMiddleware())
	{
		group.GET("", ListMembersHandler(memberRepo))
		group.GET("/:id", GetMemberHandler(memberRepo))
	}
}
