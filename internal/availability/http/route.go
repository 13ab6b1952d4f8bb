package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms/:id/exceptions")

	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.ListByRoom)
		group.DELETE("/:exceptionID", h.Delete)
	}
}
