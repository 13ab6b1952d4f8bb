package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reservations")

	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/:id/approve", h.Approve)
		group.POST("/:id/reject", h.Reject)
		group.POST("/:id/cancel", h.Cancel)

		group.GET("/room/:id/pending", h.PendingByRoom)
		group.GET("/studio/:id/pending", h.PendingByStudio)
	}

	g.GET("/rooms/:id/availability", authMiddleware, h.Availability)
}
