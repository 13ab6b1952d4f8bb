package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/studios")

	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("/mine", h.Mine)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)

		group.GET("/:id/operating-hours", h.GetHours)
		group.PUT("/:id/operating-hours", h.SetHours)
	}
}
