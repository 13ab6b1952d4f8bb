package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/cancellation-policies")

	// Reading policies is open to any authenticated user; mutation is admin-only.
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)

		group.POST("", adminMiddleware, h.Create)
		group.PATCH("/:id", adminMiddleware, h.Update)
		group.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
