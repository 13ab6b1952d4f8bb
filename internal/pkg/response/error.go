package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slapp/studio-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response.
// An AppError determines its own status code; anything else is treated as an
// infrastructure failure, logged, and surfaced as an opaque 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	if logger, ok := c.Get("logger"); ok {
		if zl, ok := logger.(*zap.Logger); ok {
			zl.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		}
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
