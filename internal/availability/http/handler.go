package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slapp/studio-booking-backend/internal/auth"
	"github.com/slapp/studio-booking-backend/internal/availability"
	"github.com/slapp/studio-booking-backend/internal/interval"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, availability.ErrNotFound), errors.Is(err, availability.ErrInvalidRoom):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, availability.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, interval.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *Handler) Create(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreateExceptionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ex, err := h.service.Create(c.Request.Context(), availability.CreateRequest{
		RoomID:    roomID,
		Start:     body.Start,
		End:       body.End,
		Available: *body.Available,
		Reason:    body.Reason,
	}, auth.GetUserID(c))
	if err != nil {
		writeServiceError(c, err, "failed to create exception")
		return
	}

	c.JSON(http.StatusCreated, NewExceptionResponse(ex))
}

func (h *Handler) ListByRoom(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	exceptions, err := h.service.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		writeServiceError(c, err, "failed to list exceptions")
		return
	}

	items := make([]ExceptionResponse, len(exceptions))
	for i, ex := range exceptions {
		items[i] = NewExceptionResponse(ex)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("exceptionID")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		writeServiceError(c, err, "failed to delete exception")
		return
	}

	c.Status(http.StatusNoContent)
}
