package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slapp/studio-booking-backend/internal/auth"
	"github.com/slapp/studio-booking-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, room.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, room.ErrInvalidStudio):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, room.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, room.ErrEmptyName), errors.Is(err, room.ErrInvalidRate), errors.Is(err, room.ErrInvalidRoomType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		StudioID:    body.StudioID,
		Name:        body.Name,
		Description: body.Description,
		HourlyRate:  body.HourlyRate,
		Capacity:    body.Capacity,
		RoomType:    body.RoomType,
	}, auth.GetUserID(c))
	if err != nil {
		writeServiceError(c, err, "failed to create room")
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to get room")
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

// ListByStudio lists the rooms belonging to a studio.
func (h *Handler) ListByStudio(c *gin.Context) {
	studioID := c.Param("id")
	if _, err := uuid.Parse(studioID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rooms, err := h.service.ListByStudio(c.Request.Context(), studioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rm, err := h.service.Update(c.Request.Context(), id, room.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		HourlyRate:  body.HourlyRate,
		Capacity:    body.Capacity,
		RoomType:    body.RoomType,
		Active:      body.Active,
	}, auth.GetUserID(c))
	if err != nil {
		writeServiceError(c, err, "failed to update room")
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		writeServiceError(c, err, "failed to delete room")
		return
	}

	c.Status(http.StatusNoContent)
}
