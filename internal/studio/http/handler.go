package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slapp/studio-booking-backend/internal/auth"
	"github.com/slapp/studio-booking-backend/internal/studio"
)

type Handler struct {
	service studio.Service
}

func NewHandler(service studio.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateStudioRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := auth.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	s, err := h.service.Create(c.Request.Context(), studio.CreateRequest{
		OwnerID:              ownerID,
		Name:                 body.Name,
		Description:          body.Description,
		Address:              body.Address,
		CancellationPolicyID: body.CancellationPolicyID,
	})
	if err != nil {
		if errors.Is(err, studio.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create studio"})
		return
	}

	c.JSON(http.StatusCreated, NewStudioResponse(s))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, studio.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get studio"})
		return
	}

	c.JSON(http.StatusOK, NewStudioResponse(s))
}

// Mine lists the studios owned by the authenticated user.
func (h *Handler) Mine(c *gin.Context) {
	ownerID := auth.GetUserID(c)

	studios, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list studios"})
		return
	}

	items := make([]StudioResponse, len(studios))
	for i, s := range studios {
		items[i] = NewStudioResponse(s)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStudioRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s, err := h.service.Update(c.Request.Context(), id, studio.UpdateRequest{
		Name:                 body.Name,
		Description:          body.Description,
		Address:              body.Address,
		Active:               body.Active,
		CancellationPolicyID: body.CancellationPolicyID,
	}, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, studio.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, studio.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, studio.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update studio"})
		}
		return
	}

	c.JSON(http.StatusOK, NewStudioResponse(s))
}

func (h *Handler) GetHours(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	hours, err := h.service.GetOperatingHours(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, studio.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get operating hours"})
		return
	}

	c.JSON(http.StatusOK, NewHoursResponse(hours))
}

func (h *Handler) SetHours(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetHoursRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	entries := make([]studio.HoursEntry, len(body.Hours))
	for i, e := range body.Hours {
		entries[i] = studio.HoursEntry{
			DayOfWeek: time.Weekday(e.DayOfWeek),
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			IsOpen:    e.IsOpen,
		}
	}

	hours, err := h.service.SetOperatingHours(c.Request.Context(), id, entries, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, studio.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, studio.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, studio.ErrInvalidClock), errors.Is(err, studio.ErrInvalidWeekday):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set operating hours"})
		}
		return
	}

	c.JSON(http.StatusOK, NewHoursResponse(hours))
}
