package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slapp/studio-booking-backend/internal/policy"
)

type Handler struct {
	service policy.Service
}

func NewHandler(service policy.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreatePolicyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), policy.CreateRequest{
		Name:             body.Name,
		Description:      body.Description,
		HoursBeforeEvent: body.HoursBeforeEvent,
		RefundPercentage: body.RefundPercentage,
		Active:           body.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrEmptyName), errors.Is(err, policy.ErrInvalidRefund), errors.Is(err, policy.ErrInvalidHours):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create cancellation policy"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewPolicyResponse(p))
}

func (h *Handler) List(c *gin.Context) {
	policies, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cancellation policies"})
		return
	}

	items := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		items[i] = NewPolicyResponse(p)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, policy.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cancellation policy"})
		return
	}

	c.JSON(http.StatusOK, NewPolicyResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePolicyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, policy.UpdateRequest{
		Name:             body.Name,
		Description:      body.Description,
		HoursBeforeEvent: body.HoursBeforeEvent,
		RefundPercentage: body.RefundPercentage,
		Active:           body.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, policy.ErrEmptyName), errors.Is(err, policy.ErrInvalidRefund), errors.Is(err, policy.ErrInvalidHours):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cancellation policy"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPolicyResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, policy.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cancellation policy"})
		return
	}

	c.Status(http.StatusNoContent)
}
