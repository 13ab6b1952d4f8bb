package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slapp/studio-booking-backend/internal/auth"
	"github.com/slapp/studio-booking-backend/internal/interval"
	"github.com/slapp/studio-booking-backend/internal/pkg/response"
	"github.com/slapp/studio-booking-backend/internal/reservation"
	"github.com/slapp/studio-booking-backend/internal/room"
	"github.com/slapp/studio-booking-backend/internal/studio"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

// writeServiceError maps service errors to responses. A ConflictError gets a
// dedicated shape so clients can offer alternative slots; the rest carry
// their own status via apperror, with cross-module lookups mapped explicitly.
func writeServiceError(c *gin.Context, err error) {
	var conflict *reservation.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":    err.Error(),
			"conflict": SlotResponse{Start: conflict.Conflict.Start, End: conflict.Conflict.End},
		})
	case errors.Is(err, room.ErrNotFound), errors.Is(err, studio.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		response.Error(c, err)
	}
}

// Availability resolves the bookable slots of a room within a query window.
func (h *Handler) Availability(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var params AvailabilityRequest
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end must be RFC 3339 timestamps"})
		return
	}

	window, err := interval.New(params.Start, params.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slots, err := h.service.Resolve(c.Request.Context(), roomID, window)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponses(slots))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Propose(c.Request.Context(), reservation.ProposeRequest{
		RoomID:      body.RoomID,
		CustomerID:  auth.GetUserID(c),
		Start:       body.Start,
		End:         body.End,
		Notes:       body.Notes,
		ArtistName:  body.ArtistName,
		Instruments: body.Instruments,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(res))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

// List returns the calling customer's reservations, or a studio's full list
// when the caller owns the studio named by studio_id.
func (h *Handler) List(c *gin.Context) {
	var params ListReservationsRequest
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	params.Normalize()

	reservations, total, err := h.service.List(c.Request.Context(), auth.GetUserID(c), reservation.Filter{
		RoomID:   params.RoomID,
		StudioID: params.StudioID,
		Status:   reservation.Status(params.Status),
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, res := range reservations {
		items[i] = NewReservationResponse(res)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

func (h *Handler) Approve(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.Approve(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.Reject(c.Request.Context(), id, auth.GetUserID(c), optionalQuery(c, "reason"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), id, auth.GetUserID(c), optionalQuery(c, "reason"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelResponse{
		Reservation:      NewReservationResponse(result.Reservation),
		RefundPercentage: result.RefundPercentage,
	})
}

func (h *Handler) PendingByRoom(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	reservations, err := h.service.ListPendingByRoom(c.Request.Context(), roomID, auth.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, res := range reservations {
		items[i] = NewReservationResponse(res)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) PendingByStudio(c *gin.Context) {
	studioID := c.Param("id")
	if _, err := uuid.Parse(studioID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	reservations, err := h.service.ListPendingByStudio(c.Request.Context(), studioID, auth.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, res := range reservations {
		items[i] = NewReservationResponse(res)
	}
	c.JSON(http.StatusOK, items)
}

func optionalQuery(c *gin.Context, key string) *string {
	if v, ok := c.GetQuery(key); ok && v != "" {
		return &v
	}
	return nil
}
