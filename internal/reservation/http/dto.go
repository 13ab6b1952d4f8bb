package http

import (
	"time"

	"github.com/slapp/studio-booking-backend/internal/interval"
	"github.com/slapp/studio-booking-backend/internal/pkg/request"
	"github.com/slapp/studio-booking-backend/internal/reservation"
)

type ReservationResponse struct {
	ID           string     `json:"id"`
	RoomID       string     `json:"room_id"`
	CustomerID   string     `json:"customer_id"`
	Start        time.Time  `json:"start"`
	End          time.Time  `json:"end"`
	TotalPrice   float64    `json:"total_price"`
	Status       string     `json:"status"`
	Notes        *string    `json:"notes"`
	ArtistName   *string    `json:"artist_name"`
	Instruments  *string    `json:"instruments"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelReason *string    `json:"cancel_reason,omitempty"`
}

func NewReservationResponse(res *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           res.ID,
		RoomID:       res.RoomID,
		CustomerID:   res.CustomerID,
		Start:        res.Window.Start,
		End:          res.Window.End,
		TotalPrice:   res.TotalPrice,
		Status:       string(res.Status),
		Notes:        res.Notes,
		ArtistName:   res.ArtistName,
		Instruments:  res.Instruments,
		CreatedAt:    res.CreatedAt,
		UpdatedAt:    res.UpdatedAt,
		CancelledAt:  res.CancelledAt,
		CancelReason: res.CancelReason,
	}
}

type CancelResponse struct {
	Reservation      ReservationResponse `json:"reservation"`
	RefundPercentage int                 `json:"refund_percentage"`
}

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewSlotResponses(slots []interval.Interval) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{Start: s.Start, End: s.End}
	}
	return out
}

type CreateReservationRequest struct {
	RoomID      string    `json:"room_id" binding:"required,uuid"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required"`
	Notes       *string   `json:"notes"`
	ArtistName  *string   `json:"artist_name"`
	Instruments *string   `json:"instruments"`
}

// ListReservationsRequest scopes the list to the caller's own reservations,
// unless studio_id names a studio the caller owns.
type ListReservationsRequest struct {
	request.ListParams
	RoomID   string `form:"room_id" binding:"omitempty,uuid"`
	StudioID string `form:"studio_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED REJECTED CANCELLED IN_PROGRESS COMPLETED"`
}

type AvailabilityRequest struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
