package http

import (
	"time"

	"github.com/slapp/studio-booking-backend/internal/availability"
)

type ExceptionResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    *string   `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func NewExceptionResponse(ex *availability.Exception) ExceptionResponse {
	return ExceptionResponse{
		ID:        ex.ID,
		RoomID:    ex.RoomID,
		Start:     ex.Window.Start,
		End:       ex.Window.End,
		Available: ex.Available,
		Reason:    ex.Reason,
		CreatedAt: ex.CreatedAt,
	}
}

type CreateExceptionRequest struct {
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
	Available *bool     `json:"available" binding:"required"`
	Reason    *string   `json:"reason"`
}
