package http

import (
	"time"

	"github.com/slapp/studio-booking-backend/internal/room"
)

type RoomResponse struct {
	ID          string    `json:"id"`
	StudioID    string    `json:"studio_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	HourlyRate  float64   `json:"hourly_rate"`
	Capacity    *int      `json:"capacity"`
	RoomType    string    `json:"room_type"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoomTag is a brief representation of a room.
type RoomTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:          rm.ID,
		StudioID:    rm.StudioID,
		Name:        rm.Name,
		Description: rm.Description,
		HourlyRate:  rm.HourlyRate,
		Capacity:    rm.Capacity,
		RoomType:    string(rm.RoomType),
		Active:      rm.Active,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}

type CreateRoomRequest struct {
	StudioID    string  `json:"studio_id" binding:"required,uuid"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	HourlyRate  float64 `json:"hourly_rate" binding:"required,gt=0"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gt=0"`
	RoomType    string  `json:"room_type" binding:"required,oneof=RECORDING REHEARSAL LIVE MIXING MASTERING"`
}

type UpdateRoomRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	HourlyRate  *float64 `json:"hourly_rate" binding:"omitempty,gt=0"`
	Capacity    *int     `json:"capacity" binding:"omitempty,gt=0"`
	RoomType    *string  `json:"room_type" binding:"omitempty,oneof=RECORDING REHEARSAL LIVE MIXING MASTERING"`
	Active      *bool    `json:"active"`
}
