package http

import (
	"time"

	"github.com/slapp/studio-booking-backend/internal/studio"
)

type StudioResponse struct {
	ID                   string    `json:"id"`
	OwnerID              string    `json:"owner_id"`
	CancellationPolicyID *string   `json:"cancellation_policy_id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description"`
	Address              *string   `json:"address"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// StudioTag is a brief representation of a studio.
type StudioTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewStudioResponse(s *studio.Studio) StudioResponse {
	return StudioResponse{
		ID:                   s.ID,
		OwnerID:              s.OwnerID,
		CancellationPolicyID: s.CancellationPolicyID,
		Name:                 s.Name,
		Description:          s.Description,
		Address:              s.Address,
		Active:               s.Active,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

type CreateStudioRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Description          *string `json:"description"`
	Address              *string `json:"address"`
	CancellationPolicyID *string `json:"cancellation_policy_id" binding:"omitempty,uuid"`
}

type UpdateStudioRequest struct {
	Name                 *string `json:"name"`
	Description          *string `json:"description"`
	Address              *string `json:"address"`
	Active               *bool   `json:"active"`
	CancellationPolicyID *string `json:"cancellation_policy_id" binding:"omitempty,uuid"`
}

// HoursEntryBody is one weekday in a schedule update. Missing weekdays are closed.
type HoursEntryBody struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

type SetHoursRequest struct {
	Hours []HoursEntryBody `json:"hours" binding:"required,dive"`
}

type HoursResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

func NewHoursResponse(hours []studio.OperatingHours) []HoursResponse {
	out := make([]HoursResponse, len(hours))
	for i, oh := range hours {
		out[i] = HoursResponse{
			DayOfWeek: int(oh.DayOfWeek),
			OpenTime:  oh.OpenTime,
			CloseTime: oh.CloseTime,
			IsOpen:    oh.IsOpen,
		}
	}
	return out
}
