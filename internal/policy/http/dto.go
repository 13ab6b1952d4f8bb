package http

import (
	"time"

	"github.com/slapp/studio-booking-backend/internal/policy"
)

type PolicyResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	HoursBeforeEvent int       `json:"hours_before_event"`
	RefundPercentage int       `json:"refund_percentage"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewPolicyResponse(p *policy.CancellationPolicy) PolicyResponse {
	return PolicyResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		HoursBeforeEvent: p.HoursBeforeEvent,
		RefundPercentage: p.RefundPercentage,
		Active:           p.Active,
		CreatedAt:        p.CreatedAt,
	}
}

type CreatePolicyRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      *string `json:"description"`
	HoursBeforeEvent int     `json:"hours_before_event" binding:"min=0"`
	RefundPercentage int     `json:"refund_percentage" binding:"min=0,max=100"`
	Active           bool    `json:"active"`
}

type UpdatePolicyRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	HoursBeforeEvent *int    `json:"hours_before_event"`
	RefundPercentage *int    `json:"refund_percentage"`
	Active           *bool   `json:"active"`
}
