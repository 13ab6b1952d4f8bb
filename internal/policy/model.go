package policy

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("cancellation policy not found")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrInvalidRefund = errors.New("refund percentage must be between 0 and 100")
	ErrInvalidHours  = errors.New("hours before event must not be negative")
)

// CancellationPolicy describes how far ahead of a reservation a customer must
// cancel to receive a refund, and how much of it. The scheduling core computes
// the percentage; executing the refund is out of scope.
type CancellationPolicy struct {
	ID               string // UUID
	Name             string
	Description      *string
	HoursBeforeEvent int
	RefundPercentage int
	Active           bool
	CreatedAt        time.Time
}

// RefundFor returns the refund percentage for a cancellation happening
// hoursUntilStart hours before the reserved window begins.
func (p *CancellationPolicy) RefundFor(hoursUntilStart float64) int {
	if hoursUntilStart >= float64(p.HoursBeforeEvent) {
		return p.RefundPercentage
	}
	return 0
}
