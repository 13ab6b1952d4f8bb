package reservation

import (
	"fmt"
	"net/http"
	"time"

	"github.com/slapp/studio-booking-backend/internal/interval"
	"github.com/slapp/studio-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "reservation not found")
	ErrInvalidInterval   = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidWindow     = apperror.New(http.StatusBadRequest, "window must start in the future and span whole hours")
	ErrRoomInactive      = apperror.New(http.StatusBadRequest, "room is not accepting reservations")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "invalid reservation state transition")
	ErrForbidden         = apperror.New(http.StatusForbidden, "not allowed to act on this reservation")

	// ErrSlotConflict is the errors.Is target for ConflictError.
	ErrSlotConflict = apperror.New(http.StatusConflict, "requested window conflicts with an existing reservation or blackout")
)

// ConflictError reports a rejected proposal together with the interval it
// collided with, so callers can offer alternative slots.
type ConflictError struct {
	Conflict interval.Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSlotConflict.Error(), e.Conflict)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusRejected   Status = "REJECTED"
	StatusCancelled  Status = "CANCELLED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ActiveStatuses occupy time for conflict purposes.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// AutoConfirmAfter is how long a reservation may sit in PENDING before it is
// promoted to CONFIRMED without owner action.
const AutoConfirmAfter = 30 * time.Minute

type Reservation struct {
	ID           string // UUID
	RoomID       string
	CustomerID   string
	Window       interval.Interval
	TotalPrice   float64
	Status       Status
	Notes        *string
	ArtistName   *string
	Instruments  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CancelledAt  *time.Time
	CancelReason *string
}

// EffectiveStatus applies the time-derived transitions to the stored status:
// auto-confirm once AutoConfirmAfter has elapsed since creation, IN_PROGRESS
// once the window has started, COMPLETED once it has ended. The stored status
// is a floor; this is the truth at the given instant.
func (r *Reservation) EffectiveStatus(now time.Time) Status {
	s := r.Status
	if s == StatusPending && now.Sub(r.CreatedAt) >= AutoConfirmAfter {
		s = StatusConfirmed
	}
	if s == StatusConfirmed || s == StatusInProgress {
		switch {
		case !now.Before(r.Window.End):
			s = StatusCompleted
		case !now.Before(r.Window.Start):
			s = StatusInProgress
		}
	}
	return s
}
