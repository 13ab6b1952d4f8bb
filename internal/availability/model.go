package availability

import (
	"errors"
	"time"

	"github.com/slapp/studio-booking-backend/internal/interval"
)

var (
	ErrNotFound    = errors.New("availability exception not found")
	ErrInvalidRoom = errors.New("invalid room_id")
	ErrNotOwner    = errors.New("only the studio owner may do this")
)

// Exception is an explicit override of a room's regular operating hours:
// a blackout (Available false) or an extra opening (Available true).
// Exceptions are immutable; edits are delete and recreate. When exceptions
// overlap, the most recently created one wins.
type Exception struct {
	ID        string // UUID
	RoomID    string
	Window    interval.Interval
	Available bool
	Reason    *string
	CreatedAt time.Time
}
