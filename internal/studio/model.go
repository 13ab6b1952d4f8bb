package studio

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound       = errors.New("studio not found")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNotOwner       = errors.New("only the studio owner may do this")
	ErrInvalidClock   = errors.New("clock time must be HH:MM with open before close")
	ErrInvalidWeekday = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
)

// Studio groups rooms under a single owner. Approve/reject decisions on
// reservations are authorized against OwnerID.
type Studio struct {
	ID                   string // UUID
	OwnerID              string
	CancellationPolicyID *string
	Name                 string
	Description          *string
	Address              *string
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OperatingHours is one weekday's opening window for a studio. A weekday
// without a row, or with IsOpen false, is closed. Rooms inherit their
// studio's hours.
type OperatingHours struct {
	ID        string
	StudioID  string
	DayOfWeek time.Weekday
	OpenTime  string // "HH:MM"
	CloseTime string // "HH:MM"
	IsOpen    bool
}

// Window resolves the opening window on the given calendar day, in day's
// location. ok is false when the studio is closed that weekday or the row
// carries an unparsable clock time.
func (oh OperatingHours) Window(day time.Time) (start, end time.Time, ok bool) {
	if !oh.IsOpen {
		return time.Time{}, time.Time{}, false
	}

	open, err := clockOnDay(day, oh.OpenTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	close, err := clockOnDay(day, oh.CloseTime)
	if err != nil || !open.Before(close) {
		return time.Time{}, time.Time{}, false
	}
	return open, close, true
}

// clockOnDay places an "HH:MM" wall-clock time onto the given calendar day.
func clockOnDay(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// ValidClock reports whether s is a well-formed "HH:MM" string.
func ValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
