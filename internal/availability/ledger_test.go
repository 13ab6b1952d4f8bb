package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slapp/studio-booking-backend/internal/interval"
	"github.com/slapp/studio-booking-backend/internal/studio"
)

// monday is a fixed reference Monday, midnight UTC.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time {
	return monday.Add(time.Duration(h) * time.Hour)
}

func span(from, to int) interval.Interval {
	return interval.Interval{Start: at(from), End: at(to)}
}

func weekdayHours(days ...time.Weekday) map[time.Weekday]studio.OperatingHours {
	hours := make(map[time.Weekday]studio.OperatingHours, len(days))
	for _, d := range days {
		hours[d] = studio.OperatingHours{
			DayOfWeek: d,
			OpenTime:  "08:00",
			CloseTime: "22:00",
			IsOpen:    true,
		}
	}
	return hours
}

func exception(window interval.Interval, available bool, createdAt time.Time) *Exception {
	return &Exception{
		RoomID:    "room-1",
		Window:    window,
		Available: available,
		CreatedAt: createdAt,
	}
}

func TestIsOpenDefaultHours(t *testing.T) {
	snap := &snapshot{hours: weekdayHours(time.Monday)}

	assert.False(t, snap.isOpen(at(7)), "before opening")
	assert.True(t, snap.isOpen(at(8)), "open boundary is inclusive")
	assert.True(t, snap.isOpen(at(15)))
	assert.False(t, snap.isOpen(at(22)), "close boundary is exclusive")
	assert.False(t, snap.isOpen(monday.AddDate(0, 0, 1).Add(12*time.Hour)), "Tuesday has no hours")
}

func TestIsOpenBlackoutOverridesHours(t *testing.T) {
	snap := &snapshot{
		hours:      weekdayHours(time.Monday),
		exceptions: []*Exception{exception(span(14, 16), false, at(0))},
	}

	assert.True(t, snap.isOpen(at(13)))
	assert.False(t, snap.isOpen(at(14)))
	assert.False(t, snap.isOpen(at(15)))
	assert.True(t, snap.isOpen(at(16)), "blackout end is exclusive")
}

func TestIsOpenExtraOpeningOnClosedDay(t *testing.T) {
	sunday := monday.AddDate(0, 0, -1)
	snap := &snapshot{
		hours: weekdayHours(time.Monday),
		exceptions: []*Exception{
			exception(interval.MustNew(sunday.Add(10*time.Hour), sunday.Add(14*time.Hour)), true, at(0)),
		},
	}

	assert.True(t, snap.isOpen(sunday.Add(11*time.Hour)))
	assert.False(t, snap.isOpen(sunday.Add(15*time.Hour)))
}

func TestIsOpenNewestExceptionWins(t *testing.T) {
	// A blackout followed by a newer extra-opening over the same span:
	// exceptions are applied in created_at order, so the opening wins.
	snap := &snapshot{
		hours: weekdayHours(time.Monday),
		exceptions: []*Exception{
			exception(span(14, 16), false, at(0)),
			exception(span(14, 16), true, at(1)),
		},
	}

	assert.True(t, snap.isOpen(at(15)))
}

func TestOpenWithinBlackoutSplitsDay(t *testing.T) {
	snap := &snapshot{
		hours:      weekdayHours(time.Monday),
		exceptions: []*Exception{exception(span(14, 16), false, at(0))},
	}

	got := openWithin(snap, span(8, 22))
	require.Len(t, got, 2)
	assert.Equal(t, span(8, 14), got[0])
	assert.Equal(t, span(16, 22), got[1])
}

func TestOpenWithinClampsToQueryWindow(t *testing.T) {
	snap := &snapshot{hours: weekdayHours(time.Monday)}

	got := openWithin(snap, span(6, 12))
	require.Len(t, got, 1)
	assert.Equal(t, span(8, 12), got[0])
}

func TestOpenWithinClosedDayIsEmpty(t *testing.T) {
	snap := &snapshot{hours: weekdayHours(time.Tuesday)}

	assert.Empty(t, openWithin(snap, span(8, 22)))
}

func TestOpenWithinMergesAdjacentSegments(t *testing.T) {
	// An extra-opening flush against closing time extends the day instead
	// of producing two touching intervals.
	snap := &snapshot{
		hours:      weekdayHours(time.Monday),
		exceptions: []*Exception{exception(span(22, 23), true, at(0))},
	}

	got := openWithin(snap, span(8, 24))
	require.Len(t, got, 1)
	assert.Equal(t, span(8, 23), got[0])
}

func TestOpenWithinSpansMultipleDays(t *testing.T) {
	snap := &snapshot{hours: weekdayHours(time.Monday, time.Tuesday)}

	got := openWithin(snap, interval.MustNew(at(8), monday.AddDate(0, 0, 1).Add(22*time.Hour)))
	require.Len(t, got, 2)
	assert.Equal(t, span(8, 22), got[0])
	assert.Equal(t, interval.MustNew(monday.AddDate(0, 0, 1).Add(8*time.Hour), monday.AddDate(0, 0, 1).Add(22*time.Hour)), got[1])
}
