package availability

import (
	"context"
	"sort"
	"time"

	"github.com/slapp/studio-booking-backend/internal/interval"
	"github.com/slapp/studio-booking-backend/internal/room"
	"github.com/slapp/studio-booking-backend/internal/studio"
)

// Ledger answers openness questions for a room by layering availability
// exceptions on top of the studio's weekly operating hours. Operating hours
// are evaluated in UTC.
type Ledger interface {
	IsOpenAt(ctx context.Context, roomID string, at time.Time) (bool, error)
	// OpenIntervalsWithin decomposes the query window into the maximal
	// sub-intervals during which the room is open. The result is ordered
	// and disjoint.
	OpenIntervalsWithin(ctx context.Context, roomID string, window interval.Interval) ([]interval.Interval, error)
}

type ledger struct {
	repo    Repository
	rooms   room.Service
	studios studio.Service
}

func NewLedger(repo Repository, rooms room.Service, studios studio.Service) Ledger {
	return &ledger{
		repo:    repo,
		rooms:   rooms,
		studios: studios,
	}
}

// snapshot holds everything needed to evaluate openness inside one query
// window without further I/O.
type snapshot struct {
	hours      map[time.Weekday]studio.OperatingHours
	exceptions []*Exception // ascending created_at
}

func (l *ledger) load(ctx context.Context, roomID string, window interval.Interval) (*snapshot, error) {
	rm, err := l.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	hours, err := l.studios.GetOperatingHours(ctx, rm.StudioID)
	if err != nil {
		return nil, err
	}
	byDay := make(map[time.Weekday]studio.OperatingHours, len(hours))
	for _, oh := range hours {
		byDay[oh.DayOfWeek] = oh
	}

	exceptions, err := l.repo.ListOverlapping(ctx, roomID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	return &snapshot{hours: byDay, exceptions: exceptions}, nil
}

// isOpen resolves openness at a single instant: the weekday's operating
// hours give the default, then every exception containing the instant
// overrides it in created_at order, so the newest one wins.
func (s *snapshot) isOpen(at time.Time) bool {
	utc := at.UTC()

	open := false
	if oh, ok := s.hours[utc.Weekday()]; ok {
		if start, end, ok := oh.Window(utc); ok {
			open = !utc.Before(start) && utc.Before(end)
		}
	}

	for _, ex := range s.exceptions {
		if ex.Window.Contains(at) {
			open = ex.Available
		}
	}
	return open
}

func (l *ledger) IsOpenAt(ctx context.Context, roomID string, at time.Time) (bool, error) {
	window := interval.Interval{Start: at, End: at.Add(time.Nanosecond)}
	snap, err := l.load(ctx, roomID, window)
	if err != nil {
		return false, err
	}
	return snap.isOpen(at), nil
}

func (l *ledger) OpenIntervalsWithin(ctx context.Context, roomID string, window interval.Interval) ([]interval.Interval, error) {
	snap, err := l.load(ctx, roomID, window)
	if err != nil {
		return nil, err
	}
	return openWithin(snap, window), nil
}

// openWithin collects every boundary where openness can flip, tests each
// resulting segment at its midpoint, and merges the open ones.
func openWithin(snap *snapshot, window interval.Interval) []interval.Interval {
	points := []time.Time{window.Start, window.End}

	utcStart := window.Start.UTC()
	day := time.Date(utcStart.Year(), utcStart.Month(), utcStart.Day(), 0, 0, 0, 0, time.UTC)
	for !day.After(window.End.UTC()) {
		if oh, ok := snap.hours[day.Weekday()]; ok {
			if start, end, ok := oh.Window(day); ok {
				points = append(points, start, end)
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	for _, ex := range snap.exceptions {
		points = append(points, ex.Window.Start, ex.Window.End)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })

	var open []interval.Interval
	for i := 0; i+1 < len(points); i++ {
		seg, ok := interval.Interval{Start: points[i], End: points[i+1]}.Clamp(window)
		if !ok {
			continue
		}
		mid := seg.Start.Add(seg.End.Sub(seg.Start) / 2)
		if snap.isOpen(mid) {
			open = append(open, seg)
		}
	}
	return interval.Merge(open)
}
