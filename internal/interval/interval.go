package interval

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalid is returned when an interval would be empty or inverted.
var ErrInvalid = errors.New("interval start must be before end")

// Interval is a half-open time interval [Start, End).
// Touching endpoints do not overlap: a reservation ending at 10:00 and one
// starting at 10:00 are compatible.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New creates an Interval, enforcing Start < End.
func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: [%s, %s)", ErrInvalid, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// MustNew is New for hard-coded inputs; it panics on invalid bounds.
func MustNew(start, end time.Time) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether iv and other share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether t falls inside the half-open interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Covers reports whether iv fully contains other.
func (iv Interval) Covers(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// Clamp returns the part of iv that falls within bounds, and whether any part remains.
func (iv Interval) Clamp(bounds Interval) (Interval, bool) {
	start := iv.Start
	if start.Before(bounds.Start) {
		start = bounds.Start
	}
	end := iv.End
	if end.After(bounds.End) {
		end = bounds.End
	}
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Merge unions overlapping or adjacent intervals. The input is not modified;
// the result is sorted ascending by start.
func Merge(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}

	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		// Adjacent intervals ([a,b) and [b,c)) merge as well.
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract returns the ordered sub-intervals of base not covered by any cut.
// Cuts are merged first, so order and overlap among them do not matter.
// The result is empty when the cuts fully cover base.
func Subtract(base Interval, cuts []Interval) []Interval {
	var out []Interval
	cursor := base.Start

	for _, cut := range Merge(cuts) {
		clamped, ok := cut.Clamp(base)
		if !ok {
			continue
		}
		if cursor.Before(clamped.Start) {
			out = append(out, Interval{Start: cursor, End: clamped.Start})
		}
		if clamped.End.After(cursor) {
			cursor = clamped.End
		}
	}

	if cursor.Before(base.End) {
		out = append(out, Interval{Start: cursor, End: base.End})
	}
	return out
}
