package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at builds a timestamp on a fixed reference day, hour offset in hours.
func at(h int) time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).Add(time.Duration(h) * time.Hour)
}

func span(from, to int) Interval {
	return Interval{Start: at(from), End: at(to)}
}

func TestNew(t *testing.T) {
	_, err := New(at(10), at(12))
	require.NoError(t, err)

	_, err = New(at(12), at(12))
	assert.ErrorIs(t, err, ErrInvalid, "zero-length interval must be rejected")

	_, err = New(at(12), at(10))
	assert.ErrorIs(t, err, ErrInvalid, "inverted interval must be rejected")
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", span(0, 2), span(4, 6), false},
		{"touching endpoints do not overlap", span(8, 10), span(10, 12), false},
		{"partial overlap", span(8, 11), span(10, 12), true},
		{"containment", span(8, 18), span(10, 12), true},
		{"identical", span(8, 10), span(8, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestContains(t *testing.T) {
	iv := span(10, 12)
	assert.True(t, iv.Contains(at(10)), "start is included")
	assert.True(t, iv.Contains(at(11)))
	assert.False(t, iv.Contains(at(12)), "end is excluded")
	assert.False(t, iv.Contains(at(9)))
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{"empty", nil, nil},
		{"disjoint stay apart", []Interval{span(6, 8), span(0, 2)}, []Interval{span(0, 2), span(6, 8)}},
		{"overlapping merge", []Interval{span(0, 5), span(3, 8)}, []Interval{span(0, 8)}},
		{"adjacent merge", []Interval{span(0, 4), span(4, 8)}, []Interval{span(0, 8)}},
		{"contained absorbed", []Interval{span(0, 10), span(2, 4)}, []Interval{span(0, 10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.in))
		})
	}
}

func TestSubtract(t *testing.T) {
	base := span(0, 10)

	tests := []struct {
		name string
		cuts []Interval
		want []Interval
	}{
		{"no cuts returns base", nil, []Interval{base}},
		{"full cut returns empty", []Interval{base}, nil},
		{"two middle cuts", []Interval{span(2, 4), span(6, 8)}, []Interval{span(0, 2), span(4, 6), span(8, 10)}},
		{"cut at start", []Interval{span(0, 3)}, []Interval{span(3, 10)}},
		{"cut at end", []Interval{span(7, 10)}, []Interval{span(0, 7)}},
		{"cut extending past both bounds", []Interval{span(-2, 12)}, nil},
		{"cut outside base ignored", []Interval{span(12, 14)}, []Interval{base}},
		{"overlapping cuts merged before subtracting", []Interval{span(1, 5), span(4, 6)}, []Interval{span(0, 1), span(6, 10)}},
		{"unsorted cuts", []Interval{span(6, 8), span(2, 4)}, []Interval{span(0, 2), span(4, 6), span(8, 10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtract(base, tt.cuts))
		})
	}
}

func TestSubtractResultsAreOrderedAndDisjoint(t *testing.T) {
	got := Subtract(span(0, 24), []Interval{span(20, 22), span(1, 2), span(2, 3), span(9, 15)})
	require.NotEmpty(t, got)

	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].End.Before(got[i].Start) || got[i-1].End.Equal(got[i].Start))
		assert.False(t, got[i-1].Overlaps(got[i]))
	}
}
