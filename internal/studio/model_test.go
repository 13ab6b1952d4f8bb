package studio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	oh := OperatingHours{
		DayOfWeek: time.Monday,
		OpenTime:  "08:00",
		CloseTime: "22:00",
		IsOpen:    true,
	}

	start, end, ok := oh.Window(day)
	require.True(t, ok)
	assert.Equal(t, day.Add(8*time.Hour), start)
	assert.Equal(t, day.Add(22*time.Hour), end)
}

func TestWindowClosedDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	oh := OperatingHours{DayOfWeek: time.Monday, OpenTime: "08:00", CloseTime: "22:00", IsOpen: false}

	_, _, ok := oh.Window(day)
	assert.False(t, ok)
}

func TestWindowRejectsInvertedClock(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	oh := OperatingHours{DayOfWeek: time.Monday, OpenTime: "22:00", CloseTime: "08:00", IsOpen: true}

	_, _, ok := oh.Window(day)
	assert.False(t, ok)
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("00:00"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("9:00:00"))
	assert.False(t, ValidClock(""))
}
