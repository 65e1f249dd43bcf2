package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayAt(day time.Weekday, hour, minute int) time.Time {
	// 2025-06-01 is a Sunday.
	base := time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC)
	return base.AddDate(0, 0, int(day))
}

func TestOpenNowWithinInterval(t *testing.T) {
	hours := WeeklyHours{
		"seg": {Open: "08:00", Close: "18:00"},
	}

	status := OpenNow(hours, weekdayAt(time.Monday, 9, 0))
	assert.True(t, status.Open)
	assert.Equal(t, "Abierto • Cierra a las 18:00", status.Message)
}

func TestOpenNowPastClose(t *testing.T) {
	hours := WeeklyHours{
		"seg": {Open: "08:00", Close: "18:00"},
	}

	status := OpenNow(hours, weekdayAt(time.Monday, 19, 0))
	assert.False(t, status.Open)
	assert.Equal(t, "Cerrado • Abre a las 08:00", status.Message)
}

func TestOpenNowCloseIsExclusive(t *testing.T) {
	hours := WeeklyHours{
		"seg": {Open: "08:00", Close: "18:00"},
	}

	assert.True(t, OpenNow(hours, weekdayAt(time.Monday, 8, 0)).Open)
	assert.False(t, OpenNow(hours, weekdayAt(time.Monday, 18, 0)).Open)
}

func TestOpenNowClosedDay(t *testing.T) {
	hours := WeeklyHours{
		"dom": {Open: "08:00", Close: "18:00", Closed: true},
	}

	for _, minute := range []int{0, 540, 1100} {
		status := OpenNow(hours, weekdayAt(time.Sunday, minute/60, minute%60))
		assert.False(t, status.Open)
		assert.Equal(t, "Cerrado", status.Message)
	}
}

func TestOpenNowMissingDayOrTable(t *testing.T) {
	status := OpenNow(nil, weekdayAt(time.Monday, 9, 0))
	assert.False(t, status.Open)
	assert.Equal(t, "Horario no informado", status.Message)

	status = OpenNow(WeeklyHours{"ter": {Open: "08:00", Close: "18:00"}}, weekdayAt(time.Monday, 9, 0))
	assert.False(t, status.Open)
	assert.Equal(t, "Cerrado", status.Message)
}

func TestDefaultWeeklyHours(t *testing.T) {
	hours := DefaultWeeklyHours()
	require.Len(t, hours, 7)
	assert.True(t, hours["dom"].Closed)
	assert.False(t, hours["seg"].Closed)
	assert.Equal(t, "08:00", hours["sab"].Open)
	assert.Equal(t, "18:00", hours["sab"].Close)
}

func TestWeekdayKey(t *testing.T) {
	assert.Equal(t, "dom", WeekdayKey(time.Sunday))
	assert.Equal(t, "qua", WeekdayKey(time.Wednesday))
	assert.Equal(t, "sab", WeekdayKey(time.Saturday))
}
