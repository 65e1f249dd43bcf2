package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaySchedule is one weekday entry of the working-hours table. Open and Close
// are "HH:MM" strings as entered in the registration form.
type DaySchedule struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// WeeklyHours maps weekday keys ("seg".."dom") to their schedule.
type WeeklyHours map[string]DaySchedule

// Weekday keys in time.Weekday order (Sunday first), matching the keys the
// registration form persists.
var weekdayKeys = [7]string{"dom", "seg", "ter", "qua", "qui", "sex", "sab"}

// WeekdayKey returns the schedule key for a time.Weekday.
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[int(d)%7]
}

// OpenStatus is the result of an open-now evaluation.
type OpenStatus struct {
	Open    bool
	Message string
}

// OpenNow evaluates whether the listing is open at the given instant. The
// comparison uses the half-open interval [open, close) in minutes of day.
// Schedules that cross midnight (close before open) are not supported and
// evaluate as closed for the late interval.
func OpenNow(hours WeeklyHours, now time.Time) OpenStatus {
	if len(hours) == 0 {
		return OpenStatus{Open: false, Message: "Horario no informado"}
	}

	schedule, ok := hours[WeekdayKey(now.Weekday())]
	if !ok || schedule.Closed {
		return OpenStatus{Open: false, Message: "Cerrado"}
	}

	openAt, err := parseMinuteOfDay(schedule.Open)
	if err != nil {
		return OpenStatus{Open: false, Message: "Horario no informado"}
	}
	closeAt, err := parseMinuteOfDay(schedule.Close)
	if err != nil {
		return OpenStatus{Open: false, Message: "Horario no informado"}
	}

	current := now.Hour()*60 + now.Minute()
	if current >= openAt && current < closeAt {
		return OpenStatus{Open: true, Message: fmt.Sprintf("Abierto • Cierra a las %s", schedule.Close)}
	}
	return OpenStatus{Open: false, Message: fmt.Sprintf("Cerrado • Abre a las %s", schedule.Open)}
}

func parseMinuteOfDay(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", value)
	}
	return hour*60 + minute, nil
}

// DefaultWeeklyHours returns the registration form defaults: 08:00-18:00 every
// day with Sundays closed.
func DefaultWeeklyHours() WeeklyHours {
	hours := make(WeeklyHours, len(weekdayKeys))
	for _, key := range weekdayKeys {
		hours[key] = DaySchedule{Open: "08:00", Close: "18:00", Closed: key == "dom"}
	}
	return hours
}
