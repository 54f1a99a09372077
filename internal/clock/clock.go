// Package clock handles the display-time and calendar-date strings stored on
// events, tasks and appointments.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the canonical calendar-date form, e.g. 2025-11-03.
const DateLayout = "2006-01-02"

// SlotMinutes is the spacing of selectable times in the dialog.
const SlotMinutes = 30

var displayTime = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(am|pm)\s*$`)

// Minutes converts a display time like "2:30pm" to minutes since midnight.
func Minutes(s string) (int, bool) {
	m := displayTime.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, false
	}
	pm := m[3][0] == 'p' || m[3][0] == 'P'
	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour != 12 && pm:
		hour += 12
	}
	return hour*60 + minute, true
}

// ParseHour returns the 0-23 hour of a display time. Malformed or empty
// strings have no hour.
func ParseHour(s string) (int, bool) {
	m, ok := Minutes(s)
	if !ok {
		return 0, false
	}
	return m / 60, true
}

// Format renders minutes since midnight as a display time.
func Format(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	hour, minute := minutes/60, minutes%60
	period := "am"
	if hour >= 12 {
		period = "pm"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, period)
}

// Slots lists every selectable time of day, 12:00am through 11:30pm.
func Slots() []string {
	out := make([]string, 0, 1440/SlotMinutes)
	for m := 0; m < 1440; m += SlotMinutes {
		out = append(out, Format(m))
	}
	return out
}

// SlotIndex returns the position of s in Slots, or -1.
func SlotIndex(s string) int {
	m, ok := Minutes(s)
	if !ok || m%SlotMinutes != 0 {
		return -1
	}
	return m / SlotMinutes
}

// Advance moves n slots forward from s. It reports false when s is not a
// slot or the result would run past the last slot of the day.
func Advance(s string, n int) (string, bool) {
	i := SlotIndex(s)
	if i < 0 || i+n >= 1440/SlotMinutes || i+n < 0 {
		return "", false
	}
	return Format((i + n) * SlotMinutes), true
}

// DateKey extracts the calendar-date component of a stored date. Both
// "2025-11-03" and ISO date-times such as "2025-11-03T00:00:00.000Z" are
// accepted; the time and zone parts are ignored.
func DateKey(s string) (string, bool) {
	if len(s) < len(DateLayout) {
		return "", false
	}
	key := s[:len(DateLayout)]
	if _, err := time.Parse(DateLayout, key); err != nil {
		return "", false
	}
	if len(s) > len(DateLayout) && s[len(DateLayout)] != 'T' && s[len(DateLayout)] != ' ' {
		return "", false
	}
	return key, true
}

// ParseDate parses the date component of s at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	key, ok := DateKey(s)
	if !ok {
		return time.Time{}, false
	}
	t, _ := time.Parse(DateLayout, key)
	return t, true
}

// Day truncates t to its calendar date, keeping the year, month and day as
// seen in t's location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as a date key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
