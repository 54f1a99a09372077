package view

import (
	"time"

	"github.com/sadopc/calendr/internal/clock"
)

// ForDay returns every item dated on day. Only the calendar-date component
// of stored dates is compared.
func ForDay(day time.Time, c Collections) []Item {
	key := clock.FormatDate(day)
	var out []Item
	for _, it := range c.Items() {
		if it.Date == key {
			out = append(out, it)
		}
	}
	return out
}

// ForHour returns the items of day whose start time falls in hour. An item
// occupies only its starting hour. All-day events and items without a
// readable time are left out.
func ForHour(day time.Time, hour int, c Collections) []Item {
	var out []Item
	for _, it := range ForDay(day, c) {
		if it.AllDay {
			continue
		}
		h, ok := clock.ParseHour(it.Time)
		if ok && h == hour {
			out = append(out, it)
		}
	}
	return out
}

// AllDay returns the all-day events of day.
func AllDay(day time.Time, c Collections) []Item {
	var out []Item
	for _, it := range ForDay(day, c) {
		if it.AllDay {
			out = append(out, it)
		}
	}
	return out
}

// CountsByDate counts items per date key. Undated items are not counted.
func CountsByDate(c Collections) map[string]int {
	out := make(map[string]int)
	for _, it := range c.Items() {
		if it.Date != "" {
			out[it.Date]++
		}
	}
	return out
}

// CountsByMonth counts a year's items per month, January first.
func CountsByMonth(year int, c Collections) [12]int {
	var out [12]int
	for _, it := range c.Items() {
		d, ok := clock.ParseDate(it.Date)
		if ok && d.Year() == year {
			out[d.Month()-1]++
		}
	}
	return out
}
