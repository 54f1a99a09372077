package view

import (
	"time"

	"github.com/sadopc/calendr/internal/clock"
)

// GridCells is the fixed size of a month grid: six weeks.
const GridCells = 42

type Cell struct {
	Date    time.Time
	InMonth bool
}

// MonthGrid lays out a month as six Sunday-first weeks starting on the
// Sunday on or before the 1st, padded with days of the adjacent months.
func MonthGrid(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Cell, GridCells)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		cells[i] = Cell{Date: d, InMonth: d.Month() == month && d.Year() == year}
	}
	return cells
}

// Year returns the month grids for January through December.
func Year(year int) [12][]Cell {
	var out [12][]Cell
	for m := time.January; m <= time.December; m++ {
		out[m-1] = MonthGrid(year, m)
	}
	return out
}

// WeekStart is the Sunday on or before day.
func WeekStart(day time.Time) time.Time {
	d := clock.Day(day)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// Week returns the seven dates, Sunday first, of the week containing day.
func Week(day time.Time) []time.Time {
	return Days(WeekStart(day), 7)
}

// Days returns n consecutive dates beginning at start.
func Days(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	s := clock.Day(start)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = s.AddDate(0, 0, i)
	}
	return out
}
