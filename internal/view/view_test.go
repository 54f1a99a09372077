package view

import (
	"testing"
	"time"

	"github.com/sadopc/calendr/internal/store"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sample() Collections {
	return Collections{
		Events: []store.Event{
			{ID: "e1", Title: "Standup", Date: "2025-11-03", StartTime: "10:00am", EndTime: "10:30am", CalendarID: "work"},
			{ID: "e2", Title: "Holiday", Date: "2025-11-03T00:00:00.000Z", IsAllDay: true, CalendarID: "personal"},
			{ID: "e3", Title: "Review", Date: "2025-11-04", StartTime: "9:00am", CalendarID: "work"},
		},
		Tasks: []store.Task{
			{ID: "t1", Title: "Trash", Date: "2025-11-03", Time: "10:45am", TaskListID: "chores"},
			{ID: "t2", Title: "Someday"},
		},
		Appointments: []store.Appointment{
			{ID: "a1", Title: "Dentist", Date: "2025-11-03", StartTime: "2:00pm", EndTime: "3:00pm", CalendarID: "personal"},
		},
	}
}

// ==========================================================================
// Buckets
// ==========================================================================

func TestForDayComparesDateComponent(t *testing.T) {
	got := titles(ForDay(date("2025-11-03"), sample()))
	want := []string{"Standup", "Holiday", "Trash", "Dentist"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestForHour(t *testing.T) {
	c := sample()
	day := date("2025-11-03")

	if got := titles(ForHour(day, 10, c)); !equal(got, []string{"Standup", "Trash"}) {
		t.Fatalf("hour 10: %v", got)
	}
	if got := ForHour(day, 9, c); len(got) != 0 {
		t.Fatalf("hour 9 should be empty, got %v", titles(got))
	}
	if got := titles(ForHour(day, 14, c)); !equal(got, []string{"Dentist"}) {
		t.Fatalf("hour 14: %v", got)
	}
	// An item spans only its starting hour.
	if got := ForHour(day, 15, c); len(got) != 0 {
		t.Fatalf("hour 15 should be empty, got %v", titles(got))
	}
}

func TestForHourSkipsUnparsableTimes(t *testing.T) {
	c := Collections{Tasks: []store.Task{{Title: "Odd", Date: "2025-11-03", Time: "noonish"}}}
	for h := 0; h < 24; h++ {
		if got := ForHour(date("2025-11-03"), h, c); len(got) != 0 {
			t.Fatalf("hour %d: unexpected %v", h, titles(got))
		}
	}
	if got := ForDay(date("2025-11-03"), c); len(got) != 1 {
		t.Fatal("item should still appear in the day list")
	}
}

func TestAllDay(t *testing.T) {
	got := titles(AllDay(date("2025-11-03"), sample()))
	if !equal(got, []string{"Holiday"}) {
		t.Fatalf("got %v", got)
	}
}

func TestCounts(t *testing.T) {
	c := sample()
	counts := CountsByDate(c)
	if counts["2025-11-03"] != 4 || counts["2025-11-04"] != 1 || len(counts) != 2 {
		t.Fatalf("unexpected counts %v", counts)
	}
	months := CountsByMonth(2025, c)
	if months[10] != 5 || months[0] != 0 {
		t.Fatalf("unexpected month counts %v", months)
	}
}

func TestVisible(t *testing.T) {
	cals := []store.Calendar{
		{ID: "work", IsVisible: true},
		{ID: "personal", IsVisible: false},
	}
	got := Visible(sample(), cals)
	if len(got.Events) != 2 || len(got.Appointments) != 0 || len(got.Tasks) != 2 {
		t.Fatalf("unexpected visible set %+v", got)
	}
}

// ==========================================================================
// Grids
// ==========================================================================

func TestMonthGridStartingOnSunday(t *testing.T) {
	// June 2025 begins on a Sunday.
	cells := MonthGrid(2025, time.June)
	if len(cells) != GridCells {
		t.Fatalf("expected %d cells, got %d", GridCells, len(cells))
	}
	if !cells[0].Date.Equal(date("2025-06-01")) || !cells[0].InMonth {
		t.Fatalf("first cell should be June 1, got %v", cells[0])
	}
}

func TestMonthGridPadding(t *testing.T) {
	// November 2025 begins on a Saturday.
	cells := MonthGrid(2025, time.November)
	if !cells[0].Date.Equal(date("2025-10-26")) || cells[0].InMonth {
		t.Fatalf("unexpected first cell %v", cells[0])
	}
	if !cells[6].Date.Equal(date("2025-11-01")) || !cells[6].InMonth {
		t.Fatalf("unexpected cell 6 %v", cells[6])
	}
	last := cells[GridCells-1]
	if !last.Date.Equal(date("2025-12-06")) || last.InMonth {
		t.Fatalf("unexpected last cell %v", last)
	}
	for i, c := range cells {
		if c.Date.Weekday() != time.Weekday(i%7) {
			t.Fatalf("cell %d on %v", i, c.Date.Weekday())
		}
	}
}

func TestYear(t *testing.T) {
	y := Year(2024)
	for m, grid := range y {
		in := 0
		for _, c := range grid {
			if c.InMonth {
				in++
			}
		}
		want := time.Date(2024, time.Month(m+2), 0, 0, 0, 0, 0, time.UTC).Day()
		if in != want {
			t.Fatalf("month %d: %d in-month cells, want %d", m+1, in, want)
		}
	}
}

func TestWeekAndDays(t *testing.T) {
	week := Week(date("2025-11-05"))
	if len(week) != 7 || !week[0].Equal(date("2025-11-02")) || !week[6].Equal(date("2025-11-08")) {
		t.Fatalf("unexpected week %v", week)
	}
	if w := Week(date("2025-11-02")); !w[0].Equal(date("2025-11-02")) {
		t.Fatalf("sunday should start its own week, got %v", w[0])
	}

	days := Days(date("2025-12-30"), 4)
	if len(days) != 4 || !days[3].Equal(date("2026-01-02")) {
		t.Fatalf("unexpected days %v", days)
	}
	if Days(date("2025-12-30"), 0) != nil {
		t.Fatal("zero days should be nil")
	}
}

// ==========================================================================
// Schedule
// ==========================================================================

func TestScheduleOrdersNumerically(t *testing.T) {
	c := Collections{
		Events: []store.Event{
			{Title: "Late", Date: "2025-11-03", StartTime: "10:00am"},
			{Title: "Early", Date: "2025-11-03", StartTime: "9:00am"},
			{Title: "Next", Date: "2025-11-04", StartTime: "8:00am"},
		},
		Tasks: []store.Task{
			{Title: "Untimed", Date: "2025-11-03"},
			{Title: "Evening", Date: "2025-11-03", Time: "6:30pm"},
		},
	}
	groups := Schedule(c)
	if len(groups) != 2 || groups[0].Date != "2025-11-03" || groups[1].Date != "2025-11-04" {
		t.Fatalf("unexpected groups %+v", groups)
	}
	got := titles(groups[0].Items)
	want := []string{"Untimed", "Early", "Late", "Evening"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if n := len(Flatten(groups)); n != 5 {
		t.Fatalf("flatten lost items: %d", n)
	}
}

func TestScheduleKinds(t *testing.T) {
	groups := Schedule(sample())
	seen := map[Kind]bool{}
	for _, it := range Flatten(groups) {
		seen[it.Kind] = true
	}
	if !seen[KindEvent] || !seen[KindTask] || !seen[KindAppointment] {
		t.Fatalf("missing kinds: %v", seen)
	}
	// Undated task sorts into a leading empty-date group.
	if groups[0].Date != "" || groups[0].Items[0].Title != "Someday" {
		t.Fatalf("unexpected first group %+v", groups[0])
	}
}

// ==========================================================================
// Recurrence
// ==========================================================================

func TestOccurrences(t *testing.T) {
	from, to := date("2025-11-01"), date("2025-11-30")
	cases := []struct {
		repeat string
		start  string
		want   int
	}{
		{store.RepeatNone, "2025-11-10", 1},
		{store.RepeatNone, "2025-12-10", 0},
		{store.RepeatDaily, "2025-11-25", 6},
		{store.RepeatWeekly, "2025-11-03", 4},
		{store.RepeatMonthly, "2025-09-15", 1},
		{store.RepeatYearly, "2020-11-20", 1},
		{store.RepeatWeekday, "2025-11-03", 20},
		{store.RepeatCustom, "2025-11-03", 1},
	}
	for _, tc := range cases {
		got, err := Occurrences(store.Event{Date: tc.start, RepeatOption: tc.repeat}, from, to)
		if err != nil {
			t.Fatalf("%s: %v", tc.repeat, err)
		}
		if len(got) != tc.want {
			t.Fatalf("%s from %s: got %d occurrences, want %d", tc.repeat, tc.start, len(got), tc.want)
		}
	}
}

func TestExpand(t *testing.T) {
	c := Collections{
		Events: []store.Event{
			{ID: "once", Title: "Once", Date: "2025-11-10"},
			{ID: "gym", Title: "Gym", Date: "2025-11-03", StartTime: "7:00am", RepeatOption: store.RepeatWeekly},
		},
	}
	got, err := Expand(c, date("2025-11-01"), date("2025-11-16"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got.Events))
	}
	if got.Events[1].Date != "2025-11-03" || got.Events[2].Date != "2025-11-10" {
		t.Fatalf("unexpected occurrence dates %q %q", got.Events[1].Date, got.Events[2].Date)
	}
	if hits := ForHour(date("2025-11-10"), 7, got); len(hits) != 1 || hits[0].Title != "Gym" {
		t.Fatalf("expanded occurrence not bucketed: %v", titles(hits))
	}
}
