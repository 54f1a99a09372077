// Package state holds the client's cached collections and UI position.
// A State is a value: setters and Apply return a new State, and only the
// UI root keeps the current one.
package state

import (
	"time"

	"github.com/sadopc/calendr/internal/clock"
	"github.com/sadopc/calendr/internal/store"
	"github.com/sadopc/calendr/internal/view"
)

type View int

const (
	ViewDay View = iota
	ViewWeek
	ViewFourDays
	ViewMonth
	ViewYear
	ViewSchedule
)

// Views lists the view modes in tab order.
var Views = []View{ViewDay, ViewWeek, ViewFourDays, ViewMonth, ViewYear, ViewSchedule}

var viewNames = map[View]string{
	ViewDay:      "Day",
	ViewWeek:     "Week",
	ViewFourDays: "4 days",
	ViewMonth:    "Month",
	ViewYear:     "Year",
	ViewSchedule: "Schedule",
}

var viewKeys = map[string]View{
	"day":      ViewDay,
	"week":     ViewWeek,
	"4days":    ViewFourDays,
	"month":    ViewMonth,
	"year":     ViewYear,
	"schedule": ViewSchedule,
}

func (v View) String() string {
	if n, ok := viewNames[v]; ok {
		return n
	}
	return "Unknown"
}

// ParseView maps a config key such as "4days" to a View.
func ParseView(s string) (View, bool) {
	v, ok := viewKeys[s]
	return v, ok
}

// Panel is what the sidebar shows.
type Panel int

const (
	PanelCalendars Panel = iota
	PanelTasks
)

type State struct {
	SelectedDate     time.Time
	ViewDate         time.Time // first day of the displayed month
	View             View
	SidebarCollapsed bool
	PickerOpen       bool
	Panel            Panel

	Events       []store.Event
	Tasks        []store.Task
	Appointments []store.Appointment
	Calendars    []store.Calendar
	TaskLists    []store.TaskList

	Loading bool
	Err     string
}

func New(now time.Time, v View) State {
	d := clock.Day(now)
	return State{SelectedDate: d, ViewDate: firstOfMonth(d), View: v}
}

func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// addMonths moves d by n months, clamping the day to the target month.
func addMonths(d time.Time, n int) time.Time {
	first := time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := d.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// Collections returns the cached items as the view generators take them.
func (s State) Collections() view.Collections {
	return view.Collections{Events: s.Events, Tasks: s.Tasks, Appointments: s.Appointments}
}

// VisibleCollections is Collections without items on hidden calendars.
func (s State) VisibleCollections() view.Collections {
	return view.Visible(s.Collections(), s.Calendars)
}

func (s State) SelectDate(d time.Time) State {
	s.SelectedDate = clock.Day(d)
	s.ViewDate = firstOfMonth(s.SelectedDate)
	return s
}

func (s State) SetView(v View) State {
	s.View = v
	return s
}

func (s State) PrevMonth() State {
	s.ViewDate = addMonths(s.ViewDate, -1)
	return s
}

func (s State) NextMonth() State {
	s.ViewDate = addMonths(s.ViewDate, 1)
	return s
}

func (s State) PrevDay() State {
	return s.SelectDate(s.SelectedDate.AddDate(0, 0, -1))
}

func (s State) NextDay() State {
	return s.SelectDate(s.SelectedDate.AddDate(0, 0, 1))
}

func (s State) Today(now time.Time) State {
	return s.SelectDate(now)
}

// ClickDate selects d from the mini calendar and closes the picker.
func (s State) ClickDate(d time.Time) State {
	s = s.SelectDate(d)
	s.PickerOpen = false
	return s
}

// Shift moves the selection by n units of the current view: days, weeks,
// four-day pages, months or years. The schedule pages by week.
func (s State) Shift(n int) State {
	d := s.SelectedDate
	switch s.View {
	case ViewDay:
		d = d.AddDate(0, 0, n)
	case ViewWeek, ViewSchedule:
		d = d.AddDate(0, 0, 7*n)
	case ViewFourDays:
		d = d.AddDate(0, 0, 4*n)
	case ViewMonth:
		d = addMonths(d, n)
	case ViewYear:
		d = addMonths(d, 12*n)
	}
	return s.SelectDate(d)
}

func (s State) ToggleSidebar() State {
	s.SidebarCollapsed = !s.SidebarCollapsed
	return s
}

func (s State) TogglePicker() State {
	s.PickerOpen = !s.PickerOpen
	return s
}

func (s State) TogglePanel() State {
	if s.Panel == PanelCalendars {
		s.Panel = PanelTasks
	} else {
		s.Panel = PanelCalendars
	}
	return s
}

// Begin marks a request in flight.
func (s State) Begin() State {
	s.Loading = true
	s.Err = ""
	return s
}

// CalendarName resolves a calendar id for display.
func (s State) CalendarName(id string) string {
	for _, c := range s.Calendars {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// TaskListName resolves a task list id for display.
func (s State) TaskListName(id string) string {
	for _, l := range s.TaskLists {
		if l.ID == id {
			return l.Name
		}
	}
	return ""
}
