// Package view turns the cached collections into what each calendar view
// shows: per-cell buckets, date grids and the flattened schedule.
package view

import (
	"github.com/sadopc/calendr/internal/clock"
	"github.com/sadopc/calendr/internal/store"
)

// Kind tags which collection an Item came from.
type Kind int

const (
	KindEvent Kind = iota
	KindTask
	KindAppointment
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "Event"
	case KindTask:
		return "Task"
	case KindAppointment:
		return "Appointment"
	}
	return "Unknown"
}

// Collections is the client-side cache the generators read from.
type Collections struct {
	Events       []store.Event
	Tasks        []store.Task
	Appointments []store.Appointment
}

// Item is one row of any view, whatever its source. Date is the date key,
// Time the start time as entered (possibly empty).
type Item struct {
	Kind       Kind
	ID         string
	Title      string
	Date       string
	Time       string
	End        string
	AllDay     bool
	Completed  bool
	CalendarID string
	TaskListID string
	Repeat     string
}

// Minutes is the item's start as minutes of day.
func (it Item) Minutes() (int, bool) {
	return clock.Minutes(it.Time)
}

func eventItem(e store.Event) Item {
	key, _ := clock.DateKey(e.Date)
	return Item{
		Kind:       KindEvent,
		ID:         e.ID,
		Title:      e.Title,
		Date:       key,
		Time:       e.StartTime,
		End:        e.EndTime,
		AllDay:     e.IsAllDay,
		CalendarID: e.CalendarID,
		Repeat:     e.RepeatOption,
	}
}

func taskItem(t store.Task) Item {
	key, _ := clock.DateKey(t.Date)
	return Item{
		Kind:       KindTask,
		ID:         t.ID,
		Title:      t.Title,
		Date:       key,
		Time:       t.Time,
		Completed:  t.IsCompleted,
		TaskListID: t.TaskListID,
	}
}

func appointmentItem(a store.Appointment) Item {
	key, _ := clock.DateKey(a.Date)
	return Item{
		Kind:       KindAppointment,
		ID:         a.ID,
		Title:      a.Title,
		Date:       key,
		Time:       a.StartTime,
		End:        a.EndTime,
		CalendarID: a.CalendarID,
	}
}

// Items flattens the collections: events, then tasks, then appointments,
// each in cache order. Items whose date cannot be read get an empty Date.
func (c Collections) Items() []Item {
	out := make([]Item, 0, len(c.Events)+len(c.Tasks)+len(c.Appointments))
	for _, e := range c.Events {
		out = append(out, eventItem(e))
	}
	for _, t := range c.Tasks {
		out = append(out, taskItem(t))
	}
	for _, a := range c.Appointments {
		out = append(out, appointmentItem(a))
	}
	return out
}

// Visible drops events and appointments whose calendar is hidden. Items on
// a calendar missing from calendars stay visible. Tasks are untouched.
func Visible(c Collections, calendars []store.Calendar) Collections {
	hidden := make(map[string]bool)
	for _, cal := range calendars {
		if !cal.IsVisible {
			hidden[cal.ID] = true
		}
	}
	if len(hidden) == 0 {
		return c
	}

	out := Collections{Tasks: c.Tasks}
	for _, e := range c.Events {
		if !hidden[e.CalendarID] {
			out.Events = append(out.Events, e)
		}
	}
	for _, a := range c.Appointments {
		if !hidden[a.CalendarID] {
			out.Appointments = append(out.Appointments, a)
		}
	}
	return out
}
