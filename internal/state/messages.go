package state

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/calendr/internal/store"
)

// FetchedMsg replaces a cached collection.
type FetchedMsg[T any] struct {
	Items []T
}

// SavedMsg carries a created, updated or toggled entity.
type SavedMsg[T any] struct {
	Item    T
	Created bool
}

// DeletedMsg removes an entity by id.
type DeletedMsg[T any] struct {
	ID string
}

// FailedMsg records the raw message of a failed call.
type FailedMsg struct {
	Op  string
	Err string
}

// BatchMsg is several results from one action, applied in order.
type BatchMsg []tea.Msg

// Apply merges an action result into s. The second result reports whether
// msg was one of this package's messages.
func (s State) Apply(msg tea.Msg) (State, bool) {
	switch m := msg.(type) {
	case BatchMsg:
		for _, sub := range m {
			s, _ = s.Apply(sub)
		}
		return s, true

	case FailedMsg:
		s.Err = m.Err
		s.Loading = false
		return s, true

	case FetchedMsg[store.Event]:
		s.Events = m.Items
	case FetchedMsg[store.Task]:
		s.Tasks = m.Items
	case FetchedMsg[store.Appointment]:
		s.Appointments = m.Items
	case FetchedMsg[store.Calendar]:
		s.Calendars = m.Items
	case FetchedMsg[store.TaskList]:
		s.TaskLists = m.Items

	case SavedMsg[store.Event]:
		s.Events = upsert(s.Events, m.Item, m.Created, func(e store.Event) string { return e.ID })
	case SavedMsg[store.Task]:
		s.Tasks = upsert(s.Tasks, m.Item, m.Created, func(t store.Task) string { return t.ID })
	case SavedMsg[store.Appointment]:
		s.Appointments = upsert(s.Appointments, m.Item, m.Created, func(a store.Appointment) string { return a.ID })
	case SavedMsg[store.Calendar]:
		s.Calendars = upsert(s.Calendars, m.Item, m.Created, func(c store.Calendar) string { return c.ID })
	case SavedMsg[store.TaskList]:
		s.TaskLists = upsert(s.TaskLists, m.Item, m.Created, func(l store.TaskList) string { return l.ID })

	case DeletedMsg[store.Event]:
		s.Events = remove(s.Events, m.ID, func(e store.Event) string { return e.ID })
	case DeletedMsg[store.Task]:
		s.Tasks = remove(s.Tasks, m.ID, func(t store.Task) string { return t.ID })
	case DeletedMsg[store.Appointment]:
		s.Appointments = remove(s.Appointments, m.ID, func(a store.Appointment) string { return a.ID })
	case DeletedMsg[store.Calendar]:
		s.Calendars = remove(s.Calendars, m.ID, func(c store.Calendar) string { return c.ID })
	case DeletedMsg[store.TaskList]:
		s.TaskLists = remove(s.TaskLists, m.ID, func(l store.TaskList) string { return l.ID })

	default:
		return s, false
	}
	s.Loading = false
	return s, true
}

// upsert appends on create and replaces by id otherwise. An update for an
// id not in the cache is appended. The input slice is never modified.
func upsert[T any](items []T, item T, created bool, id func(T) string) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	if !created {
		for i := range out {
			if id(out[i]) == id(item) {
				out[i] = item
				return out
			}
		}
	}
	return append(out, item)
}

func remove[T any](items []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}

// Notice is the status-line text for a successful mutation, or "" for
// fetches, failures and anything else.
func Notice(msg tea.Msg) string {
	switch m := msg.(type) {
	case BatchMsg:
		for _, sub := range m {
			if n := Notice(sub); n != "" {
				return n
			}
		}
	case SavedMsg[store.Event]:
		return saved("Event", m.Created)
	case SavedMsg[store.Task]:
		return saved("Task", m.Created)
	case SavedMsg[store.Appointment]:
		return saved("Appointment", m.Created)
	case SavedMsg[store.Calendar]:
		return saved("Calendar", m.Created)
	case SavedMsg[store.TaskList]:
		return saved("Task list", m.Created)
	case DeletedMsg[store.Event]:
		return "Event deleted successfully"
	case DeletedMsg[store.Task]:
		return "Task deleted successfully"
	case DeletedMsg[store.Appointment]:
		return "Appointment deleted successfully"
	case DeletedMsg[store.Calendar]:
		return "Calendar deleted successfully"
	case DeletedMsg[store.TaskList]:
		return "Task list deleted successfully"
	}
	return ""
}

func saved(what string, created bool) string {
	verb := "updated"
	if created {
		verb = "created"
	}
	return fmt.Sprintf("%s %s successfully", what, verb)
}
