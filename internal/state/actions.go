package state

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/calendr/internal/service"
	"github.com/sadopc/calendr/internal/store"
)

// API is the remote surface actions call. *client.Client satisfies it.
type API interface {
	ListEvents(ctx context.Context, f store.EventFilter) ([]store.Event, error)
	CreateEvent(ctx context.Context, in service.EventInput) (store.Event, error)
	UpdateEvent(ctx context.Context, id string, in service.EventInput) (store.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	ListTasks(ctx context.Context, f store.TaskFilter) ([]store.Task, error)
	CreateTask(ctx context.Context, in service.TaskInput) (store.Task, error)
	UpdateTask(ctx context.Context, id string, in service.TaskInput) (store.Task, error)
	ToggleTask(ctx context.Context, id string) (store.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ListAppointments(ctx context.Context, f store.AppointmentFilter) ([]store.Appointment, error)
	CreateAppointment(ctx context.Context, in service.AppointmentInput) (store.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, in service.AppointmentInput) (store.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error

	ListCalendars(ctx context.Context) ([]store.Calendar, error)
	CreateCalendar(ctx context.Context, in service.CalendarInput) (store.Calendar, error)
	UpdateCalendar(ctx context.Context, id string, in service.CalendarInput) (store.Calendar, error)
	ToggleCalendar(ctx context.Context, id string) (store.Calendar, error)
	DeleteCalendar(ctx context.Context, id string) error

	ListTaskLists(ctx context.Context) ([]store.TaskList, error)
	CreateTaskList(ctx context.Context, in service.TaskListInput) (store.TaskList, error)
	UpdateTaskList(ctx context.Context, id string, in service.TaskListInput) (store.TaskList, error)
	DeleteTaskList(ctx context.Context, id string) error
}

// Actions turn API calls into commands whose messages feed State.Apply.
// Callers mark the state with Begin before running one.
type Actions struct {
	api API
	ctx context.Context
}

func NewActions(ctx context.Context, api API) Actions {
	return Actions{api: api, ctx: ctx}
}

func failed(op string, err error) tea.Msg {
	return FailedMsg{Op: op, Err: err.Error()}
}

func fetch[T any](op string, call func() ([]T, error)) tea.Msg {
	items, err := call()
	if err != nil {
		return failed(op, err)
	}
	return FetchedMsg[T]{Items: items}
}

func save[T any](op string, created bool, call func() (T, error)) tea.Msg {
	item, err := call()
	if err != nil {
		return failed(op, err)
	}
	return SavedMsg[T]{Item: item, Created: created}
}

func del[T any](op, id string, call func() error) tea.Msg {
	if err := call(); err != nil {
		return failed(op, err)
	}
	return DeletedMsg[T]{ID: id}
}

// LoadAll fetches every collection concurrently.
func (a Actions) LoadAll() tea.Cmd {
	return tea.Batch(
		a.FetchCalendars(),
		a.FetchTaskLists(),
		a.FetchEvents(),
		a.FetchTasks(),
		a.FetchAppointments(),
	)
}

func (a Actions) fetchTaskLists() tea.Msg {
	return fetch("fetch task lists", func() ([]store.TaskList, error) { return a.api.ListTaskLists(a.ctx) })
}

func (a Actions) fetchTasks() tea.Msg {
	return fetch("fetch tasks", func() ([]store.Task, error) { return a.api.ListTasks(a.ctx, store.TaskFilter{}) })
}

// withTaskLists follows a task result with refreshed task lists so their
// incomplete counts stay current. A failed mutation is not followed.
func (a Actions) withTaskLists(msg tea.Msg) tea.Msg {
	if _, ok := msg.(FailedMsg); ok {
		return msg
	}
	return BatchMsg{msg, a.fetchTaskLists()}
}

// ---- events ----

func (a Actions) FetchEvents() tea.Cmd {
	return func() tea.Msg {
		return fetch("fetch events", func() ([]store.Event, error) { return a.api.ListEvents(a.ctx, store.EventFilter{}) })
	}
}

func (a Actions) CreateEvent(in service.EventInput) tea.Cmd {
	return func() tea.Msg {
		return save("create event", true, func() (store.Event, error) { return a.api.CreateEvent(a.ctx, in) })
	}
}

func (a Actions) UpdateEvent(id string, in service.EventInput) tea.Cmd {
	return func() tea.Msg {
		return save("update event", false, func() (store.Event, error) { return a.api.UpdateEvent(a.ctx, id, in) })
	}
}

func (a Actions) DeleteEvent(id string) tea.Cmd {
	return func() tea.Msg {
		return del[store.Event]("delete event", id, func() error { return a.api.DeleteEvent(a.ctx, id) })
	}
}

// ---- tasks ----

func (a Actions) FetchTasks() tea.Cmd {
	return a.fetchTasks
}

func (a Actions) CreateTask(in service.TaskInput) tea.Cmd {
	return func() tea.Msg {
		return a.withTaskLists(save("create task", true, func() (store.Task, error) { return a.api.CreateTask(a.ctx, in) }))
	}
}

func (a Actions) UpdateTask(id string, in service.TaskInput) tea.Cmd {
	return func() tea.Msg {
		return a.withTaskLists(save("update task", false, func() (store.Task, error) { return a.api.UpdateTask(a.ctx, id, in) }))
	}
}

func (a Actions) ToggleTask(id string) tea.Cmd {
	return func() tea.Msg {
		return a.withTaskLists(save("toggle task", false, func() (store.Task, error) { return a.api.ToggleTask(a.ctx, id) }))
	}
}

func (a Actions) DeleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		return a.withTaskLists(del[store.Task]("delete task", id, func() error { return a.api.DeleteTask(a.ctx, id) }))
	}
}

// ---- appointments ----

func (a Actions) FetchAppointments() tea.Cmd {
	return func() tea.Msg {
		return fetch("fetch appointments", func() ([]store.Appointment, error) {
			return a.api.ListAppointments(a.ctx, store.AppointmentFilter{})
		})
	}
}

func (a Actions) CreateAppointment(in service.AppointmentInput) tea.Cmd {
	return func() tea.Msg {
		return save("create appointment", true, func() (store.Appointment, error) { return a.api.CreateAppointment(a.ctx, in) })
	}
}

func (a Actions) UpdateAppointment(id string, in service.AppointmentInput) tea.Cmd {
	return func() tea.Msg {
		return save("update appointment", false, func() (store.Appointment, error) { return a.api.UpdateAppointment(a.ctx, id, in) })
	}
}

func (a Actions) DeleteAppointment(id string) tea.Cmd {
	return func() tea.Msg {
		return del[store.Appointment]("delete appointment", id, func() error { return a.api.DeleteAppointment(a.ctx, id) })
	}
}

// ---- calendars ----

func (a Actions) FetchCalendars() tea.Cmd {
	return func() tea.Msg {
		return fetch("fetch calendars", func() ([]store.Calendar, error) { return a.api.ListCalendars(a.ctx) })
	}
}

func (a Actions) CreateCalendar(in service.CalendarInput) tea.Cmd {
	return func() tea.Msg {
		return save("create calendar", true, func() (store.Calendar, error) { return a.api.CreateCalendar(a.ctx, in) })
	}
}

func (a Actions) UpdateCalendar(id string, in service.CalendarInput) tea.Cmd {
	return func() tea.Msg {
		return save("update calendar", false, func() (store.Calendar, error) { return a.api.UpdateCalendar(a.ctx, id, in) })
	}
}

func (a Actions) ToggleCalendar(id string) tea.Cmd {
	return func() tea.Msg {
		return save("toggle calendar", false, func() (store.Calendar, error) { return a.api.ToggleCalendar(a.ctx, id) })
	}
}

func (a Actions) DeleteCalendar(id string) tea.Cmd {
	return func() tea.Msg {
		return del[store.Calendar]("delete calendar", id, func() error { return a.api.DeleteCalendar(a.ctx, id) })
	}
}

// ---- task lists ----

func (a Actions) FetchTaskLists() tea.Cmd {
	return a.fetchTaskLists
}

func (a Actions) CreateTaskList(in service.TaskListInput) tea.Cmd {
	return func() tea.Msg {
		return save("create task list", true, func() (store.TaskList, error) { return a.api.CreateTaskList(a.ctx, in) })
	}
}

func (a Actions) UpdateTaskList(id string, in service.TaskListInput) tea.Cmd {
	return func() tea.Msg {
		return save("update task list", false, func() (store.TaskList, error) { return a.api.UpdateTaskList(a.ctx, id, in) })
	}
}

// DeleteTaskList also refetches tasks, since the server removes the
// list's tasks with it.
func (a Actions) DeleteTaskList(id string) tea.Cmd {
	return func() tea.Msg {
		msg := del[store.TaskList]("delete task list", id, func() error { return a.api.DeleteTaskList(a.ctx, id) })
		if _, ok := msg.(FailedMsg); ok {
			return msg
		}
		return BatchMsg{msg, a.fetchTasks()}
	}
}
