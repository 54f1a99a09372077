package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sadopc/calendr/internal/service"
	"github.com/sadopc/calendr/internal/store"
)

// ---- events ----

func (c *Client) ListEvents(ctx context.Context, f store.EventFilter) ([]store.Event, error) {
	return do[[]store.Event](ctx, c, http.MethodGet, "/events", withQuery(map[string]*string{
		"calendarId": f.CalendarID,
		"date":       f.Date,
		"startDate":  f.From,
		"endDate":    f.To,
	}))
}

func (c *Client) GetEvent(ctx context.Context, id string) (store.Event, error) {
	return do[store.Event](ctx, c, http.MethodGet, "/events/{id}", withID(id))
}

func (c *Client) CreateEvent(ctx context.Context, in service.EventInput) (store.Event, error) {
	return do[store.Event](ctx, c, http.MethodPost, "/events", withBody(in))
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in service.EventInput) (store.Event, error) {
	return do[store.Event](ctx, c, http.MethodPut, "/events/{id}", withID(id), withBody(in))
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/events/{id}", withID(id))
	return err
}

// ---- tasks ----

func (c *Client) ListTasks(ctx context.Context, f store.TaskFilter) ([]store.Task, error) {
	var completed *string
	if f.IsCompleted != nil {
		s := strconv.FormatBool(*f.IsCompleted)
		completed = &s
	}
	return do[[]store.Task](ctx, c, http.MethodGet, "/tasks", withQuery(map[string]*string{
		"taskListId":  f.TaskListID,
		"isCompleted": completed,
	}))
}

func (c *Client) GetTask(ctx context.Context, id string) (store.Task, error) {
	return do[store.Task](ctx, c, http.MethodGet, "/tasks/{id}", withID(id))
}

func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (store.Task, error) {
	return do[store.Task](ctx, c, http.MethodPost, "/tasks", withBody(in))
}

func (c *Client) UpdateTask(ctx context.Context, id string, in service.TaskInput) (store.Task, error) {
	return do[store.Task](ctx, c, http.MethodPut, "/tasks/{id}", withID(id), withBody(in))
}

func (c *Client) ToggleTask(ctx context.Context, id string) (store.Task, error) {
	return do[store.Task](ctx, c, http.MethodPatch, "/tasks/{id}/toggle", withID(id))
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/tasks/{id}", withID(id))
	return err
}

// ---- appointments ----

func (c *Client) ListAppointments(ctx context.Context, f store.AppointmentFilter) ([]store.Appointment, error) {
	return do[[]store.Appointment](ctx, c, http.MethodGet, "/appointments", withQuery(map[string]*string{
		"calendarId": f.CalendarID,
		"date":       f.Date,
		"startDate":  f.From,
		"endDate":    f.To,
	}))
}

func (c *Client) GetAppointment(ctx context.Context, id string) (store.Appointment, error) {
	return do[store.Appointment](ctx, c, http.MethodGet, "/appointments/{id}", withID(id))
}

func (c *Client) CreateAppointment(ctx context.Context, in service.AppointmentInput) (store.Appointment, error) {
	return do[store.Appointment](ctx, c, http.MethodPost, "/appointments", withBody(in))
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, in service.AppointmentInput) (store.Appointment, error) {
	return do[store.Appointment](ctx, c, http.MethodPut, "/appointments/{id}", withID(id), withBody(in))
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/appointments/{id}", withID(id))
	return err
}

// ---- calendars ----

func (c *Client) ListCalendars(ctx context.Context) ([]store.Calendar, error) {
	return do[[]store.Calendar](ctx, c, http.MethodGet, "/calendars")
}

func (c *Client) GetCalendar(ctx context.Context, id string) (store.Calendar, error) {
	return do[store.Calendar](ctx, c, http.MethodGet, "/calendars/{id}", withID(id))
}

func (c *Client) CreateCalendar(ctx context.Context, in service.CalendarInput) (store.Calendar, error) {
	return do[store.Calendar](ctx, c, http.MethodPost, "/calendars", withBody(in))
}

func (c *Client) UpdateCalendar(ctx context.Context, id string, in service.CalendarInput) (store.Calendar, error) {
	return do[store.Calendar](ctx, c, http.MethodPut, "/calendars/{id}", withID(id), withBody(in))
}

func (c *Client) ToggleCalendar(ctx context.Context, id string) (store.Calendar, error) {
	return do[store.Calendar](ctx, c, http.MethodPatch, "/calendars/{id}/toggle", withID(id))
}

func (c *Client) DeleteCalendar(ctx context.Context, id string) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/calendars/{id}", withID(id))
	return err
}

// ---- task lists ----

func (c *Client) ListTaskLists(ctx context.Context) ([]store.TaskList, error) {
	return do[[]store.TaskList](ctx, c, http.MethodGet, "/task-lists")
}

func (c *Client) GetTaskList(ctx context.Context, id string) (store.TaskList, error) {
	return do[store.TaskList](ctx, c, http.MethodGet, "/task-lists/{id}", withID(id))
}

func (c *Client) CreateTaskList(ctx context.Context, in service.TaskListInput) (store.TaskList, error) {
	return do[store.TaskList](ctx, c, http.MethodPost, "/task-lists", withBody(in))
}

func (c *Client) UpdateTaskList(ctx context.Context, id string, in service.TaskListInput) (store.TaskList, error) {
	return do[store.TaskList](ctx, c, http.MethodPut, "/task-lists/{id}", withID(id), withBody(in))
}

func (c *Client) DeleteTaskList(ctx context.Context, id string) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/task-lists/{id}", withID(id))
	return err
}
