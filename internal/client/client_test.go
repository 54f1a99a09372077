package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sadopc/calendr/internal/api"
	"github.com/sadopc/calendr/internal/service"
	"github.com/sadopc/calendr/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	st, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := api.New(api.Options{Services: service.New(st, logger), Logger: logger, Version: "9.9.9"})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL+"/api/", 5*time.Second)
}

func ptr[T any](v T) *T { return &v }

func TestHealth(t *testing.T) {
	c := newTestClient(t)
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if h.Version != "9.9.9" || h.Message != "Calendar API Server is running" {
		t.Fatalf("unexpected health %+v", h)
	}
}

func TestEventRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	cal, err := c.CreateCalendar(ctx, service.CalendarInput{Name: ptr("Work"), Color: ptr("#D50000")})
	if err != nil {
		t.Fatal(err)
	}
	if !cal.IsVisible || cal.ID == "" {
		t.Fatalf("unexpected calendar %+v", cal)
	}

	e, err := c.CreateEvent(ctx, service.EventInput{
		Title:      ptr("Standup"),
		Date:       ptr("2025-11-03"),
		StartTime:  ptr("10:00am"),
		EndTime:    ptr("10:30am"),
		CalendarID: ptr(cal.ID),
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.GetEvent(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Standup" || got.RepeatOption != store.RepeatNone {
		t.Fatalf("unexpected event %+v", got)
	}

	upd, err := c.UpdateEvent(ctx, e.ID, service.EventInput{Location: ptr("Room 4")})
	if err != nil {
		t.Fatal(err)
	}
	if upd.Location != "Room 4" || upd.Title != "Standup" {
		t.Fatalf("partial update lost fields: %+v", upd)
	}

	list, err := c.ListEvents(ctx, store.EventFilter{Date: ptr("2025-11-03")})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 event, got %d", len(list))
	}

	if err := c.DeleteEvent(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	_, err = c.GetEvent(ctx, e.ID)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound || apiErr.Message != "Event not found" {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
}

func TestValidationMessage(t *testing.T) {
	c := newTestClient(t)
	_, err := c.CreateTaskList(context.Background(), service.TaskListInput{Name: ptr("  ")})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if apiErr.Message != "Task list name is required" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestTaskListCountsFollowToggles(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	list, err := c.CreateTaskList(ctx, service.TaskListInput{Name: ptr("Chores")})
	if err != nil {
		t.Fatal(err)
	}
	task, err := c.CreateTask(ctx, service.TaskInput{Title: ptr("Trash"), TaskListID: ptr(list.ID), IsCompleted: ptr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if l, _ := c.GetTaskList(ctx, list.ID); l.Count != 1 {
		t.Fatalf("expected count 1, got %d", l.Count)
	}

	if _, err := c.ToggleTask(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if l, _ := c.GetTaskList(ctx, list.ID); l.Count != 0 {
		t.Fatalf("expected count 0, got %d", l.Count)
	}

	done, err := c.ListTasks(ctx, store.TaskFilter{IsCompleted: ptr(true)})
	if err != nil || len(done) != 1 {
		t.Fatalf("completed filter: %v %d", err, len(done))
	}

	if _, err := c.CreateTaskList(ctx, service.TaskListInput{Name: ptr("Chores")}); err == nil {
		t.Fatal("duplicate name should fail")
	}

	if err := c.DeleteTaskList(ctx, list.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetTask(ctx, task.ID); err == nil {
		t.Fatal("task should be removed with its list")
	}
}

func TestCalendarToggleAndAppointments(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	cal, _ := c.CreateCalendar(ctx, service.CalendarInput{Name: ptr("Personal")})
	toggled, err := c.ToggleCalendar(ctx, cal.ID)
	if err != nil || toggled.IsVisible {
		t.Fatalf("toggle: %v %+v", err, toggled)
	}

	a, err := c.CreateAppointment(ctx, service.AppointmentInput{
		Title:      ptr("Dentist"),
		Date:       ptr("2025-11-05"),
		StartTime:  ptr("2:00pm"),
		EndTime:    ptr("3:00pm"),
		CalendarID: ptr(cal.ID),
	})
	if err != nil {
		t.Fatal(err)
	}
	in, _ := c.ListAppointments(ctx, store.AppointmentFilter{From: ptr("2025-11-01"), To: ptr("2025-11-30")})
	out, _ := c.ListAppointments(ctx, store.AppointmentFilter{From: ptr("2025-12-01")})
	if len(in) != 1 || len(out) != 0 {
		t.Fatalf("range filter: in=%d out=%d", len(in), len(out))
	}

	if err := c.DeleteCalendar(ctx, cal.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetAppointment(ctx, a.ID); err != nil {
		t.Fatalf("calendar delete should not cascade: %v", err)
	}
}

func TestNonJSONErrorFallsBack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL+"/api", time.Second).ListCalendars(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "API request failed" || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url+"/api", time.Second).ListEvents(context.Background(), store.EventFilter{})
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failure should not be an APIError")
	}
}
