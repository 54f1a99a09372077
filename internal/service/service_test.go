package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sadopc/calendr/internal/store"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, nil)
}

func str(s string) *string { return &s }
func flag(b bool) *bool    { return &b }

// ============================================================
// Validation
// ============================================================

func TestEventCreateValidation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    EventInput
		field string
	}{
		{"missing title", EventInput{Date: str("2025-11-03"), CalendarID: str("c")}, "title"},
		{"blank title", EventInput{Title: str("   "), Date: str("2025-11-03"), CalendarID: str("c")}, "title"},
		{"missing date", EventInput{Title: str("x"), CalendarID: str("c")}, "date"},
		{"bad date", EventInput{Title: str("x"), Date: str("soon"), CalendarID: str("c")}, "date"},
		{"missing calendar", EventInput{Title: str("x"), Date: str("2025-11-03")}, "calendarId"},
	}
	for _, tt := range tests {
		_, err := svc.Events.Create(ctx, tt.in)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", tt.name, err)
		}
		if ve.Field != tt.field {
			t.Fatalf("%s: expected field %s, got %s", tt.name, tt.field, ve.Field)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: should match ErrValidation", tt.name)
		}
	}

	events, _ := svc.Events.List(ctx, store.EventFilter{})
	if len(events) != 0 {
		t.Fatal("invalid payloads must not be stored")
	}
}

func TestEventCreateTrimsAndDefaults(t *testing.T) {
	svc := newTestServices(t)
	e, err := svc.Events.Create(context.Background(), EventInput{
		Title: str("  Standup  "), Date: str("2025-11-03"), CalendarID: str("c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.Title != "Standup" {
		t.Fatalf("expected trimmed title, got %q", e.Title)
	}
	if e.RepeatOption != store.RepeatNone || e.IsAllDay {
		t.Fatalf("unexpected defaults %+v", e)
	}
}

func TestAppointmentRequiresTimes(t *testing.T) {
	svc := newTestServices(t)
	_, err := svc.Appointments.Create(context.Background(), AppointmentInput{
		Title: str("Dentist"), Date: str("2025-11-04"), StartTime: str("9:00am"), CalendarID: str("c"),
	})
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "endTime" {
		t.Fatalf("expected endTime validation error, got %v", err)
	}
}

func TestTaskOptionalDate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	task, err := svc.Tasks.Create(ctx, TaskInput{Title: str("Someday"), TaskListID: str("l")})
	if err != nil {
		t.Fatal(err)
	}
	if task.Date != "" || task.IsCompleted {
		t.Fatalf("unexpected task %+v", task)
	}
	if _, err := svc.Tasks.Create(ctx, TaskInput{Title: str("x"), TaskListID: str("l"), Deadline: str("tomorrow")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected invalid deadline, got %v", err)
	}
	if _, err := svc.Tasks.Create(ctx, TaskInput{Title: str("x")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected missing task list, got %v", err)
	}
}

func TestCalendarDefaults(t *testing.T) {
	svc := newTestServices(t)
	c, err := svc.Calendars.Create(context.Background(), CalendarInput{Name: str("Home")})
	if err != nil {
		t.Fatal(err)
	}
	if c.Color != store.DefaultColor || !c.IsVisible {
		t.Fatalf("unexpected defaults %+v", c)
	}
	hidden, _ := svc.Calendars.Create(context.Background(), CalendarInput{Name: str("Hidden"), IsVisible: flag(false)})
	if hidden.IsVisible {
		t.Fatal("explicit isVisible=false should be kept")
	}
}

// ============================================================
// Update / NotFound / Conflict
// ============================================================

func TestEventPartialUpdate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	e, _ := svc.Events.Create(ctx, EventInput{
		Title: str("Standup"), Date: str("2025-11-03"), StartTime: str("10:00am"), CalendarID: str("c"),
	})

	got, err := svc.Events.Update(ctx, e.ID, EventInput{StartTime: str("9:30am")})
	if err != nil {
		t.Fatal(err)
	}
	if got.StartTime != "9:30am" || got.Title != "Standup" || got.CalendarID != "c" {
		t.Fatalf("partial update clobbered fields: %+v", got)
	}

	if _, err := svc.Events.Update(ctx, e.ID, EventInput{Title: str("")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank title on update should fail validation, got %v", err)
	}
}

func TestNotFoundErrors(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Events.Get(ctx, "nope")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "Event" || nf.Error() != "Event not found" {
		t.Fatalf("unexpected error %v", err)
	}
	if err := svc.Tasks.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task delete: %v", err)
	}
	if _, err := svc.Tasks.Toggle(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task toggle: %v", err)
	}
	if _, err := svc.Calendars.Update(ctx, "nope", CalendarInput{Name: str("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("calendar update: %v", err)
	}
	if _, err := svc.Appointments.Update(ctx, "nope", AppointmentInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("appointment update: %v", err)
	}
	if err := svc.TaskLists.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task list delete: %v", err)
	}
	// A missing name must not hide the unknown id.
	if _, err := svc.TaskLists.Update(ctx, "nope", TaskListInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task list update without name: %v", err)
	}
}

func TestTaskListConflict(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	if _, err := svc.TaskLists.Create(ctx, TaskListInput{Name: str(" Chores ")}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.TaskLists.Create(ctx, TaskListInput{Name: str("Chores")})
	var ce ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Msg != "Task list with this name already exists" {
		t.Fatalf("unexpected message %q", ce.Msg)
	}
	if _, err := svc.TaskLists.Create(ctx, TaskListInput{Name: str("  ")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name: %v", err)
	}
}

// ============================================================
// Scenario
// ============================================================

func TestChoresCountFollowsToggle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	list, _ := svc.TaskLists.Create(ctx, TaskListInput{Name: str("Chores")})
	task, err := svc.Tasks.Create(ctx, TaskInput{Title: str("Trash"), TaskListID: str(list.ID), IsCompleted: flag(false)})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := svc.TaskLists.Get(ctx, list.ID)
	if got.Count != 1 {
		t.Fatalf("expected count 1, got %d", got.Count)
	}
	if _, err := svc.Tasks.Toggle(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.TaskLists.Get(ctx, list.ID)
	if got.Count != 0 {
		t.Fatalf("expected count 0, got %d", got.Count)
	}

	if err := svc.TaskLists.Delete(ctx, list.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Tasks.Get(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task should be removed with its list, got %v", err)
	}
}
