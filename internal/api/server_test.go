package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sadopc/calendr/internal/service"
	"github.com/sadopc/calendr/internal/store"
)

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(Options{Services: service.New(st, logger), Logger: logger, Version: "1.0.0"})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path string, body any) (int, response) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.URL+path, rdr)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var out response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil && err != io.EOF {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return res.StatusCode, out
}

func into[T any](t *testing.T, r response) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(r.Data, &v); err != nil {
		t.Fatalf("decode data %s: %v", r.Data, err)
	}
	return v
}

// ============================================================
// Health and routing
// ============================================================

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var h healthResponse
	json.NewDecoder(res.Body).Decode(&h)
	if res.StatusCode != http.StatusOK || !h.Success || h.Message != healthMessage || h.Version != "1.0.0" {
		t.Fatalf("unexpected health %d %+v", res.StatusCode, h)
	}
	if _, err := time.Parse(time.RFC3339, h.Timestamp); err != nil {
		t.Fatalf("bad timestamp %q", h.Timestamp)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	code, r := call(t, ts, http.MethodGet, "/api/nope", nil)
	if code != http.StatusNotFound || r.Success {
		t.Fatalf("expected 404 envelope, got %d %+v", code, r)
	}
	code, _ = call(t, ts, http.MethodPatch, "/api/events/abc", nil)
	if code != http.StatusNotFound {
		t.Fatalf("unsupported method should 404, got %d", code)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/events", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}
	if res.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}

func TestInvalidJSON(t *testing.T) {
	ts := newTestServer(t)
	res, err := http.Post(ts.URL+"/api/events", "application/json", bytes.NewBufferString("{"))
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

// ============================================================
// Resources
// ============================================================

func TestEventLifecycle(t *testing.T) {
	ts := newTestServer(t)

	code, r := call(t, ts, http.MethodPost, "/api/events", map[string]any{
		"title": "Lunch", "date": "2025-11-03", "calendarId": "c1", "startTime": "12:00pm",
	})
	if code != http.StatusCreated || !r.Success || r.Message != "Event created successfully" {
		t.Fatalf("create: %d %+v", code, r)
	}
	e := into[store.Event](t, r)
	if e.ID == "" || e.RepeatOption != store.RepeatNone {
		t.Fatalf("unexpected event %+v", e)
	}

	code, r = call(t, ts, http.MethodGet, "/api/events/"+e.ID, nil)
	if code != http.StatusOK || into[store.Event](t, r).Title != "Lunch" {
		t.Fatalf("get: %d %+v", code, r)
	}

	code, r = call(t, ts, http.MethodPut, "/api/events/"+e.ID, map[string]any{"title": "Brunch"})
	if code != http.StatusOK || into[store.Event](t, r).Title != "Brunch" {
		t.Fatalf("update: %d %+v", code, r)
	}

	code, _ = call(t, ts, http.MethodDelete, "/api/events/"+e.ID, nil)
	if code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	code, r = call(t, ts, http.MethodGet, "/api/events/"+e.ID, nil)
	if code != http.StatusNotFound || r.Error != "Event not found" {
		t.Fatalf("get after delete: %d %+v", code, r)
	}
}

func TestRenameUnknownTaskListIs404(t *testing.T) {
	ts := newTestServer(t)
	code, r := call(t, ts, http.MethodPut, "/api/task-lists/missing", map[string]any{})
	if code != http.StatusNotFound || r.Error != "Task list not found" {
		t.Fatalf("expected 404 for unknown list, got %d %+v", code, r)
	}
}

func TestValidationIs400(t *testing.T) {
	ts := newTestServer(t)
	code, r := call(t, ts, http.MethodPost, "/api/tasks", map[string]any{"title": "  "})
	if code != http.StatusBadRequest || r.Success || r.Error == "" {
		t.Fatalf("expected 400 envelope, got %d %+v", code, r)
	}
}

func TestEventFilters(t *testing.T) {
	ts := newTestServer(t)
	for _, d := range []string{"2025-11-01", "2025-11-03", "2025-11-05"} {
		call(t, ts, http.MethodPost, "/api/events", map[string]any{"title": d, "date": d, "calendarId": "c1"})
	}
	call(t, ts, http.MethodPost, "/api/events", map[string]any{"title": "other", "date": "2025-11-03", "calendarId": "c2"})

	_, r := call(t, ts, http.MethodGet, "/api/events?startDate=2025-11-02&endDate=2025-11-05", nil)
	if got := into[[]store.Event](t, r); len(got) != 3 {
		t.Fatalf("range: expected 3, got %d", len(got))
	}
	_, r = call(t, ts, http.MethodGet, "/api/events?calendarId=c1&date=2025-11-03", nil)
	if got := into[[]store.Event](t, r); len(got) != 1 || got[0].Title != "2025-11-03" {
		t.Fatalf("calendar+date: %+v", got)
	}
	_, r = call(t, ts, http.MethodGet, "/api/events?calendarId=none", nil)
	if got := into[[]store.Event](t, r); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestTaskCompletedFilter(t *testing.T) {
	ts := newTestServer(t)
	call(t, ts, http.MethodPost, "/api/tasks", map[string]any{"title": "open", "taskListId": "l"})
	call(t, ts, http.MethodPost, "/api/tasks", map[string]any{"title": "done", "taskListId": "l", "isCompleted": true})

	_, r := call(t, ts, http.MethodGet, "/api/tasks?isCompleted=true", nil)
	if got := into[[]store.Task](t, r); len(got) != 1 || got[0].Title != "done" {
		t.Fatalf("isCompleted=true: %+v", got)
	}
	// Anything other than "true" selects incomplete tasks.
	_, r = call(t, ts, http.MethodGet, "/api/tasks?isCompleted=yes", nil)
	if got := into[[]store.Task](t, r); len(got) != 1 || got[0].Title != "open" {
		t.Fatalf("isCompleted=yes: %+v", got)
	}
	_, r = call(t, ts, http.MethodGet, "/api/tasks?taskListId=l", nil)
	if got := into[[]store.Task](t, r); len(got) != 2 {
		t.Fatalf("taskListId: %+v", got)
	}
}

func TestCalendarToggleTwice(t *testing.T) {
	ts := newTestServer(t)
	_, r := call(t, ts, http.MethodPost, "/api/calendars", map[string]any{"name": "Home"})
	c := into[store.Calendar](t, r)

	call(t, ts, http.MethodPatch, "/api/calendars/"+c.ID+"/toggle", nil)
	code, r := call(t, ts, http.MethodPatch, "/api/calendars/"+c.ID+"/toggle", nil)
	if code != http.StatusOK || !into[store.Calendar](t, r).IsVisible {
		t.Fatalf("double toggle: %d %+v", code, r)
	}
}

func TestDuplicateTaskListConflict(t *testing.T) {
	ts := newTestServer(t)
	code, _ := call(t, ts, http.MethodPost, "/api/task-lists", map[string]any{"name": "Chores"})
	if code != http.StatusCreated {
		t.Fatalf("create: %d", code)
	}
	code, r := call(t, ts, http.MethodPost, "/api/task-lists", map[string]any{"name": "Chores"})
	if code != http.StatusBadRequest || r.Error != "Task list with this name already exists" {
		t.Fatalf("duplicate: %d %+v", code, r)
	}
	_, r = call(t, ts, http.MethodGet, "/api/task-lists", nil)
	if got := into[[]store.TaskList](t, r); len(got) != 1 {
		t.Fatalf("duplicate must not be stored, got %d lists", len(got))
	}
}

func TestCascadeAsymmetry(t *testing.T) {
	ts := newTestServer(t)

	_, r := call(t, ts, http.MethodPost, "/api/task-lists", map[string]any{"name": "Chores"})
	list := into[store.TaskList](t, r)
	_, r = call(t, ts, http.MethodPost, "/api/tasks", map[string]any{"title": "Trash", "taskListId": list.ID})
	task := into[store.Task](t, r)

	_, r = call(t, ts, http.MethodPost, "/api/calendars", map[string]any{"name": "Work"})
	cal := into[store.Calendar](t, r)
	_, r = call(t, ts, http.MethodPost, "/api/events", map[string]any{"title": "Standup", "date": "2025-11-03", "calendarId": cal.ID})
	event := into[store.Event](t, r)

	call(t, ts, http.MethodDelete, "/api/task-lists/"+list.ID, nil)
	call(t, ts, http.MethodDelete, "/api/calendars/"+cal.ID, nil)

	if code, _ := call(t, ts, http.MethodGet, "/api/tasks/"+task.ID, nil); code != http.StatusNotFound {
		t.Fatalf("task should be removed with its list, got %d", code)
	}
	if code, _ := call(t, ts, http.MethodGet, "/api/events/"+event.ID, nil); code != http.StatusOK {
		t.Fatalf("event should survive calendar delete, got %d", code)
	}
}

// ============================================================
// Scenarios
// ============================================================

func TestStandupScenario(t *testing.T) {
	ts := newTestServer(t)
	_, r := call(t, ts, http.MethodPost, "/api/calendars", map[string]any{"name": "Work", "color": "#D50000"})
	cal := into[store.Calendar](t, r)
	if cal.Color != "#D50000" {
		t.Fatalf("color not kept: %+v", cal)
	}
	code, _ := call(t, ts, http.MethodPost, "/api/events", map[string]any{
		"title": "Standup", "date": "2025-11-03", "startTime": "10:00am", "endTime": "10:30am", "calendarId": cal.ID,
	})
	if code != http.StatusCreated {
		t.Fatalf("create event: %d", code)
	}
	_, r = call(t, ts, http.MethodGet, "/api/events?date=2025-11-03", nil)
	events := into[[]store.Event](t, r)
	if len(events) != 1 || events[0].StartTime != "10:00am" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestChoresScenario(t *testing.T) {
	ts := newTestServer(t)
	_, r := call(t, ts, http.MethodPost, "/api/task-lists", map[string]any{"name": "Chores"})
	list := into[store.TaskList](t, r)
	_, r = call(t, ts, http.MethodPost, "/api/tasks", map[string]any{"title": "Trash", "taskListId": list.ID, "isCompleted": false})
	task := into[store.Task](t, r)

	_, r = call(t, ts, http.MethodGet, "/api/task-lists/"+list.ID, nil)
	if got := into[store.TaskList](t, r); got.Count != 1 {
		t.Fatalf("expected count 1, got %d", got.Count)
	}
	code, _ := call(t, ts, http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", nil)
	if code != http.StatusOK {
		t.Fatalf("toggle: %d", code)
	}
	_, r = call(t, ts, http.MethodGet, "/api/task-lists/"+list.ID, nil)
	if got := into[store.TaskList](t, r); got.Count != 0 {
		t.Fatalf("expected count 0, got %d", got.Count)
	}
}

func TestServeTCPShutsDownOnCancel(t *testing.T) {
	st, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(Options{Services: service.New(st, logger), Logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeTCP(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ServeTCP: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
