package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/sadopc/calendr/internal/store"
	"github.com/sadopc/calendr/internal/view"
)

func sampleSource() Source {
	return Source{
		Items: view.Collections{
			Events: []store.Event{
				{ID: "e1", Title: "Standup", Date: "2025-11-03", StartTime: "10:00am", EndTime: "10:30am", CalendarID: "work", RepeatOption: store.RepeatWeekly},
				{ID: "e2", Title: "Holiday", Date: "2025-11-03", IsAllDay: true, CalendarID: "gone"},
			},
			Tasks: []store.Task{
				{ID: "t1", Title: "Trash", Date: "2025-11-03", Time: "9:00am", TaskListID: "chores", IsCompleted: true},
			},
			Appointments: []store.Appointment{
				{ID: "a1", Title: "Dentist", Date: "2025-11-04", StartTime: "2:00pm", EndTime: "3:00pm", CalendarID: "work"},
			},
		},
		Calendars: []store.Calendar{{ID: "work", Name: "Work"}},
		TaskLists: []store.TaskList{{ID: "chores", Name: "Chores"}},
		Location:  time.UTC,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	if err := ToCSV(sampleSource(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 5 {
		t.Fatalf("expected 5 rows (1 header + 4 data), got %d", len(records))
	}
	if records[0][0] != "Kind" || records[0][6] != "Calendar/List" {
		t.Fatalf("unexpected header %v", records[0])
	}

	// Schedule order: all-day (no time) first, then by start time.
	order := []string{records[1][1], records[2][1], records[3][1], records[4][1]}
	want := []string{"Holiday", "Trash", "Standup", "Dentist"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("row order %v, want %v", order, want)
		}
	}

	if records[1][6] != "Unknown" {
		t.Fatalf("missing calendar should be Unknown, got %q", records[1][6])
	}
	if records[2][0] != "Task" || records[2][6] != "Chores" || records[2][8] != "true" {
		t.Fatalf("unexpected task row %v", records[2])
	}
	if records[3][7] != store.RepeatWeekly {
		t.Fatalf("repeat = %q", records[3][7])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(Source{}, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	src := Source{
		Items: view.Collections{Events: []store.Event{
			{Title: `Lunch "offsite", maybe`, Date: "2025-11-03", CalendarID: "c"},
		}},
		Calendars: []store.Calendar{{ID: "c", Name: `Team "A"`}},
	}
	path := filepath.Join(t.TempDir(), "special.csv")
	if err := ToCSV(src, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][1] != `Lunch "offsite", maybe` || records[1][6] != `Team "A"` {
		t.Fatalf("fields mangled: %v", records[1])
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(Source{}, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	if err := ToJSON(sampleSource(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Count != 4 || len(result.Items) != 4 {
		t.Fatalf("count = %d items = %d, want 4", result.Count, len(result.Items))
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not RFC3339: %q", result.ExportedAt)
	}
	last := result.Items[3]
	if last.Kind != "Appointment" || last.Group != "Work" || last.Start != "2:00pm" || last.End != "3:00pm" {
		t.Fatalf("unexpected last item %+v", last)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(Source{}, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"items": []`) {
		t.Fatalf("empty export should have an empty items array: %s", data)
	}
}

// ============================================================
// iCalendar
// ============================================================

func TestBuildICS(t *testing.T) {
	out := BuildICS(sampleSource()).Serialize()

	parsed, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	events := parsed.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 VEVENTs (2 events + 1 appointment), got %d", len(events))
	}

	if !strings.Contains(out, "SUMMARY:Standup") || !strings.Contains(out, "RRULE:FREQ=WEEKLY") {
		t.Fatalf("missing standup or rule:\n%s", out)
	}
	if !strings.Contains(out, "DTSTART:20251103T100000Z") || !strings.Contains(out, "DTEND:20251103T103000Z") {
		t.Fatalf("unexpected standup span:\n%s", out)
	}
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20251103") {
		t.Fatalf("all-day event should use a DATE value:\n%s", out)
	}
	if strings.Contains(out, "Trash") {
		t.Fatal("tasks should not be exported to iCalendar")
	}
}

func TestICSDefaultsEndToOneHour(t *testing.T) {
	src := Source{
		Items: view.Collections{Appointments: []store.Appointment{
			{ID: "a", Title: "Call", Date: "2025-11-04", StartTime: "11:30pm", EndTime: "9:00am"},
		}},
		Location: time.UTC,
	}
	out := BuildICS(src).Serialize()
	if !strings.Contains(out, "DTEND:20251105T003000Z") {
		t.Fatalf("end should default to one hour after start:\n%s", out)
	}
}

func TestWriteDispatch(t *testing.T) {
	dir := t.TempDir()
	for _, f := range Formats {
		path := filepath.Join(dir, "out."+f.Ext())
		if err := Write(f, sampleSource(), path); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("%s: nothing written", f)
		}
	}
	if FormatICS.String() != "iCalendar" || FormatICS.Ext() != "ics" {
		t.Fatal("unexpected ICS naming")
	}
}
