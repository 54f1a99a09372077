// Package export writes the cached calendar items to CSV, JSON or
// iCalendar files.
package export

import (
	"time"

	"github.com/sadopc/calendr/internal/store"
	"github.com/sadopc/calendr/internal/view"
)

// Source is everything an export reads.
type Source struct {
	Items     view.Collections
	Calendars []store.Calendar
	TaskLists []store.TaskList
	// Location places wall-clock times in iCalendar output. Nil means
	// time.Local.
	Location *time.Location
}

type row struct {
	Kind      string
	Title     string
	Date      string
	Start     string
	End       string
	AllDay    bool
	Group     string
	Repeat    string
	Completed bool
}

// rows lists items in schedule order with calendar and list names resolved.
func (s Source) rows() []row {
	cals := make(map[string]string, len(s.Calendars))
	for _, c := range s.Calendars {
		cals[c.ID] = c.Name
	}
	lists := make(map[string]string, len(s.TaskLists))
	for _, l := range s.TaskLists {
		lists[l.ID] = l.Name
	}

	items := view.Flatten(view.Schedule(s.Items))
	out := make([]row, 0, len(items))
	for _, it := range items {
		r := row{
			Kind:      it.Kind.String(),
			Title:     it.Title,
			Date:      it.Date,
			Start:     it.Time,
			End:       it.End,
			AllDay:    it.AllDay,
			Repeat:    it.Repeat,
			Completed: it.Completed,
		}
		if it.Kind == view.KindTask {
			r.Group = lists[it.TaskListID]
		} else {
			r.Group = cals[it.CalendarID]
		}
		if r.Group == "" {
			r.Group = "Unknown"
		}
		out = append(out, r)
	}
	return out
}
