package export

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/sadopc/calendr/internal/clock"
	"github.com/sadopc/calendr/internal/view"
)

const productID = "-//calendr//calendr export//EN"

// BuildICS renders events and appointments as VEVENTs. Events without a
// readable start time are written as all-day. Tasks are not included.
func BuildICS(src Source) *ical.Calendar {
	loc := src.Location
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range src.Items.Events {
		ev := cal.AddEvent(e.ID)
		stamp(ev, e.CreatedAt, e.UpdatedAt)
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if rule, ok := view.Rule(e.RepeatOption); ok {
			ev.AddRrule(rule)
		}
		setSpan(ev, e.Date, e.StartTime, e.EndTime, e.IsAllDay, loc)
	}
	for _, a := range src.Items.Appointments {
		ev := cal.AddEvent(a.ID)
		stamp(ev, a.CreatedAt, a.UpdatedAt)
		ev.SetSummary(a.Title)
		setSpan(ev, a.Date, a.StartTime, a.EndTime, false, loc)
	}
	return cal
}

func stamp(ev *ical.VEvent, created, updated time.Time) {
	if !updated.IsZero() {
		ev.SetDtStampTime(updated)
		ev.SetModifiedAt(updated)
	} else {
		ev.SetDtStampTime(time.Now())
	}
	if !created.IsZero() {
		ev.SetCreatedTime(created)
	}
}

// setSpan writes DTSTART/DTEND. A missing or non-positive end becomes one
// hour after the start.
func setSpan(ev *ical.VEvent, date, start, end string, allDay bool, loc *time.Location) {
	day, ok := clock.ParseDate(date)
	if !ok {
		return
	}
	startMin, ok := clock.Minutes(start)
	if allDay || !ok {
		d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		ev.SetAllDayStartAt(d)
		ev.SetAllDayEndAt(d.AddDate(0, 0, 1))
		return
	}

	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	from := base.Add(time.Duration(startMin) * time.Minute)
	to := from.Add(time.Hour)
	if endMin, ok := clock.Minutes(end); ok && endMin > startMin {
		to = base.Add(time.Duration(endMin) * time.Minute)
	}
	ev.SetStartAt(from)
	ev.SetEndAt(to)
}

func ToICS(src Source, path string) error {
	data := BuildICS(src).Serialize()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write ics file: %w", err)
	}
	return nil
}

// Format is an export target offered in the client.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatICS
)

// Formats lists the targets in picker order.
var Formats = []Format{FormatCSV, FormatJSON, FormatICS}

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatJSON:
		return "JSON"
	case FormatICS:
		return "iCalendar"
	}
	return "Unknown"
}

func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatICS:
		return "ics"
	}
	return "csv"
}

// Write exports src to path in format f.
func Write(f Format, src Source, path string) error {
	switch f {
	case FormatCSV:
		return ToCSV(src, path)
	case FormatJSON:
		return ToJSON(src, path)
	case FormatICS:
		return ToICS(src, path)
	}
	return fmt.Errorf("unknown export format %d", f)
}
