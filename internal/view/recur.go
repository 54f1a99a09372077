package view

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/sadopc/calendr/internal/clock"
	"github.com/sadopc/calendr/internal/store"
)

// MaxOccurrences caps how many occurrences one event expands to.
const MaxOccurrences = 500

var rules = map[string]string{
	store.RepeatDaily:   "FREQ=DAILY",
	store.RepeatWeekly:  "FREQ=WEEKLY",
	store.RepeatMonthly: "FREQ=MONTHLY",
	store.RepeatYearly:  "FREQ=YEARLY",
	store.RepeatWeekday: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
}

// Rule returns the RRULE value for a repeat option. "Does not repeat",
// "Custom" and unknown options have none.
func Rule(repeat string) (string, bool) {
	r, ok := rules[repeat]
	return r, ok
}

// Occurrences lists the dates in [from, to] on which e occurs. A
// non-repeating event occurs only on its own date.
func Occurrences(e store.Event, from, to time.Time) ([]time.Time, error) {
	start, ok := clock.ParseDate(e.Date)
	if !ok {
		return nil, nil
	}
	from, to = clock.Day(from), clock.Day(to)

	text, ok := Rule(e.RepeatOption)
	if !ok {
		if start.Before(from) || start.After(to) {
			return nil, nil
		}
		return []time.Time{start}, nil
	}

	r, err := rrule.StrToRRule(text)
	if err != nil {
		return nil, fmt.Errorf("parse rule %q: %w", text, err)
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	dates := set.Between(from, to, true)
	if len(dates) > MaxOccurrences {
		dates = dates[:MaxOccurrences]
	}
	return dates, nil
}

// Expand replaces each repeating event with one copy per occurrence in
// [from, to], each dated on its occurrence. Non-repeating events, tasks and
// appointments pass through unchanged.
func Expand(c Collections, from, to time.Time) (Collections, error) {
	out := Collections{Tasks: c.Tasks, Appointments: c.Appointments}
	for _, e := range c.Events {
		if _, ok := Rule(e.RepeatOption); !ok {
			out.Events = append(out.Events, e)
			continue
		}
		dates, err := Occurrences(e, from, to)
		if err != nil {
			return Collections{}, fmt.Errorf("expand event %s: %w", e.ID, err)
		}
		for _, d := range dates {
			occ := e
			occ.Date = clock.FormatDate(d)
			out.Events = append(out.Events, occ)
		}
	}
	return out, nil
}
