package view

import (
	"sort"
)

// Group is one date header of the schedule with its items.
type Group struct {
	Date  string
	Items []Item
}

// Schedule flattens all items, sorts them by date then start time, and
// groups consecutive items of the same date. Times compare as minutes of
// day; items without a readable time sort first within their date.
func Schedule(c Collections) []Group {
	items := c.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return lessItem(items[i], items[j])
	})

	var groups []Group
	for _, it := range items {
		if n := len(groups); n > 0 && groups[n-1].Date == it.Date {
			groups[n-1].Items = append(groups[n-1].Items, it)
			continue
		}
		groups = append(groups, Group{Date: it.Date, Items: []Item{it}})
	}
	return groups
}

func lessItem(a, b Item) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	am, aok := a.Minutes()
	bm, bok := b.Minutes()
	switch {
	case aok && bok && am != bm:
		return am < bm
	case aok != bok:
		return !aok
	}
	return a.Time < b.Time
}

// Flatten returns the schedule items in order without the grouping.
func Flatten(groups []Group) []Item {
	var out []Item
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}
