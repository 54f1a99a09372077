package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/calendr/internal/view"
)

type focusArea int

const (
	focusCalendar focusArea = iota
	focusSidebar
)

// allDayRow is the hour cursor position of the all-day strip.
const allDayRow = -1

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// editItemMsg asks the app to open the dialog on an existing item.
type editItemMsg struct {
	kind view.Kind
	id   string
}

// --- Helpers ---

// truncate shortens s to n display cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return "…"
	}
	for len(r) > 0 && lipgloss.Width(string(r)) > n-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// pad right-pads s with spaces to n display cells.
func pad(s string, n int) string {
	w := lipgloss.Width(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}

func hourLabel(h int) string {
	switch {
	case h == allDayRow:
		return "all-day"
	case h == 0:
		return "12am"
	case h < 12:
		return strconv.Itoa(h) + "am"
	case h == 12:
		return "12pm"
	}
	return strconv.Itoa(h-12) + "pm"
}
