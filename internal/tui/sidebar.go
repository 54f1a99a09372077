package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/calendr/internal/service"
	"github.com/sadopc/calendr/internal/state"
	"github.com/sadopc/calendr/internal/store"
	"github.com/sadopc/calendr/internal/view"
)

var calendarColors = []string{"#1A73E8", "#D50000", "#F4511E", "#33B679", "#8E24AA", "#F6BF26", "#039BE5", "#616161"}

const sidebarWidth = 30

type rowKind int

const (
	rowCalendar rowKind = iota
	rowList
	rowTask
)

type sidebarRow struct {
	kind rowKind
	id   string
}

// sidebarModel manages calendars and task lists.
type sidebarModel struct {
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "calendar", "edit_calendar", "list", "edit_list"

	// Form field pointers (survive value copies)
	formName  *string
	formColor *string

	editingID string
}

func newSidebarModel() sidebarModel {
	name, color := "", calendarColors[0]
	return sidebarModel{formName: &name, formColor: &color}
}

// rows lists what the panel shows: calendars, or each task list followed by
// its tasks.
func (m sidebarModel) rows(st state.State) []sidebarRow {
	var out []sidebarRow
	if st.Panel == state.PanelCalendars {
		for _, c := range st.Calendars {
			out = append(out, sidebarRow{kind: rowCalendar, id: c.ID})
		}
		return out
	}
	for _, l := range st.TaskLists {
		out = append(out, sidebarRow{kind: rowList, id: l.ID})
		for _, t := range st.Tasks {
			if t.TaskListID == l.ID {
				out = append(out, sidebarRow{kind: rowTask, id: t.ID})
			}
		}
	}
	return out
}

func (m sidebarModel) current(st state.State) (sidebarRow, bool) {
	rows := m.rows(st)
	if m.cursor < 0 || m.cursor >= len(rows) {
		return sidebarRow{}, false
	}
	return rows[m.cursor], true
}

// clamp keeps the cursor on a row after the collections change.
func (m sidebarModel) clamp(st state.State) sidebarModel {
	n := len(m.rows(st))
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	return m
}

// update handles keys while the sidebar has focus. busy reports that an
// API action was started.
func (m sidebarModel) update(msg tea.Msg, st state.State, act state.Actions) (sidebarModel, tea.Cmd, bool) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg, act)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	rows := m.rows(st)
	row, hasRow := m.current(st)

	switch {
	case key.Matches(kmsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(kmsg, keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(kmsg, keys.New):
		if st.Panel == state.PanelCalendars {
			return m.showCalendarForm(nil)
		}
		return m.showListForm(nil)
	case key.Matches(kmsg, keys.Rename):
		if !hasRow {
			break
		}
		switch row.kind {
		case rowCalendar:
			if c, ok := findCalendar(st, row.id); ok {
				return m.showCalendarForm(&c)
			}
		case rowList:
			if l, ok := findList(st, row.id); ok {
				return m.showListForm(&l)
			}
		}
	case key.Matches(kmsg, keys.Toggle), key.Matches(kmsg, keys.Complete):
		if !hasRow {
			break
		}
		switch row.kind {
		case rowCalendar:
			return m, act.ToggleCalendar(row.id), true
		case rowTask:
			return m, act.ToggleTask(row.id), true
		}
	case key.Matches(kmsg, keys.Edit):
		if hasRow && row.kind == rowTask {
			id := row.id
			return m, func() tea.Msg { return editItemMsg{kind: view.KindTask, id: id} }, false
		}
	case key.Matches(kmsg, keys.Delete):
		if !hasRow {
			break
		}
		switch row.kind {
		case rowCalendar:
			return m, act.DeleteCalendar(row.id), true
		case rowList:
			return m, act.DeleteTaskList(row.id), true
		case rowTask:
			return m, act.DeleteTask(row.id), true
		}
	}
	return m, nil, false
}

func (m sidebarModel) showCalendarForm(existing *store.Calendar) (sidebarModel, tea.Cmd, bool) {
	*m.formName = ""
	*m.formColor = calendarColors[0]
	m.formType = "calendar"
	m.editingID = ""
	if existing != nil {
		*m.formName = existing.Name
		*m.formColor = existing.Color
		m.formType = "edit_calendar"
		m.editingID = existing.ID
	}

	colorOptions := make([]huh.Option[string], len(calendarColors))
	for i, c := range calendarColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", dot(c), c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Calendar Name").Value(m.formName).Validate(requiredName("Calendar name")),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init(), false
}

func (m sidebarModel) showListForm(existing *store.TaskList) (sidebarModel, tea.Cmd, bool) {
	*m.formName = ""
	m.formType = "list"
	m.editingID = ""
	if existing != nil {
		*m.formName = existing.Name
		m.formType = "edit_list"
		m.editingID = existing.ID
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task List Name").Value(m.formName).Validate(requiredName("Task list name")),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init(), false
}

func requiredName(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func (m sidebarModel) updateForm(msg tea.Msg, act state.Actions) (sidebarModel, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil, false
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd, false
	}
	m.formActive = false

	name := strings.TrimSpace(*m.formName)
	color := *m.formColor
	switch m.formType {
	case "calendar":
		return m, act.CreateCalendar(service.CalendarInput{Name: &name, Color: &color}), true
	case "edit_calendar":
		return m, act.UpdateCalendar(m.editingID, service.CalendarInput{Name: &name, Color: &color}), true
	case "list":
		return m, act.CreateTaskList(service.TaskListInput{Name: &name}), true
	case "edit_list":
		return m, act.UpdateTaskList(m.editingID, service.TaskListInput{Name: &name}), true
	}
	return m, nil, false
}

func findCalendar(st state.State, id string) (store.Calendar, bool) {
	for _, c := range st.Calendars {
		if c.ID == id {
			return c, true
		}
	}
	return store.Calendar{}, false
}

func findList(st state.State, id string) (store.TaskList, bool) {
	for _, l := range st.TaskLists {
		if l.ID == id {
			return l, true
		}
	}
	return store.TaskList{}, false
}

func findTask(st state.State, id string) (store.Task, bool) {
	for _, t := range st.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return store.Task{}, false
}

func (m sidebarModel) view(st state.State, focused bool, height int) string {
	style := panelStyle
	if focused {
		style = activePanelStyle
	}

	if m.formActive && m.form != nil {
		title := "New Calendar"
		switch m.formType {
		case "edit_calendar":
			title = "Edit Calendar"
		case "list":
			title = "New Task List"
		case "edit_list":
			title = "Rename Task List"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View())
		return style.Width(sidebarWidth).Render(content)
	}

	calTab, taskTab := inactiveTabStyle.Render("Calendars"), inactiveTabStyle.Render("Tasks")
	if st.Panel == state.PanelCalendars {
		calTab = activeTabStyle.Render("Calendars")
	} else {
		taskTab = activeTabStyle.Render("Tasks")
	}

	var lines []string
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Bottom, calTab, taskTab), "")

	rows := m.rows(st)
	if len(rows) == 0 {
		if st.Panel == state.PanelCalendars {
			lines = append(lines, mutedStyle.Render("No calendars. Press n to add one."))
		} else {
			lines = append(lines, mutedStyle.Render("No task lists. Press n to add one."))
		}
	}
	for i, r := range rows {
		cursor := "  "
		itemStyle := normalItemStyle
		if focused && i == m.cursor {
			cursor = "> "
			itemStyle = selectedItemStyle
		}
		lines = append(lines, cursor+m.renderRow(st, r, itemStyle))
	}

	if focused {
		lines = append(lines, "", mutedStyle.Render("n new  r rename  d delete"), mutedStyle.Render("space toggle  esc back"))
	}
	if height > 2 && len(lines) > height-2 {
		lines = lines[:height-2]
	}
	return style.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m sidebarModel) renderRow(st state.State, r sidebarRow, itemStyle lipgloss.Style) string {
	switch r.kind {
	case rowCalendar:
		c, _ := findCalendar(st, r.id)
		box := "[ ]"
		if c.IsVisible {
			box = "[x]"
		}
		return fmt.Sprintf("%s %s %s", box, dot(c.Color), itemStyle.Render(truncate(c.Name, sidebarWidth-12)))
	case rowList:
		l, _ := findList(st, r.id)
		return itemStyle.Render(truncate(l.Name, sidebarWidth-10)) + mutedStyle.Render(fmt.Sprintf(" (%d)", l.Count))
	default:
		t, _ := findTask(st, r.id)
		box := "○ "
		name := itemStyle.Render(truncate(t.Title, sidebarWidth-10))
		if t.IsCompleted {
			box = successStyle.Render("✓ ")
			name = completedStyle.Render(truncate(t.Title, sidebarWidth-10))
		}
		return "  " + box + name
	}
}
