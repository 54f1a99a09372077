package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/calendr/internal/clock"
	"github.com/sadopc/calendr/internal/export"
	"github.com/sadopc/calendr/internal/state"
	"github.com/sadopc/calendr/internal/view"
)

// App is the root Bubble Tea model. It owns the client state; every change
// to it happens in Update.
type App struct {
	actions state.Actions
	st      state.State
	now     func() time.Time
	width   int
	height  int

	hour        int // hour cursor in the time-grid views, allDayRow for the all-day strip
	itemIdx     int // selected item within the current cell
	schedCursor int
	pickerDate  time.Time

	focus   focusArea
	sidebar sidebarModel
	dialog  *composer

	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(ctx context.Context, api state.API, v state.View) App {
	h := help.New()
	h.ShowAll = false

	now := time.Now()
	home, _ := os.UserHomeDir()
	return App{
		actions:   state.NewActions(ctx, api),
		st:        state.New(now, v).Begin(),
		now:       time.Now,
		hour:      now.Hour(),
		sidebar:   newSidebarModel(),
		exportDir: home,
		help:      h,
	}
}

func (a App) Init() tea.Cmd {
	return a.actions.LoadAll()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if st, ok := a.st.Apply(msg); ok {
		a.st = st
		a.afterApply(msg)
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case editItemMsg:
		return a.openEdit(msg.kind, msg.id)
	}

	if a.dialog != nil {
		return a.updateDialog(msg)
	}
	if a.focus == focusSidebar && a.sidebar.formActive {
		return a.updateSidebar(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch {
	case a.exportPicking:
		return a.updateExportPicker(kmsg)
	case a.st.PickerOpen:
		return a.updateDatePicker(kmsg)
	case a.focus == focusSidebar:
		if key.Matches(kmsg, keys.Back) {
			a.focus = focusCalendar
			return a, nil
		}
		if key.Matches(kmsg, keys.Panel) {
			a.st = a.st.TogglePanel()
			a.sidebar.cursor = 0
			return a, nil
		}
		return a.updateSidebar(kmsg)
	}
	return a.updateCalendar(kmsg)
}

// afterApply updates the status line and cursors once a result is merged.
func (a *App) afterApply(msg tea.Msg) {
	if a.st.Err != "" {
		a.status = "Error: " + a.st.Err
		a.statusErr = true
	} else if n := state.Notice(msg); n != "" {
		a.status = n
		a.statusErr = false
	}
	a.sidebar = a.sidebar.clamp(a.st)
	a.clampCursors()
}

func (a *App) clampCursors() {
	if n := len(a.cellItems()); a.itemIdx >= n {
		a.itemIdx = max(0, n-1)
	}
	if n := len(a.scheduleItems()); a.schedCursor >= n {
		a.schedCursor = max(0, n-1)
	}
}

func (a App) updateSidebar(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		busy bool
	)
	a.sidebar, cmd, busy = a.sidebar.update(msg, a.st, a.actions)
	if busy {
		a.st = a.st.Begin()
	}
	return a, cmd
}

func (a App) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
	case key.Matches(msg, keys.Export):
		a.exportPicking = true
		a.exportCursor = 0
	case key.Matches(msg, keys.Refresh):
		a.st = a.st.Begin()
		return a, a.actions.LoadAll()

	case key.Matches(msg, keys.View1):
		a = a.setView(state.ViewDay)
	case key.Matches(msg, keys.View2):
		a = a.setView(state.ViewWeek)
	case key.Matches(msg, keys.View3):
		a = a.setView(state.ViewFourDays)
	case key.Matches(msg, keys.View4):
		a = a.setView(state.ViewMonth)
	case key.Matches(msg, keys.View5):
		a = a.setView(state.ViewYear)
	case key.Matches(msg, keys.View6):
		a = a.setView(state.ViewSchedule)
	case key.Matches(msg, keys.Tab):
		a = a.setView(state.Views[(int(a.st.View)+1)%len(state.Views)])

	case key.Matches(msg, keys.Today):
		a.st = a.st.Today(a.now())
		a.itemIdx = 0
	case key.Matches(msg, keys.Prev):
		a.st = a.st.Shift(-1)
		a.itemIdx = 0
	case key.Matches(msg, keys.Next):
		a.st = a.st.Shift(1)
		a.itemIdx = 0
	case key.Matches(msg, keys.Left):
		a = a.moveDays(-1)
	case key.Matches(msg, keys.Right):
		a = a.moveDays(1)
	case key.Matches(msg, keys.Up):
		a = a.moveVertical(-1)
	case key.Matches(msg, keys.Down):
		a = a.moveVertical(1)
	case key.Matches(msg, keys.PrevItem):
		if a.itemIdx > 0 {
			a.itemIdx--
		}
	case key.Matches(msg, keys.NextItem):
		if a.itemIdx < len(a.cellItems())-1 {
			a.itemIdx++
		}

	case key.Matches(msg, keys.Picker):
		a.st = a.st.TogglePicker()
		a.pickerDate = a.st.SelectedDate
	case key.Matches(msg, keys.Sidebar):
		a.st = a.st.ToggleSidebar()
		if a.st.SidebarCollapsed {
			a.focus = focusCalendar
		}
	case key.Matches(msg, keys.Panel):
		a.st = a.st.TogglePanel()
		a.sidebar.cursor = 0
	case key.Matches(msg, keys.Focus):
		if a.st.SidebarCollapsed {
			a.st = a.st.ToggleSidebar()
		}
		a.focus = focusSidebar

	case key.Matches(msg, keys.New):
		return a.openNew()
	case key.Matches(msg, keys.Edit):
		if it, ok := a.selectedItem(); ok {
			return a.openEdit(it.Kind, it.ID)
		}
		return a.openNew()
	case key.Matches(msg, keys.Delete):
		if it, ok := a.selectedItem(); ok {
			a.st = a.st.Begin()
			return a, a.deleteItem(it)
		}
	case key.Matches(msg, keys.Complete):
		if it, ok := a.selectedItem(); ok && it.Kind == view.KindTask {
			a.st = a.st.Begin()
			return a, a.actions.ToggleTask(it.ID)
		}
	}
	return a, nil
}

func (a App) setView(v state.View) App {
	a.st = a.st.SetView(v)
	a.itemIdx = 0
	if v == state.ViewSchedule {
		a.schedCursor = a.firstScheduleIndex()
	}
	return a
}

func (a App) timeGrid() bool {
	switch a.st.View {
	case state.ViewDay, state.ViewWeek, state.ViewFourDays:
		return true
	}
	return false
}

func (a App) moveDays(n int) App {
	if a.st.View == state.ViewSchedule {
		return a
	}
	a.st = a.st.SelectDate(a.st.SelectedDate.AddDate(0, 0, n))
	a.itemIdx = 0
	return a
}

func (a App) moveVertical(n int) App {
	a.itemIdx = 0
	switch {
	case a.timeGrid():
		a.hour = min(23, max(allDayRow, a.hour+n))
	case a.st.View == state.ViewSchedule:
		a.schedCursor = min(max(0, len(a.scheduleItems())-1), max(0, a.schedCursor+n))
	default:
		a.st = a.st.SelectDate(a.st.SelectedDate.AddDate(0, 0, 7*n))
	}
	return a
}

// ---- items under the cursor ----

// span is the date range the current view shows.
func (a App) span() (time.Time, time.Time) {
	sel := a.st.SelectedDate
	switch a.st.View {
	case state.ViewWeek:
		start := view.WeekStart(sel)
		return start, start.AddDate(0, 0, 6)
	case state.ViewFourDays:
		return sel, sel.AddDate(0, 0, 3)
	case state.ViewMonth:
		grid := view.MonthGrid(a.st.ViewDate.Year(), a.st.ViewDate.Month())
		return grid[0].Date, grid[len(grid)-1].Date
	case state.ViewYear:
		y := sel.Year()
		return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC)
	case state.ViewSchedule:
		return sel.AddDate(0, 0, -30), sel.AddDate(0, 0, 90)
	}
	return sel, sel
}

// collections is what the current view renders: visible calendars only,
// with repeating events expanded over the view's span.
func (a App) collections() view.Collections {
	c := a.st.VisibleCollections()
	from, to := a.span()
	expanded, err := view.Expand(c, from, to)
	if err != nil {
		return c
	}
	return expanded
}

func (a App) scheduleItems() []view.Item {
	return view.Flatten(view.Schedule(a.collections()))
}

func (a App) firstScheduleIndex() int {
	key := clock.FormatDate(a.st.SelectedDate)
	for i, it := range a.scheduleItems() {
		if it.Date >= key {
			return i
		}
	}
	return 0
}

// cellItems lists the items of the selected cell.
func (a App) cellItems() []view.Item {
	c := a.collections()
	switch {
	case a.st.View == state.ViewSchedule:
		items := view.Flatten(view.Schedule(c))
		if a.schedCursor < len(items) {
			return items[a.schedCursor : a.schedCursor+1]
		}
		return nil
	case a.timeGrid() && a.hour == allDayRow:
		return view.AllDay(a.st.SelectedDate, c)
	case a.timeGrid():
		return view.ForHour(a.st.SelectedDate, a.hour, c)
	}
	return view.ForDay(a.st.SelectedDate, c)
}

func (a App) selectedItem() (view.Item, bool) {
	items := a.cellItems()
	if a.itemIdx < 0 || a.itemIdx >= len(items) {
		return view.Item{}, false
	}
	return items[a.itemIdx], true
}

func (a App) deleteItem(it view.Item) tea.Cmd {
	switch it.Kind {
	case view.KindTask:
		return a.actions.DeleteTask(it.ID)
	case view.KindAppointment:
		return a.actions.DeleteAppointment(it.ID)
	}
	return a.actions.DeleteEvent(it.ID)
}

// ---- dialog ----

func (a App) openNew() (tea.Model, tea.Cmd) {
	c := newComposer(a.st.SelectedDate, a.st)
	if a.timeGrid() && a.hour != allDayRow {
		c.atSlot(clock.Format(a.hour * 60))
	}
	a.dialog = c
	return a, c.build(a.st)
}

// openEdit opens the dialog on the stored item, not an expanded occurrence.
func (a App) openEdit(kind view.Kind, id string) (tea.Model, tea.Cmd) {
	var c *composer
	switch kind {
	case view.KindEvent:
		for _, e := range a.st.Events {
			if e.ID == id {
				c = editEvent(e, a.st)
			}
		}
	case view.KindTask:
		if t, ok := findTask(a.st, id); ok {
			c = editTask(t, a.st)
		}
	case view.KindAppointment:
		for _, ap := range a.st.Appointments {
			if ap.ID == id {
				c = editAppointment(ap, a.st)
			}
		}
	}
	if c == nil {
		return a, nil
	}
	a.dialog = c
	return a, c.build(a.st)
}

func (a App) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.dialog = nil
		return a, nil
	}

	form, cmd := a.dialog.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.dialog.form = f
	}

	switch a.dialog.form.State {
	case huh.StateAborted:
		a.dialog = nil
		return a, nil
	case huh.StateCompleted:
		c := a.dialog
		a.dialog = nil
		run, err := c.submit(a.actions)
		if err != nil {
			a.status = err.Error()
			a.statusErr = true
			return a, nil
		}
		a.st = a.st.Begin()
		return a, run
	}
	return a, cmd
}

// ---- date picker ----

func (a App) updateDatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		a.pickerDate = a.pickerDate.AddDate(0, 0, -1)
	case key.Matches(msg, keys.Right):
		a.pickerDate = a.pickerDate.AddDate(0, 0, 1)
	case key.Matches(msg, keys.Up):
		a.pickerDate = a.pickerDate.AddDate(0, 0, -7)
	case key.Matches(msg, keys.Down):
		a.pickerDate = a.pickerDate.AddDate(0, 0, 7)
	case key.Matches(msg, keys.Prev):
		a.pickerDate = a.pickerDate.AddDate(0, -1, 0)
	case key.Matches(msg, keys.Next):
		a.pickerDate = a.pickerDate.AddDate(0, 1, 0)
	case key.Matches(msg, keys.Enter):
		a.st = a.st.ClickDate(a.pickerDate)
		a.itemIdx = 0
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Picker):
		a.st = a.st.TogglePicker()
	}
	return a, nil
}

// ---- export ----

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	src := export.Source{
		Items:     a.st.Collections(),
		Calendars: a.st.Calendars,
		TaskLists: a.st.TaskLists,
	}
	dir := a.exportDir
	date := a.now().Format(clock.DateLayout)
	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("calendr-export-%s.%s", date, f.Ext()))
		if err := export.Write(f, src, path); err != nil {
			return statusMsg{text: fmt.Sprintf("%s export error: %v", f, err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

// ---- rendering ----

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	mainWidth := a.width
	var side string
	if !a.st.SidebarCollapsed {
		side = a.sidebar.view(a.st, a.focus == focusSidebar, contentHeight)
		mainWidth -= lipgloss.Width(side)
	}

	var content string
	switch {
	case a.dialog != nil:
		content = a.dialog.view(mainWidth - 4)
	case a.exportPicking:
		content = a.renderExportPicker(mainWidth)
	case a.st.PickerOpen:
		content = a.renderDatePicker(mainWidth)
	default:
		content = a.renderView(mainWidth, contentHeight)
	}
	content = lipgloss.NewStyle().Width(mainWidth).Height(contentHeight).MaxHeight(contentHeight).Render(content)
	if side != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, side, content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for _, v := range state.Views {
		if v == a.st.View {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(v.String()))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("calendr")
	period := subtitleStyle.Render(" " + a.periodLabel())
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, title, period)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, tabRow),
	)
}

// periodLabel names what the current view shows, e.g. "November 2025".
func (a App) periodLabel() string {
	sel := a.st.SelectedDate
	switch a.st.View {
	case state.ViewDay:
		return sel.Format("Monday, January 2, 2006")
	case state.ViewWeek, state.ViewFourDays:
		from, to := a.span()
		if from.Month() == to.Month() {
			return from.Format("January 2006")
		}
		return from.Format("Jan") + " – " + to.Format("Jan 2006")
	case state.ViewMonth:
		return a.st.ViewDate.Format("January 2006")
	case state.ViewYear:
		return sel.Format("2006")
	}
	return "From " + sel.Format("Jan 2, 2006")
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.st.Loading {
		status = warningStyle.Render(" ● loading")
	}
	if a.status != "" {
		if a.statusErr {
			status += errorStyle.Render(" " + a.status)
		} else {
			status += mutedStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker(width int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export Format"), "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.String()))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))
	return activePanelStyle.Width(width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
