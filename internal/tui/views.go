package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/calendr/internal/clock"
	"github.com/sadopc/calendr/internal/state"
	"github.com/sadopc/calendr/internal/view"
)

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (a App) renderView(width, height int) string {
	c := a.collections()
	var body string
	switch a.st.View {
	case state.ViewDay:
		body = a.renderTimeGrid(c, []time.Time{a.st.SelectedDate}, width, height)
	case state.ViewWeek:
		body = a.renderTimeGrid(c, view.Week(a.st.SelectedDate), width, height)
	case state.ViewFourDays:
		body = a.renderTimeGrid(c, view.Days(a.st.SelectedDate, 4), width, height)
	case state.ViewMonth:
		body = a.renderMonth(c, width, height)
	case state.ViewYear:
		body = a.renderYear(c, width, height)
	default:
		body = a.renderSchedule(c, width, height)
	}
	if a.st.View == state.ViewSchedule || a.st.View == state.ViewYear {
		return body
	}
	detail := a.renderDetail(width)
	return lipgloss.JoinVertical(lipgloss.Left, body, detail)
}

// itemColor is the calendar color for events and appointments.
func (a App) itemColor(it view.Item) lipgloss.Color {
	if it.Kind == view.KindTask {
		return colorHighlight
	}
	for _, cal := range a.st.Calendars {
		if cal.ID == it.CalendarID && cal.Color != "" {
			return lipgloss.Color(cal.Color)
		}
	}
	return colorPrimary
}

func (a App) itemLabel(it view.Item, width int) string {
	text := truncate(it.Title, width)
	if it.Kind == view.KindTask && it.Completed {
		return completedStyle.Render(text)
	}
	return lipgloss.NewStyle().Foreground(a.itemColor(it)).Render(text)
}

// cellText renders the first item of a cell plus a count of the rest.
// The selected cell is drawn in reverse video without item colors.
func (a App) cellText(items []view.Item, width int, selected bool) string {
	if selected {
		text := ""
		if len(items) > 0 {
			text = items[0].Title
			if len(items) > 1 {
				text = truncate(text, width-3) + " +" + strconv.Itoa(len(items)-1)
			}
		}
		return selectedDayStyle.Render(pad(truncate(text, width), width))
	}
	if len(items) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(items) == 1 {
		return pad(a.itemLabel(items[0], width), width)
	}
	more := " +" + strconv.Itoa(len(items)-1)
	return pad(a.itemLabel(items[0], width-len(more))+mutedStyle.Render(more), width)
}

func (a App) dayHeading(d time.Time, width int) string {
	label := truncate(d.Format("Mon 2"), width)
	style := subtitleStyle
	switch {
	case d.Equal(a.st.SelectedDate):
		style = selectedDayStyle
	case d.Equal(clock.Day(a.now())):
		style = todayStyle
	}
	return style.Render(pad(label, width))
}

// ---- day, week, 4 days ----

// renderTimeGrid draws the all-day strip and a window of hour rows that
// follows the hour cursor.
func (a App) renderTimeGrid(c view.Collections, days []time.Time, width, height int) string {
	const labelWidth = 8
	colWidth := (width - labelWidth - 2) / len(days)
	colWidth = max(colWidth, 6)

	rows := max(1, height-8)
	first := max(0, a.hour-rows/2)
	if first+rows > 24 {
		first = max(0, 24-rows)
	}

	var lines []string
	head := strings.Repeat(" ", labelWidth)
	for _, d := range days {
		head += a.dayHeading(d, colWidth)
	}
	lines = append(lines, head)

	hours := []int{allDayRow}
	for h := first; h < min(24, first+rows); h++ {
		hours = append(hours, h)
	}
	for _, h := range hours {
		line := hourLabelStyle.Render(hourLabel(h)) + " "
		for _, d := range days {
			var items []view.Item
			if h == allDayRow {
				items = view.AllDay(d, c)
			} else {
				items = view.ForHour(d, h, c)
			}
			selected := h == a.hour && d.Equal(a.st.SelectedDate)
			line += a.cellText(items, colWidth-1, selected) + " "
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ---- month ----

func (a App) renderMonth(c view.Collections, width, height int) string {
	colWidth := max(6, (width-2)/7)
	grid := view.MonthGrid(a.st.ViewDate.Year(), a.st.ViewDate.Month())
	rowHeight := max(1, (height-8)/6-1)
	today := clock.Day(a.now())

	var head string
	for _, n := range weekdayNames {
		head += subtitleStyle.Render(pad(n, colWidth))
	}
	lines := []string{head}

	for w := 0; w < 6; w++ {
		week := grid[w*7 : w*7+7]
		var dates string
		for _, cell := range week {
			num := pad(strconv.Itoa(cell.Date.Day()), colWidth)
			switch {
			case cell.Date.Equal(a.st.SelectedDate):
				num = selectedDayStyle.Render(strconv.Itoa(cell.Date.Day())) + strings.Repeat(" ", colWidth-len(strconv.Itoa(cell.Date.Day())))
			case cell.Date.Equal(today):
				num = todayStyle.Render(num)
			case !cell.InMonth:
				num = outsideMonthStyle.Render(num)
			}
			dates += num
		}
		lines = append(lines, dates)

		for r := 0; r < rowHeight; r++ {
			var line string
			for _, cell := range week {
				items := view.ForDay(cell.Date, c)
				switch {
				case r < len(items) && (r < rowHeight-1 || len(items) == rowHeight):
					line += pad(a.itemLabel(items[r], colWidth-1), colWidth)
				case r == rowHeight-1 && len(items) > rowHeight-1:
					line += pad(mutedStyle.Render(fmt.Sprintf("+%d more", len(items)-r)), colWidth)
				default:
					line += strings.Repeat(" ", colWidth)
				}
			}
			lines = append(lines, line)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ---- year ----

// renderYear draws twelve mini months with busy days marked, and a bar
// chart of item counts per month.
func (a App) renderYear(c view.Collections, width, height int) string {
	year := a.st.SelectedDate.Year()
	months := view.Year(year)
	counts := view.CountsByDate(c)
	today := clock.Day(a.now())

	var minis []string
	for i, grid := range months {
		minis = append(minis, a.renderMini(time.Month(i+1), grid, counts, today))
	}
	perRow := max(1, min(6, width/24))
	var rows []string
	for i := 0; i < len(minis); i += perRow {
		end := min(len(minis), i+perRow)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, minis[i:end]...))
	}
	calendars := lipgloss.JoinVertical(lipgloss.Left, rows...)

	chartHeight := height - lipgloss.Height(calendars) - 2
	if chartHeight < 5 {
		return calendars
	}
	return lipgloss.JoinVertical(lipgloss.Left, calendars, "", a.renderYearChart(year, c, width-4, min(chartHeight, 12)))
}

func (a App) renderMini(month time.Month, grid []view.Cell, counts map[string]int, today time.Time) string {
	var lines []string
	lines = append(lines, titleStyle.Render(month.String()))
	var head string
	for _, n := range weekdayNames {
		head += subtitleStyle.Render(n[:2] + " ")
	}
	lines = append(lines, head)
	for w := 0; w < 6; w++ {
		var line string
		for _, cell := range grid[w*7 : w*7+7] {
			num := fmt.Sprintf("%2d ", cell.Date.Day())
			switch {
			case !cell.InMonth:
				num = "   "
			case cell.Date.Equal(a.st.SelectedDate):
				num = selectedDayStyle.Render(fmt.Sprintf("%2d", cell.Date.Day())) + " "
			case cell.Date.Equal(today):
				num = todayStyle.Render(num)
			case counts[clock.FormatDate(cell.Date)] > 0:
				num = highlightStyle.Render(num)
			}
			line += num
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Padding(0, 1, 1, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a App) renderYearChart(year int, c view.Collections, width, height int) string {
	chart := barchart.New(max(width, 24), height)
	counts := view.CountsByMonth(year, c)
	style := lipgloss.NewStyle().Foreground(colorPrimary)

	var bars []barchart.BarData
	for i, n := range counts {
		bars = append(bars, barchart.BarData{
			Label:  time.Month(i + 1).String()[:3],
			Values: []barchart.BarValue{{Name: "items", Value: float64(n), Style: style}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

// ---- schedule ----

func (a App) renderSchedule(c view.Collections, width, height int) string {
	groups := view.Schedule(c)
	if len(groups) == 0 {
		return mutedStyle.Render("  Nothing scheduled")
	}

	var lines []string
	cursorLine := 0
	idx := 0
	for _, g := range groups {
		d, _ := clock.ParseDate(g.Date)
		lines = append(lines, titleStyle.Render(d.Format("Mon, Jan 2 2006")))
		for _, it := range g.Items {
			prefix := "  "
			style := normalItemStyle
			if idx == a.schedCursor {
				prefix = "> "
				style = selectedItemStyle
				cursorLine = len(lines)
			}
			when := it.Time
			switch {
			case it.AllDay:
				when = "all day"
			case when == "":
				when = "-"
			case it.End != "":
				when += " – " + it.End
			}
			marker := dot(string(a.itemColor(it)))
			title := truncate(it.Title, width-30)
			if it.Kind == view.KindTask && it.Completed {
				title = completedStyle.Render(title)
			} else {
				title = style.Render(title)
			}
			lines = append(lines, prefix+marker+" "+pad(mutedStyle.Render(when), 20)+" "+title)
			idx++
		}
	}

	// Scroll so the cursor stays in view.
	if height > 0 && len(lines) > height {
		start := max(0, cursorLine-height/2)
		end := min(len(lines), start+height)
		lines = lines[start:end]
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ---- detail ----

// renderDetail lists the items of the selected cell.
func (a App) renderDetail(width int) string {
	items := a.cellItems()
	head := a.st.SelectedDate.Format("Monday, January 2")
	if a.timeGrid() {
		head += " · " + hourLabel(a.hour)
	}
	lines := []string{titleStyle.Render(head)}
	if len(items) == 0 {
		lines = append(lines, mutedStyle.Render("  No items  (n: new)"))
	}
	for i, it := range items {
		prefix := "  "
		if i == a.itemIdx {
			prefix = "> "
		}
		when := it.Time
		if it.End != "" {
			when += "–" + it.End
		}
		if it.AllDay {
			when = "all day"
		}
		group := a.st.CalendarName(it.CalendarID)
		if it.Kind == view.KindTask {
			group = a.st.TaskListName(it.TaskListID)
		}
		meta := strings.TrimSpace(fmt.Sprintf("%s · %s %s", it.Kind, when, group))
		if it.Repeat != "" {
			meta += " · " + it.Repeat
		}
		lines = append(lines, prefix+a.itemLabel(it, width/2)+"  "+mutedStyle.Render(meta))
	}
	return panelStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// ---- date picker ----

func (a App) renderDatePicker(width int) string {
	d := a.pickerDate
	grid := view.MonthGrid(d.Year(), d.Month())
	today := clock.Day(a.now())

	var head string
	for _, n := range weekdayNames {
		head += subtitleStyle.Render(n[:2] + " ")
	}
	lines := []string{titleStyle.Render(d.Format("January 2006")), "", head}
	for w := 0; w < 6; w++ {
		var line string
		for _, cell := range grid[w*7 : w*7+7] {
			num := fmt.Sprintf("%2d", cell.Date.Day())
			switch {
			case cell.Date.Equal(d):
				num = selectedDayStyle.Render(num)
			case cell.Date.Equal(today):
				num = todayStyle.Render(num)
			case !cell.InMonth:
				num = outsideMonthStyle.Render(num)
			}
			line += num + " "
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", mutedStyle.Render("arrows: move  [/]: month  enter: go  esc: close"))
	return activePanelStyle.Width(min(width-4, 40)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
