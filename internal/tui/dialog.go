package tui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/calendr/internal/clock"
	"github.com/sadopc/calendr/internal/service"
	"github.com/sadopc/calendr/internal/state"
	"github.com/sadopc/calendr/internal/store"
)

const (
	modeEvent       = "Event"
	modeTask        = "Task"
	modeAppointment = "Appointment"

	defaultEventStart = "1:00pm"
	defaultEventEnd   = "2:00pm"
	defaultApptStart  = "11:30am"
	defaultApptEnd    = "12:30pm"
	defaultTaskTime   = "11:30am"

	// lastMinute closes the day when no slot is left after a start time.
	lastMinute = 1439
)

var (
	errTitleRequired    = errors.New("Please enter a title")
	errCalendarRequired = errors.New("Please select a calendar")
	errListRequired     = errors.New("Please select a task list")
	errEndBeforeStart   = errors.New("End time must be after start time")
)

var dialogModes = []string{modeEvent, modeTask, modeAppointment}

type eventFields struct {
	date, start, end string
	allDay           bool
	guests, location string
	description      string
	calendarID       string
	repeat           string
}

type taskFields struct {
	date, time, deadline string
	description          string
	taskListID           string
}

type apptFields struct {
	date, start, end string
	calendarID       string
}

// composer is the state of the create/edit dialog. Each mode keeps its own
// fields, so switching modes loses nothing. It is held by pointer so the
// form can bind to its fields.
type composer struct {
	mode    string
	editing bool
	editID  string

	title string
	event eventFields
	task  taskFields
	appt  apptFields

	form *huh.Form
}

// newComposer opens the dialog for a new item on day. The first calendar and
// task list are preselected.
func newComposer(day time.Time, st state.State) *composer {
	key := clock.FormatDate(day)
	c := &composer{
		mode: modeEvent,
		event: eventFields{
			date:   key,
			start:  defaultEventStart,
			end:    defaultEventEnd,
			repeat: store.RepeatNone,
		},
		task: taskFields{date: key, time: defaultTaskTime},
		appt: apptFields{date: key, start: defaultApptStart, end: defaultApptEnd},
	}
	if len(st.Calendars) > 0 {
		c.event.calendarID = st.Calendars[0].ID
		c.appt.calendarID = st.Calendars[0].ID
	}
	if len(st.TaskLists) > 0 {
		c.task.taskListID = st.TaskLists[0].ID
	}
	return c
}

// atSlot opens at a time slot: the start is the slot and the end an hour
// later, in every mode that has times.
func (c *composer) atSlot(start string) *composer {
	end := slotAfter(start, 2)
	c.event.start, c.event.end = start, end
	c.appt.start, c.appt.end = start, end
	c.task.time = start
	return c
}

// slotAfter advances n slots, closing the day when the slots run out. A
// start between slots counts from the slot it falls in.
func slotAfter(start string, n int) string {
	if next, ok := clock.Advance(start, n); ok {
		return next
	}
	m, ok := clock.Minutes(start)
	if !ok {
		return clock.Format(lastMinute)
	}
	for ; n > 0; n-- {
		if next := (m/clock.SlotMinutes + n) * clock.SlotMinutes; next < 1440 {
			return clock.Format(next)
		}
	}
	return clock.Format(lastMinute)
}

func editEvent(e store.Event, st state.State) *composer {
	c := newComposer(time.Now(), st)
	c.mode, c.editing, c.editID = modeEvent, true, e.ID
	c.title = e.Title
	key, _ := clock.DateKey(e.Date)
	c.event = eventFields{
		date:        key,
		start:       e.StartTime,
		end:         e.EndTime,
		allDay:      e.IsAllDay,
		guests:      e.Guests,
		location:    e.Location,
		description: e.Description,
		calendarID:  e.CalendarID,
		repeat:      e.RepeatOption,
	}
	return c
}

func editTask(t store.Task, st state.State) *composer {
	c := newComposer(time.Now(), st)
	c.mode, c.editing, c.editID = modeTask, true, t.ID
	c.title = t.Title
	date, _ := clock.DateKey(t.Date)
	deadline, _ := clock.DateKey(t.Deadline)
	c.task = taskFields{
		date:        date,
		time:        t.Time,
		deadline:    deadline,
		description: t.Description,
		taskListID:  t.TaskListID,
	}
	return c
}

func editAppointment(a store.Appointment, st state.State) *composer {
	c := newComposer(time.Now(), st)
	c.mode, c.editing, c.editID = modeAppointment, true, a.ID
	c.title = a.Title
	key, _ := clock.DateKey(a.Date)
	c.appt = apptFields{date: key, start: a.StartTime, end: a.EndTime, calendarID: a.CalendarID}
	return c
}

// times returns the start and end of the active mode, if it has them.
func (c *composer) times() (start, end *string) {
	switch c.mode {
	case modeEvent:
		return &c.event.start, &c.event.end
	case modeAppointment:
		return &c.appt.start, &c.appt.end
	}
	return nil, nil
}

// setStart changes the start time. An end that is no longer after the new
// start moves to the next slot; an empty start or end leaves the end alone.
func (c *composer) setStart(s string) {
	start, end := c.times()
	if start == nil {
		return
	}
	*start = s
	if _, ok := clock.Minutes(s); ok && *end != "" && !after(*end, s) {
		*end = slotAfter(s, 1)
	}
}

// setEnd changes the end time, refusing one that is not after the start.
// Either time may be empty.
func (c *composer) setEnd(s string) error {
	start, end := c.times()
	if end == nil {
		return nil
	}
	if !ordered(*start, s) {
		return errEndBeforeStart
	}
	*end = s
	return nil
}

// ordered reports whether end may follow start.
func ordered(start, end string) bool {
	return start == "" || end == "" || after(end, start)
}

// after reports whether a is strictly later than b. Unreadable times never
// are.
func after(a, b string) bool {
	am, aok := clock.Minutes(a)
	bm, bok := clock.Minutes(b)
	return aok && bok && am > bm
}

func (c *composer) validate() error {
	if strings.TrimSpace(c.title) == "" {
		return errTitleRequired
	}
	switch c.mode {
	case modeEvent:
		if c.event.calendarID == "" {
			return errCalendarRequired
		}
	case modeAppointment:
		if c.appt.calendarID == "" {
			return errCalendarRequired
		}
	case modeTask:
		if c.task.taskListID == "" {
			return errListRequired
		}
	}
	return nil
}

func (c *composer) eventInput() service.EventInput {
	e := c.event
	in := service.EventInput{
		Title:        strPtr(c.title),
		Date:         strPtr(e.date),
		IsAllDay:     &e.allDay,
		Guests:       strPtr(e.guests),
		Location:     strPtr(e.location),
		Description:  strPtr(e.description),
		CalendarID:   strPtr(e.calendarID),
		RepeatOption: strPtr(e.repeat),
	}
	if !e.allDay {
		in.StartTime = strPtr(e.start)
		in.EndTime = strPtr(e.end)
	}
	return in
}

func (c *composer) taskInput() service.TaskInput {
	t := c.task
	return service.TaskInput{
		Title:       strPtr(c.title),
		Date:        strPtr(t.date),
		Time:        strPtr(t.time),
		Deadline:    strPtr(t.deadline),
		Description: strPtr(t.description),
		TaskListID:  strPtr(t.taskListID),
	}
}

func (c *composer) appointmentInput() service.AppointmentInput {
	a := c.appt
	return service.AppointmentInput{
		Title:      strPtr(c.title),
		Date:       strPtr(a.date),
		StartTime:  strPtr(a.start),
		EndTime:    strPtr(a.end),
		CalendarID: strPtr(a.calendarID),
	}
}

// submit validates and returns the create or update command for the mode.
func (c *composer) submit(act state.Actions) (tea.Cmd, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if start, end := c.times(); start != nil && !ordered(*start, *end) {
		if c.mode == modeAppointment || !c.event.allDay {
			return nil, errEndBeforeStart
		}
	}

	switch c.mode {
	case modeTask:
		if c.editing {
			return act.UpdateTask(c.editID, c.taskInput()), nil
		}
		return act.CreateTask(c.taskInput()), nil
	case modeAppointment:
		if c.editing {
			return act.UpdateAppointment(c.editID, c.appointmentInput()), nil
		}
		return act.CreateAppointment(c.appointmentInput()), nil
	default:
		if c.editing {
			return act.UpdateEvent(c.editID, c.eventInput()), nil
		}
		return act.CreateEvent(c.eventInput()), nil
	}
}

func strPtr(s string) *string { return &s }

// ---- form ----

const noTime = "No time"

// slotOptions lists the slots after the given time. current is the bound
// value; a huh select overwrites a value it has no option for, so a stored
// time between slots, or no time at all, gets an option of its own.
func slotOptions(after, current string) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, s := range clock.Slots() {
		if after == "" || afterSlot(s, after) {
			opts = append(opts, huh.NewOption(s, s))
		}
	}
	if len(opts) == 0 {
		last := clock.Format(lastMinute)
		opts = append(opts, huh.NewOption(last, last))
	}
	if current != "" && after != "" && !afterSlot(current, after) {
		return opts
	}
	return withCurrent(opts, current)
}

// withCurrent inserts current in time order unless an option already holds it.
func withCurrent(opts []huh.Option[string], current string) []huh.Option[string] {
	for _, o := range opts {
		if o.Value == current {
			return opts
		}
	}
	if current == "" {
		return append([]huh.Option[string]{huh.NewOption(noTime, "")}, opts...)
	}
	at := 0
	if m, ok := clock.Minutes(current); ok {
		for at < len(opts) {
			if om, ok := clock.Minutes(opts[at].Value); ok && om > m {
				break
			}
			at++
		}
	}
	out := make([]huh.Option[string], 0, len(opts)+1)
	out = append(out, opts[:at]...)
	out = append(out, huh.NewOption(current, current))
	return append(out, opts[at:]...)
}

func taskTimeOptions(current string) []huh.Option[string] {
	opts := slotOptions("", current)
	if opts[0].Value == "" {
		return opts
	}
	return append([]huh.Option[string]{huh.NewOption(noTime, "")}, opts...)
}

func afterSlot(s, start string) bool {
	if _, ok := clock.Minutes(start); !ok {
		return true
	}
	return after(s, start)
}

func validDate(optional bool) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			if optional {
				return nil
			}
			return errors.New("Date is required")
		}
		if _, ok := clock.DateKey(strings.TrimSpace(s)); !ok {
			return errors.New("Use YYYY-MM-DD")
		}
		return nil
	}
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errTitleRequired
	}
	return nil
}

func calendarOptions(st state.State) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(st.Calendars))
	for _, cal := range st.Calendars {
		opts = append(opts, huh.NewOption(dot(cal.Color)+" "+cal.Name, cal.ID))
	}
	return opts
}

func taskListOptions(st state.State) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(st.TaskLists))
	for _, l := range st.TaskLists {
		opts = append(opts, huh.NewOption(l.Name, l.ID))
	}
	return opts
}

// build creates the huh form. The end-time choices are recomputed from the
// start, so an end at or before the start cannot be picked and a start
// change that passes the end moves it to the next slot.
func (c *composer) build(st state.State) tea.Cmd {
	repeatOpts := huh.NewOptions(store.RepeatOptions...)

	title := func() *huh.Input {
		return huh.NewInput().Title("Title").Placeholder("Add title").Value(&c.title).Validate(nonEmpty)
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Type").Options(huh.NewOptions(dialogModes...)...).Value(&c.mode),
		).WithHideFunc(func() bool { return c.editing }),

		huh.NewGroup(
			title(),
			huh.NewInput().Title("Date").Value(&c.event.date).Validate(validDate(false)),
			huh.NewConfirm().Title("All day").Value(&c.event.allDay),
			huh.NewSelect[string]().Title("Start").Options(slotOptions("", c.event.start)...).Value(&c.event.start).Height(6).
				Validate(func(s string) error { c.setStart(s); return nil }),
			huh.NewSelect[string]().Title("End").
				OptionsFunc(func() []huh.Option[string] { return slotOptions(c.event.start, c.event.end) }, &c.event.start).
				Value(&c.event.end).Height(6).
				Validate(func(s string) error {
					if c.event.allDay {
						return nil
					}
					return c.setEnd(s)
				}),
			huh.NewInput().Title("Guests").Value(&c.event.guests),
			huh.NewInput().Title("Location").Value(&c.event.location),
			huh.NewText().Title("Description").Value(&c.event.description).Lines(3),
			huh.NewSelect[string]().Title("Calendar").Options(calendarOptions(st)...).Value(&c.event.calendarID),
			huh.NewSelect[string]().Title("Repeat").Options(repeatOpts...).Value(&c.event.repeat),
		).WithHideFunc(func() bool { return c.mode != modeEvent }),

		huh.NewGroup(
			title(),
			huh.NewInput().Title("Date").Value(&c.task.date).Validate(validDate(true)),
			huh.NewSelect[string]().Title("Time").Options(taskTimeOptions(c.task.time)...).Value(&c.task.time).Height(6),
			huh.NewInput().Title("Deadline").Value(&c.task.deadline).Validate(validDate(true)),
			huh.NewText().Title("Description").Value(&c.task.description).Lines(3),
			huh.NewSelect[string]().Title("List").Options(taskListOptions(st)...).Value(&c.task.taskListID),
		).WithHideFunc(func() bool { return c.mode != modeTask }),

		huh.NewGroup(
			title(),
			huh.NewInput().Title("Date").Value(&c.appt.date).Validate(validDate(false)),
			huh.NewSelect[string]().Title("Start").Options(slotOptions("", c.appt.start)...).Value(&c.appt.start).Height(6).
				Validate(func(s string) error { c.setStart(s); return nil }),
			huh.NewSelect[string]().Title("End").
				OptionsFunc(func() []huh.Option[string] { return slotOptions(c.appt.start, c.appt.end) }, &c.appt.start).
				Value(&c.appt.end).Height(6).
				Validate(c.setEnd),
			huh.NewSelect[string]().Title("Calendar").Options(calendarOptions(st)...).Value(&c.appt.calendarID),
		).WithHideFunc(func() bool { return c.mode != modeAppointment }),
	).WithShowHelp(true).WithShowErrors(true)

	return c.form.Init()
}

func (c *composer) heading() string {
	verb := "New"
	if c.editing {
		verb = "Edit"
	}
	return verb + " " + strings.ToLower(c.mode)
}

func (c *composer) view(width int) string {
	if c.form == nil {
		return ""
	}
	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(c.heading()), "", c.form.View())
	return activePanelStyle.Width(width).Render(content)
}
