package store

import "time"

const (
	DefaultColor  = "#1A73E8"
	RepeatNone    = "Does not repeat"
	RepeatDaily   = "Daily"
	RepeatWeekly  = "Weekly"
	RepeatMonthly = "Monthly"
	RepeatYearly  = "Annually"
	RepeatWeekday = "Every weekday"
	RepeatCustom  = "Custom"
)

// RepeatOptions lists the recurrence choices offered for events.
var RepeatOptions = []string{
	RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly, RepeatWeekday, RepeatCustom,
}

type Calendar struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsVisible bool      `json:"isVisible"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskList groups tasks. Count is the number of incomplete tasks in the
// list, computed when the row is read.
type TaskList struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime,omitempty"`
	EndTime      string    `json:"endTime,omitempty"`
	IsAllDay     bool      `json:"isAllDay"`
	Guests       string    `json:"guests,omitempty"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description,omitempty"`
	CalendarID   string    `json:"calendarId"`
	RepeatOption string    `json:"repeatOption"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date,omitempty"`
	Time        string    `json:"time,omitempty"`
	Deadline    string    `json:"deadline,omitempty"`
	Description string    `json:"description,omitempty"`
	TaskListID  string    `json:"taskListId"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Appointment struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	CalendarID string    `json:"calendarId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Setting struct {
	Key   string
	Value string
}

// EventFilter narrows ListEvents. Dates compare on the calendar-date
// component; From and To are inclusive.
type EventFilter struct {
	CalendarID *string
	Date       *string
	From       *string
	To         *string
}

// AppointmentFilter narrows ListAppointments.
type AppointmentFilter struct {
	CalendarID *string
	Date       *string
	From       *string
	To         *string
}

// TaskFilter narrows ListTasks.
type TaskFilter struct {
	TaskListID  *string
	IsCompleted *bool
}

// Orphans counts rows whose owning calendar or task list no longer exists.
type Orphans struct {
	Events       int `json:"events"`
	Appointments int `json:"appointments"`
	Tasks        int `json:"tasks"`
}
