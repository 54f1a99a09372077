package store

import (
	"context"
	"fmt"
	"time"
)

// Reset empties all five collections in one transaction.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"events", "tasks", "appointments", "calendars", "task_lists"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Seed replaces the contents of the store with a small sample data set.
func (s *Store) Seed(ctx context.Context) error {
	if err := s.Reset(ctx); err != nil {
		return err
	}

	primary, err := s.CreateCalendar(ctx, Calendar{Name: "Dushyant", Color: "#1A73E8", IsVisible: true})
	if err != nil {
		return err
	}
	for _, c := range []Calendar{
		{Name: "Work", Color: "#D50000", IsVisible: true},
		{Name: "Personal", Color: "#F4511E", IsVisible: true},
	} {
		if _, err := s.CreateCalendar(ctx, c); err != nil {
			return err
		}
	}

	list, err := s.CreateTaskList(ctx, "My Tasks")
	if err != nil {
		return err
	}

	events := []Event{
		{
			Title:        "Team Meeting",
			Date:         "2025-11-03",
			StartTime:    "10:00am",
			EndTime:      "11:00am",
			Guests:       "john@example.com, jane@example.com",
			Location:     "Conference Room A",
			Description:  "Weekly team sync meeting",
			CalendarID:   primary.ID,
			RepeatOption: RepeatWeekly,
		},
		{
			Title:        "Project Deadline",
			Date:         "2025-11-05",
			StartTime:    "9:00am",
			EndTime:      "5:00pm",
			IsAllDay:     true,
			CalendarID:   primary.ID,
			RepeatOption: RepeatNone,
		},
	}
	for _, e := range events {
		if _, err := s.CreateEvent(ctx, e); err != nil {
			return err
		}
	}

	tasks := []Task{
		{
			Title:       "Complete presentation",
			Date:        "2025-11-04",
			Time:        "2:00pm",
			Deadline:    "2025-11-04",
			Description: "Finish Q4 presentation slides",
			TaskListID:  list.ID,
		},
		{
			Title:       "Review code",
			Date:        "2025-11-03",
			Time:        "11:00am",
			TaskListID:  list.ID,
			IsCompleted: true,
		},
	}
	for _, t := range tasks {
		if _, err := s.CreateTask(ctx, t); err != nil {
			return err
		}
	}

	if _, err := s.CreateAppointment(ctx, Appointment{
		Title:      "Client Meeting",
		Date:       "2025-11-06",
		StartTime:  "2:00pm",
		EndTime:    "3:00pm",
		CalendarID: primary.ID,
	}); err != nil {
		return err
	}

	return s.SetSetting(ctx, SettingSeededAt, time.Now().UTC().Format(time.RFC3339))
}
