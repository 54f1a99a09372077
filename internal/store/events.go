package store

import (
	"context"
	"fmt"

	"github.com/sadopc/calendr/internal/clock"
)

const eventColumns = `id, calendar_id, title, date, start_time, end_time, is_all_day,
	guests, location, description, repeat_option, created_at, updated_at`

func scanEvent(row rowScanner) (*Event, error) {
	e := &Event{}
	var createdAt, updatedAt string
	var allDay int
	err := row.Scan(&e.ID, &e.CalendarID, &e.Title, &e.Date, &e.StartTime, &e.EndTime, &allDay,
		&e.Guests, &e.Location, &e.Description, &e.RepeatOption, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.IsAllDay = allDay == 1
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

// dayKey is the sortable calendar date stored beside the raw date string.
func dayKey(date string) string {
	if key, ok := clock.DateKey(date); ok {
		return key
	}
	return date
}

// startMinute orders rows numerically by time of day; untimed rows get -1.
func startMinute(t string) int {
	if m, ok := clock.Minutes(t); ok {
		return m
	}
	return -1
}

func (s *Store) CreateEvent(ctx context.Context, e Event) (*Event, error) {
	if e.RepeatOption == "" {
		e.RepeatOption = RepeatNone
	}
	e.ID = newID()
	ts := formatTime(now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, calendar_id, title, date, day, start_time, end_time, start_minute, is_all_day,
			guests, location, description, repeat_option, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CalendarID, e.Title, e.Date, dayKey(e.Date), e.StartTime, e.EndTime, startMinute(e.StartTime),
		boolInt(e.IsAllDay), e.Guests, e.Location, e.Description, e.RepeatOption, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return s.GetEvent(ctx, e.ID)
}

func (s *Store) GetEvent(ctx context.Context, id string) (*Event, error) {
	e, err := scanEvent(s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "get event", id)
	}
	return e, nil
}

// ListEvents returns matching events ordered by date, then start time, then
// creation.
func (s *Store) ListEvents(ctx context.Context, f EventFilter) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	var args []any

	if f.CalendarID != nil {
		query += ` AND calendar_id = ?`
		args = append(args, *f.CalendarID)
	}
	if f.Date != nil {
		query += ` AND day = ?`
		args = append(args, dayKey(*f.Date))
	}
	if f.From != nil {
		query += ` AND day >= ?`
		args = append(args, dayKey(*f.From))
	}
	if f.To != nil {
		query += ` AND day <= ?`
		args = append(args, dayKey(*f.To))
	}
	query += ` ORDER BY day, start_minute, created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// UpdateEvent overwrites every mutable field of the event e.ID.
func (s *Store) UpdateEvent(ctx context.Context, e Event) (*Event, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET calendar_id = ?, title = ?, date = ?, day = ?, start_time = ?, end_time = ?,
			start_minute = ?, is_all_day = ?, guests = ?, location = ?, description = ?, repeat_option = ?,
			updated_at = ?
		 WHERE id = ?`,
		e.CalendarID, e.Title, e.Date, dayKey(e.Date), e.StartTime, e.EndTime,
		startMinute(e.StartTime), boolInt(e.IsAllDay), e.Guests, e.Location, e.Description, e.RepeatOption,
		formatTime(now()), e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if err := affected(res, "update event", e.ID); err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, e.ID)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return affected(res, "delete event", id)
}
