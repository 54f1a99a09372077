package store

import (
	"context"
	"fmt"
)

const calendarColumns = `id, name, color, is_visible, created_at, updated_at`

func scanCalendar(row rowScanner) (*Calendar, error) {
	c := &Calendar{}
	var createdAt, updatedAt string
	var visible int
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &visible, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.IsVisible = visible == 1
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}

// CreateCalendar inserts c under a fresh id and returns the stored row.
func (s *Store) CreateCalendar(ctx context.Context, c Calendar) (*Calendar, error) {
	if c.Color == "" {
		c.Color = DefaultColor
	}
	c.ID = newID()
	ts := formatTime(now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calendars (id, name, color, is_visible, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, boolInt(c.IsVisible), ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert calendar: %w", err)
	}
	return s.GetCalendar(ctx, c.ID)
}

func (s *Store) GetCalendar(ctx context.Context, id string) (*Calendar, error) {
	c, err := scanCalendar(s.db.QueryRowContext(ctx,
		`SELECT `+calendarColumns+` FROM calendars WHERE id = ?`, id,
	))
	if err != nil {
		return nil, notFound(err, "get calendar", id)
	}
	return c, nil
}

// ListCalendars returns all calendars in creation order.
func (s *Store) ListCalendars(ctx context.Context) ([]Calendar, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+calendarColumns+` FROM calendars ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	defer rows.Close()

	calendars := []Calendar{}
	for rows.Next() {
		c, err := scanCalendar(rows)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, *c)
	}
	return calendars, rows.Err()
}

// UpdateCalendar overwrites the mutable fields of the calendar c.ID.
func (s *Store) UpdateCalendar(ctx context.Context, c Calendar) (*Calendar, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE calendars SET name = ?, color = ?, is_visible = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Color, boolInt(c.IsVisible), formatTime(now()), c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update calendar: %w", err)
	}
	if err := affected(res, "update calendar", c.ID); err != nil {
		return nil, err
	}
	return s.GetCalendar(ctx, c.ID)
}

// ToggleCalendar flips is_visible in a single statement.
func (s *Store) ToggleCalendar(ctx context.Context, id string) (*Calendar, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE calendars SET is_visible = 1 - is_visible, updated_at = ? WHERE id = ?`,
		formatTime(now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle calendar: %w", err)
	}
	if err := affected(res, "toggle calendar", id); err != nil {
		return nil, err
	}
	return s.GetCalendar(ctx, id)
}

// DeleteCalendar removes only the calendar row. Events and appointments that
// reference it are left in place.
func (s *Store) DeleteCalendar(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calendars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete calendar: %w", err)
	}
	return affected(res, "delete calendar", id)
}
