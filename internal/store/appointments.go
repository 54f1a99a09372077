package store

import (
	"context"
	"fmt"
)

const appointmentColumns = `id, calendar_id, title, date, start_time, end_time, created_at, updated_at`

func scanAppointment(row rowScanner) (*Appointment, error) {
	a := &Appointment{}
	var createdAt, updatedAt string
	if err := row.Scan(&a.ID, &a.CalendarID, &a.Title, &a.Date, &a.StartTime, &a.EndTime, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return a, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	a.ID = newID()
	ts := formatTime(now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO appointments (id, calendar_id, title, date, day, start_time, end_time, start_minute, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CalendarID, a.Title, a.Date, dayKey(a.Date), a.StartTime, a.EndTime, startMinute(a.StartTime), ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return s.GetAppointment(ctx, a.ID)
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	a, err := scanAppointment(s.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id,
	))
	if err != nil {
		return nil, notFound(err, "get appointment", id)
	}
	return a, nil
}

func (s *Store) ListAppointments(ctx context.Context, f AppointmentFilter) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
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
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appts := []Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, *a)
	}
	return appts, rows.Err()
}

func (s *Store) UpdateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE appointments SET calendar_id = ?, title = ?, date = ?, day = ?, start_time = ?, end_time = ?,
			start_minute = ?, updated_at = ?
		 WHERE id = ?`,
		a.CalendarID, a.Title, a.Date, dayKey(a.Date), a.StartTime, a.EndTime, startMinute(a.StartTime),
		formatTime(now()), a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if err := affected(res, "update appointment", a.ID); err != nil {
		return nil, err
	}
	return s.GetAppointment(ctx, a.ID)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return affected(res, "delete appointment", id)
}
