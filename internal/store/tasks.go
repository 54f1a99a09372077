package store

import (
	"context"
	"fmt"
)

const taskColumns = `id, task_list_id, title, date, time, deadline, description, is_completed, created_at, updated_at`

func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var createdAt, updatedAt string
	var completed int
	err := row.Scan(&t.ID, &t.TaskListID, &t.Title, &t.Date, &t.Time, &t.Deadline, &t.Description,
		&completed, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.IsCompleted = completed == 1
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, t Task) (*Task, error) {
	t.ID = newID()
	ts := formatTime(now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, task_list_id, title, date, day, time, start_minute, deadline, description,
			is_completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.TaskListID, t.Title, t.Date, dayKey(t.Date), t.Time, startMinute(t.Time), t.Deadline,
		t.Description, boolInt(t.IsCompleted), ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(ctx, t.ID)
}

func (s *Store) GetTask(ctx context.Context, id string) (*Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "get task", id)
	}
	return t, nil
}

// ListTasks returns matching tasks; undated tasks sort first.
func (s *Store) ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	var args []any

	if f.TaskListID != nil {
		query += ` AND task_list_id = ?`
		args = append(args, *f.TaskListID)
	}
	if f.IsCompleted != nil {
		query += ` AND is_completed = ?`
		args = append(args, boolInt(*f.IsCompleted))
	}
	query += ` ORDER BY day, start_minute, created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(ctx context.Context, t Task) (*Task, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET task_list_id = ?, title = ?, date = ?, day = ?, time = ?, start_minute = ?,
			deadline = ?, description = ?, is_completed = ?, updated_at = ?
		 WHERE id = ?`,
		t.TaskListID, t.Title, t.Date, dayKey(t.Date), t.Time, startMinute(t.Time),
		t.Deadline, t.Description, boolInt(t.IsCompleted), formatTime(now()), t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if err := affected(res, "update task", t.ID); err != nil {
		return nil, err
	}
	return s.GetTask(ctx, t.ID)
}

// ToggleTask flips is_completed in a single statement.
func (s *Store) ToggleTask(ctx context.Context, id string) (*Task, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET is_completed = 1 - is_completed, updated_at = ? WHERE id = ?`,
		formatTime(now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	if err := affected(res, "toggle task", id); err != nil {
		return nil, err
	}
	return s.GetTask(ctx, id)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return affected(res, "delete task", id)
}
