package store

import (
	"context"
	"fmt"
)

// The count subquery is evaluated per row so it always reflects the live
// task table.
const taskListSelect = `SELECT l.id, l.name,
	(SELECT COUNT(*) FROM tasks t WHERE t.task_list_id = l.id AND t.is_completed = 0),
	l.created_at, l.updated_at
	FROM task_lists l`

func scanTaskList(row rowScanner) (*TaskList, error) {
	l := &TaskList{}
	var createdAt, updatedAt string
	if err := row.Scan(&l.ID, &l.Name, &l.Count, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	l.CreatedAt = parseTime(createdAt)
	l.UpdatedAt = parseTime(updatedAt)
	return l, nil
}

// CreateTaskList inserts a list. A name already in use yields ErrDuplicate
// and nothing is written.
func (s *Store) CreateTaskList(ctx context.Context, name string) (*TaskList, error) {
	id := newID()
	ts := formatTime(now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO task_lists (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, ts, ts,
	)
	if err != nil {
		if isUnique(err) {
			return nil, fmt.Errorf("insert task list %q: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("insert task list: %w", err)
	}
	return s.GetTaskList(ctx, id)
}

func (s *Store) GetTaskList(ctx context.Context, id string) (*TaskList, error) {
	l, err := scanTaskList(s.db.QueryRowContext(ctx, taskListSelect+` WHERE l.id = ?`, id))
	if err != nil {
		return nil, notFound(err, "get task list", id)
	}
	return l, nil
}

// ListTaskLists returns all lists in creation order with live counts.
func (s *Store) ListTaskLists(ctx context.Context) ([]TaskList, error) {
	rows, err := s.db.QueryContext(ctx, taskListSelect+` ORDER BY l.created_at, l.rowid`)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	defer rows.Close()

	lists := []TaskList{}
	for rows.Next() {
		l, err := scanTaskList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

func (s *Store) RenameTaskList(ctx context.Context, id, name string) (*TaskList, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE task_lists SET name = ?, updated_at = ? WHERE id = ?`,
		name, formatTime(now()), id,
	)
	if err != nil {
		if isUnique(err) {
			return nil, fmt.Errorf("rename task list %q: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("rename task list: %w", err)
	}
	if err := affected(res, "rename task list", id); err != nil {
		return nil, err
	}
	return s.GetTaskList(ctx, id)
}

// DeleteTaskList removes the list and every task in it within one
// transaction. It returns the number of tasks removed.
func (s *Store) DeleteTaskList(ctx context.Context, id string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete task list: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM task_lists WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete task list: %w", err)
	}
	if err := affected(res, "delete task list", id); err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM tasks WHERE task_list_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete tasks of list %s: %w", id, err)
	}
	removed, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete task list: %w", err)
	}
	return removed, nil
}
