package store

import (
	"context"
	"fmt"
	"time"
)

// Checkpoint folds the WAL back into the main database file.
func (s *Store) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}

// FindOrphans counts events and appointments whose calendar is gone and
// tasks whose list is gone. Nothing is removed.
func (s *Store) FindOrphans(ctx context.Context) (Orphans, error) {
	var o Orphans
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM events e WHERE NOT EXISTS (SELECT 1 FROM calendars c WHERE c.id = e.calendar_id)),
			(SELECT COUNT(*) FROM appointments a WHERE NOT EXISTS (SELECT 1 FROM calendars c WHERE c.id = a.calendar_id)),
			(SELECT COUNT(*) FROM tasks t WHERE NOT EXISTS (SELECT 1 FROM task_lists l WHERE l.id = t.task_list_id))`,
	).Scan(&o.Events, &o.Appointments, &o.Tasks)
	if err != nil {
		return Orphans{}, fmt.Errorf("find orphans: %w", err)
	}
	return o, nil
}

// Maintain runs a checkpoint, counts orphans and records when it ran.
func (s *Store) Maintain(ctx context.Context) (Orphans, error) {
	if err := s.Checkpoint(ctx); err != nil {
		return Orphans{}, err
	}
	o, err := s.FindOrphans(ctx)
	if err != nil {
		return Orphans{}, err
	}
	if err := s.SetSetting(ctx, SettingLastMaintenance, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return Orphans{}, err
	}
	return o, nil
}
