package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sadopc/calendr/internal/store"
)

type TaskListInput struct {
	Name *string `json:"name,omitempty"`
}

func (in TaskListInput) name() (string, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return "", required("name", "Task list name")
	}
	return strings.TrimSpace(*in.Name), nil
}

type TaskLists struct {
	store *store.Store
	log   *slog.Logger
}

func (s *TaskLists) List(ctx context.Context) ([]store.TaskList, error) {
	return s.store.ListTaskLists(ctx)
}

func (s *TaskLists) Get(ctx context.Context, id string) (*store.TaskList, error) {
	l, err := s.store.GetTaskList(ctx, id)
	return l, translate(err, "Task list", id)
}

func (s *TaskLists) Create(ctx context.Context, in TaskListInput) (*store.TaskList, error) {
	name, err := in.name()
	if err != nil {
		return nil, err
	}
	l, err := s.store.CreateTaskList(ctx, name)
	return l, translate(err, "Task list", "")
}

// Update renames a list. An unknown id is reported before the name is
// checked.
func (s *TaskLists) Update(ctx context.Context, id string, in TaskListInput) (*store.TaskList, error) {
	if _, err := s.store.GetTaskList(ctx, id); err != nil {
		return nil, translate(err, "Task list", id)
	}
	name, err := in.name()
	if err != nil {
		return nil, err
	}
	l, err := s.store.RenameTaskList(ctx, id, name)
	return l, translate(err, "Task list", id)
}

// Delete removes the list together with all of its tasks.
func (s *TaskLists) Delete(ctx context.Context, id string) error {
	removed, err := s.store.DeleteTaskList(ctx, id)
	if err != nil {
		return translate(err, "Task list", id)
	}
	s.log.Info("task list deleted", "id", id, "tasks_removed", removed)
	return nil
}
