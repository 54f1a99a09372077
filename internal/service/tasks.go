package service

import (
	"context"

	"github.com/sadopc/calendr/internal/store"
)

// TaskInput is both the create payload and the partial update payload.
type TaskInput struct {
	Title       *string `json:"title,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Description *string `json:"description,omitempty"`
	TaskListID  *string `json:"taskListId,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

func (in TaskInput) apply(t *store.Task) {
	setString(&t.Title, in.Title)
	setString(&t.Date, in.Date)
	setString(&t.Time, in.Time)
	setString(&t.Deadline, in.Deadline)
	setString(&t.Description, in.Description)
	setString(&t.TaskListID, in.TaskListID)
	setBool(&t.IsCompleted, in.IsCompleted)
}

func validateTask(t store.Task) error {
	if t.Title == "" {
		return required("title", "Title")
	}
	if t.TaskListID == "" {
		return required("taskListId", "Task list")
	}
	if err := checkDate("date", "Date", t.Date, true); err != nil {
		return err
	}
	return checkDate("deadline", "Deadline", t.Deadline, true)
}

type Tasks struct {
	store *store.Store
}

func (s *Tasks) List(ctx context.Context, f store.TaskFilter) ([]store.Task, error) {
	return s.store.ListTasks(ctx, f)
}

func (s *Tasks) Get(ctx context.Context, id string) (*store.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	return t, translate(err, "Task", id)
}

func (s *Tasks) Create(ctx context.Context, in TaskInput) (*store.Task, error) {
	var t store.Task
	in.apply(&t)
	if err := validateTask(t); err != nil {
		return nil, err
	}
	return s.store.CreateTask(ctx, t)
}

func (s *Tasks) Update(ctx context.Context, id string, in TaskInput) (*store.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, translate(err, "Task", id)
	}
	in.apply(t)
	if err := validateTask(*t); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateTask(ctx, *t)
	return updated, translate(err, "Task", id)
}

// Toggle flips the completion flag.
func (s *Tasks) Toggle(ctx context.Context, id string) (*store.Task, error) {
	t, err := s.store.ToggleTask(ctx, id)
	return t, translate(err, "Task", id)
}

func (s *Tasks) Delete(ctx context.Context, id string) error {
	return translate(s.store.DeleteTask(ctx, id), "Task", id)
}
