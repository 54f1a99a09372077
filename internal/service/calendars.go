package service

import (
	"context"

	"github.com/sadopc/calendr/internal/store"
)

// CalendarInput is both the create payload and the partial update payload.
type CalendarInput struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	IsVisible *bool   `json:"isVisible,omitempty"`
}

func (in CalendarInput) apply(c *store.Calendar) {
	setString(&c.Name, in.Name)
	setString(&c.Color, in.Color)
	setBool(&c.IsVisible, in.IsVisible)
	if c.Color == "" {
		c.Color = store.DefaultColor
	}
}

type Calendars struct {
	store *store.Store
}

func (s *Calendars) List(ctx context.Context) ([]store.Calendar, error) {
	return s.store.ListCalendars(ctx)
}

func (s *Calendars) Get(ctx context.Context, id string) (*store.Calendar, error) {
	c, err := s.store.GetCalendar(ctx, id)
	return c, translate(err, "Calendar", id)
}

// Create defaults the colour and makes the calendar visible unless the
// payload says otherwise.
func (s *Calendars) Create(ctx context.Context, in CalendarInput) (*store.Calendar, error) {
	c := store.Calendar{IsVisible: true}
	in.apply(&c)
	if c.Name == "" {
		return nil, required("name", "Calendar name")
	}
	return s.store.CreateCalendar(ctx, c)
}

func (s *Calendars) Update(ctx context.Context, id string, in CalendarInput) (*store.Calendar, error) {
	c, err := s.store.GetCalendar(ctx, id)
	if err != nil {
		return nil, translate(err, "Calendar", id)
	}
	in.apply(c)
	if c.Name == "" {
		return nil, required("name", "Calendar name")
	}
	updated, err := s.store.UpdateCalendar(ctx, *c)
	return updated, translate(err, "Calendar", id)
}

// Toggle flips visibility.
func (s *Calendars) Toggle(ctx context.Context, id string) (*store.Calendar, error) {
	c, err := s.store.ToggleCalendar(ctx, id)
	return c, translate(err, "Calendar", id)
}

// Delete removes the calendar only; its events and appointments stay.
func (s *Calendars) Delete(ctx context.Context, id string) error {
	return translate(s.store.DeleteCalendar(ctx, id), "Calendar", id)
}
