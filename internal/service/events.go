package service

import (
	"context"

	"github.com/sadopc/calendr/internal/store"
)

// EventInput is both the create payload and the partial update payload.
// Nil fields are left unchanged.
type EventInput struct {
	Title        *string `json:"title,omitempty"`
	Date         *string `json:"date,omitempty"`
	StartTime    *string `json:"startTime,omitempty"`
	EndTime      *string `json:"endTime,omitempty"`
	IsAllDay     *bool   `json:"isAllDay,omitempty"`
	Guests       *string `json:"guests,omitempty"`
	Location     *string `json:"location,omitempty"`
	Description  *string `json:"description,omitempty"`
	CalendarID   *string `json:"calendarId,omitempty"`
	RepeatOption *string `json:"repeatOption,omitempty"`
}

func (in EventInput) apply(e *store.Event) {
	setString(&e.Title, in.Title)
	setString(&e.Date, in.Date)
	setString(&e.StartTime, in.StartTime)
	setString(&e.EndTime, in.EndTime)
	setBool(&e.IsAllDay, in.IsAllDay)
	setString(&e.Guests, in.Guests)
	setString(&e.Location, in.Location)
	setString(&e.Description, in.Description)
	setString(&e.CalendarID, in.CalendarID)
	setString(&e.RepeatOption, in.RepeatOption)
	if e.RepeatOption == "" {
		e.RepeatOption = store.RepeatNone
	}
}

func validateEvent(e store.Event) error {
	if e.Title == "" {
		return required("title", "Title")
	}
	if err := checkDate("date", "Date", e.Date, false); err != nil {
		return err
	}
	if e.CalendarID == "" {
		return required("calendarId", "Calendar")
	}
	return nil
}

type Events struct {
	store *store.Store
}

func (s *Events) List(ctx context.Context, f store.EventFilter) ([]store.Event, error) {
	return s.store.ListEvents(ctx, f)
}

func (s *Events) Get(ctx context.Context, id string) (*store.Event, error) {
	e, err := s.store.GetEvent(ctx, id)
	return e, translate(err, "Event", id)
}

func (s *Events) Create(ctx context.Context, in EventInput) (*store.Event, error) {
	var e store.Event
	in.apply(&e)
	if err := validateEvent(e); err != nil {
		return nil, err
	}
	return s.store.CreateEvent(ctx, e)
}

func (s *Events) Update(ctx context.Context, id string, in EventInput) (*store.Event, error) {
	e, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, translate(err, "Event", id)
	}
	in.apply(e)
	if err := validateEvent(*e); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateEvent(ctx, *e)
	return updated, translate(err, "Event", id)
}

func (s *Events) Delete(ctx context.Context, id string) error {
	return translate(s.store.DeleteEvent(ctx, id), "Event", id)
}
