package service

import (
	"context"

	"github.com/sadopc/calendr/internal/store"
)

// AppointmentInput is both the create payload and the partial update payload.
type AppointmentInput struct {
	Title      *string `json:"title,omitempty"`
	Date       *string `json:"date,omitempty"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
	CalendarID *string `json:"calendarId,omitempty"`
}

func (in AppointmentInput) apply(a *store.Appointment) {
	setString(&a.Title, in.Title)
	setString(&a.Date, in.Date)
	setString(&a.StartTime, in.StartTime)
	setString(&a.EndTime, in.EndTime)
	setString(&a.CalendarID, in.CalendarID)
}

func validateAppointment(a store.Appointment) error {
	if a.Title == "" {
		return required("title", "Title")
	}
	if err := checkDate("date", "Date", a.Date, false); err != nil {
		return err
	}
	if a.StartTime == "" {
		return required("startTime", "Start time")
	}
	if a.EndTime == "" {
		return required("endTime", "End time")
	}
	if a.CalendarID == "" {
		return required("calendarId", "Calendar")
	}
	return nil
}

type Appointments struct {
	store *store.Store
}

func (s *Appointments) List(ctx context.Context, f store.AppointmentFilter) ([]store.Appointment, error) {
	return s.store.ListAppointments(ctx, f)
}

func (s *Appointments) Get(ctx context.Context, id string) (*store.Appointment, error) {
	a, err := s.store.GetAppointment(ctx, id)
	return a, translate(err, "Appointment", id)
}

func (s *Appointments) Create(ctx context.Context, in AppointmentInput) (*store.Appointment, error) {
	var a store.Appointment
	in.apply(&a)
	if err := validateAppointment(a); err != nil {
		return nil, err
	}
	return s.store.CreateAppointment(ctx, a)
}

func (s *Appointments) Update(ctx context.Context, id string, in AppointmentInput) (*store.Appointment, error) {
	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, translate(err, "Appointment", id)
	}
	in.apply(a)
	if err := validateAppointment(*a); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateAppointment(ctx, *a)
	return updated, translate(err, "Appointment", id)
}

func (s *Appointments) Delete(ctx context.Context, id string) error {
	return translate(s.store.DeleteAppointment(ctx, id), "Appointment", id)
}
