// Package service holds the validation and defaulting rules for the five
// calendar resources. Each service is a thin layer over the store that
// speaks in ValidationError, ConflictError and NotFoundError.
package service

import (
	"log/slog"
	"strings"

	"github.com/sadopc/calendr/internal/clock"
	"github.com/sadopc/calendr/internal/store"
)

// Services bundles one service per resource.
type Services struct {
	Events       *Events
	Tasks        *Tasks
	Appointments *Appointments
	Calendars    *Calendars
	TaskLists    *TaskLists
}

func New(st *store.Store, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	return &Services{
		Events:       &Events{store: st},
		Tasks:        &Tasks{store: st},
		Appointments: &Appointments{store: st},
		Calendars:    &Calendars{store: st},
		TaskLists:    &TaskLists{store: st, log: logger},
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func checkDate(field, label, value string, optional bool) error {
	if value == "" {
		if optional {
			return nil
		}
		return required(field, label)
	}
	if _, ok := clock.DateKey(value); !ok {
		return ValidationError{Field: field, Msg: label + " must be a YYYY-MM-DD date"}
	}
	return nil
}
