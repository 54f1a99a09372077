package service

import (
	"errors"
	"fmt"

	"github.com/sadopc/calendr/internal/store"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// ValidationError reports a missing, blank or malformed field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string { return e.Msg }

func (e ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a write that would break a uniqueness rule.
type ConflictError struct {
	Msg string
}

func (e ConflictError) Error() string { return e.Msg }

func (e ConflictError) Unwrap() error { return ErrConflict }

// NotFoundError reports an unknown id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string { return e.Resource + " not found" }

func (e NotFoundError) Unwrap() error { return ErrNotFound }

func required(field, label string) error {
	return ValidationError{Field: field, Msg: label + " is required"}
}

// translate maps store sentinels onto the service taxonomy.
func translate(err error, resource, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return NotFoundError{Resource: resource, ID: id}
	case errors.Is(err, store.ErrDuplicate):
		return ConflictError{Msg: fmt.Sprintf("%s with this name already exists", resource)}
	default:
		return err
	}
}
