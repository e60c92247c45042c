package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
)

// NotFoundError signale une ressource absente
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidError porte un message lisible et, éventuellement, le détail
// des erreurs de validation champ par champ.
type InvalidError struct {
	Msg     string
	Details any
}

func (e InvalidError) Error() string {
	if e.Msg == "" {
		return ErrInvalidRequest.Error()
	}
	return e.Msg
}

func (e InvalidError) Unwrap() error { return ErrInvalidRequest }

// NotFound construit une NotFoundError
func NotFound(resource, id string) error {
	return NotFoundError{Resource: resource, ID: id}
}

// Invalid construit une InvalidError
func Invalid(msg string, details any) error {
	return InvalidError{Msg: msg, Details: details}
}

// Conflict enveloppe ErrConflict avec un message
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// ValidationDetails retourne le détail porté par une InvalidError, s'il existe
func ValidationDetails(err error) any {
	var target InvalidError
	if errors.As(err, &target) {
		return target.Details
	}
	return nil
}
