package model

import "errors"

// Sentinel errors shared by every usecase. Wrap them with fmt.Errorf("...: %w") to add context;
// the HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
)
