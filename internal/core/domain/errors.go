package domain

import "errors"

var (
	// ErrAuthenticationRequired covers every authentication failure: missing
	// header, malformed/expired token, or a subject that no longer resolves
	// to an account. Callers are never told which case occurred.
	ErrAuthenticationRequired = errors.New("authentication required")

	ErrForbidden       = errors.New("access forbidden")
	ErrUserNotFound    = errors.New("user not found")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrVersionMismatch = errors.New("version mismatch")
	ErrInvalidInput    = errors.New("invalid input")
)
