package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or wrong credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidToken indicates a presented token that is unknown, revoked, expired or badly signed.
var ErrInvalidToken = errors.New("invalid token")

// Error pairs one of the sentinel kinds above with a message that is safe to
// return to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// New creates an Error of the given kind.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Message returns the client-facing message carried by err, or fallback when
// err does not carry one.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
