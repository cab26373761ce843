package service

import "errors"

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotRegistered is returned by login for an unknown email.
	ErrUserNotRegistered = errors.New("email not registered")
	// ErrIncorrectPassword is returned by login when the password does not match.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrUserNotFound is returned when a session references a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound is returned when no task has the requested id.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskForbidden is returned when the task exists but belongs to another user.
	ErrTaskForbidden = errors.New("task belongs to another user")
)

// ValidationError reports malformed or missing input. Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
