package domain

import "errors"

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoReports          = errors.New("no reports found")
	ErrUpstream           = errors.New("prediction service error")
	ErrPersistence        = errors.New("persistence error")
)

// ValidationError carries a client-facing reason for rejected input.
type ValidationError struct {
	Reason string
}

// NewValidationError returns a *ValidationError with the given reason.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
