package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Domain errors. Each wraps one of the common kinds so HTTP mapping stays in one place.
var (
	ErrUserNotFound           = NewCustomError(ErrResourceNotFound, "user not found")
	ErrProfileNotFound        = NewCustomError(ErrResourceNotFound, "alumni profile not found")
	ErrUsernameTaken          = conflictOn("username", "A user with that username already exists.")
	ErrEmailTaken             = conflictOn("email", "A user with that email already exists.")
	ErrPasswordMismatch       = NewCustomError(ErrValidationFailed, "passwords do not match")
	ErrEventNotFound          = NewCustomError(ErrResourceNotFound, "event not found")
	ErrMentorshipTypeNotFound = NewCustomError(ErrResourceNotFound, "mentorship type not found")
	ErrRequestNotFound        = NewCustomError(ErrResourceNotFound, "mentorship request not found")
	ErrInvalidTransition      = NewCustomError(ErrConflict, "mentorship request is no longer pending")
	ErrJobNotFound            = NewCustomError(ErrResourceNotFound, "job not found")
	ErrReferralNotFound       = NewCustomError(ErrResourceNotFound, "referral request not found")
)

// conflictOn reports a uniqueness conflict on a single request field.
func conflictOn(field, message string) *CustomError {
	return NewCustomError(ErrConflict, message).WithDetails(map[string]interface{}{field: message})
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying per-field messages.
func NewValidationError(message string, fields map[string]string) error {
	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return (&CustomError{Err: ErrValidationFailed, Message: message}).WithDetails(details)
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// Message returns the user-facing message of the outermost CustomError in err's chain.
func Message(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}

// Details returns the details of the outermost CustomError in err's chain.
func Details(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
