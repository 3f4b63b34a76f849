package dto

import (
	"errors"
	"time"

	"github.com/gradnexus/campusconnect/internal/pkg/validation"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// StatusResponse carries the resulting state of an action endpoint.
type StatusResponse struct {
	Status string `json:"status" example:"registered"`
}

// NewSuccessResponse wraps data in a successful envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewMessageResponse creates a successful envelope with only a message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// HandleValidationError converts a binding error into an error detail. Validator
// failures are reported per field; anything else (malformed JSON, wrong types) is
// reported as an invalid request.
func HandleValidationError(err error) *ErrorDetail {
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		return NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(fields)
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return NewErrorDetail(ErrorCodeValidationFailed, fe.Message).WithField(fe.Field).
			WithDetails(map[string]string{fe.Field: fe.Message})
	}
	return NewErrorDetail(ErrorCodeInvalidRequest, "Invalid request format").WithDetails(err.Error())
}

// FieldError is a decoding error tied to a single payload field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}
