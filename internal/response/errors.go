package response

import "fmt"

// Error codes used across the service layer
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeStorage    = "STORAGE_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// AppError is a service-layer error carrying a stable code
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewNotFoundError creates an AppError with the not-found code
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// FieldErrors maps a field name to its validation message
type FieldErrors map[string]string

// ValidationError carries per-field messages for failed form validation
type ValidationError struct {
	Message string      `json:"message"`
	Fields  FieldErrors `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%d field(s))", ErrCodeValidation, e.Message, len(e.Fields))
}

// NewValidationError creates a ValidationError from field messages
func NewValidationError(message string, fields FieldErrors) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}
