package apperrors

import "errors"

// Categories. HTTP handlers map these to status codes.
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")
	ErrValidationFailed      = errors.New("validation failed")
	ErrBadRequest            = errors.New("bad request")
)

// Course errors
var (
	ErrCourseNotFound      = NewCustomError(ErrResourceNotFound, "course not found")
	ErrCourseAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "course with this name already exists")
	ErrNoSeatsAvailable    = NewCustomError(ErrConflict, "no seats available in the selected course")
)

// Applicant errors
var (
	ErrApplicantNotFound = NewCustomError(ErrResourceNotFound, "applicant not found")
	ErrDuplicateEmail    = NewCustomError(ErrResourceAlreadyExists, "an applicant with that email already exists")
	ErrInvalidStatus     = NewCustomError(ErrValidationFailed, "invalid status")
)

// CustomError is a domain error that unwraps to one of the categories
// above. Field names the offending input for validation errors.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError in the given category
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewValidationError creates a validation error carrying the offending field.
func NewValidationError(field, message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message, Field: field}
}

// ValidationField returns the field attached to a validation error, if any.
func ValidationField(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Field
	}
	return ""
}
