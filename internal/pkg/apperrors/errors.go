package apperrors

import "errors"

// Resource errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Catalog errors
var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrParcoursNotFound   = errors.New("parcours not found")
	ErrCourseNotFound     = errors.New("course not found")
)

// Student and enrollment errors
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrNoParcours          = errors.New("student has no parcours")
	ErrEnrollmentLocked    = errors.New("enrollment is no longer editable")
	ErrCourseNotOfferable  = errors.New("course is not compatible with the current selection")
	ErrInvalidCategory     = errors.New("invalid enrollment category")
	ErrCourseNotInParcours = errors.New("course does not belong to the parcours")
	ErrCategoryMismatch    = errors.New("category does not fit the course's place in the parcours")
)

// Calendar errors
var (
	ErrCalendarNotFound = errors.New("academic calendar not found")
	ErrCalendarInvalid  = errors.New("academic calendar has violations")
)

// ErrCannotEvaluate marks input the engine refuses to evaluate; callers must
// not present a submit action
var ErrCannotEvaluate = errors.New("cannot evaluate")

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
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

// Is returns whether err matches target or any of errList
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
