package apperrors

import (
	"errors"

	"github.com/milavdabgar/gpp-portal/internal/pkg/auth"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors. The token sentinels are shared with the
	// auth package so errors.Is works across both.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = auth.ErrExpiredToken
	ErrTokenInvalid       = auth.ErrInvalidToken
	ErrInvalidFormat      = auth.ErrInvalidFormat

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidRole      = errors.New("role not assigned to this user")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleAlreadyExists  = errors.New("role already exists")
)

// Department errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
	ErrDepartmentHasRelations  = errors.New("department has associated data and cannot be deleted")
)

// Faculty errors
var (
	ErrFacultyNotFound         = errors.New("faculty not found")
	ErrEmployeeIDAlreadyExists = errors.New("employee ID already exists")
)

// Student errors
var (
	ErrStudentNotFound          = errors.New("student not found")
	ErrEnrollmentAlreadyExists  = errors.New("enrollment number already exists")
	ErrInvalidEnrollmentNumber  = errors.New("invalid enrollment number format")
	ErrInstitutionalEmailExists = errors.New("institutional email already exists")
)

// Project errors
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamMemberNotFound = errors.New("team member not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrLocationTaken      = errors.New("location ID already exists")
	ErrLocationAssigned   = errors.New("location already has a project assigned")
)

// Result errors
var (
	ErrResultNotFound      = errors.New("result not found")
	ErrResultAlreadyExists = errors.New("result for this exam attempt already exists")
	ErrBatchNotFound       = errors.New("upload batch not found")
)

// Feedback errors
var (
	ErrFeedbackNotFound = errors.New("feedback record not found")
	ErrInvalidCSV       = errors.New("invalid CSV file")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
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

// NewValidationError creates a new custom error for validation failures with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
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

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
