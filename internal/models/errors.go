package models

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorKind classifies failures so transports can map them onto status codes.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "unauthenticated"
	KindAuthorization  ErrorKind = "forbidden"
	KindValidation     ErrorKind = "validation_error"
	KindConflict       ErrorKind = "state_conflict"
	KindNotFound       ErrorKind = "not_found"
	KindDuplicate      ErrorKind = "duplicate"
	KindUpstream       ErrorKind = "upstream_error"
	KindInternal       ErrorKind = "internal_error"
)

// AppError is the error type returned by the service layer.
// Message is safe to show to callers; Err is logged only.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details []ValidationErrorDetail
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (e *AppError) Response() ErrorResponse {
	return ErrorResponse{Code: string(e.Kind), Message: e.Message, Details: e.Details}
}

// Fields returns the names of the offending fields of a validation error.
func (e *AppError) Fields() []string {
	fields := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		fields = append(fields, d.Field)
	}
	return fields
}

func FieldError(field, reason string) ValidationErrorDetail {
	return ValidationErrorDetail{Field: field, Reason: reason}
}

func ValidationError(message string, details ...ValidationErrorDetail) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Details: details}
}

// FieldsError builds a validation error whose message names every offending field.
func FieldsError(details ...ValidationErrorDetail) *AppError {
	names := make([]string, 0, len(details))
	for _, d := range details {
		names = append(names, d.Field)
	}
	return ValidationError("Invalid fields: "+strings.Join(names, ", "), details...)
}

func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "Access denied"
	}
	return &AppError{Kind: KindAuthorization, Message: message}
}

func AuthenticationError(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return &AppError{Kind: KindAuthentication, Message: message}
}

func DuplicateError(message string) *AppError {
	return &AppError{Kind: KindDuplicate, Message: message}
}

func UpstreamError(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Err: err}
}

func InternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// AsAppError unwraps err into an *AppError, treating anything unknown as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
