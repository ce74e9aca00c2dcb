package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned when an authenticated user fails the
	// ownership rule. Kept distinct from unauthenticated rejection even
	// though both map to 401 externally, matching the original API.
	ErrForbidden = errors.New("not authorized to modify this resource")
	// ErrUnauthenticated is returned when no valid session accompanies a
	// protected request.
	ErrUnauthenticated = errors.New("not authenticated")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []FieldError `json:"errors,omitempty"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// NewFieldError builds a 400 for a single field failing a rule the
// struct tags cannot express, such as values that are empty once
// trimmed.
func NewFieldError(field, message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    "validation failed",
		Code:       "VALIDATION_ERROR",
		Fields:     []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationError builds a 400 from validator output, carrying one
// message per failing field.
func NewValidationError(err error) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    "validation failed",
		Code:       "VALIDATION_ERROR",
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			httpErr.Fields = append(httpErr.Fields, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
	} else {
		httpErr.Message = err.Error()
	}
	return httpErr
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "please enter a valid email"
	case "min":
		return field + " must be at least " + fe.Param() + " characters long"
	case "max":
		return field + " must be at most " + fe.Param() + " characters long"
	default:
		return field + " is invalid"
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors
// surface their raw message, as the original API did.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		// 401 rather than 403 for compatibility with the original API.
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}
