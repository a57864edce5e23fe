package errs

import (
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// A nil code falls back to "BAD_REQUEST".
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewUnprocessableEntityError creates a 422 HTTPError. It is returned when a
// request is well-formed HTTP but its parameters are missing or mistyped.
func NewUnprocessableEntityError(message string, override bool, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnprocessableEntity),
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError for rate-limited clients.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusTooManyRequests),
		Message: "Too many requests, slow down",
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 HTTPError.
//
// The message is the generic status text; the underlying cause is logged by
// the error handler and never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
