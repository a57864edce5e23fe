package errs

import "strings"

// FieldError is a validation problem tied to one request field.
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type rendered by the global error handler.
//
//   - Code: machine-friendly error code (e.g. "UNPROCESSABLE_ENTITY").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show to end users as is.
//   - Errors: per-field validation errors.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError. Code and status are not
// compared; use errors.As to inspect them.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores turns HTTP status text into an error code.
//
//	"Unprocessable Entity" -> "UNPROCESSABLE_ENTITY"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
