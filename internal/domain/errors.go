package domain

import "fmt"

// ValidationError reports a value object constructor rejecting its input.
// The HTTP layer maps it to a client fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseError reports a structural or content problem in an uploaded
// spreadsheet. Wraps the underlying error when one exists.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewParseError(message string, err error) *ParseError {
	return &ParseError{Message: message, Err: err}
}
