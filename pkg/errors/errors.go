package errors

import (
	"fmt"
)

// GenericServiceMessage is shown when a rejected evaluation carries no message.
const GenericServiceMessage = "Evaluation failed"

// ParseError represents a configuration parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration or payload validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransportError means the evaluation request never produced a usable
// response: connection failures, timeouts, unreadable bodies.
type TransportError struct {
	Op  string
	Err error
}

// NewTransportError constructs a TransportError for the failed operation.
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%v", e.Err)
}

// Unwrap exposes the root error.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ServiceError is a rejection reported by the evaluation service.
type ServiceError struct {
	Status  int
	Message string
}

// NewServiceError constructs a ServiceError, substituting the generic
// message when the service supplied none.
func NewServiceError(status int, message string) error {
	if message == "" {
		message = GenericServiceMessage
	}
	return &ServiceError{Status: status, Message: message}
}

// Error returns the service message verbatim; the status code is kept for
// logging only.
func (e *ServiceError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// DecodeError reports a response body that is not valid JSON or does not
// match the expected shape.
type DecodeError struct {
	What string
	Err  error
}

// NewDecodeError constructs a DecodeError.
func NewDecodeError(what string, err error) error {
	return &DecodeError{What: what, Err: err}
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("malformed %s: %v", e.What, e.Err)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
