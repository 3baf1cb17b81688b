package main

import (
	"errors"
	"fmt"

	apperrors "github.com/alexisbeaulieu97/rankview/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// evaluationSuggestion picks advice for a failed evaluation request.
func evaluationSuggestion(err error, endpoint string) string {
	var (
		serviceErr   *apperrors.ServiceError
		decodeErr    *apperrors.DecodeError
		transportErr *apperrors.TransportError
	)
	switch {
	case errors.As(err, &serviceErr):
		return "The service rejected the upload; check that every file is a readable PDF, DOCX or TXT document."
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("%s did not answer with evaluation results; check --endpoint.", endpoint)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Make sure an evaluation service is reachable at %s (for a local one run 'rankview serve').", endpoint)
	}
	return "Re-run with --verbose for details."
}
