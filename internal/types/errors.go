package types

import (
	"errors"
	"fmt"
)

// Error kinds shared across domains. Wrap them with fmt.Errorf("%w: ...")
// and match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrExternalTool = errors.New("external tool failure")
	ErrInternal     = errors.New("internal error")
)

// ErrorCode is the stable machine readable code sent to API clients.
type ErrorCode string

const (
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeExternalTool ErrorCode = "EXTERNAL_TOOL_FAILURE"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// CodeOf classifies err into one of the error codes. Unclassified errors
// are internal.
func CodeOf(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrExternalTool):
		return CodeExternalTool
	default:
		return CodeInternal
	}
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ExternalTool wraps a failure of a subprocess or outbound service call.
func ExternalTool(tool string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrExternalTool, tool, err)
}

func Internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
