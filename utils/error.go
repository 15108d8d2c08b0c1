package utils

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrorRecordNotFound  = errors.New("record not found")
	ErrorInvalidArgument = errors.New("invalid argument")
	ErrorInvalidState    = errors.New("invalid state")
)

// AppError carries a caller-facing message and unwraps to its kind.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NotFound(format string, args ...any) error {
	return &AppError{Kind: ErrorRecordNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) error {
	return &AppError{Kind: ErrorInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) error {
	return &AppError{Kind: ErrorInvalidState, Message: fmt.Sprintf(format, args...)}
}
