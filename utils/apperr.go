package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error kinds carried structurally from services up to the route layer.
// The HTTP status is derived from the kind, never hand-picked in handlers.
const (
	KindNotFound     = "not_found"
	KindValidation   = "validation"
	KindConflict     = "conflict"
	KindUnauthorized = "unauthorized"
	KindInternal     = "internal"
)

type AppError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func statusForKind(kind string) int {
	switch kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation, KindConflict:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
