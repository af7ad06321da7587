package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukydev/tripsheet/internal/db"
)

var (
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrConflict matches every ConflictError.
	ErrConflict = errors.New("conflict")
)

// ValidationError is a rejected input. Message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing record.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a write refused because of other records.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return ErrConflict }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// storeErr turns a missing row into a NotFoundError and wraps anything else with the operation.
func storeErr(err error, op, entity string) error {
	if errors.Is(err, db.ErrNotFound) {
		return &NotFoundError{Entity: entity}
	}
	return fmt.Errorf("%s %s: %w", op, strings.ToLower(entity), err)
}
