package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitstack/internal/logger"
)

var (
	// ErrValidation marks input rejected before any state mutation
	ErrValidation = stderrors.New("validation failed")
	// ErrNotFound marks a missing record, or one owned by another user
	ErrNotFound = stderrors.New("not found")
	// ErrConflict marks a write rejected by a store uniqueness constraint
	ErrConflict = stderrors.New("conflict")
	// ErrGuardRefused marks a tracker update skipped because future-dated logs exist
	ErrGuardRefused = stderrors.New("tracker update refused: future-dated logs present")
)

// ValidationError describes why an input was rejected
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validationf creates a ValidationError with a formatted reason
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing record. It never says whether the record
// exists for another user.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound creates a NotFoundError for the given record kind and id
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool { return stderrors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found failure
func IsNotFound(err error) bool { return stderrors.Is(err, ErrNotFound) }

// IsConflict reports whether err is a uniqueness conflict
func IsConflict(err error) bool { return stderrors.Is(err, ErrConflict) }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
