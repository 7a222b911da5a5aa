package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("booking not found")
	ErrCancelled = errors.New("operation not permitted on a cancelled booking")
)

// ValidationError carries field-level validation messages
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "booking validation failed"
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ScheduleConflictError reports overlapping approved bookings found
// during a reschedule attempt
type ScheduleConflictError struct {
	RoomID    string
	Conflicts int
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("room %s is not available for the requested time: %d conflicting booking(s)", e.RoomID, e.Conflicts)
}
