package goal

import (
	"errors"
	"fmt"

	"github.com/bossyapp/bossy/internal/validation"
)

var (
	// ErrNotFound is returned when a goal or task doesn't exist. It is
	// also returned for goals owned by another user, so callers cannot
	// distinguish "not yours" from "not there".
	ErrNotFound = errors.New("goal not found")

	// ErrTaskNotFound is returned when a daily task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyTitle is returned when a goal title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a goal title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidIntensity is returned when an unknown intensity is provided.
	ErrInvalidIntensity = errors.New("invalid intensity")

	// ErrInvalidStatus is returned when an unknown status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidTaskStatus is returned when an unknown task status is provided.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrMissingDates is returned when start or end date is absent.
	ErrMissingDates = errors.New("start and end dates are required")

	// ErrInvalidTransition is returned for any status change the state
	// machine forbids, including any transition out of a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyTaskDescription is returned when a task edit blanks the description.
	ErrEmptyTaskDescription = errors.New("task description cannot be empty")
)

func formatInvalidIntensityError(intensity Intensity) error {
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidIntensity, intensity, validation.FormatValidValues(ValidIntensities()))
}

func formatInvalidTransitionError(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
