// Package checkin implements daily-task check-ins and the
// consecutive-miss counter that drives feedback escalation.
package checkin

import (
	"time"

	"github.com/bossyapp/bossy/boss"
)

// Status is the recorded outcome for a daily task.
type Status string

const (
	// StatusDone indicates the task was completed.
	StatusDone Status = "done"

	// StatusMissed indicates the task was not completed.
	StatusMissed Status = "missed"
)

// ValidStatuses returns all valid check-in status values.
func ValidStatuses() []Status {
	return []Status{StatusDone, StatusMissed}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	return s == StatusDone || s == StatusMissed
}

// Outcome maps the check-in status to the feedback outcome.
func (s Status) Outcome() boss.Outcome {
	if s == StatusDone {
		return boss.OutcomeDone
	}
	return boss.OutcomeMissed
}

// CheckIn records the outcome for one daily task. At most one exists per
// task: a later submission for the same task updates the record in place
// rather than duplicating it.
type CheckIn struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Status    Status    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists check-ins.
type Store interface {
	// GetCheckIn returns the check-in for a task and user, or
	// (nil, nil) when none exists.
	GetCheckIn(taskID, userID string) (*CheckIn, error)

	// UpsertCheckIn writes the check-in for a task, updating any
	// existing record for the same task in place. The id and
	// timestamps are assigned on write.
	UpsertCheckIn(c CheckIn) (*CheckIn, error)
}
