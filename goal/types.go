// Package goal implements user goals and their generated daily tasks.
//
// A goal is a committed objective over a fixed date range. Its title is
// write-once: the commitment cannot be reworded after creation. Status
// moves one way only, from active into exactly one of the two terminal
// states.
//
// The public API mirrors the product actions:
//   - Create, Update for goal setup (creation is plan-gated)
//   - Complete, Abandon for the terminal transitions
//   - Get, List for querying
//   - EditTask, RemoveTask for adjusting generated daily tasks
package goal

import (
	"time"

	"github.com/bossyapp/bossy/boss"
)

// Status represents the state of a goal.
type Status string

const (
	// StatusActive indicates the goal is in progress. Every goal
	// starts active.
	StatusActive Status = "active"

	// StatusCompleted indicates the goal was finished. Terminal.
	StatusCompleted Status = "completed"

	// StatusAbandoned indicates the goal was given up. Terminal.
	StatusAbandoned Status = "abandoned"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusActive, StatusCompleted, StatusAbandoned}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// CanTransitionTo reports whether the transition is permitted. Only
// active goals may move, and only into a terminal state; nothing is ever
// re-activated.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusActive && next.IsTerminal()
}

// Intensity affects the generated daily task duration.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// ValidIntensities returns all valid intensity values.
func ValidIntensities() []Intensity {
	return []Intensity{IntensityLow, IntensityMedium, IntensityHigh}
}

// IsValid returns true if the intensity is a known valid value.
func (i Intensity) IsValid() bool {
	for _, valid := range ValidIntensities() {
		if i == valid {
			return true
		}
	}
	return false
}

// TaskStatus represents the state of a daily task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// ValidTaskStatuses returns all valid task status values.
func ValidTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskTodo, TaskInProgress, TaskDone}
}

// IsValid returns true if the task status is a known valid value.
func (s TaskStatus) IsValid() bool {
	for _, valid := range ValidTaskStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// MaxTitleLength is the maximum allowed length for a goal title.
const MaxTitleLength = 200

// DateFormat is the calendar-date layout used throughout. Goal and task
// dates carry no time component.
const DateFormat = "2006-01-02"

// Goal represents a committed objective.
type Goal struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Title is set at creation and never updated.
	Title string `json:"title"`

	Intensity Intensity `json:"intensity"`

	// StartDate and EndDate are inclusive calendar dates at UTC
	// midnight.
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Status Status `json:"status"`

	// BossType is the personality delivering this goal's feedback.
	BossType boss.Personality `json:"boss_type"`

	CreatedAt time.Time `json:"created_at"`
}

// DailyTask is one generated daily commitment instance. Exactly one
// exists per (goal, date) pair within the goal's range, created eagerly
// at goal creation and never auto-regenerated.
type DailyTask struct {
	ID          string     `json:"id"`
	GoalID      string     `json:"goal_id"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// Day truncates a timestamp to its UTC calendar date.
func Day(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date in DateFormat.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, value, time.UTC)
}
