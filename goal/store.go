package goal

import "github.com/bossyapp/bossy/boss"

// Store persists goals and their daily tasks. Implementations return
// ErrNotFound / ErrTaskNotFound for missing records so callers can map
// them without string matching.
type Store interface {
	// CreateGoal persists a goal together with its generated tasks.
	// The write is atomic: either the goal and every task land, or
	// nothing does.
	CreateGoal(g Goal, tasks []DailyTask) error

	// GetGoal returns a goal by id regardless of owner; ownership
	// checks are the caller's job.
	GetGoal(id string) (*Goal, error)

	// UpdateGoal overwrites the stored goal.
	UpdateGoal(g Goal) error

	// ListGoals returns a user's goals, newest first, optionally
	// filtered by status.
	ListGoals(userID string, filter ListFilter) ([]Goal, error)

	// CountActiveGoals counts the user's goals in active status.
	CountActiveGoals(userID string) (int, error)

	// GetTask returns a daily task by id.
	GetTask(id string) (*DailyTask, error)

	// UpdateTask overwrites the stored task.
	UpdateTask(task DailyTask) error

	// DeleteTask removes a daily task.
	DeleteTask(id string) error
}

// Gate decides plan-limited actions. Satisfied by plan.Gate.
type Gate interface {
	CanCreateGoal(userID string) (bool, error)
	AllowedPersonality(userID string, requested boss.Personality) (boss.Personality, error)
}
