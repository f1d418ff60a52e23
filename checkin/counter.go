package checkin

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bossyapp/bossy/goal"
)

// TaskReader lists a goal's daily tasks up to a date.
type TaskReader interface {
	// TasksThrough returns tasks with date <= through, ordered by
	// date descending.
	TasksThrough(goalID string, through time.Time) ([]goal.DailyTask, error)
}

// Counter computes consecutive missed days for a goal. It is a pure
// read with no side effects beyond logging.
type Counter struct {
	Tasks    TaskReader
	CheckIns Store
	Logger   *log.Logger
}

// NewCounter creates a consecutive-miss counter.
func NewCounter(tasks TaskReader, checkIns Store, logger *log.Logger) *Counter {
	if logger == nil {
		logger = log.Default()
	}
	return &Counter{Tasks: tasks, CheckIns: checkIns, Logger: logger}
}

// Count walks the goal's tasks backward from the most recent task dated
// on or before today. A task whose check-in is absent or missed counts
// as a miss; the walk stops at the first task with a done check-in,
// excluding that day. A goal with no past-or-present tasks counts zero.
//
// A failed check-in read for a single task is skipped and logged rather
// than aborting the walk: an undercount softens feedback, while an error
// here would block the check-in flow.
func (c *Counter) Count(userID, goalID string, today time.Time) (int, error) {
	tasks, err := c.Tasks.TasksThrough(goalID, goal.Day(today))
	if err != nil {
		return 0, fmt.Errorf("list tasks: %w", err)
	}

	count := 0
	for _, task := range tasks {
		record, err := c.CheckIns.GetCheckIn(task.ID, userID)
		if err != nil {
			c.Logger.Warn("skipping unreadable check-in", "task_id", task.ID, "err", err)
			continue
		}
		if record != nil && record.Status == StatusDone {
			break
		}
		count++
	}
	return count, nil
}
