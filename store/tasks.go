package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bossyapp/bossy/goal"
)

const taskColumns = "id, goal_id, date, description, status"

func scanTask(scanner interface{ Scan(...any) error }) (goal.DailyTask, error) {
	var t goal.DailyTask
	var date, status string
	if err := scanner.Scan(&t.ID, &t.GoalID, &date, &t.Description, &status); err != nil {
		return goal.DailyTask{}, err
	}
	t.Status = goal.TaskStatus(status)

	var err error
	if t.Date, err = goal.ParseDate(date); err != nil {
		return goal.DailyTask{}, fmt.Errorf("parse task date: %w", err)
	}
	return t, nil
}

// GetTask returns a daily task by id.
func (s *Store) GetTask(id string) (*goal.DailyTask, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM daily_tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goal.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return &t, nil
}

// UpdateTask overwrites the stored task's description and status.
func (s *Store) UpdateTask(task goal.DailyTask) error {
	result, err := s.db.Exec(
		"UPDATE daily_tasks SET description = ?, status = ? WHERE id = ?",
		task.Description, string(task.Status), task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %s: %w", task.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task %s: %w", task.ID, err)
	}
	if affected == 0 {
		return goal.ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a daily task. Its check-in, if any, cascades.
func (s *Store) DeleteTask(id string) error {
	_, err := s.db.Exec("DELETE FROM daily_tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// ListTasks returns all of a goal's tasks ordered by date ascending.
func (s *Store) ListTasks(goalID string) ([]goal.DailyTask, error) {
	rows, err := s.db.Query("SELECT "+taskColumns+" FROM daily_tasks WHERE goal_id = ? ORDER BY date ASC", goalID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// TasksThrough returns a goal's tasks with date <= through, ordered by
// date descending. This is the consecutive-miss counter's read.
func (s *Store) TasksThrough(goalID string, through time.Time) ([]goal.DailyTask, error) {
	rows, err := s.db.Query(
		"SELECT "+taskColumns+" FROM daily_tasks WHERE goal_id = ? AND date <= ? ORDER BY date DESC",
		goalID, goal.Day(through).Format(goal.DateFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks through %s: %w", through.Format(goal.DateFormat), err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]goal.DailyTask, error) {
	var tasks []goal.DailyTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
