package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/goal"
)

const goalColumns = "id, user_id, title, intensity, start_date, end_date, status, boss_type, created_at"

func scanGoal(scanner interface{ Scan(...any) error }) (goal.Goal, error) {
	var g goal.Goal
	var intensity, startDate, endDate, status, bossType, createdAt string
	if err := scanner.Scan(&g.ID, &g.UserID, &g.Title, &intensity, &startDate, &endDate, &status, &bossType, &createdAt); err != nil {
		return goal.Goal{}, err
	}
	g.Intensity = goal.Intensity(intensity)
	g.Status = goal.Status(status)
	g.BossType = boss.Personality(bossType)

	var err error
	if g.StartDate, err = goal.ParseDate(startDate); err != nil {
		return goal.Goal{}, fmt.Errorf("parse start date: %w", err)
	}
	if g.EndDate, err = goal.ParseDate(endDate); err != nil {
		return goal.Goal{}, fmt.Errorf("parse end date: %w", err)
	}
	if g.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return goal.Goal{}, fmt.Errorf("parse created at: %w", err)
	}
	return g, nil
}

// CreateGoal inserts a goal and its generated tasks in one transaction.
func (s *Store) CreateGoal(g goal.Goal, tasks []goal.DailyTask) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO goals ("+goalColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		g.ID, g.UserID, g.Title, string(g.Intensity),
		g.StartDate.Format(goal.DateFormat), g.EndDate.Format(goal.DateFormat),
		string(g.Status), string(g.BossType), g.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}

	for _, task := range tasks {
		_, err = tx.Exec(
			"INSERT INTO daily_tasks (id, goal_id, date, description, status) VALUES (?, ?, ?, ?, ?)",
			task.ID, task.GoalID, task.Date.Format(goal.DateFormat), task.Description, string(task.Status),
		)
		if err != nil {
			return fmt.Errorf("insert task for %s: %w", task.Date.Format(goal.DateFormat), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetGoal returns a goal by id.
func (s *Store) GetGoal(id string) (*goal.Goal, error) {
	row := s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goal %s: %w", id, err)
	}
	return &g, nil
}

// UpdateGoal overwrites the stored goal.
func (s *Store) UpdateGoal(g goal.Goal) error {
	result, err := s.db.Exec(
		"UPDATE goals SET intensity = ?, start_date = ?, end_date = ?, status = ?, boss_type = ? WHERE id = ?",
		string(g.Intensity),
		g.StartDate.Format(goal.DateFormat), g.EndDate.Format(goal.DateFormat),
		string(g.Status), string(g.BossType), g.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal %s: %w", g.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal %s: %w", g.ID, err)
	}
	if affected == 0 {
		return goal.ErrNotFound
	}
	return nil
}

// ListGoals returns a user's goals, newest first.
func (s *Store) ListGoals(userID string, filter goal.ListFilter) ([]goal.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE user_id = ?"
	args := []any{userID}
	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*filter.Status))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// CountActiveGoals counts the user's goals in active status.
func (s *Store) CountActiveGoals(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM goals WHERE user_id = ? AND status = ?",
		userID, string(goal.StatusActive),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active goals: %w", err)
	}
	return count, nil
}
