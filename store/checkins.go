package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bossyapp/bossy/checkin"
)

const checkInColumns = "id, task_id, user_id, status, note, created_at, updated_at"

func scanCheckIn(scanner interface{ Scan(...any) error }) (checkin.CheckIn, error) {
	var c checkin.CheckIn
	var status, createdAt, updatedAt string
	if err := scanner.Scan(&c.ID, &c.TaskID, &c.UserID, &status, &c.Note, &createdAt, &updatedAt); err != nil {
		return checkin.CheckIn{}, err
	}
	c.Status = checkin.Status(status)

	var err error
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return checkin.CheckIn{}, fmt.Errorf("parse created at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return checkin.CheckIn{}, fmt.Errorf("parse updated at: %w", err)
	}
	return c, nil
}

// GetCheckIn returns the check-in for a task and user, or (nil, nil)
// when none exists.
func (s *Store) GetCheckIn(taskID, userID string) (*checkin.CheckIn, error) {
	row := s.db.QueryRow(
		"SELECT "+checkInColumns+" FROM check_ins WHERE task_id = ? AND user_id = ?",
		taskID, userID,
	)
	c, err := scanCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get check-in for task %s: %w", taskID, err)
	}
	return &c, nil
}

// UpsertCheckIn writes the check-in for a task. The task_id unique
// constraint makes the insert-or-update a single atomic statement, so a
// later submission updates the earlier record in place.
func (s *Store) UpsertCheckIn(c checkin.CheckIn) (*checkin.CheckIn, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO check_ins (id, task_id, user_id, status, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (task_id) DO UPDATE SET
		   status = excluded.status,
		   note = excluded.note,
		   updated_at = excluded.updated_at`,
		id, c.TaskID, c.UserID, string(c.Status), c.Note, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert check-in for task %s: %w", c.TaskID, err)
	}
	return s.GetCheckIn(c.TaskID, c.UserID)
}
