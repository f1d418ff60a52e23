package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bossyapp/bossy/boss"
)

// RecordEvent persists a feedback event, assigning its id and creation
// timestamp. Events are immutable once written.
func (s *Store) RecordEvent(event boss.Event) (boss.Event, error) {
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()

	context, err := json.Marshal(event.Context)
	if err != nil {
		return boss.Event{}, fmt.Errorf("marshal event context: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO boss_events (id, user_id, severity, context, created_at) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.UserID, string(event.Severity), string(context), event.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return boss.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// RecentEvents returns the user's most recent events, newest first,
// limited to at most limit records.
func (s *Store) RecentEvents(userID string, limit int) ([]boss.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		"SELECT id, user_id, severity, context, created_at FROM boss_events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []boss.Event
	for rows.Next() {
		var event boss.Event
		var severity, context, createdAt string
		if err := rows.Scan(&event.ID, &event.UserID, &severity, &context, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		event.Severity = boss.Severity(severity)
		if err := json.Unmarshal([]byte(context), &event.Context); err != nil {
			return nil, fmt.Errorf("unmarshal event context: %w", err)
		}
		if event.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse event created at: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
