package checkin

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/goal"
	internalstrings "github.com/bossyapp/bossy/internal/strings"
)

// Service implements the check-in flow: record the outcome, pick the
// boss feedback, persist the event.
type Service struct {
	Goals    goal.Store
	CheckIns Store
	Counter  *Counter
	Events   boss.Recorder
	Logger   *log.Logger
}

// NewService creates a check-in service.
func NewService(goals goal.Store, checkIns Store, counter *Counter, events boss.Recorder, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{Goals: goals, CheckIns: checkIns, Counter: counter, Events: events, Logger: logger}
}

// Result is a completed check-in with the feedback it produced.
type Result struct {
	CheckIn CheckIn    `json:"check_in"`
	Event   boss.Event `json:"event"`
}

// Submit records the outcome for a daily task and produces the boss
// feedback event.
//
// The check-in upsert and the event write are hard failures: a user
// state change is never silently dropped. The consecutive-miss read is
// soft: on failure the count degrades to zero misses and the check-in
// still goes through.
func (s *Service) Submit(userID, taskID string, status Status, note string, locale boss.Locale) (*Result, error) {
	if !status.IsValid() {
		return nil, formatInvalidStatusError(status)
	}

	task, err := s.Goals.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	g, err := s.Goals.GetGoal(task.GoalID)
	if err != nil {
		return nil, err
	}
	// Same not-found class for other users' tasks.
	if g.UserID != userID {
		return nil, goal.ErrTaskNotFound
	}

	record, err := s.CheckIns.UpsertCheckIn(CheckIn{
		TaskID: task.ID,
		UserID: userID,
		Status: status,
		Note:   internalstrings.TrimSpace(note),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert check-in: %w", err)
	}

	if status == StatusDone && task.Status != goal.TaskDone {
		task.Status = goal.TaskDone
		if err := s.Goals.UpdateTask(*task); err != nil {
			return nil, fmt.Errorf("update task status: %w", err)
		}
	}

	missCount := 0
	if status == StatusMissed {
		missCount, err = s.Counter.Count(userID, g.ID, time.Now())
		if err != nil {
			// Unknown count reads as "no prior misses" so the
			// check-in itself is never blocked.
			s.Logger.Warn("consecutive-miss count unavailable", "goal_id", g.ID, "err", err)
			missCount = 0
		}
		if missCount < 1 {
			missCount = 1
		}
	}

	feedback, err := boss.SelectFeedback(status.Outcome(), missCount, g.BossType, locale)
	if err != nil {
		return nil, err
	}

	event := boss.NewEvent(userID, feedback, map[string]string{
		"goal_id": g.ID,
		"task_id": task.ID,
		"outcome": string(status),
	})
	recorded, err := s.Events.RecordEvent(event)
	if err != nil {
		return nil, fmt.Errorf("record feedback event: %w", err)
	}

	return &Result{CheckIn: *record, Event: recorded}, nil
}
