package goal

import (
	"fmt"
	"time"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/internal/ids"
	internalstrings "github.com/bossyapp/bossy/internal/strings"
	"github.com/bossyapp/bossy/plan"
)

// Service implements goal operations over a store, the plan gate, and
// the event recorder.
type Service struct {
	Store  Store
	Gate   Gate
	Events boss.Recorder
}

// NewService creates a goal service.
func NewService(store Store, gate Gate, events boss.Recorder) *Service {
	return &Service{Store: store, Gate: gate, Events: events}
}

// CreateOptions configures a new goal.
type CreateOptions struct {
	// Intensity defaults to IntensityMedium.
	Intensity Intensity `json:"intensity"`

	// StartDate and EndDate are inclusive calendar dates. Both are
	// required.
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// BossType requests a personality. Plans that lock the
	// personality resolve it to their allowed one; requesting a
	// different personality under such a plan is an error.
	BossType boss.Personality `json:"boss_type"`
}

// Create creates a new goal and eagerly generates one daily task per day
// in its range. Creation is plan-gated; when the gate denies it, no goal
// and no tasks are written.
func (s *Service) Create(userID, title string, opts CreateOptions) (*Goal, error) {
	title = internalstrings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	if opts.Intensity == "" {
		opts.Intensity = IntensityMedium
	}
	if !opts.Intensity.IsValid() {
		return nil, formatInvalidIntensityError(opts.Intensity)
	}

	allowed, err := s.Gate.CanCreateGoal(userID)
	if err != nil {
		return nil, fmt.Errorf("check goal limit: %w", err)
	}
	if !allowed {
		return nil, plan.ErrGoalLimitReached
	}

	bossType, err := s.Gate.AllowedPersonality(userID, opts.BossType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	g := Goal{
		ID:        ids.GenerateWithTimestamp(userID+title, now, ids.DefaultLength),
		UserID:    userID,
		Title:     title,
		Intensity: opts.Intensity,
		StartDate: Day(opts.StartDate),
		EndDate:   Day(opts.EndDate),
		Status:    StatusActive,
		BossType:  bossType,
		CreatedAt: now,
	}
	if err := ValidateGoal(&g); err != nil {
		return nil, err
	}

	tasks := GenerateDailyTasks(g)
	if err := s.Store.CreateGoal(g, tasks); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	return &g, nil
}

// UpdateOptions configures fields to update on a goal. Nil pointers mean
// "don't update this field". There is deliberately no Title field: the
// title is a commitment, written once at creation.
type UpdateOptions struct {
	Intensity *Intensity        `json:"intensity,omitempty"`
	StartDate *time.Time        `json:"start_date,omitempty"`
	EndDate   *time.Time        `json:"end_date,omitempty"`
	BossType  *boss.Personality `json:"boss_type,omitempty"`
}

// Update updates an active goal the user owns. Changing dates does not
// regenerate daily tasks. Changing the boss personality is plan-gated.
func (s *Service) Update(userID, goalID string, opts UpdateOptions) (*Goal, error) {
	g, err := s.getOwned(userID, goalID)
	if err != nil {
		return nil, err
	}
	if g.Status.IsTerminal() {
		return nil, formatInvalidTransitionError(g.Status, g.Status)
	}

	if opts.Intensity != nil {
		if !opts.Intensity.IsValid() {
			return nil, formatInvalidIntensityError(*opts.Intensity)
		}
		g.Intensity = *opts.Intensity
	}
	if opts.StartDate != nil {
		g.StartDate = Day(*opts.StartDate)
	}
	if opts.EndDate != nil {
		g.EndDate = Day(*opts.EndDate)
	}
	if opts.BossType != nil {
		allowed, err := s.Gate.AllowedPersonality(userID, *opts.BossType)
		if err != nil {
			return nil, err
		}
		g.BossType = allowed
	}

	if err := ValidateGoal(g); err != nil {
		return nil, err
	}
	if err := s.Store.UpdateGoal(*g); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

// Complete transitions an active goal to completed and records the fixed
// completion event.
func (s *Service) Complete(userID, goalID string) (*Goal, error) {
	return s.transition(userID, goalID, StatusCompleted)
}

// Abandon transitions an active goal to abandoned and records the fixed
// abandonment event.
func (s *Service) Abandon(userID, goalID string) (*Goal, error) {
	return s.transition(userID, goalID, StatusAbandoned)
}

func (s *Service) transition(userID, goalID string, next Status) (*Goal, error) {
	// Ownership and current status are re-read here rather than
	// trusted from whatever the caller previously fetched.
	g, err := s.getOwned(userID, goalID)
	if err != nil {
		return nil, err
	}
	if !g.Status.CanTransitionTo(next) {
		return nil, formatInvalidTransitionError(g.Status, next)
	}

	g.Status = next
	if err := s.Store.UpdateGoal(*g); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	// Lifecycle feedback is English-only and personality-agnostic, a
	// separate path from check-in feedback.
	var feedback boss.Feedback
	if next == StatusCompleted {
		feedback = boss.CompletionFeedback(g.Title)
	} else {
		feedback = boss.AbandonmentFeedback(g.Title)
	}
	event := boss.NewEvent(userID, feedback, map[string]string{"goal_id": g.ID})
	if _, err := s.Events.RecordEvent(event); err != nil {
		return nil, fmt.Errorf("record %s event: %w", next, err)
	}

	return g, nil
}

// Get returns a goal the user owns.
func (s *Service) Get(userID, goalID string) (*Goal, error) {
	return s.getOwned(userID, goalID)
}

// ListFilter configures which goals to return.
type ListFilter struct {
	// Status filters by exact status match.
	Status *Status `json:"status,omitempty"`
}

// List returns the user's goals matching the filter, newest first.
func (s *Service) List(userID string, filter ListFilter) ([]Goal, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *filter.Status)
	}
	return s.Store.ListGoals(userID, filter)
}

// EditTask updates the description or status of a daily task on a goal
// the user owns.
func (s *Service) EditTask(userID, taskID string, description *string, status *TaskStatus) (*DailyTask, error) {
	task, err := s.getOwnedTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	if description != nil {
		trimmed := internalstrings.TrimSpace(*description)
		if trimmed == "" {
			return nil, ErrEmptyTaskDescription
		}
		task.Description = trimmed
	}
	if status != nil {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTaskStatus, *status)
		}
		task.Status = *status
	}

	if err := s.Store.UpdateTask(*task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// RemoveTask deletes a daily task on a goal the user owns. The task is
// never regenerated.
func (s *Service) RemoveTask(userID, taskID string) error {
	task, err := s.getOwnedTask(userID, taskID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// getOwned loads a goal and verifies ownership. Goals owned by other
// users surface as ErrNotFound so their existence is not leaked.
func (s *Service) getOwned(userID, goalID string) (*Goal, error) {
	g, err := s.Store.GetGoal(goalID)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *Service) getOwnedTask(userID, taskID string) (*DailyTask, error) {
	task, err := s.Store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwned(userID, task.GoalID); err != nil {
		// Same class as a missing task, for the same reason.
		return nil, ErrTaskNotFound
	}
	return task, nil
}
