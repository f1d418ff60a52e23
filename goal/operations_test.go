package goal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/plan"
)

type fakeStore struct {
	goals map[string]Goal
	tasks map[string]DailyTask

	failCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{goals: map[string]Goal{}, tasks: map[string]DailyTask{}}
}

func (s *fakeStore) CreateGoal(g Goal, tasks []DailyTask) error {
	if s.failCreate {
		return fmt.Errorf("disk full")
	}
	s.goals[g.ID] = g
	for _, task := range tasks {
		s.tasks[task.ID] = task
	}
	return nil
}

func (s *fakeStore) GetGoal(id string) (*Goal, error) {
	g, ok := s.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (s *fakeStore) UpdateGoal(g Goal) error {
	if _, ok := s.goals[g.ID]; !ok {
		return ErrNotFound
	}
	s.goals[g.ID] = g
	return nil
}

func (s *fakeStore) ListGoals(userID string, filter ListFilter) ([]Goal, error) {
	var out []Goal
	for _, g := range s.goals {
		if g.UserID != userID {
			continue
		}
		if filter.Status != nil && g.Status != *filter.Status {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) CountActiveGoals(userID string) (int, error) {
	count := 0
	for _, g := range s.goals {
		if g.UserID == userID && g.Status == StatusActive {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) GetTask(id string) (*DailyTask, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return &task, nil
}

func (s *fakeStore) UpdateTask(task DailyTask) error {
	if _, ok := s.tasks[task.ID]; !ok {
		return ErrTaskNotFound
	}
	s.tasks[task.ID] = task
	return nil
}

func (s *fakeStore) DeleteTask(id string) error {
	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

type fakeGate struct {
	allow   bool
	gateErr error
	locked  boss.Personality
}

func (g *fakeGate) CanCreateGoal(string) (bool, error) {
	return g.allow, g.gateErr
}

func (g *fakeGate) AllowedPersonality(_ string, requested boss.Personality) (boss.Personality, error) {
	if g.locked != "" {
		if requested != "" && requested != g.locked {
			return "", plan.ErrBossTypeLocked
		}
		return g.locked, nil
	}
	if requested == "" {
		return boss.PersonalitySupportive, nil
	}
	return requested, nil
}

type fakeRecorder struct {
	events  []boss.Event
	failing bool
}

func (r *fakeRecorder) RecordEvent(event boss.Event) (boss.Event, error) {
	if r.failing {
		return boss.Event{}, fmt.Errorf("events table locked")
	}
	event.ID = fmt.Sprintf("event-%d", len(r.events)+1)
	event.CreatedAt = time.Now()
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeRecorder) RecentEvents(userID string, limit int) ([]boss.Event, error) {
	var out []boss.Event
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].UserID != userID {
			continue
		}
		out = append(out, r.events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func date(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func newTestService() (*Service, *fakeStore, *fakeGate, *fakeRecorder) {
	store := newFakeStore()
	gate := &fakeGate{allow: true}
	events := &fakeRecorder{}
	return NewService(store, gate, events), store, gate, events
}

func createTestGoal(t *testing.T, service *Service, userID string) *Goal {
	t.Helper()
	created, err := service.Create(userID, "Read daily", CreateOptions{
		StartDate: date(1),
		EndDate:   date(7),
		BossType:  boss.PersonalityMentor,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return created
}

func TestCreate(t *testing.T) {
	t.Run("creates goal with generated tasks", func(t *testing.T) {
		service, store, _, _ := newTestService()
		created := createTestGoal(t, service, "user-1")

		if created.Status != StatusActive {
			t.Errorf("status = %s, want active", created.Status)
		}
		if created.Intensity != IntensityMedium {
			t.Errorf("intensity = %s, want default medium", created.Intensity)
		}
		if created.BossType != boss.PersonalityMentor {
			t.Errorf("boss type = %s", created.BossType)
		}
		if len(store.tasks) != 7 {
			t.Errorf("expected 7 generated tasks, got %d", len(store.tasks))
		}
	})

	t.Run("trims the title", func(t *testing.T) {
		service, _, _, _ := newTestService()
		created, err := service.Create("user-1", "  Read daily  ", CreateOptions{StartDate: date(1), EndDate: date(2)})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.Title != "Read daily" {
			t.Errorf("title = %q", created.Title)
		}
	})

	t.Run("rejects empty title", func(t *testing.T) {
		service, _, _, _ := newTestService()
		if _, err := service.Create("user-1", "   ", CreateOptions{StartDate: date(1), EndDate: date(2)}); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("err = %v, want ErrEmptyTitle", err)
		}
	})

	t.Run("rejects overlong title", func(t *testing.T) {
		service, _, _, _ := newTestService()
		long := strings.Repeat("x", MaxTitleLength+1)
		if _, err := service.Create("user-1", long, CreateOptions{StartDate: date(1), EndDate: date(2)}); !errors.Is(err, ErrTitleTooLong) {
			t.Errorf("err = %v, want ErrTitleTooLong", err)
		}
	})

	t.Run("rejects inverted dates", func(t *testing.T) {
		service, _, _, _ := newTestService()
		if _, err := service.Create("user-1", "Read", CreateOptions{StartDate: date(7), EndDate: date(1)}); !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("err = %v, want ErrInvalidDateRange", err)
		}
	})

	t.Run("requires dates", func(t *testing.T) {
		service, _, _, _ := newTestService()
		if _, err := service.Create("user-1", "Read", CreateOptions{}); !errors.Is(err, ErrMissingDates) {
			t.Errorf("err = %v, want ErrMissingDates", err)
		}
	})

	t.Run("denied by plan gate writes nothing", func(t *testing.T) {
		service, store, gate, _ := newTestService()
		gate.allow = false
		_, err := service.Create("user-1", "Read", CreateOptions{StartDate: date(1), EndDate: date(2)})
		if !errors.Is(err, plan.ErrGoalLimitReached) {
			t.Fatalf("err = %v, want ErrGoalLimitReached", err)
		}
		if len(store.goals) != 0 || len(store.tasks) != 0 {
			t.Error("denied create must not write goals or tasks")
		}
	})

	t.Run("gate error fails closed", func(t *testing.T) {
		service, _, gate, _ := newTestService()
		gate.gateErr = fmt.Errorf("subscription read timeout")
		if _, err := service.Create("user-1", "Read", CreateOptions{StartDate: date(1), EndDate: date(2)}); err == nil {
			t.Error("expected error when the gate cannot decide")
		}
	})

	t.Run("locked plan resolves personality", func(t *testing.T) {
		service, _, gate, _ := newTestService()
		gate.locked = boss.PersonalitySupportive
		created, err := service.Create("user-1", "Read", CreateOptions{StartDate: date(1), EndDate: date(2)})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.BossType != boss.PersonalitySupportive {
			t.Errorf("boss type = %s, want supportive", created.BossType)
		}

		_, err = service.Create("user-1", "Read more", CreateOptions{
			StartDate: date(1), EndDate: date(2),
			BossType: boss.PersonalityDrillSergeant,
		})
		if !errors.Is(err, plan.ErrBossTypeLocked) {
			t.Errorf("err = %v, want ErrBossTypeLocked", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		service, _, _, _ := newTestService()
		created := createTestGoal(t, service, "user-1")

		high := IntensityHigh
		updated, err := service.Update("user-1", created.ID, UpdateOptions{Intensity: &high})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Intensity != IntensityHigh {
			t.Errorf("intensity = %s", updated.Intensity)
		}
		if updated.Title != created.Title || !updated.StartDate.Equal(created.StartDate) {
			t.Error("untouched fields must survive a partial update")
		}
	})

	t.Run("terminal goals reject updates", func(t *testing.T) {
		service, _, _, _ := newTestService()
		created := createTestGoal(t, service, "user-1")
		if _, err := service.Complete("user-1", created.ID); err != nil {
			t.Fatalf("Complete: %v", err)
		}

		high := IntensityHigh
		if _, err := service.Update("user-1", created.ID, UpdateOptions{Intensity: &high}); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("other users see not found", func(t *testing.T) {
		service, _, _, _ := newTestService()
		created := createTestGoal(t, service, "user-1")
		high := IntensityHigh
		if _, err := service.Update("user-2", created.ID, UpdateOptions{Intensity: &high}); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("date update keeps tasks", func(t *testing.T) {
		service, store, _, _ := newTestService()
		created := createTestGoal(t, service, "user-1")
		before := len(store.tasks)

		end := date(20)
		if _, err := service.Update("user-1", created.ID, UpdateOptions{EndDate: &end}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if len(store.tasks) != before {
			t.Errorf("task count changed from %d to %d; dates must not regenerate tasks", before, len(store.tasks))
		}
	})
}

func TestTransitions(t *testing.T) {
	t.Run("complete records praise event", func(t *testing.T) {
		service, _, _, events := newTestService()
		created := createTestGoal(t, service, "user-1")

		completed, err := service.Complete("user-1", created.ID)
		if err != nil {
			t.Fatalf("Complete: %v", err)
		}
		if completed.Status != StatusCompleted {
			t.Errorf("status = %s", completed.Status)
		}
		if len(events.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events.events))
		}
		event := events.events[0]
		if event.Severity != boss.SeverityPraise {
			t.Errorf("severity = %s, want praise", event.Severity)
		}
		if event.Context["goal_id"] != created.ID {
			t.Errorf("event goal_id = %q", event.Context["goal_id"])
		}
	})

	t.Run("abandon records warning event", func(t *testing.T) {
		service, _, _, events := newTestService()
		created := createTestGoal(t, service, "user-1")

		abandoned, err := service.Abandon("user-1", created.ID)
		if err != nil {
			t.Fatalf("Abandon: %v", err)
		}
		if abandoned.Status != StatusAbandoned {
			t.Errorf("status = %s", abandoned.Status)
		}
		if len(events.events) != 1 || events.events[0].Severity != boss.SeverityWarning {
			t.Error("expected a single warning event")
		}
	})

	t.Run("terminal goals cannot transition again", func(t *testing.T) {
		service, _, _, _ := newTestService()
		created := createTestGoal(t, service, "user-1")
		if _, err := service.Complete("user-1", created.ID); err != nil {
			t.Fatalf("Complete: %v", err)
		}
		if _, err := service.Abandon("user-1", created.ID); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
		if _, err := service.Complete("user-1", created.ID); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("event write failure is a hard error", func(t *testing.T) {
		service, _, _, events := newTestService()
		created := createTestGoal(t, service, "user-1")
		events.failing = true
		if _, err := service.Complete("user-1", created.ID); err == nil {
			t.Error("expected error when the event cannot be recorded")
		}
	})
}

func TestList(t *testing.T) {
	service, _, _, _ := newTestService()
	createTestGoal(t, service, "user-1")
	other := createTestGoal(t, service, "user-2")

	goals, err := service.List("user-1", ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	for _, g := range goals {
		if g.ID == other.ID {
			t.Error("list leaked another user's goal")
		}
	}

	active := StatusActive
	completed := StatusCompleted
	if goals, err = service.List("user-1", ListFilter{Status: &active}); err != nil || len(goals) != 1 {
		t.Errorf("active filter: goals=%d err=%v", len(goals), err)
	}
	if goals, err = service.List("user-1", ListFilter{Status: &completed}); err != nil || len(goals) != 0 {
		t.Errorf("completed filter: goals=%d err=%v", len(goals), err)
	}

	bogus := Status("paused")
	if _, err := service.List("user-1", ListFilter{Status: &bogus}); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestEditTask(t *testing.T) {
	anyTaskID := func(store *fakeStore) string {
		for id := range store.tasks {
			return id
		}
		return ""
	}

	t.Run("edits description and status", func(t *testing.T) {
		service, store, _, _ := newTestService()
		createTestGoal(t, service, "user-1")
		taskID := anyTaskID(store)

		description := "Read chapter 4"
		done := TaskDone
		task, err := service.EditTask("user-1", taskID, &description, &done)
		if err != nil {
			t.Fatalf("EditTask: %v", err)
		}
		if task.Description != description || task.Status != TaskDone {
			t.Errorf("task = %+v", task)
		}
	})

	t.Run("rejects blank description", func(t *testing.T) {
		service, store, _, _ := newTestService()
		createTestGoal(t, service, "user-1")

		blank := "   "
		if _, err := service.EditTask("user-1", anyTaskID(store), &blank, nil); !errors.Is(err, ErrEmptyTaskDescription) {
			t.Errorf("err = %v, want ErrEmptyTaskDescription", err)
		}
	})

	t.Run("other users see task not found", func(t *testing.T) {
		service, store, _, _ := newTestService()
		createTestGoal(t, service, "user-1")

		description := "hijack"
		if _, err := service.EditTask("user-2", anyTaskID(store), &description, nil); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("err = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestRemoveTask(t *testing.T) {
	service, store, _, _ := newTestService()
	createTestGoal(t, service, "user-1")

	var taskID string
	for id := range store.tasks {
		taskID = id
		break
	}

	if err := service.RemoveTask("user-2", taskID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound for another user", err)
	}
	if err := service.RemoveTask("user-1", taskID); err != nil {
		t.Fatalf("RemoveTask: %v", err)
	}
	if _, ok := store.tasks[taskID]; ok {
		t.Error("task still present after removal")
	}
}
