package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/checkin"
	"github.com/bossyapp/bossy/goal"
	"github.com/bossyapp/bossy/plan"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New(Options{
		DatabasePath: filepath.Join(t.TempDir(), "bossy.db"),
		Logger:       log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	httpServer := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		httpServer.Close()
		_ = s.Close()
	})
	return httpServer
}

func weekOptions() goal.CreateOptions {
	start := goal.Day(time.Now().UTC())
	return goal.CreateOptions{
		Intensity: goal.IntensityMedium,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
	}
}

func TestGoalLifecycleOverRPC(t *testing.T) {
	httpServer := newTestServer(t)
	client := NewClient(httpServer.URL, "user-1")
	ctx := context.Background()

	created, err := client.CreateGoal(ctx, "Run a 10k", weekOptions())
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if created.Status != goal.StatusActive {
		t.Errorf("status = %s, want active", created.Status)
	}
	if created.BossType != boss.PersonalitySupportive {
		t.Errorf("boss type = %s, want supportive for a free user", created.BossType)
	}

	tasks, err := client.Tasks(ctx, created.ID)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 7 {
		t.Fatalf("generated %d tasks, want 7", len(tasks))
	}

	var today *goal.DailyTask
	day := goal.Day(time.Now().UTC())
	for i := range tasks {
		if tasks[i].Date.Equal(day) {
			today = &tasks[i]
		}
	}
	if today == nil {
		t.Fatal("no task generated for today")
	}

	result, err := client.SubmitCheckIn(ctx, today.ID, checkin.StatusDone, "felt good")
	if err != nil {
		t.Fatalf("SubmitCheckIn: %v", err)
	}
	if result.Event.Severity != boss.SeverityPraise {
		t.Errorf("severity = %s, want praise", result.Event.Severity)
	}

	events, err := client.RecentEvents(ctx, 0)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 1 || events[0].Message() != result.Event.Message() {
		t.Errorf("events = %+v", events)
	}

	completed, err := client.CompleteGoal(ctx, created.ID)
	if err != nil {
		t.Fatalf("CompleteGoal: %v", err)
	}
	if completed.Status != goal.StatusCompleted {
		t.Errorf("status = %s, want completed", completed.Status)
	}
	if _, err := client.CompleteGoal(ctx, created.ID); err == nil {
		t.Error("completing twice should fail")
	}
}

func TestFreePlanLimitsOverRPC(t *testing.T) {
	httpServer := newTestServer(t)
	client := NewClient(httpServer.URL, "user-1")
	ctx := context.Background()

	current, err := client.Plan(ctx)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if current.Name != plan.NameFree {
		t.Fatalf("plan = %s, want free", current.Name)
	}

	if _, err := client.CreateGoal(ctx, "Run a 10k", weekOptions()); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if _, err := client.CreateGoal(ctx, "Read daily", weekOptions()); err == nil {
		t.Error("second active goal should be denied on the free plan")
	}

	opts := weekOptions()
	opts.BossType = boss.PersonalityDrillSergeant
	if _, err := client.CreateGoal(ctx, "Learn Go", opts); err == nil || !strings.Contains(err.Error(), "bossy error") {
		t.Errorf("drill-sergeant on free plan: err = %v", err)
	}
}

func TestOwnershipReadsAsNotFound(t *testing.T) {
	httpServer := newTestServer(t)
	owner := NewClient(httpServer.URL, "user-1")
	stranger := NewClient(httpServer.URL, "user-2")
	ctx := context.Background()

	created, err := owner.CreateGoal(ctx, "Run a 10k", weekOptions())
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	if _, err := stranger.Tasks(ctx, created.ID); err == nil || !strings.Contains(err.Error(), goal.ErrNotFound.Error()) {
		t.Errorf("stranger reading tasks: err = %v", err)
	}
	if _, err := stranger.AbandonGoal(ctx, created.ID); err == nil || !strings.Contains(err.Error(), goal.ErrNotFound.Error()) {
		t.Errorf("stranger abandoning: err = %v", err)
	}
}

func TestLocalizedCheckInOverRPC(t *testing.T) {
	httpServer := newTestServer(t)
	client := NewClient(httpServer.URL, "user-1").WithLocale("zh-CN")
	ctx := context.Background()

	created, err := client.CreateGoal(ctx, "Run a 10k", weekOptions())
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	tasks, err := client.Tasks(ctx, created.ID)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}

	result, err := client.SubmitCheckIn(ctx, tasks[0].ID, checkin.StatusDone, "")
	if err != nil {
		t.Fatalf("SubmitCheckIn: %v", err)
	}
	pool, err := boss.DonePool(boss.PersonalitySupportive, boss.LocaleZhCN)
	if err != nil {
		t.Fatalf("DonePool: %v", err)
	}
	found := false
	for _, message := range pool {
		if message == result.Event.Message() {
			found = true
		}
	}
	if !found {
		t.Errorf("message %q is not localized feedback", result.Event.Message())
	}
}

func TestMissingUserHeader(t *testing.T) {
	httpServer := newTestServer(t)

	resp, err := http.Post(httpServer.URL+"/goals/list", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"method not allowed", errMethodNotAllowed, http.StatusMethodNotAllowed},
		{"missing user", errMissingUser, http.StatusBadRequest},
		{"goal not found", goal.ErrNotFound, http.StatusNotFound},
		{"task not found", goal.ErrTaskNotFound, http.StatusNotFound},
		{"goal limit", plan.ErrGoalLimitReached, http.StatusForbidden},
		{"boss type locked", plan.ErrBossTypeLocked, http.StatusForbidden},
		{"empty title", goal.ErrEmptyTitle, http.StatusBadRequest},
		{"invalid transition", goal.ErrInvalidTransition, http.StatusBadRequest},
		{"invalid check-in status", checkin.ErrInvalidStatus, http.StatusBadRequest},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := errorStatus(test.err); got != test.want {
				t.Errorf("errorStatus = %d, want %d", got, test.want)
			}
		})
	}
}
