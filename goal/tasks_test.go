package goal

import (
	"testing"
	"time"

	"github.com/bossyapp/bossy/boss"
)

func TestGenerateTaskDescription(t *testing.T) {
	tests := []struct {
		intensity Intensity
		want      string
	}{
		{IntensityLow, "Spend 15 minutes on: Read daily"},
		{IntensityMedium, "Spend 30 minutes on: Read daily"},
		{IntensityHigh, "Spend 1 hour on: Read daily"},
	}
	for _, test := range tests {
		t.Run(string(test.intensity), func(t *testing.T) {
			if got := GenerateTaskDescription(test.intensity, "Read daily"); got != test.want {
				t.Errorf("description = %q, want %q", got, test.want)
			}
		})
	}
}

func TestGenerateDailyTasks(t *testing.T) {
	date := func(day int) time.Time {
		return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
	}
	base := Goal{
		ID:        "g1",
		UserID:    "user-1",
		Title:     "Read daily",
		Intensity: IntensityMedium,
		Status:    StatusActive,
		BossType:  boss.PersonalitySupportive,
	}

	t.Run("one task per day inclusive", func(t *testing.T) {
		g := base
		g.StartDate = date(1)
		g.EndDate = date(7)
		tasks := GenerateDailyTasks(g)
		if len(tasks) != 7 {
			t.Fatalf("expected 7 tasks, got %d", len(tasks))
		}
		seen := map[string]bool{}
		for i, task := range tasks {
			if task.GoalID != g.ID {
				t.Errorf("task %d goal id = %q", i, task.GoalID)
			}
			if task.Status != TaskTodo {
				t.Errorf("task %d status = %s, want todo", i, task.Status)
			}
			if !task.Date.Equal(date(i + 1)) {
				t.Errorf("task %d date = %s, want %s", i, task.Date, date(i+1))
			}
			if task.ID == "" || seen[task.ID] {
				t.Errorf("task %d has empty or duplicate id %q", i, task.ID)
			}
			seen[task.ID] = true
		}
	})

	t.Run("single-day range", func(t *testing.T) {
		g := base
		g.StartDate = date(5)
		g.EndDate = date(5)
		tasks := GenerateDailyTasks(g)
		if len(tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(tasks))
		}
	})

	t.Run("inverted range yields nothing", func(t *testing.T) {
		g := base
		g.StartDate = date(7)
		g.EndDate = date(1)
		if tasks := GenerateDailyTasks(g); len(tasks) != 0 {
			t.Fatalf("expected no tasks, got %d", len(tasks))
		}
	})
}
