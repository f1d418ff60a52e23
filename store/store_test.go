package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/checkin"
	"github.com/bossyapp/bossy/goal"
	"github.com/bossyapp/bossy/plan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "bossy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func date(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func testGoal(id, userID string, createdAt time.Time) goal.Goal {
	return goal.Goal{
		ID:        id,
		UserID:    userID,
		Title:     "Read daily",
		Intensity: goal.IntensityMedium,
		StartDate: date(1),
		EndDate:   date(3),
		Status:    goal.StatusActive,
		BossType:  boss.PersonalitySupportive,
		CreatedAt: createdAt,
	}
}

func testTasks(goalID string) []goal.DailyTask {
	return []goal.DailyTask{
		{ID: goalID + "-t1", GoalID: goalID, Date: date(1), Description: "Spend 30 minutes on: Read daily", Status: goal.TaskTodo},
		{ID: goalID + "-t2", GoalID: goalID, Date: date(2), Description: "Spend 30 minutes on: Read daily", Status: goal.TaskTodo},
		{ID: goalID + "-t3", GoalID: goalID, Date: date(3), Description: "Spend 30 minutes on: Read daily", Status: goal.TaskTodo},
	}
}

func TestGoalRoundTrip(t *testing.T) {
	st := openTestStore(t)

	created := testGoal("g1", "user-1", time.Now().UTC())
	require.NoError(t, st.CreateGoal(created, testTasks("g1")))

	got, err := st.GetGoal("g1")
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)
	require.Equal(t, created.Intensity, got.Intensity)
	require.Equal(t, created.BossType, got.BossType)
	require.True(t, got.StartDate.Equal(created.StartDate))
	require.True(t, got.EndDate.Equal(created.EndDate))

	got.Status = goal.StatusCompleted
	require.NoError(t, st.UpdateGoal(*got))
	updated, err := st.GetGoal("g1")
	require.NoError(t, err)
	require.Equal(t, goal.StatusCompleted, updated.Status)

	_, err = st.GetGoal("missing")
	require.ErrorIs(t, err, goal.ErrNotFound)
	require.ErrorIs(t, st.UpdateGoal(testGoal("missing", "user-1", time.Now())), goal.ErrNotFound)
}

func TestListGoals(t *testing.T) {
	st := openTestStore(t)

	now := time.Now().UTC()
	older := testGoal("g1", "user-1", now.Add(-time.Hour))
	newer := testGoal("g2", "user-1", now)
	other := testGoal("g3", "user-2", now)
	newer.Status = goal.StatusAbandoned
	require.NoError(t, st.CreateGoal(older, nil))
	require.NoError(t, st.CreateGoal(newer, nil))
	require.NoError(t, st.CreateGoal(other, nil))

	goals, err := st.ListGoals("user-1", goal.ListFilter{})
	require.NoError(t, err)
	require.Len(t, goals, 2)
	require.Equal(t, "g2", goals[0].ID, "newest first")
	require.Equal(t, "g1", goals[1].ID)

	active := goal.StatusActive
	goals, err = st.ListGoals("user-1", goal.ListFilter{Status: &active})
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Equal(t, "g1", goals[0].ID)

	count, err := st.CountActiveGoals("user-1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestTasks(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.CreateGoal(testGoal("g1", "user-1", time.Now().UTC()), testTasks("g1")))

	task, err := st.GetTask("g1-t2")
	require.NoError(t, err)
	require.True(t, task.Date.Equal(date(2)))

	task.Description = "Read chapter 4"
	task.Status = goal.TaskDone
	require.NoError(t, st.UpdateTask(*task))
	task, err = st.GetTask("g1-t2")
	require.NoError(t, err)
	require.Equal(t, "Read chapter 4", task.Description)
	require.Equal(t, goal.TaskDone, task.Status)

	all, err := st.ListTasks("g1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.True(t, all[0].Date.Before(all[1].Date), "ascending order")

	through, err := st.TasksThrough("g1", date(2))
	require.NoError(t, err)
	require.Len(t, through, 2)
	require.True(t, through[0].Date.Equal(date(2)), "descending from the cutoff")
	require.True(t, through[1].Date.Equal(date(1)))

	require.NoError(t, st.DeleteTask("g1-t3"))
	all, err = st.ListTasks("g1")
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = st.GetTask("g1-t3")
	require.ErrorIs(t, err, goal.ErrTaskNotFound)
}

func TestCreateGoalIsAtomic(t *testing.T) {
	st := openTestStore(t)

	tasks := testTasks("g1")
	tasks[2].Date = tasks[1].Date // violates the (goal_id, date) unique constraint
	require.Error(t, st.CreateGoal(testGoal("g1", "user-1", time.Now().UTC()), tasks))

	_, err := st.GetGoal("g1")
	require.ErrorIs(t, err, goal.ErrNotFound, "failed create must not leave the goal behind")
}

func TestCheckIns(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.CreateGoal(testGoal("g1", "user-1", time.Now().UTC()), testTasks("g1")))

	absent, err := st.GetCheckIn("g1-t1", "user-1")
	require.NoError(t, err)
	require.Nil(t, absent, "absent check-in reads as nil, nil")

	first, err := st.UpsertCheckIn(checkin.CheckIn{TaskID: "g1-t1", UserID: "user-1", Status: checkin.StatusMissed, Note: "travel day"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, checkin.StatusMissed, first.Status)
	require.Equal(t, "travel day", first.Note)

	second, err := st.UpsertCheckIn(checkin.CheckIn{TaskID: "g1-t1", UserID: "user-1", Status: checkin.StatusDone, Note: "caught up"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "resubmission updates in place")
	require.Equal(t, checkin.StatusDone, second.Status)
	require.Equal(t, "caught up", second.Note)

	// Deleting the task cascades to its check-in.
	require.NoError(t, st.DeleteTask("g1-t1"))
	gone, err := st.GetCheckIn("g1-t1", "user-1")
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestEvents(t *testing.T) {
	st := openTestStore(t)

	for _, message := range []string{"first", "second", "third"} {
		event := boss.NewEvent("user-1", boss.Feedback{Message: message, Severity: boss.SeverityPraise}, nil)
		recorded, err := st.RecordEvent(event)
		require.NoError(t, err)
		require.NotEmpty(t, recorded.ID)
		require.False(t, recorded.CreatedAt.IsZero())
		time.Sleep(2 * time.Millisecond)
	}
	otherEvent := boss.NewEvent("user-2", boss.Feedback{Message: "not yours", Severity: boss.SeverityWarning}, nil)
	_, err := st.RecordEvent(otherEvent)
	require.NoError(t, err)

	events, err := st.RecentEvents("user-1", 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "third", events[0].Message(), "newest first")
	require.Equal(t, "first", events[2].Message())

	events, err = st.RecentEvents("user-1", 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "third", events[0].Message())
}

func TestSubscriptions(t *testing.T) {
	st := openTestStore(t)

	absent, err := st.GetSubscription("user-1")
	require.NoError(t, err)
	require.Nil(t, absent, "no subscription reads as nil, nil")

	sub := plan.Subscription{
		UserID:                 "user-1",
		Plan:                   plan.NamePlus,
		Status:                 plan.SubscriptionActive,
		Interval:               plan.IntervalMonthly,
		ProviderCustomerID:     "cus_123",
		ProviderSubscriptionID: "sub_456",
	}
	require.NoError(t, st.UpsertSubscription(sub))

	got, err := st.GetSubscription("user-1")
	require.NoError(t, err)
	require.Equal(t, plan.NamePlus, got.Plan)
	require.Equal(t, plan.SubscriptionActive, got.Status)
	require.Equal(t, "cus_123", got.ProviderCustomerID)
	require.False(t, got.UpdatedAt.IsZero())

	sub.Status = plan.SubscriptionCanceled
	require.NoError(t, st.UpsertSubscription(sub))
	got, err = st.GetSubscription("user-1")
	require.NoError(t, err)
	require.Equal(t, plan.SubscriptionCanceled, got.Status)
}
