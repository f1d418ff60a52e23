package plan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bossyapp/bossy/boss"
)

type fakeSubscriptions struct {
	subs map[string]*Subscription
	err  error
}

func (f *fakeSubscriptions) GetSubscription(userID string) (*Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.subs[userID], nil
}

type fakeGoalCounts struct {
	counts map[string]int
	err    error
}

func (f *fakeGoalCounts) CountActiveGoals(userID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[userID], nil
}

func newTestGate(subs map[string]*Subscription, counts map[string]int) (*Gate, *fakeSubscriptions, *fakeGoalCounts) {
	subscriptions := &fakeSubscriptions{subs: subs}
	goals := &fakeGoalCounts{counts: counts}
	return NewGate(subscriptions, goals), subscriptions, goals
}

func plusSubscription(userID string) *Subscription {
	return &Subscription{UserID: userID, Plan: NamePlus, Status: SubscriptionActive}
}

func TestCanCreateGoal(t *testing.T) {
	t.Run("free plan under the cap", func(t *testing.T) {
		gate, _, _ := newTestGate(nil, map[string]int{"user-1": 0})
		allowed, err := gate.CanCreateGoal("user-1")
		if err != nil {
			t.Fatalf("CanCreateGoal: %v", err)
		}
		if !allowed {
			t.Error("free user with no active goals should be allowed")
		}
	})

	t.Run("free plan at the cap", func(t *testing.T) {
		gate, _, _ := newTestGate(nil, map[string]int{"user-1": 1})
		allowed, err := gate.CanCreateGoal("user-1")
		if err != nil {
			t.Fatalf("CanCreateGoal: %v", err)
		}
		if allowed {
			t.Error("free user at the cap should be denied")
		}
	})

	t.Run("plus plan is unlimited", func(t *testing.T) {
		gate, _, goals := newTestGate(map[string]*Subscription{"user-1": plusSubscription("user-1")}, map[string]int{"user-1": 250})
		allowed, err := gate.CanCreateGoal("user-1")
		if err != nil {
			t.Fatalf("CanCreateGoal: %v", err)
		}
		if !allowed {
			t.Error("plus user should be unlimited")
		}
		// The count is not even consulted for unlimited plans.
		goals.err = fmt.Errorf("unreachable")
		if allowed, err = gate.CanCreateGoal("user-1"); err != nil || !allowed {
			t.Errorf("allowed=%v err=%v", allowed, err)
		}
	})

	t.Run("canceled subscription falls back to free", func(t *testing.T) {
		subs := map[string]*Subscription{
			"user-1": {UserID: "user-1", Plan: NamePlus, Status: SubscriptionCanceled},
		}
		gate, _, _ := newTestGate(subs, map[string]int{"user-1": 1})
		allowed, err := gate.CanCreateGoal("user-1")
		if err != nil {
			t.Fatalf("CanCreateGoal: %v", err)
		}
		if allowed {
			t.Error("canceled plus subscription should enforce free limits")
		}
	})

	t.Run("fails closed on subscription error", func(t *testing.T) {
		gate, subs, _ := newTestGate(nil, nil)
		subs.err = fmt.Errorf("store offline")
		allowed, err := gate.CanCreateGoal("user-1")
		if err == nil {
			t.Error("expected error")
		}
		if allowed {
			t.Error("gate must deny when it cannot decide")
		}
	})

	t.Run("fails closed on count error", func(t *testing.T) {
		gate, _, goals := newTestGate(nil, nil)
		goals.err = fmt.Errorf("store offline")
		allowed, err := gate.CanCreateGoal("user-1")
		if err == nil {
			t.Error("expected error")
		}
		if allowed {
			t.Error("gate must deny when it cannot count")
		}
	})
}

func TestCanChangeBossType(t *testing.T) {
	gate, _, _ := newTestGate(map[string]*Subscription{"plus-user": plusSubscription("plus-user")}, nil)

	if can, err := gate.CanChangeBossType("free-user"); err != nil || can {
		t.Errorf("free user: can=%v err=%v", can, err)
	}
	if can, err := gate.CanChangeBossType("plus-user"); err != nil || !can {
		t.Errorf("plus user: can=%v err=%v", can, err)
	}
}

func TestAllowedPersonality(t *testing.T) {
	gate, _, _ := newTestGate(map[string]*Subscription{"plus-user": plusSubscription("plus-user")}, nil)

	t.Run("free resolves to supportive", func(t *testing.T) {
		got, err := gate.AllowedPersonality("free-user", "")
		if err != nil {
			t.Fatalf("AllowedPersonality: %v", err)
		}
		if got != boss.PersonalitySupportive {
			t.Errorf("personality = %s, want supportive", got)
		}
	})

	t.Run("free may request supportive explicitly", func(t *testing.T) {
		got, err := gate.AllowedPersonality("free-user", boss.PersonalitySupportive)
		if err != nil {
			t.Fatalf("AllowedPersonality: %v", err)
		}
		if got != boss.PersonalitySupportive {
			t.Errorf("personality = %s", got)
		}
	})

	t.Run("free cannot request another personality", func(t *testing.T) {
		if _, err := gate.AllowedPersonality("free-user", boss.PersonalityDrillSergeant); !errors.Is(err, ErrBossTypeLocked) {
			t.Errorf("err = %v, want ErrBossTypeLocked", err)
		}
	})

	t.Run("plus keeps the request", func(t *testing.T) {
		got, err := gate.AllowedPersonality("plus-user", boss.PersonalityDrillSergeant)
		if err != nil {
			t.Fatalf("AllowedPersonality: %v", err)
		}
		if got != boss.PersonalityDrillSergeant {
			t.Errorf("personality = %s", got)
		}
	})
}

func TestPlanFor(t *testing.T) {
	subs := map[string]*Subscription{
		"plus-user":     plusSubscription("plus-user"),
		"past-due-user": {UserID: "past-due-user", Plan: NamePlus, Status: SubscriptionPastDue},
	}
	gate, _, _ := newTestGate(subs, nil)

	tests := []struct {
		userID string
		want   Name
	}{
		{"free-user", NameFree},
		{"plus-user", NamePlus},
		{"past-due-user", NamePlus},
	}
	for _, test := range tests {
		t.Run(test.userID, func(t *testing.T) {
			current, err := gate.PlanFor(test.userID)
			if err != nil {
				t.Fatalf("PlanFor: %v", err)
			}
			if current.Name != test.want {
				t.Errorf("plan = %s, want %s", current.Name, test.want)
			}
		})
	}
}
