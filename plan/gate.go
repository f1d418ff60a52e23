package plan

import (
	"errors"
	"fmt"

	"github.com/bossyapp/bossy/boss"
)

var (
	// ErrGoalLimitReached is returned when a plan's active-goal cap is hit.
	ErrGoalLimitReached = errors.New("active goal limit reached for plan")

	// ErrBossTypeLocked is returned when a plan does not permit
	// switching boss personality.
	ErrBossTypeLocked = errors.New("plan does not allow changing boss personality")
)

// SubscriptionReader looks up a user's subscription. A nil record with a
// nil error means no subscription on file (free plan).
type SubscriptionReader interface {
	GetSubscription(userID string) (*Subscription, error)
}

// ActiveGoalCounter counts a user's goals currently in active status.
type ActiveGoalCounter interface {
	CountActiveGoals(userID string) (int, error)
}

// Gate decides whether plan-limited actions are permitted. All checks
// read fresh state; nothing is cached between calls, since goals change
// state from other request flows concurrently.
//
// The gate fails closed: if the subscription or goal-count read fails,
// the gated action is denied. These checks enforce monetization limits,
// so an outage must not quietly lift them.
type Gate struct {
	Subscriptions SubscriptionReader
	Goals         ActiveGoalCounter
}

// NewGate creates a plan gate over the given readers.
func NewGate(subscriptions SubscriptionReader, goals ActiveGoalCounter) *Gate {
	return &Gate{Subscriptions: subscriptions, Goals: goals}
}

// CanCreateGoal reports whether the user may create another active goal.
//
// The count-then-compare is not atomic with the subsequent goal insert;
// two concurrent creations can transiently admit one extra active goal.
// Accepted as a benign race for this domain.
func (g *Gate) CanCreateGoal(userID string) (bool, error) {
	current, err := g.planFor(userID)
	if err != nil {
		return false, err
	}
	if current.AllowsUnlimitedGoals() {
		return true, nil
	}

	count, err := g.Goals.CountActiveGoals(userID)
	if err != nil {
		return false, fmt.Errorf("count active goals: %w", err)
	}
	return count < current.MaxActiveGoals, nil
}

// CanChangeBossType reports whether the user may switch boss personality.
func (g *Gate) CanChangeBossType(userID string) (bool, error) {
	current, err := g.planFor(userID)
	if err != nil {
		return false, err
	}
	return current.CanChangeBossType, nil
}

// AllowedPersonality validates a requested personality against the
// user's plan. Plans that lock the personality only resolve their
// AllowedBossType.
func (g *Gate) AllowedPersonality(userID string, requested boss.Personality) (boss.Personality, error) {
	current, err := g.planFor(userID)
	if err != nil {
		return "", err
	}
	if current.CanChangeBossType {
		return requested, nil
	}
	if requested != "" && requested != current.AllowedBossType {
		return "", fmt.Errorf("%w: plan %s is limited to %s", ErrBossTypeLocked, current.Name, current.AllowedBossType)
	}
	return current.AllowedBossType, nil
}

// PlanFor resolves the user's effective plan, defaulting to Free when no
// subscription exists.
func (g *Gate) PlanFor(userID string) (Plan, error) {
	return g.planFor(userID)
}

func (g *Gate) planFor(userID string) (Plan, error) {
	sub, err := g.Subscriptions.GetSubscription(userID)
	if err != nil {
		return Plan{}, fmt.Errorf("get subscription: %w", err)
	}
	return ForSubscription(sub), nil
}
