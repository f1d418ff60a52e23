// Package plan implements subscription plans, their limits, and the gate
// that enforces plan-limited actions.
package plan

import (
	"time"

	"github.com/bossyapp/bossy/boss"
)

// Name identifies a billing plan.
type Name string

const (
	// NameFree is the default plan for users with no subscription.
	NameFree Name = "free"

	// NamePlus is the paid plan.
	NamePlus Name = "plus"
)

// ValidNames returns all valid plan names.
func ValidNames() []Name {
	return []Name{NameFree, NamePlus}
}

// IsValid returns true if the plan name is a known valid value.
func (n Name) IsValid() bool {
	for _, valid := range ValidNames() {
		if n == valid {
			return true
		}
	}
	return false
}

// UnlimitedGoals marks a plan with no active-goal cap.
const UnlimitedGoals = -1

// Plan is a static set of limits. Plans are immutable package data,
// shared without synchronization.
type Plan struct {
	// Name identifies the plan.
	Name Name

	// MaxActiveGoals caps goals in active status, or UnlimitedGoals.
	MaxActiveGoals int

	// CanChangeBossType permits switching boss personality.
	CanChangeBossType bool

	// AllowedBossType is the sole personality resolvable under this
	// plan when CanChangeBossType is false. Empty means any.
	AllowedBossType boss.Personality

	// HistoryWindowDays caps how many days of boss events are shown,
	// or 0 for unlimited.
	HistoryWindowDays int
}

// AllowsUnlimitedGoals returns true if the plan has no active-goal cap.
func (p Plan) AllowsUnlimitedGoals() bool {
	return p.MaxActiveGoals == UnlimitedGoals
}

// SubscriptionStatus mirrors the billing provider's subscription state.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// BillingInterval is the provider's billing cadence.
type BillingInterval string

const (
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

// Subscription is the per-user billing record. It is mutated only by the
// billing webhook, never by plan-gate reads.
type Subscription struct {
	UserID                 string             `json:"user_id"`
	Plan                   Name               `json:"plan"`
	Status                 SubscriptionStatus `json:"status"`
	Interval               BillingInterval    `json:"interval"`
	ProviderCustomerID     string             `json:"provider_customer_id"`
	ProviderSubscriptionID string             `json:"provider_subscription_id"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// Entitled returns true when the subscription grants its plan's limits.
// Canceled subscriptions fall back to the free plan.
func (s Subscription) Entitled() bool {
	return s.Status == SubscriptionActive || s.Status == SubscriptionPastDue
}
