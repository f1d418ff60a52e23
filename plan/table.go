package plan

import "github.com/bossyapp/bossy/boss"

// The plan table is fixed at compile time. The free plan pins users to
// the supportive personality; the stated "default" personality from the
// original pricing copy and the enforced single personality were two
// names for the same limit, unified here as AllowedBossType.
var (
	// Free is the zero-cost plan.
	Free = Plan{
		Name:              NameFree,
		MaxActiveGoals:    1,
		CanChangeBossType: false,
		AllowedBossType:   boss.PersonalitySupportive,
		HistoryWindowDays: 7,
	}

	// Plus is the paid plan.
	Plus = Plan{
		Name:              NamePlus,
		MaxActiveGoals:    UnlimitedGoals,
		CanChangeBossType: true,
		HistoryWindowDays: 0,
	}
)

// ByName returns the plan for a name, defaulting to Free for unknown
// names.
func ByName(name Name) Plan {
	switch name {
	case NamePlus:
		return Plus
	default:
		return Free
	}
}

// ForSubscription resolves the effective plan for a subscription record.
// A nil record (no subscription on file) or an unentitled subscription
// means the free plan.
func ForSubscription(sub *Subscription) Plan {
	if sub == nil || !sub.Entitled() {
		return Free
	}
	return ByName(sub.Plan)
}
