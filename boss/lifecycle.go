package boss

import "fmt"

// Lifecycle messages are deliberately separate from the check-in catalog:
// they are English-only and the same for every personality. Check-in
// feedback varies by personality and locale; goal completion and
// abandonment do not.

// CompletionFeedback returns the fixed praise recorded when a goal is
// completed.
func CompletionFeedback(goalTitle string) Feedback {
	return Feedback{
		Message:  fmt.Sprintf("Goal complete: %q. You set it, you finished it. That's the whole game.", goalTitle),
		Severity: SeverityPraise,
	}
}

// AbandonmentFeedback returns the fixed warning recorded when a goal is
// abandoned.
func AbandonmentFeedback(goalTitle string) Feedback {
	return Feedback{
		Message:  fmt.Sprintf("Goal abandoned: %q. Noted. Pick your next commitment more carefully.", goalTitle),
		Severity: SeverityWarning,
	}
}
