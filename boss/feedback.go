package boss

import "math/rand"

// Feedback is a selected message with its severity classification.
type Feedback struct {
	Message  string
	Severity Severity
}

// SelectFeedback chooses the feedback for a check-in outcome.
//
// For done outcomes the message is drawn uniformly at random from the
// three-entry done pool and the severity is always praise; missCount is
// ignored. For missed outcomes the message is fixed per bucket: one miss
// and two misses are warnings with distinct messages, three or more
// misses is a single escalation message regardless of how high the count
// goes.
//
// SelectFeedback has no side effects; recording the result as an event is
// the caller's job.
func SelectFeedback(outcome Outcome, missCount int, personality Personality, locale Locale) (Feedback, error) {
	if !outcome.IsValid() {
		return Feedback{}, ErrInvalidOutcome
	}
	set, err := lookupMessages(personality, locale)
	if err != nil {
		return Feedback{}, err
	}

	if outcome == OutcomeDone {
		return Feedback{
			Message:  set.Done[rand.Intn(len(set.Done))],
			Severity: SeverityPraise,
		}, nil
	}

	switch {
	case missCount <= 1:
		return Feedback{Message: set.MissedOnce, Severity: SeverityWarning}, nil
	case missCount == 2:
		return Feedback{Message: set.MissedTwice, Severity: SeverityWarning}, nil
	default:
		return Feedback{Message: set.Escalation, Severity: SeverityEscalation}, nil
	}
}
