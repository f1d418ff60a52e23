// Package boss implements the accountability-feedback engine: four fixed
// boss personalities, a localized message catalog, and the selection logic
// that maps check-in outcomes and consecutive-miss counts to feedback.
//
// Check-in feedback is personality- and locale-aware. Goal lifecycle
// feedback (completion, abandonment) is a separate English-only path; the
// two are intentionally not unified.
package boss

// Personality identifies a boss feedback voice.
type Personality string

const (
	// PersonalityExecution is blunt and results-focused.
	PersonalityExecution Personality = "execution"

	// PersonalitySupportive is warm and encouraging. It is the only
	// personality available on the free plan.
	PersonalitySupportive Personality = "supportive"

	// PersonalityMentor is reflective and advice-oriented.
	PersonalityMentor Personality = "mentor"

	// PersonalityDrillSergeant is loud and demanding.
	PersonalityDrillSergeant Personality = "drill-sergeant"
)

// ValidPersonalities returns all valid personality values.
func ValidPersonalities() []Personality {
	return []Personality{PersonalityExecution, PersonalitySupportive, PersonalityMentor, PersonalityDrillSergeant}
}

// IsValid returns true if the personality is a known valid value.
func (p Personality) IsValid() bool {
	for _, valid := range ValidPersonalities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Outcome is the result recorded for a daily task check-in.
type Outcome string

const (
	// OutcomeDone indicates the task was completed.
	OutcomeDone Outcome = "done"

	// OutcomeMissed indicates the task was not completed.
	OutcomeMissed Outcome = "missed"
)

// IsValid returns true if the outcome is a known valid value.
func (o Outcome) IsValid() bool {
	return o == OutcomeDone || o == OutcomeMissed
}

// Severity classifies a feedback event.
type Severity string

const (
	// SeverityPraise marks positive feedback.
	SeverityPraise Severity = "praise"

	// SeverityWarning marks a nudge after one or two misses.
	SeverityWarning Severity = "warning"

	// SeverityEscalation marks feedback after three or more
	// consecutive misses.
	SeverityEscalation Severity = "escalation"
)

// ValidSeverities returns all valid severity values.
func ValidSeverities() []Severity {
	return []Severity{SeverityPraise, SeverityWarning, SeverityEscalation}
}

// IsValid returns true if the severity is a known valid value.
func (s Severity) IsValid() bool {
	for _, valid := range ValidSeverities() {
		if s == valid {
			return true
		}
	}
	return false
}
