package boss

import "time"

// Event is a persisted accountability-feedback record. Events are written
// once per triggering action and never mutated.
type Event struct {
	// ID is assigned by the recorder.
	ID string `json:"id"`

	// UserID owns the event.
	UserID string `json:"user_id"`

	// Severity classifies the event (praise, warning, escalation).
	Severity Severity `json:"severity"`

	// Context carries free-form display data. It always contains at
	// least a "message" string; check-in events also carry the goal id
	// and outcome.
	Context map[string]string `json:"context"`

	// CreatedAt is assigned by the recorder.
	CreatedAt time.Time `json:"created_at"`
}

// Message returns the display message from the event context.
func (e Event) Message() string {
	return e.Context["message"]
}

// NewEvent builds an unrecorded event for a feedback result. The recorder
// assigns ID and CreatedAt.
func NewEvent(userID string, feedback Feedback, extra map[string]string) Event {
	context := map[string]string{"message": feedback.Message}
	for key, value := range extra {
		context[key] = value
	}
	return Event{
		UserID:   userID,
		Severity: feedback.Severity,
		Context:  context,
	}
}

// Recorder persists feedback events. Implementations assign the id and
// creation timestamp on write.
type Recorder interface {
	RecordEvent(event Event) (Event, error)
	RecentEvents(userID string, limit int) ([]Event, error)
}
