package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the subject suffix for this event (e.g. "question.answered").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const QuestionAnsweredType = "question.answered"

// QuestionAnswered is emitted once per handled question, failed ones included
type QuestionAnswered struct {
	CorrelationID   string    `json:"correlation_id"`
	Question        string    `json:"question"`
	TerritoryType   string    `json:"territory_type"`
	TerritoryNameID string    `json:"territory_name_id"`
	Pipeline        string    `json:"pipeline"`
	Actions         []string  `json:"actions"`
	Answer          string    `json:"answer"`
	Error           string    `json:"error,omitempty"`
	LatencyMs       int64     `json:"latency_ms"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func (e QuestionAnswered) EventType() string {
	return QuestionAnsweredType
}

func (e QuestionAnswered) Payload() map[string]interface{} {
	data := map[string]interface{}{
		"correlation_id":    e.CorrelationID,
		"question":          e.Question,
		"territory_type":    e.TerritoryType,
		"territory_name_id": e.TerritoryNameID,
		"pipeline":          e.Pipeline,
		"actions":           e.Actions,
		"answer":            e.Answer,
		"latency_ms":        e.LatencyMs,
		"occurred_at":       e.OccurredAt.Format(time.RFC3339),
	}
	if e.Error != "" {
		data["error"] = e.Error
	}
	return data
}

func (e QuestionAnswered) Timestamp() time.Time {
	return e.OccurredAt
}
