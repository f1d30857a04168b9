package events

import "time"

// Event defines the contract for all chat domain events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "AGENT_REQUESTED").
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

// Event codes emitted by the orchestration core.
const (
	TypeAgentRequested   = "AGENT_REQUESTED"
	TypeSessionWaiting   = "SESSION_WAITING"
	TypeSessionAssigned  = "SESSION_ASSIGNED"
	TypeSessionClosed    = "SESSION_CLOSED"
	TypeSessionTransfer  = "SESSION_TRANSFERRED"
	TypeSessionEscalated = "SESSION_ESCALATED"
)

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}
