package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMetrics holds the per-session analytics record. Counters here use plain
// increments; exact correctness is not required for analytics fields.
type ChatMetrics struct {
	Id        uuid.UUID
	SessionId uuid.UUID

	UserMessages   int
	BotMessages    int
	AgentMessages  int
	SystemMessages int

	AvgAgentResponseSeconds float64
	// ResponseSamples counts the agent replies folded into the average.
	ResponseSamples int

	SatisfactionScore *float64
	Feedback          string

	Resolved      bool
	Escalated     bool
	TransferCount int

	RequestedDuringHours bool
	ServedDuringHours    bool
	// Minutes until the next opening, recorded when the chat was requested
	// outside business hours.
	MinutesUntilOpenAtRequest *int

	DurationSeconds *int64

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// RecordAgentResponse folds one visitor-to-agent response time into the
// session's running average.
func (m *ChatMetrics) RecordAgentResponse(seconds float64) {
	n := float64(m.ResponseSamples)
	m.AvgAgentResponseSeconds = (m.AvgAgentResponseSeconds*n + seconds) / (n + 1)
	m.ResponseSamples++
}

func (m *ChatMetrics) Finalize(createdAt time.Time, closedAt time.Time) {
	d := int64(closedAt.Sub(createdAt).Seconds())
	m.DurationSeconds = &d
}
