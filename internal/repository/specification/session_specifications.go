package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionOwnedBy matches sessions owned by the given user or guest id.
type SessionOwnedBy struct {
	OwnerId uuid.UUID
}

func (s SessionOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? OR guest_id = ?", s.OwnerId, s.OwnerId)
}

type SessionByStatus struct {
	Status string
}

func (s SessionByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type SessionByAgentId struct {
	AgentId uuid.UUID
}

func (s SessionByAgentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("agent_id = ?", s.AgentId)
}

// SessionIdleSince matches active sessions whose last message predates the
// cutoff. Used by the expiry sweep.
type SessionIdleSince struct {
	Cutoff time.Time
}

func (s SessionIdleSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? AND last_message_at IS NOT NULL AND last_message_at < ?", "active", s.Cutoff)
}
