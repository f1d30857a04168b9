package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageBySessionId struct {
	SessionId uuid.UUID
}

func (s MessageBySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// MessagesInOrder yields the authoritative conversation order: the persisted
// sequence, never the timestamp alone.
type MessagesInOrder struct{}

func (s MessagesInOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

// MessageSeqAfter pages history with a seq cursor.
type MessageSeqAfter struct {
	After int64
}

func (s MessageSeqAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("seq > ?", s.After)
}

type MessageByStatus struct {
	Status string
}

func (s MessageByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
