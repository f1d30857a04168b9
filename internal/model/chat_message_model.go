package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`

	// Seq gives the authoritative conversation order within a session;
	// timestamps alone can collide under concurrent senders.
	Seq int64 `gorm:"autoIncrement;uniqueIndex"`

	SenderId   *uuid.UUID `gorm:"type:uuid"`
	SenderKind string     `gorm:"type:varchar(16);not null"`

	Body      string `gorm:"type:text;not null"`
	Encrypted bool   `gorm:"default:false"`

	MessageType string `gorm:"type:varchar(32);not null"`
	Status      string `gorm:"type:varchar(16);not null;default:'sent'"`

	Metadata  datatypes.JSON
	ReplyToId *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
