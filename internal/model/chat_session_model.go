package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id      uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId  *uuid.UUID `gorm:"type:uuid;index"`
	GuestId *uuid.UUID `gorm:"type:uuid;index"`

	SessionType string     `gorm:"type:varchar(16);not null"`
	Status      string     `gorm:"type:varchar(24);not null;index"`
	AgentId     *uuid.UUID `gorm:"type:uuid;index"`

	ContactName  string `gorm:"type:varchar(255)"`
	ContactEmail string `gorm:"type:varchar(255)"`
	ContactPhone string `gorm:"type:varchar(32)"`

	SelectedOption string `gorm:"type:varchar(64)"`
	Priority       int    `gorm:"default:0"`

	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	LastMessageAt *time.Time
	AssignedAt    *time.Time
	TransferredAt *time.Time
	ClosedAt      *time.Time

	MessageCount       int  `gorm:"default:0"`
	CreatedDuringHours bool `gorm:"default:true"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
