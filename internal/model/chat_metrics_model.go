package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMetrics struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	UserMessages   int `gorm:"default:0"`
	BotMessages    int `gorm:"default:0"`
	AgentMessages  int `gorm:"default:0"`
	SystemMessages int `gorm:"default:0"`

	AvgAgentResponseSeconds float64 `gorm:"default:0"`
	ResponseSamples         int     `gorm:"default:0"`

	SatisfactionScore *float64
	Feedback          string `gorm:"type:text"`

	Resolved      bool `gorm:"default:false"`
	Escalated     bool `gorm:"default:false"`
	TransferCount int  `gorm:"default:0"`

	RequestedDuringHours      bool `gorm:"default:true"`
	ServedDuringHours         bool `gorm:"default:false"`
	MinutesUntilOpenAtRequest *int

	DurationSeconds *int64

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ChatMetrics) TableName() string {
	return "chat_metrics"
}
