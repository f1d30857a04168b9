package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatTemplate struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type     string    `gorm:"type:varchar(64);not null;index"`
	Category string    `gorm:"type:varchar(64);index"`

	Content   string `gorm:"type:text;not null"`
	Variables datatypes.JSON

	QuickReplies datatypes.JSON

	Conditions        datatypes.JSON
	BusinessHoursOnly bool `gorm:"default:false"`
	Priority          int  `gorm:"default:0"`

	TimesUsed   int64 `gorm:"default:0"`
	LastUsedAt  *time.Time
	AvgRating   float64 `gorm:"default:0"`
	RatingCount int64   `gorm:"default:0"`

	Version  int        `gorm:"default:1"`
	ParentId *uuid.UUID `gorm:"type:uuid"`

	IsActive  bool      `gorm:"default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ChatTemplate) TableName() string {
	return "chat_templates"
}
