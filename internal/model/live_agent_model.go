package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LiveAgent struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Department string    `gorm:"type:varchar(64);index"`
	Skills     datatypes.JSON

	Status string `gorm:"type:varchar(16);not null;default:'offline';index"`

	CurrentSessions int `gorm:"default:0"`
	MaxChats        int `gorm:"default:5"`

	Schedule datatypes.JSON

	AvgResponseSeconds float64 `gorm:"default:0"`
	ResponseSessions   int64   `gorm:"default:0"`
	AvgRating          float64 `gorm:"default:0"`
	RatedSessions      int64   `gorm:"default:0"`
	ResolutionRate     float64 `gorm:"default:0"`
	ClosedSessions     int64   `gorm:"default:0"`

	Priority int `gorm:"default:0"`

	LastActiveAt *time.Time
	IsActive     bool      `gorm:"default:true;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (LiveAgent) TableName() string {
	return "live_agents"
}
