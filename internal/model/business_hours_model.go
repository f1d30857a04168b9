package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BusinessHoursConfig struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Timezone string    `gorm:"type:varchar(64);not null"`

	StartTime   string         `gorm:"type:varchar(5);not null"`
	EndTime     string         `gorm:"type:varchar(5);not null"`
	WorkingDays datatypes.JSON `gorm:"not null"`

	Holidays     datatypes.JSON
	SpecialHours datatypes.JSON

	OutsideHoursMessage string `gorm:"type:text"`
	WeekendMessage      string `gorm:"type:text"`
	OutsideHoursOptions datatypes.JSON

	WarningMinutesBeforeClose       int `gorm:"default:30"`
	AllowNewChatsMinutesBeforeClose int `gorm:"default:15"`

	IsActive  bool      `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (BusinessHoursConfig) TableName() string {
	return "business_hours_configs"
}
