package specification

import (
	"gorm.io/gorm"
)

// ActiveConfig matches the single active business-hours configuration.
type ActiveConfig struct{}

func (s ActiveConfig) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
