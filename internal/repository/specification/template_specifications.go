package specification

import (
	"gorm.io/gorm"
)

type TemplateByType struct {
	Type string
}

func (s TemplateByType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type TemplateByCategory struct {
	Category string
}

func (s TemplateByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type TemplateActiveOnly struct{}

func (s TemplateActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// TemplatesByPriority orders candidates so the highest priority wins ties.
type TemplatesByPriority struct{}

func (s TemplatesByPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("priority DESC")
}
