package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ById struct {
	Id uuid.UUID
}

func (s ById) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.Id)
}

type Limit struct {
	Limit int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit)
}

type Offset struct {
	Offset int
}

func (s Offset) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(s.Offset)
}

type OrderBy struct {
	Expression string
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(s.Expression)
}
