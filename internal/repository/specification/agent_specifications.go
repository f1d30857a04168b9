package specification

import (
	"gorm.io/gorm"
)

// AgentAvailable matches agents that can take another session right now.
type AgentAvailable struct{}

func (s AgentAvailable) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ? AND is_active = ? AND current_sessions < max_chats", []string{"online", "available"}, true)
}

type AgentByDepartment struct {
	Department string
}

func (s AgentByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("department = ?", s.Department)
}

type AgentByEmail struct {
	Email string
}

func (s AgentByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type AgentActiveOnly struct{}

func (s AgentActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
