package entity

import (
	"time"

	"github.com/google/uuid"
)

type TemplateVariable struct {
	Name        string `json:"name"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

type ChatTemplate struct {
	Id       uuid.UUID
	Type     string // e.g. "welcome", "option_response", "outside_hours"
	Category string

	Content   string // raw content with {placeholder} / {{placeholder}} markers
	Variables []TemplateVariable

	QuickReplies []string

	// Conditions is a declarative key/value equality match against the
	// render context. All entries must match for the template to apply.
	Conditions        map[string]string
	BusinessHoursOnly bool
	Priority          int

	TimesUsed   int64
	LastUsedAt  *time.Time
	AvgRating   float64
	RatingCount int64

	Version  int
	ParentId *uuid.UUID

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Matches reports whether every declared condition equals the context value.
func (t *ChatTemplate) Matches(context map[string]string) bool {
	for k, want := range t.Conditions {
		if context[k] != want {
			return false
		}
	}
	return true
}
