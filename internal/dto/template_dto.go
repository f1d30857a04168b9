package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTemplateRequest struct {
	Type              string            `json:"type"`
	Category          string            `json:"category,omitempty"`
	Content           string            `json:"content"`
	QuickReplies      []string          `json:"quick_replies,omitempty"`
	Variables         map[string]string `json:"variables,omitempty"` // default values
	Conditions        map[string]string `json:"conditions,omitempty"`
	Priority          int               `json:"priority"`
	BusinessHoursOnly bool              `json:"business_hours_only"`
}

type UpdateTemplateRequest struct {
	Category          *string           `json:"category,omitempty"`
	Content           *string           `json:"content,omitempty"`
	QuickReplies      []string          `json:"quick_replies,omitempty"`
	Variables         map[string]string `json:"variables,omitempty"`
	Conditions        map[string]string `json:"conditions,omitempty"`
	Priority          *int              `json:"priority,omitempty"`
	BusinessHoursOnly *bool             `json:"business_hours_only,omitempty"`
}

type TemplateResponse struct {
	Id                uuid.UUID         `json:"id"`
	Type              string            `json:"type"`
	Category          string            `json:"category,omitempty"`
	Content           string            `json:"content"`
	QuickReplies      []string          `json:"quick_replies,omitempty"`
	Variables         map[string]string `json:"variables,omitempty"`
	Conditions        map[string]string `json:"conditions,omitempty"`
	Priority          int               `json:"priority"`
	BusinessHoursOnly bool              `json:"business_hours_only"`
	IsActive          bool              `json:"is_active"`
	UsageCount        int               `json:"usage_count"`
	AvgRating         float64           `json:"avg_rating"`
	Version           int               `json:"version"`
	ParentId          *uuid.UUID        `json:"parent_id,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type TemplateListRequest struct {
	Type       string `query:"type"`
	Category   string `query:"category"`
	OnlyActive bool   `query:"only_active"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

type RenderTemplateRequest struct {
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type RenderTemplateResponse struct {
	Content      string   `json:"content"`
	QuickReplies []string `json:"quick_replies,omitempty"`
}

type RateTemplateRequest struct {
	Rating float64 `json:"rating"` // 1-5
}
