package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAgentRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Department      string   `json:"department,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
	MaxChats        int      `json:"max_chats"`
	Priority        int      `json:"priority"`
}

type UpdateAgentRequest struct {
	Name            *string  `json:"name,omitempty"`
	Department      *string  `json:"department,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
	MaxChats        *int     `json:"max_chats,omitempty"`
	Priority        *int     `json:"priority,omitempty"`
}

type UpdateAgentStatusRequest struct {
	Status string `json:"status"` // online, offline, busy, away, break
}

type AgentResponse struct {
	Id              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Department      string     `json:"department,omitempty"`
	Specializations []string   `json:"specializations,omitempty"`
	Status          string     `json:"status"`
	CurrentSessions int        `json:"current_sessions"`
	MaxChats        int        `json:"max_chats"`
	Priority        int        `json:"priority"`
	AvgRating       float64    `json:"avg_rating"`
	LastActivityAt  *time.Time `json:"last_activity_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type AgentListRequest struct {
	Department string `query:"department"`
	OnlyActive bool   `query:"only_active"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}
