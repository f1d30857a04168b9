package mapper

import (
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/model"
)

type AgentMapper struct{}

func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

func (m *AgentMapper) ToEntity(a *model.LiveAgent) *entity.LiveAgent {
	if a == nil {
		return nil
	}

	var skills []string
	fromJSON(a.Skills, &skills)

	var schedule entity.AgentSchedule
	fromJSON(a.Schedule, &schedule)

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.LiveAgent{
		Id:                 a.Id,
		Name:               a.Name,
		Email:              a.Email,
		Department:         a.Department,
		Skills:             skills,
		Status:             entity.AgentStatus(a.Status),
		CurrentSessions:    a.CurrentSessions,
		MaxChats:           a.MaxChats,
		Schedule:           schedule,
		AvgResponseSeconds: a.AvgResponseSeconds,
		ResponseSessions:   a.ResponseSessions,
		AvgRating:          a.AvgRating,
		RatedSessions:      a.RatedSessions,
		ResolutionRate:     a.ResolutionRate,
		ClosedSessions:     a.ClosedSessions,
		Priority:           a.Priority,
		LastActiveAt:       a.LastActiveAt,
		IsActive:           a.IsActive,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *AgentMapper) ToModel(a *entity.LiveAgent) *model.LiveAgent {
	if a == nil {
		return nil
	}

	return &model.LiveAgent{
		Id:                 a.Id,
		Name:               a.Name,
		Email:              a.Email,
		Department:         a.Department,
		Skills:             toJSON(a.Skills),
		Status:             string(a.Status),
		CurrentSessions:    a.CurrentSessions,
		MaxChats:           a.MaxChats,
		Schedule:           toJSON(a.Schedule),
		AvgResponseSeconds: a.AvgResponseSeconds,
		ResponseSessions:   a.ResponseSessions,
		AvgRating:          a.AvgRating,
		RatedSessions:      a.RatedSessions,
		ResolutionRate:     a.ResolutionRate,
		ClosedSessions:     a.ClosedSessions,
		Priority:           a.Priority,
		LastActiveAt:       a.LastActiveAt,
		IsActive:           a.IsActive,
		CreatedAt:          a.CreatedAt,
	}
}
