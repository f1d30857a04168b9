package mapper

import (
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/model"
)

type TemplateMapper struct{}

func NewTemplateMapper() *TemplateMapper {
	return &TemplateMapper{}
}

func (m *TemplateMapper) ToEntity(t *model.ChatTemplate) *entity.ChatTemplate {
	if t == nil {
		return nil
	}

	var variables []entity.TemplateVariable
	fromJSON(t.Variables, &variables)

	var quickReplies []string
	fromJSON(t.QuickReplies, &quickReplies)

	var conditions map[string]string
	fromJSON(t.Conditions, &conditions)

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	return &entity.ChatTemplate{
		Id:                t.Id,
		Type:              t.Type,
		Category:          t.Category,
		Content:           t.Content,
		Variables:         variables,
		QuickReplies:      quickReplies,
		Conditions:        conditions,
		BusinessHoursOnly: t.BusinessHoursOnly,
		Priority:          t.Priority,
		TimesUsed:         t.TimesUsed,
		LastUsedAt:        t.LastUsedAt,
		AvgRating:         t.AvgRating,
		RatingCount:       t.RatingCount,
		Version:           t.Version,
		ParentId:          t.ParentId,
		IsActive:          t.IsActive,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *TemplateMapper) ToModel(t *entity.ChatTemplate) *model.ChatTemplate {
	if t == nil {
		return nil
	}

	return &model.ChatTemplate{
		Id:                t.Id,
		Type:              t.Type,
		Category:          t.Category,
		Content:           t.Content,
		Variables:         toJSON(t.Variables),
		QuickReplies:      toJSON(t.QuickReplies),
		Conditions:        toJSON(t.Conditions),
		BusinessHoursOnly: t.BusinessHoursOnly,
		Priority:          t.Priority,
		TimesUsed:         t.TimesUsed,
		LastUsedAt:        t.LastUsedAt,
		AvgRating:         t.AvgRating,
		RatingCount:       t.RatingCount,
		Version:           t.Version,
		ParentId:          t.ParentId,
		IsActive:          t.IsActive,
		CreatedAt:         t.CreatedAt,
	}
}
