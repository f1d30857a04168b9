package mapper

import (
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:                 s.Id,
		UserId:             s.UserId,
		GuestId:            s.GuestId,
		SessionType:        entity.SessionType(s.SessionType),
		Status:             entity.SessionStatus(s.Status),
		AgentId:            s.AgentId,
		ContactName:        s.ContactName,
		ContactEmail:       s.ContactEmail,
		ContactPhone:       s.ContactPhone,
		SelectedOption:     s.SelectedOption,
		Priority:           s.Priority,
		CreatedAt:          s.CreatedAt,
		LastMessageAt:      s.LastMessageAt,
		AssignedAt:         s.AssignedAt,
		TransferredAt:      s.TransferredAt,
		ClosedAt:           s.ClosedAt,
		MessageCount:       s.MessageCount,
		CreatedDuringHours: s.CreatedDuringHours,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:                 s.Id,
		UserId:             s.UserId,
		GuestId:            s.GuestId,
		SessionType:        string(s.SessionType),
		Status:             string(s.Status),
		AgentId:            s.AgentId,
		ContactName:        s.ContactName,
		ContactEmail:       s.ContactEmail,
		ContactPhone:       s.ContactPhone,
		SelectedOption:     s.SelectedOption,
		Priority:           s.Priority,
		CreatedAt:          s.CreatedAt,
		LastMessageAt:      s.LastMessageAt,
		AssignedAt:         s.AssignedAt,
		TransferredAt:      s.TransferredAt,
		ClosedAt:           s.ClosedAt,
		MessageCount:       s.MessageCount,
		CreatedDuringHours: s.CreatedDuringHours,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var meta entity.MessageMetadata
	fromJSON(msg.Metadata, &meta)

	var updatedAt *time.Time
	if !msg.UpdatedAt.IsZero() && !msg.UpdatedAt.Equal(msg.CreatedAt) {
		t := msg.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Seq:       msg.Seq,
		Sender: entity.Sender{
			Id:   msg.SenderId,
			Kind: entity.SenderKind(msg.SenderKind),
		},
		Body:        msg.Body,
		Encrypted:   msg.Encrypted,
		MessageType: entity.MessageType(msg.MessageType),
		Status:      entity.MessageStatus(msg.Status),
		Metadata:    meta,
		ReplyToId:   msg.ReplyToId,
		CreatedAt:   msg.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:          msg.Id,
		SessionId:   msg.SessionId,
		SenderId:    msg.Sender.Id,
		SenderKind:  string(msg.Sender.Kind),
		Body:        msg.Body,
		Encrypted:   msg.Encrypted,
		MessageType: string(msg.MessageType),
		Status:      string(msg.Status),
		Metadata:    toJSON(msg.Metadata),
		ReplyToId:   msg.ReplyToId,
		CreatedAt:   msg.CreatedAt,
	}
}

// Metrics Mappers

func (m *ChatMapper) MetricsToEntity(mt *model.ChatMetrics) *entity.ChatMetrics {
	if mt == nil {
		return nil
	}

	var updatedAt *time.Time
	if !mt.UpdatedAt.IsZero() {
		t := mt.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatMetrics{
		Id:                        mt.Id,
		SessionId:                 mt.SessionId,
		UserMessages:              mt.UserMessages,
		BotMessages:               mt.BotMessages,
		AgentMessages:             mt.AgentMessages,
		SystemMessages:            mt.SystemMessages,
		AvgAgentResponseSeconds:   mt.AvgAgentResponseSeconds,
		ResponseSamples:           mt.ResponseSamples,
		SatisfactionScore:         mt.SatisfactionScore,
		Feedback:                  mt.Feedback,
		Resolved:                  mt.Resolved,
		Escalated:                 mt.Escalated,
		TransferCount:             mt.TransferCount,
		RequestedDuringHours:      mt.RequestedDuringHours,
		ServedDuringHours:         mt.ServedDuringHours,
		MinutesUntilOpenAtRequest: mt.MinutesUntilOpenAtRequest,
		DurationSeconds:           mt.DurationSeconds,
		CreatedAt:                 mt.CreatedAt,
		UpdatedAt:                 updatedAt,
	}
}

func (m *ChatMapper) MetricsToModel(mt *entity.ChatMetrics) *model.ChatMetrics {
	if mt == nil {
		return nil
	}

	return &model.ChatMetrics{
		Id:                        mt.Id,
		SessionId:                 mt.SessionId,
		UserMessages:              mt.UserMessages,
		BotMessages:               mt.BotMessages,
		AgentMessages:             mt.AgentMessages,
		SystemMessages:            mt.SystemMessages,
		AvgAgentResponseSeconds:   mt.AvgAgentResponseSeconds,
		ResponseSamples:           mt.ResponseSamples,
		SatisfactionScore:         mt.SatisfactionScore,
		Feedback:                  mt.Feedback,
		Resolved:                  mt.Resolved,
		Escalated:                 mt.Escalated,
		TransferCount:             mt.TransferCount,
		RequestedDuringHours:      mt.RequestedDuringHours,
		ServedDuringHours:         mt.ServedDuringHours,
		MinutesUntilOpenAtRequest: mt.MinutesUntilOpenAtRequest,
		DurationSeconds:           mt.DurationSeconds,
		CreatedAt:                 mt.CreatedAt,
	}
}
