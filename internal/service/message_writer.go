package service

import (
	"context"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/constant"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/crypto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// MessageWriter is the single write path for chat messages. Every message,
// whoever authored it, goes through the same encrypt-persist-count-fanout
// sequence.
type MessageWriter struct {
	uowFactory unitofwork.RepositoryFactory
	codec      *crypto.Codec
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewMessageWriter(
	uowFactory unitofwork.RepositoryFactory,
	codec *crypto.Codec,
	publisher IPublisherService,
	log logger.ILogger,
) *MessageWriter {
	return &MessageWriter{
		uowFactory: uowFactory,
		codec:      codec,
		publisher:  publisher,
		logger:     log,
	}
}

func (w *MessageWriter) Persist(
	ctx context.Context,
	session *entity.ChatSession,
	sender entity.Sender,
	body string,
	msgType entity.MessageType,
	metadata entity.MessageMetadata,
	replyTo *uuid.UUID,
) (*entity.ChatMessage, error) {
	stored, encrypted, err := w.codec.Encrypt(body)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	msg := &entity.ChatMessage{
		Id:          uuid.New(),
		SessionId:   session.Id,
		Sender:      sender,
		Body:        stored,
		Encrypted:   encrypted,
		MessageType: msgType,
		Status:      entity.MessageSent,
		Metadata:    metadata,
		ReplyToId:   replyTo,
		CreatedAt:   now,
	}

	uow := w.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	session.LastMessageAt = &now
	session.MessageCount++
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Analytics counters are best effort and sit outside the transaction.
	if err := uow.ChatMetricsRepository().IncrementMessageCount(ctx, session.Id, sender.Kind); err != nil {
		w.logger.Warn("message", "failed to count message", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}

	w.fanOut(ctx, session, msg, body)

	return msg, nil
}

// fanOut pushes the plaintext body to live subscribers; ciphertext only ever
// touches storage.
func (w *MessageWriter) fanOut(ctx context.Context, session *entity.ChatSession, msg *entity.ChatMessage, plaintext string) {
	res := messageToResponse(msg)
	res.Body = plaintext

	channel := constant.ChannelSessionPrefix + session.Id.String()
	if err := w.publisher.PublishEvent(ctx, channel, dto.EventNewMessage, res); err != nil {
		w.logger.Warn("message", "fan-out publish failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

func (w *MessageWriter) fanOutEdit(ctx context.Context, session *entity.ChatSession, res *dto.MessageResponse) {
	channel := constant.ChannelSessionPrefix + session.Id.String()
	if err := w.publisher.PublishEvent(ctx, channel, dto.EventMessageEdited, res); err != nil {
		w.logger.Warn("message", "edit fan-out publish failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

func (w *MessageWriter) fanOutRead(ctx context.Context, session *entity.ChatSession, messageIds []uuid.UUID) {
	channel := constant.ChannelSessionPrefix + session.Id.String()
	if err := w.publisher.PublishEvent(ctx, channel, dto.EventMessageRead, map[string]interface{}{
		"message_ids": messageIds,
	}); err != nil {
		w.logger.Warn("message", "read fan-out publish failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

func messageToResponse(msg *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:           msg.Id,
		SessionId:    msg.SessionId,
		Seq:          msg.Seq,
		SenderKind:   string(msg.Sender.Kind),
		SenderId:     msg.Sender.Id,
		Type:         string(msg.MessageType),
		Body:         msg.Body,
		Status:       string(msg.Status),
		QuickReplies: msg.Metadata.QuickReplies,
		ReplyToId:    msg.ReplyToId,
		DecryptError: msg.DecryptError != "",
		EditedAt:     msg.Metadata.EditedAt,
		CreatedAt:    msg.CreatedAt,
	}
}
