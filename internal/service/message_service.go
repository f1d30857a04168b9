package service

import (
	"context"
	"strings"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/crypto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// maxMessageBytes bounds a single message body.
const maxMessageBytes = 8192

type IMessageService interface {
	Send(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetMessages(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID, req *dto.MessageListRequest) ([]*dto.MessageResponse, error)

	// Edit lets an agent revise their own message; the original body is kept
	// in the metadata trail.
	Edit(ctx context.Context, caller entity.CallerIdentity, messageId uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error)

	MarkDelivered(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID) error
	MarkRead(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID, req *dto.MarkReadRequest) error
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
	writer     *MessageWriter
	codec      *crypto.Codec
	bot        IBotResponder
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	writer *MessageWriter,
	codec *crypto.Codec,
	bot IBotResponder,
	publisher IPublisherService,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory: uowFactory,
		writer:     writer,
		codec:      codec,
		bot:        bot,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *messageService) Send(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	session, err := s.authorizedSession(ctx, caller, sessionId)
	if err != nil {
		return nil, err
	}
	if session.Status == entity.SessionClosed {
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "status", Message: "session is closed"},
		})
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "body", Message: "message body is required"},
		})
	}
	if len(body) > maxMessageBytes {
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "body", Message: "message body is too long"},
		})
	}

	msgType := entity.MessageText
	if req.Type != "" {
		msgType = entity.MessageType(req.Type)
		switch msgType {
		case entity.MessageText, entity.MessageOptionSelection, entity.MessageFormData:
		default:
			return nil, serverutils.NewValidationError([]serverutils.FieldError{
				{Field: "type", Message: "unsupported message type"},
			})
		}
	}

	// Option selections steer later template matching.
	if msgType == entity.MessageOptionSelection {
		session.SelectedOption = body
	}

	meta := entity.MessageMetadata{}
	if len(req.Metadata) > 0 {
		meta.System = req.Metadata
	}

	// A reply must target a message in the same conversation.
	if req.ReplyTo != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		target, err := uow.ChatMessageRepository().FindOne(ctx, specification.ById{Id: *req.ReplyTo})
		if err != nil {
			return nil, err
		}
		if target == nil || target.SessionId != sessionId {
			return nil, serverutils.NewValidationError([]serverutils.FieldError{
				{Field: "reply_to", Message: "replied-to message does not belong to this session"},
			})
		}
	}

	sender := caller.Sender()

	if sender.Kind == entity.SenderAgent {
		s.recordResponseTime(ctx, session)
	}

	msg, err := s.writer.Persist(ctx, session, sender, body, msgType, meta, req.ReplyTo)
	if err != nil {
		return nil, err
	}

	// Visitor messages in a bot conversation earn an automated reply.
	if session.SessionType == entity.SessionTypeBot && (sender.Kind == entity.SenderUser || sender.Kind == entity.SenderGuest) {
		s.bot.ScheduleReply(session, body, msgType)
	}

	res := messageToResponse(msg)
	res.Body = body
	return res, nil
}

func (s *messageService) GetMessages(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID, req *dto.MessageListRequest) ([]*dto.MessageResponse, error) {
	if _, err := s.authorizedSession(ctx, caller, sessionId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.MessageBySessionId{SessionId: sessionId},
		specification.MessagesInOrder{},
	}
	if req.After > 0 {
		specs = append(specs, specification.MessageSeqAfter{After: req.After})
	}
	if req.Limit > 0 {
		specs = append(specs, specification.Limit{Limit: req.Limit})
	}
	if req.Offset > 0 {
		specs = append(specs, specification.Offset{Offset: req.Offset})
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		res := messageToResponse(msg)

		// One corrupt row must not block the whole history: flag it and
		// keep going.
		plaintext, err := s.codec.Decrypt(msg.Body, msg.Encrypted)
		if err != nil {
			s.logger.Error("message", "message decrypt failed", map[string]interface{}{
				"message_id": msg.Id,
				"error":      err.Error(),
			})
			res.Body = ""
			res.DecryptError = true
		} else {
			res.Body = plaintext
		}
		result = append(result, res)
	}
	return result, nil
}

func (s *messageService) Edit(ctx context.Context, caller entity.CallerIdentity, messageId uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error) {
	if caller.Role != entity.RoleAgent && caller.Role != entity.RoleAdmin {
		return nil, serverutils.NewUnauthorizedError("only agents can edit messages")
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "body", Message: "message body is required"},
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.ChatMessageRepository().FindOne(ctx, specification.ById{Id: messageId})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, serverutils.NewNotFoundError("message not found")
	}
	if caller.Role == entity.RoleAgent && (msg.Sender.Id == nil || *msg.Sender.Id != caller.Id) {
		return nil, serverutils.NewUnauthorizedError("agents can only edit their own messages")
	}

	// First edit keeps the original; later edits keep the oldest body.
	if msg.Metadata.OriginalBody == "" {
		original, err := s.codec.Decrypt(msg.Body, msg.Encrypted)
		if err != nil {
			return nil, err
		}
		msg.Metadata.OriginalBody = original
	}

	stored, encrypted, err := s.codec.Encrypt(body)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	msg.Body = stored
	msg.Encrypted = encrypted
	msg.Metadata.EditedAt = &now

	if err := uow.ChatMessageRepository().Update(ctx, msg); err != nil {
		return nil, err
	}

	res := messageToResponse(msg)
	res.Body = body

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ById{Id: msg.SessionId})
	if err == nil && session != nil {
		s.writer.fanOutEdit(ctx, session, res)
	}

	return res, nil
}

func (s *messageService) MarkDelivered(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID) error {
	if _, err := s.authorizedSession(ctx, caller, sessionId); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	pending, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.MessageBySessionId{SessionId: sessionId},
		specification.MessageByStatus{Status: string(entity.MessageSent)},
	)
	if err != nil {
		return err
	}

	for _, msg := range pending {
		// Senders do not ack their own messages.
		if sameParty(msg.Sender, caller) {
			continue
		}
		if err := uow.ChatMessageRepository().UpdateStatus(ctx, msg.Id, entity.MessageDelivered); err != nil {
			return err
		}
	}
	return nil
}

func (s *messageService) MarkRead(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID, req *dto.MarkReadRequest) error {
	session, err := s.authorizedSession(ctx, caller, sessionId)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	for _, id := range req.MessageIds {
		msg, err := uow.ChatMessageRepository().FindOne(ctx, specification.ById{Id: id})
		if err != nil {
			return err
		}
		if msg == nil || msg.SessionId != sessionId || sameParty(msg.Sender, caller) {
			continue
		}
		if err := uow.ChatMessageRepository().UpdateStatus(ctx, msg.Id, entity.MessageRead); err != nil {
			return err
		}
	}

	s.writer.fanOutRead(ctx, session, req.MessageIds)
	return nil
}

// recordResponseTime folds the gap between the visitor's last message and
// this agent reply into the session metrics. Best effort; only counts when
// the immediately preceding message came from the visitor.
func (s *messageService) recordResponseTime(ctx context.Context, session *entity.ChatSession) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	last, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.MessageBySessionId{SessionId: session.Id},
		specification.OrderBy{Expression: "seq DESC"},
		specification.Limit{Limit: 1},
	)
	if err != nil || len(last) == 0 {
		return
	}
	prev := last[0]
	if prev.Sender.Kind != entity.SenderUser && prev.Sender.Kind != entity.SenderGuest {
		return
	}

	seconds := time.Since(prev.CreatedAt).Seconds()
	if seconds < 0 {
		return
	}

	metrics, err := uow.ChatMetricsRepository().FindBySession(ctx, session.Id)
	if err != nil || metrics == nil {
		return
	}
	metrics.RecordAgentResponse(seconds)
	if err := uow.ChatMetricsRepository().Update(ctx, metrics); err != nil {
		s.logger.Warn("message", "failed to record response time", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

// sameParty reports whether the message was authored by the caller's side of
// the conversation.
func sameParty(sender entity.Sender, caller entity.CallerIdentity) bool {
	switch caller.Role {
	case entity.RoleAgent, entity.RoleAdmin:
		return sender.Kind == entity.SenderAgent
	default:
		return sender.Kind == entity.SenderUser || sender.Kind == entity.SenderGuest
	}
}

func (s *messageService) authorizedSession(ctx context.Context, caller entity.CallerIdentity, sessionId uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ById{Id: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("session not found")
	}

	switch caller.Role {
	case entity.RoleAdmin:
		return session, nil
	case entity.RoleAgent:
		if session.BoundTo(caller.Id) {
			return session, nil
		}
	default:
		if session.OwnedBy(caller) {
			return session, nil
		}
	}
	return nil, serverutils.NewUnauthorizedError("you do not have access to this session")
}
