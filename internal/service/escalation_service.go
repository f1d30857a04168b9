package service

import (
	"context"
	"fmt"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/mailer"
	"github.com/sansitamalhotra/ChatBot-sub003/pkg/events"
	pktNats "github.com/sansitamalhotra/ChatBot-sub003/pkg/nats"
)

type IEscalationService interface {
	// Start wires the durable consumer. Escalation emails survive restarts
	// because the event sits in the stream until acked.
	Start(ctx context.Context) error
}

type escalationService struct {
	subscriber      *pktNats.Subscriber
	emailService    mailer.IEmailService
	escalationEmail string
	logger          logger.ILogger
}

func NewEscalationService(
	subscriber *pktNats.Subscriber,
	emailService mailer.IEmailService,
	escalationEmail string,
	log logger.ILogger,
) IEscalationService {
	return &escalationService{
		subscriber:      subscriber,
		emailService:    emailService,
		escalationEmail: escalationEmail,
		logger:          log,
	}
}

func (s *escalationService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		s.logger.Warn("escalation", "NATS unavailable, escalation notifications disabled", nil)
		return nil
	}
	if s.escalationEmail == "" {
		s.logger.Warn("escalation", "no escalation email configured, notifications disabled", nil)
		return nil
	}

	subject := "chat." + events.TypeAgentRequested
	return s.subscriber.Subscribe(subject, "escalation-mailer", s.handleAgentRequested)
}

func (s *escalationService) handleAgentRequested(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	sessionId := fmt.Sprintf("%v", payload["session_id"])
	contactName := fmt.Sprintf("%v", payload["contact_name"])
	if contactName == "" || contactName == "<nil>" {
		contactName = "A visitor"
	}

	lastMessage := ""
	if v, ok := payload["last_message"]; ok {
		lastMessage = fmt.Sprintf("%v", v)
	}

	if err := s.emailService.SendAgentEscalation(s.escalationEmail, sessionId, contactName, lastMessage); err != nil {
		// Returning the error Naks the message so delivery is retried.
		return err
	}

	s.logger.Info("escalation", "escalation email sent", map[string]interface{}{
		"session_id": sessionId,
	})
	return nil
}
