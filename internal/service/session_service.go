package service

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/constant"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/hours"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"
	"github.com/sansitamalhotra/ChatBot-sub003/pkg/events"
	pktNats "github.com/sansitamalhotra/ChatBot-sub003/pkg/nats"
	"github.com/sansitamalhotra/ChatBot-sub003/pkg/render"

	"github.com/google/uuid"
)

// phonePattern accepts international formats with separators, 7-20 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,18}[0-9]$`)

type ISessionService interface {
	Start(ctx context.Context, caller entity.CallerIdentity, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	Show(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID) (*dto.SessionResponse, error)
	GetAll(ctx context.Context, caller entity.CallerIdentity, req *dto.SessionListRequest) ([]*dto.SessionResponse, error)

	// RequestAgent moves a bot session toward a human: assigned immediately
	// when someone is free, queued otherwise, refused outside hours.
	RequestAgent(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID) (*dto.RequestAgentResponse, error)

	// EscalateToAgent is the authorization-free core of RequestAgent, shared
	// with the bot responder's "talk to a human" branch.
	EscalateToAgent(ctx context.Context, session *entity.ChatSession) (*dto.RequestAgentResponse, error)

	Transfer(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID, req *dto.TransferSessionRequest) (*dto.SessionResponse, error)
	Close(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID, req *dto.CloseSessionRequest) error

	// CloseExpired closes active sessions idle past the timeout. Invoked by
	// the sweep binary, not by request traffic.
	CloseExpired(ctx context.Context) (int, error)

	Metrics(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID) (*dto.SessionMetricsResponse, error)
}

type sessionService struct {
	uowFactory  unitofwork.RepositoryFactory
	hoursSvc    IHoursService
	assignment  IAssignmentService
	templates   ITemplateService
	writer      *MessageWriter
	publisher   IPublisherService
	natsPub     *pktNats.Publisher
	scheduler   *ReplyScheduler
	renderer    *render.Renderer
	logger      logger.ILogger
	idleTimeout time.Duration
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	hoursSvc IHoursService,
	assignment IAssignmentService,
	templates ITemplateService,
	writer *MessageWriter,
	publisher IPublisherService,
	natsPub *pktNats.Publisher,
	scheduler *ReplyScheduler,
	renderer *render.Renderer,
	log logger.ILogger,
	idleTimeout time.Duration,
) ISessionService {
	return &sessionService{
		uowFactory:  uowFactory,
		hoursSvc:    hoursSvc,
		assignment:  assignment,
		templates:   templates,
		writer:      writer,
		publisher:   publisher,
		natsPub:     natsPub,
		scheduler:   scheduler,
		renderer:    renderer,
		logger:      log,
		idleTimeout: idleTimeout,
	}
}

func (s *sessionService) Start(ctx context.Context, caller entity.CallerIdentity, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	var fieldErrs []serverutils.FieldError
	name := strings.TrimSpace(req.ContactName)
	if name == "" {
		fieldErrs = append(fieldErrs, serverutils.FieldError{Field: "contact_name", Message: "contact name is required"})
	}
	email := strings.TrimSpace(req.ContactEmail)
	if email == "" {
		fieldErrs = append(fieldErrs, serverutils.FieldError{Field: "contact_email", Message: "contact email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		fieldErrs = append(fieldErrs, serverutils.FieldError{Field: "contact_email", Message: "contact email is invalid"})
	}
	phone := strings.TrimSpace(req.ContactPhone)
	if phone != "" && !phonePattern.MatchString(phone) {
		fieldErrs = append(fieldErrs, serverutils.FieldError{Field: "contact_phone", Message: "contact phone is invalid"})
	}
	requestedType := entity.SessionTypeBot
	switch req.Type {
	case "", string(entity.SessionTypeBot):
	case string(entity.SessionTypeLiveAgent):
		requestedType = entity.SessionTypeLiveAgent
	default:
		fieldErrs = append(fieldErrs, serverutils.FieldError{Field: "type", Message: "session type must be bot or live_agent"})
	}
	if len(fieldErrs) > 0 {
		return nil, serverutils.NewValidationError(fieldErrs)
	}

	now := time.Now()
	session := &entity.ChatSession{
		Id:           uuid.New(),
		SessionType:  entity.SessionTypeBot,
		Status:       entity.SessionActive,
		ContactName:  name,
		ContactEmail: email,
		ContactPhone: phone,
		CreatedAt:    now,
	}

	// Ownership: exactly one of user/guest, derived from the caller.
	switch caller.Role {
	case entity.RoleGuest:
		id := caller.Id
		session.GuestId = &id
	default:
		id := caller.Id
		session.UserId = &id
	}
	if !session.HasValidOwner() {
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "owner", Message: "session must belong to exactly one user or guest"},
		})
	}

	cfg, err := s.hoursSvc.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}

	// The bot answers around the clock, so every session is born active;
	// the hours snapshot is kept for analytics and template gating. An
	// explicit live-agent request is routed through the escalation path
	// below, which is where outside-hours refusal happens.
	session.CreatedDuringHours = cfg == nil || hours.IsOpen(cfg, now)

	metrics := &entity.ChatMetrics{
		Id:                   uuid.New(),
		SessionId:            session.Id,
		RequestedDuringHours: session.CreatedDuringHours,
		CreatedAt:            now,
	}
	if !session.CreatedDuringHours && cfg != nil {
		if next, ok := hours.NextAvailable(cfg, now); ok {
			mins := int(next.Sub(now).Minutes())
			metrics.MinutesUntilOpenAtRequest = &mins
		}
	}

	// Session and metrics land together or not at all; a metrics row
	// without its session is garbage and the reverse loses analytics.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	if err := uow.ChatMetricsRepository().Create(ctx, metrics); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	res := &dto.StartSessionResponse{OutsideHours: !session.CreatedDuringHours}

	if requestedType == entity.SessionTypeLiveAgent {
		assignment, err := s.EscalateToAgent(ctx, session)
		if err != nil {
			return nil, err
		}
		res.Assignment = assignment
		res.OutsideHours = assignment.OutsideHours
	} else {
		welcome, err := s.sendOpeningMessage(ctx, session)
		if err != nil {
			return nil, err
		}
		res.Welcome = welcome
	}
	res.Session = *sessionEntityToResponse(session)

	s.logger.Info("session", "session started", map[string]interface{}{
		"session_id":   session.Id,
		"type":         string(requestedType),
		"during_hours": session.CreatedDuringHours,
	})

	return res, nil
}

// sendOpeningMessage posts the welcome greeting as the session's first
// message. The returned response carries the plaintext body; the stored row
// may be ciphertext.
func (s *sessionService) sendOpeningMessage(ctx context.Context, session *entity.ChatSession) (*dto.MessageResponse, error) {
	vars := map[string]interface{}{
		"name": session.ContactName,
	}

	content := ""
	quickReplies := constant.DefaultQuickReplies
	meta := entity.MessageMetadata{OutsideHours: !session.CreatedDuringHours}

	tpl, err := s.templates.FindMatching(ctx, "welcome", map[string]string{}, session.CreatedDuringHours)
	if err != nil {
		return nil, err
	}
	if tpl != nil {
		content = s.templates.RenderEntity(ctx, tpl, vars)
		if len(tpl.QuickReplies) > 0 {
			quickReplies = tpl.QuickReplies
		}
		meta.TemplateId = &tpl.Id
	} else {
		content = s.renderer.Render(constant.DefaultWelcomeMessage, vars, nil)
	}
	meta.QuickReplies = quickReplies

	msg, err := s.writer.Persist(ctx, session, entity.BotSender(), content, entity.MessageText, meta, nil)
	if err != nil {
		return nil, err
	}
	res := messageToResponse(msg)
	res.Body = content
	return res, nil
}

func (s *sessionService) Show(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.authorizedSession(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return sessionEntityToResponse(session), nil
}

func (s *sessionService) GetAll(ctx context.Context, caller entity.CallerIdentity, req *dto.SessionListRequest) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OrderBy{Expression: "created_at DESC"}}
	switch caller.Role {
	case entity.RoleAdmin:
		// Admins see everything.
	case entity.RoleAgent:
		specs = append(specs, specification.SessionByAgentId{AgentId: caller.Id})
	default:
		specs = append(specs, specification.SessionOwnedBy{OwnerId: caller.Id})
	}
	if req.Status != "" {
		specs = append(specs, specification.SessionByStatus{Status: req.Status})
	}
	if req.Limit > 0 {
		specs = append(specs, specification.Limit{Limit: req.Limit})
	}
	if req.Offset > 0 {
		specs = append(specs, specification.Offset{Offset: req.Offset})
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, sessionEntityToResponse(session))
	}
	return result, nil
}

func (s *sessionService) RequestAgent(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID) (*dto.RequestAgentResponse, error) {
	session, err := s.authorizedSession(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if session.Status == entity.SessionClosed {
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "status", Message: "session is closed"},
		})
	}
	if session.AgentId != nil {
		return &dto.RequestAgentResponse{
			Session: *sessionEntityToResponse(session),
			AgentId: session.AgentId,
		}, nil
	}

	return s.EscalateToAgent(ctx, session)
}

func (s *sessionService) EscalateToAgent(ctx context.Context, session *entity.ChatSession) (*dto.RequestAgentResponse, error) {
	now := time.Now()

	// Hours are re-checked at the moment of the handoff; a session opened
	// during hours can still miss the window.
	cfg, err := s.hoursSvc.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg != nil && !hours.IsOpen(cfg, now) {
		msg, options := hours.OutsideHoursMessage(cfg, now)

		session.Status = entity.SessionOutsideHours
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return nil, err
		}

		if _, err := s.writer.Persist(ctx, session, entity.SystemSender(), msg, entity.MessageOutsideHoursNotice, entity.MessageMetadata{
			OutsideHours: true,
			QuickReplies: options,
		}, nil); err != nil {
			return nil, err
		}

		return &dto.RequestAgentResponse{
			Session:      *sessionEntityToResponse(session),
			OutsideHours: true,
			Notice:       msg,
		}, nil
	}

	s.markEscalated(ctx, session.Id)

	prefs := AssignmentPreferences{Category: session.SelectedOption}
	agent, err := s.assignment.FindAvailableAgent(ctx, prefs)
	if err != nil {
		return nil, err
	}

	if agent != nil {
		result, err := s.assignment.AssignAgentToSession(ctx, session, agent)
		if err != nil {
			// The chosen agent filled up between scoring and acquiring; fall
			// back to the queue instead of failing the visitor.
			if appErr, ok := serverutils.AsAppError(err); ok && appErr.Code == serverutils.CodeCapacity {
				return s.enqueue(ctx, session)
			}
			return nil, err
		}

		s.markServedDuringHours(ctx, session.Id)

		notice := result.Agent.Name + " has joined the chat."
		if _, err := s.writer.Persist(ctx, session, entity.SystemSender(), notice, entity.MessageTransferNotice, entity.MessageMetadata{}, nil); err != nil {
			return nil, err
		}

		s.publishSessionEvent(ctx, session, dto.EventAgentAssigned, map[string]interface{}{
			"agent_id":   result.Agent.Id,
			"agent_name": result.Agent.Name,
		})
		s.publishDomainEvent(ctx, events.TypeSessionAssigned, session, map[string]interface{}{
			"agent_id": result.Agent.Id.String(),
		})

		return &dto.RequestAgentResponse{
			Session:   *sessionEntityToResponse(session),
			AgentId:   &result.Agent.Id,
			AgentName: result.Agent.Name,
		}, nil
	}

	return s.enqueue(ctx, session)
}

// enqueue parks the session until an agent frees up and alerts the pool.
func (s *sessionService) enqueue(ctx context.Context, session *entity.ChatSession) (*dto.RequestAgentResponse, error) {
	session.Status = entity.SessionWaitingForAgent
	session.SessionType = entity.SessionTypeLiveAgent

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if _, err := s.writer.Persist(ctx, session, entity.SystemSender(), constant.WaitingForAgentMessage, entity.MessageSystem, entity.MessageMetadata{}, nil); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishEvent(ctx, constant.ChannelAgentsPool, dto.EventSessionWaiting, sessionEntityToResponse(session)); err != nil {
		s.logger.Warn("session", "agents pool publish failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
	s.publishDomainEvent(ctx, events.TypeAgentRequested, session, map[string]interface{}{
		"contact_name": session.ContactName,
	})

	return &dto.RequestAgentResponse{
		Session: *sessionEntityToResponse(session),
		Queued:  true,
		Notice:  constant.WaitingForAgentMessage,
	}, nil
}

func (s *sessionService) Transfer(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID, req *dto.TransferSessionRequest) (*dto.SessionResponse, error) {
	if caller.Role != entity.RoleAgent && caller.Role != entity.RoleAdmin {
		return nil, serverutils.NewUnauthorizedError("only agents can transfer sessions")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("session not found")
	}
	if caller.Role == entity.RoleAgent && !session.BoundTo(caller.Id) {
		return nil, serverutils.NewUnauthorizedError("session is assigned to a different agent")
	}

	// Only live conversations move between agents. Closed and outside-hours
	// sessions have nothing to hand over.
	switch session.Status {
	case entity.SessionActive, entity.SessionWaitingForAgent:
	default:
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "status", Message: "only active or waiting sessions can be transferred"},
		})
	}

	target, err := uow.LiveAgentRepository().FindOne(ctx, specification.ById{Id: req.ToAgentId})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, serverutils.NewNotFoundError("target agent not found")
	}

	// A pending bot reply makes no sense once a human takes over.
	s.scheduler.Cancel(session.Id)

	previousAgent := session.AgentId

	// Acquire the new slot first so a full target aborts the transfer with
	// the old agent still attached.
	acquired, err := uow.LiveAgentRepository().AcquireSlot(ctx, target.Id)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, serverutils.NewCapacityError("target agent is at capacity")
	}

	now := time.Now()
	session.AgentId = &target.Id
	session.SessionType = entity.SessionTypeTransferred
	session.Status = entity.SessionActive
	session.TransferredAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if previousAgent != nil {
		if err := uow.LiveAgentRepository().ReleaseSlot(ctx, *previousAgent); err != nil {
			s.logger.Warn("session", "failed to release previous agent", map[string]interface{}{
				"session_id": session.Id,
				"agent_id":   *previousAgent,
				"error":      err.Error(),
			})
		}
	}

	if err := uow.ChatMetricsRepository().IncrementTransferCount(ctx, session.Id); err != nil {
		s.logger.Warn("session", "failed to count transfer", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}

	notice := "You have been transferred to " + target.Name + "."
	if req.Reason != "" {
		notice += " Reason: " + req.Reason
	}
	if _, err := s.writer.Persist(ctx, session, entity.SystemSender(), notice, entity.MessageTransferNotice, entity.MessageMetadata{}, nil); err != nil {
		return nil, err
	}

	s.publishSessionEvent(ctx, session, dto.EventTransfer, map[string]interface{}{
		"agent_id":   target.Id,
		"agent_name": target.Name,
	})
	s.publishDomainEvent(ctx, events.TypeSessionTransfer, session, map[string]interface{}{
		"to_agent_id": target.Id.String(),
	})

	return sessionEntityToResponse(session), nil
}

func (s *sessionService) Close(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID, req *dto.CloseSessionRequest) error {
	session, err := s.authorizedSession(ctx, caller, id)
	if err != nil {
		return err
	}
	if session.Status == entity.SessionClosed {
		return nil // Closing twice is a no-op.
	}

	if req != nil && req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "rating", Message: "rating must be between 1 and 5"},
		})
	}

	return s.closeSession(ctx, session, req)
}

func (s *sessionService) closeSession(ctx context.Context, session *entity.ChatSession, req *dto.CloseSessionRequest) error {
	s.scheduler.Cancel(session.Id)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	session.Status = entity.SessionClosed
	session.ClosedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	if session.AgentId != nil {
		if err := uow.LiveAgentRepository().ReleaseSlot(ctx, *session.AgentId); err != nil {
			s.logger.Warn("session", "failed to release agent on close", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	metrics, err := uow.ChatMetricsRepository().FindBySession(ctx, session.Id)
	if err == nil && metrics != nil {
		metrics.Finalize(session.CreatedAt, now)
		metrics.Resolved = true
		if req != nil {
			if req.Rating != nil {
				score := float64(*req.Rating)
				metrics.SatisfactionScore = &score
			}
			metrics.Feedback = req.Comment
		}
		if err := uow.ChatMetricsRepository().Update(ctx, metrics); err != nil {
			s.logger.Warn("session", "failed to finalize metrics", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}

		if session.AgentId != nil {
			s.foldAgentStats(ctx, session, metrics)
		}
	}

	s.publishSessionEvent(ctx, session, dto.EventSessionClosed, map[string]interface{}{
		"closed_at": now,
	})
	s.publishDomainEvent(ctx, events.TypeSessionClosed, session, nil)

	s.logger.Info("session", "session closed", map[string]interface{}{
		"session_id": session.Id,
	})
	return nil
}

// foldAgentStats rolls a closed session into the bound agent's performance
// aggregates. Best effort: a failure here never blocks the close.
func (s *sessionService) foldAgentStats(ctx context.Context, session *entity.ChatSession, metrics *entity.ChatMetrics) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agent, err := uow.LiveAgentRepository().FindOne(ctx, specification.ById{Id: *session.AgentId})
	if err != nil || agent == nil {
		return
	}

	agent.RecordClosure(metrics.Resolved)
	if metrics.SatisfactionScore != nil {
		agent.RecordRating(*metrics.SatisfactionScore)
	}
	if metrics.ResponseSamples > 0 {
		agent.RecordResponseTime(metrics.AvgAgentResponseSeconds)
	}

	if err := uow.LiveAgentRepository().Update(ctx, agent); err != nil {
		s.logger.Warn("session", "failed to update agent stats", map[string]interface{}{
			"session_id": session.Id,
			"agent_id":   agent.Id,
			"error":      err.Error(),
		})
	}
}

func (s *sessionService) CloseExpired(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cutoff := time.Now().Add(-s.idleTimeout)
	expired, err := uow.ChatSessionRepository().FindAll(ctx, specification.SessionIdleSince{Cutoff: cutoff})
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, session := range expired {
		if err := s.closeSession(ctx, session, nil); err != nil {
			s.logger.Error("session", "failed to close expired session", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
			continue
		}
		closed++
	}

	if closed > 0 {
		s.logger.Info("session", "expired sessions closed", map[string]interface{}{
			"count": closed,
		})
	}
	return closed, nil
}

func (s *sessionService) Metrics(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID) (*dto.SessionMetricsResponse, error) {
	if _, err := s.authorizedSession(ctx, caller, id); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	metrics, err := uow.ChatMetricsRepository().FindBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		return nil, serverutils.NewNotFoundError("metrics not found")
	}

	res := &dto.SessionMetricsResponse{
		SessionId:         metrics.SessionId,
		UserMessages:      metrics.UserMessages,
		BotMessages:       metrics.BotMessages,
		AgentMessages:     metrics.AgentMessages,
		SystemMessages:    metrics.SystemMessages,
		TransferCount:     metrics.TransferCount,
		Escalated:         metrics.Escalated,
		Resolved:          metrics.Resolved,
		SatisfactionScore: metrics.SatisfactionScore,
		Feedback:          metrics.Feedback,
	}
	if metrics.DurationSeconds != nil {
		res.DurationSeconds = *metrics.DurationSeconds
	}
	return res, nil
}

// authorizedSession loads a session and enforces access: owners, the bound
// agent, and admins. Authorization failures are distinct from not-found.
func (s *sessionService) authorizedSession(ctx context.Context, caller entity.CallerIdentity, id uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ById{Id: id})
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

func (s *sessionService) markEscalated(ctx context.Context, sessionId uuid.UUID) {
	s.updateMetrics(ctx, sessionId, "failed to mark escalated", func(m *entity.ChatMetrics) bool {
		if m.Escalated {
			return false
		}
		m.Escalated = true
		return true
	})
}

// markServedDuringHours records that a human actually picked up the chat;
// assignment only happens inside business hours.
func (s *sessionService) markServedDuringHours(ctx context.Context, sessionId uuid.UUID) {
	s.updateMetrics(ctx, sessionId, "failed to mark served", func(m *entity.ChatMetrics) bool {
		if m.ServedDuringHours {
			return false
		}
		m.ServedDuringHours = true
		return true
	})
}

// updateMetrics applies a best-effort mutation to the session's metrics row.
// The mutator returns false to skip the write.
func (s *sessionService) updateMetrics(ctx context.Context, sessionId uuid.UUID, warning string, mutate func(*entity.ChatMetrics) bool) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	metrics, err := uow.ChatMetricsRepository().FindBySession(ctx, sessionId)
	if err != nil || metrics == nil {
		return
	}
	if !mutate(metrics) {
		return
	}
	if err := uow.ChatMetricsRepository().Update(ctx, metrics); err != nil {
		s.logger.Warn("session", warning, map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *sessionService) publishSessionEvent(ctx context.Context, session *entity.ChatSession, eventType string, data map[string]interface{}) {
	channel := constant.ChannelSessionPrefix + session.Id.String()
	if err := s.publisher.PublishEvent(ctx, channel, eventType, data); err != nil {
		s.logger.Warn("session", "session event publish failed", map[string]interface{}{
			"session_id": session.Id,
			"event":      eventType,
			"error":      err.Error(),
		})
	}
}

// publishDomainEvent emits a durable event for off-process consumers
// (escalation email, analytics). Best effort: NATS being down never fails
// the visitor's request.
func (s *sessionService) publishDomainEvent(ctx context.Context, eventType string, session *entity.ChatSession, extra map[string]interface{}) {
	if s.natsPub == nil {
		return
	}

	data := map[string]interface{}{
		"session_id":   session.Id.String(),
		"contact_name": session.ContactName,
		"status":       string(session.Status),
	}
	for k, v := range extra {
		data[k] = v
	}

	if err := s.natsPub.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("session", "domain event publish failed", map[string]interface{}{
			"session_id": session.Id,
			"event":      eventType,
			"error":      err.Error(),
		})
	}
}

func sessionEntityToResponse(session *entity.ChatSession) *dto.SessionResponse {
	res := &dto.SessionResponse{
		Id:                 session.Id,
		Type:               string(session.SessionType),
		Status:             string(session.Status),
		ContactName:        session.ContactName,
		AgentId:            session.AgentId,
		MessageCount:       session.MessageCount,
		CreatedDuringHours: session.CreatedDuringHours,
		CreatedAt:          session.CreatedAt,
		ClosedAt:           session.ClosedAt,
	}
	if session.LastMessageAt != nil {
		res.LastActivityAt = *session.LastMessageAt
	} else {
		res.LastActivityAt = session.CreatedAt
	}
	return res
}
