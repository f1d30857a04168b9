package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/constant"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/hours"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ReplyScheduler holds at most one pending bot reply per session. Closing or
// transferring the session cancels the pending task instead of letting it
// fire into a dead conversation.
type ReplyScheduler struct {
	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

func NewReplyScheduler() *ReplyScheduler {
	return &ReplyScheduler{timers: make(map[uuid.UUID]*time.Timer)}
}

// Schedule replaces any pending task for the session with a new one.
func (r *ReplyScheduler) Schedule(sessionId uuid.UUID, delay time.Duration, task func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[sessionId]; ok {
		t.Stop()
	}
	r.timers[sessionId] = time.AfterFunc(delay, func() {
		r.mu.Lock()
		delete(r.timers, sessionId)
		r.mu.Unlock()
		task()
	})
}

func (r *ReplyScheduler) Cancel(sessionId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[sessionId]; ok {
		t.Stop()
		delete(r.timers, sessionId)
	}
}

// Pending reports whether a reply is scheduled for the session.
func (r *ReplyScheduler) Pending(sessionId uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[sessionId]
	return ok
}

type IBotResponder interface {
	// ScheduleReply queues an automated response to the visitor's message.
	// The delay paces the bot; the reply is skipped if the session left the
	// bot flow in the meantime.
	ScheduleReply(session *entity.ChatSession, userMessage string, msgType entity.MessageType)
}

type botResponder struct {
	uowFactory unitofwork.RepositoryFactory
	templates  ITemplateService
	sessions   ISessionService
	hoursSvc   IHoursService
	writer     *MessageWriter
	scheduler  *ReplyScheduler
	delay      time.Duration
	logger     logger.ILogger
}

func NewBotResponder(
	uowFactory unitofwork.RepositoryFactory,
	templates ITemplateService,
	sessions ISessionService,
	hoursSvc IHoursService,
	writer *MessageWriter,
	scheduler *ReplyScheduler,
	delay time.Duration,
	log logger.ILogger,
) IBotResponder {
	return &botResponder{
		uowFactory: uowFactory,
		templates:  templates,
		sessions:   sessions,
		hoursSvc:   hoursSvc,
		writer:     writer,
		scheduler:  scheduler,
		delay:      delay,
		logger:     log,
	}
}

func (b *botResponder) ScheduleReply(session *entity.ChatSession, userMessage string, msgType entity.MessageType) {
	sessionId := session.Id
	b.scheduler.Schedule(sessionId, b.delay, func() {
		// Detached from the request context: the visitor's HTTP call has
		// long returned when this fires.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := b.reply(ctx, sessionId, userMessage, msgType); err != nil {
			b.logger.Error("bot", "bot reply failed", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	})
}

func (b *botResponder) reply(ctx context.Context, sessionId uuid.UUID, userMessage string, msgType entity.MessageType) error {
	uow := b.uowFactory.NewUnitOfWork(ctx)

	// Re-read the session: it may have been closed or handed to an agent
	// while the reply sat in the queue.
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ById{Id: sessionId})
	if err != nil {
		return err
	}
	if session == nil || session.Status == entity.SessionClosed || session.SessionType != entity.SessionTypeBot {
		return nil
	}

	// Hours are evaluated at reply time, not at session creation; an
	// overnight session must not keep getting daytime-only templates.
	now := time.Now()
	duringHours := true
	if cfg, err := b.hoursSvc.ActiveConfig(ctx); err == nil && cfg != nil {
		duringHours = hours.IsOpen(cfg, now)
	}

	intent := ""
	switch msgType {
	case entity.MessageOptionSelection:
		// Option clicks carry the option text verbatim; no keyword
		// guessing needed.
		intent = constant.OptionIntents[userMessage]
	case entity.MessageFormData:
		// Form payloads are acknowledged, never keyword-matched.
	default:
		intent = MatchIntent(userMessage)
	}

	// The human branch escalates instead of canned-replying; the escalation
	// path re-checks business hours itself.
	if intent == constant.IntentHumanAgent {
		_, err := b.sessions.EscalateToAgent(ctx, session)
		return err
	}

	// Structured templates beat canned keyword responses.
	matchCtx := map[string]string{}
	if intent != "" {
		matchCtx["intent"] = intent
	}
	if session.SelectedOption != "" {
		matchCtx["option"] = session.SelectedOption
	}

	tpl, err := b.templates.FindMatching(ctx, "bot_reply", matchCtx, duringHours)
	if err != nil {
		return err
	}

	content := ""
	meta := entity.MessageMetadata{OutsideHours: !duringHours}
	if tpl != nil {
		content = b.templates.RenderEntity(ctx, tpl, map[string]interface{}{
			"name":    session.ContactName,
			"message": userMessage,
		})
		meta.TemplateId = &tpl.Id
		meta.QuickReplies = tpl.QuickReplies
	} else if msgType == entity.MessageFormData {
		content = constant.FormReceivedMessage
	} else if intent != "" {
		content = constant.BotResponses[intent]
	} else {
		content = constant.DefaultBotResponse
		meta.QuickReplies = constant.DefaultQuickReplies
	}

	_, err = b.writer.Persist(ctx, session, entity.BotSender(), content, entity.MessageText, meta, nil)
	return err
}

// MatchIntent runs the keyword vocabulary over a visitor message.
// Case-insensitive substring match; human-agent requests win over everything
// so "I want a person to help with my job application" escalates.
func MatchIntent(message string) string {
	lowered := strings.ToLower(message)

	for _, phrase := range constant.KeywordVocabulary[constant.IntentHumanAgent] {
		if strings.Contains(lowered, phrase) {
			return constant.IntentHumanAgent
		}
	}
	for _, intent := range []string{constant.IntentJobSearch, constant.IntentPartnership} {
		for _, phrase := range constant.KeywordVocabulary[intent] {
			if strings.Contains(lowered, phrase) {
				return intent
			}
		}
	}
	return ""
}
