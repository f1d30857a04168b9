package service

import (
	"context"
	"sync"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/hours"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/crypto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/contract"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"
	"github.com/sansitamalhotra/ChatBot-sub003/pkg/render"

	"github.com/google/uuid"
)

// The fakes below back the service tests with in-memory state. They honor the
// same conditional-update semantics as the SQL implementations (AcquireSlot,
// Bind) and record the order of repository calls so transactional grouping
// can be asserted.

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeStore struct {
	mu sync.Mutex

	sessions  map[uuid.UUID]*entity.ChatSession
	agents    map[uuid.UUID]*entity.LiveAgent
	messages  []*entity.ChatMessage
	metrics   map[uuid.UUID]*entity.ChatMetrics // keyed by session id
	templates []*entity.ChatTemplate
	hoursCfg  *entity.BusinessHoursConfig

	seq   int64
	calls []string

	// Slot acquires inside an open transaction are undone on rollback,
	// matching the SQL implementation's transactional behavior.
	inTx            bool
	pendingAcquires []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[uuid.UUID]*entity.ChatSession),
		agents:   make(map[uuid.UUID]*entity.LiveAgent),
		metrics:  make(map[uuid.UUID]*entity.ChatMetrics),
	}
}

func (s *fakeStore) record(op string) {
	s.calls = append(s.calls, op)
}

// Calls returns a snapshot of the recorded operation order.
func (s *fakeStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *fakeStore) putSession(session *entity.ChatSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *session
	s.sessions[session.Id] = &c
}

func (s *fakeStore) getSession(id uuid.UUID) *entity.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, ok := s.sessions[id]; ok {
		c := *stored
		return &c
	}
	return nil
}

func (s *fakeStore) putAgent(agent *entity.LiveAgent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *agent
	s.agents[agent.Id] = &c
}

func (s *fakeStore) getAgent(id uuid.UUID) *entity.LiveAgent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, ok := s.agents[id]; ok {
		c := *stored
		return &c
	}
	return nil
}

func (s *fakeStore) putMetrics(m *entity.ChatMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *m
	s.metrics[m.SessionId] = &c
}

func (s *fakeStore) getMetrics(sessionId uuid.UUID) *entity.ChatMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, ok := s.metrics[sessionId]; ok {
		c := *stored
		return &c
	}
	return nil
}

func (s *fakeStore) sessionMessages(sessionId uuid.UUID) []*entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.ChatMessage
	for _, m := range s.messages {
		if m.SessionId == sessionId {
			c := *m
			out = append(out, &c)
		}
	}
	return out
}

// fakeUow doubles as the factory and the unit of work; every test shares one
// store, mirroring how the real factory hands out views over one database.
type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return u }

func (u *fakeUow) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.record("begin")
	u.store.inTx = true
	u.store.pendingAcquires = nil
	return nil
}

func (u *fakeUow) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.record("commit")
	u.store.inTx = false
	u.store.pendingAcquires = nil
	return nil
}

func (u *fakeUow) Rollback() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if !u.store.inTx {
		return nil
	}
	u.store.record("rollback")
	for _, id := range u.store.pendingAcquires {
		if a, ok := u.store.agents[id]; ok && a.CurrentSessions > 0 {
			a.CurrentSessions--
		}
	}
	u.store.inTx = false
	u.store.pendingAcquires = nil
	return nil
}

func (u *fakeUow) BusinessHoursRepository() contract.BusinessHoursRepository {
	return &fakeHoursRepo{store: u.store}
}
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}
func (u *fakeUow) ChatTemplateRepository() contract.ChatTemplateRepository {
	return &fakeTemplateRepo{store: u.store}
}
func (u *fakeUow) LiveAgentRepository() contract.LiveAgentRepository {
	return &fakeAgentRepo{store: u.store}
}
func (u *fakeUow) ChatMetricsRepository() contract.ChatMetricsRepository {
	return &fakeMetricsRepo{store: u.store}
}

// --- business hours ---

type fakeHoursRepo struct {
	store *fakeStore
}

func (r *fakeHoursRepo) Create(ctx context.Context, cfg *entity.BusinessHoursConfig) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *cfg
	r.store.hoursCfg = &c
	return nil
}

func (r *fakeHoursRepo) Update(ctx context.Context, cfg *entity.BusinessHoursConfig) error {
	return r.Create(ctx, cfg)
}

func (r *fakeHoursRepo) Activate(ctx context.Context, id uuid.UUID) error   { return nil }
func (r *fakeHoursRepo) Deactivate(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeHoursRepo) FindActive(ctx context.Context) (*entity.BusinessHoursConfig, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.hoursCfg == nil {
		return nil, nil
	}
	c := *r.store.hoursCfg
	return &c, nil
}

func (r *fakeHoursRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BusinessHoursConfig, error) {
	return r.FindActive(ctx)
}

func (r *fakeHoursRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BusinessHoursConfig, error) {
	cfg, _ := r.FindActive(ctx)
	if cfg == nil {
		return nil, nil
	}
	return []*entity.BusinessHoursConfig{cfg}, nil
}

// --- sessions ---

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("session.create")
	c := *session
	r.store.sessions[session.Id] = &c
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("session.update")
	c := *session
	r.store.sessions[session.Id] = &c
	return nil
}

func (r *fakeSessionRepo) Bind(ctx context.Context, sessionId uuid.UUID, agentId uuid.UUID, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("session.bind")

	stored, ok := r.store.sessions[sessionId]
	if !ok || stored.AgentId != nil {
		return false, nil
	}
	id := agentId
	when := at
	stored.AgentId = &id
	stored.Status = entity.SessionActive
	stored.SessionType = entity.SessionTypeLiveAgent
	stored.AssignedAt = &when
	return true, nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatSession
	for _, stored := range r.store.sessions {
		if sessionMatches(stored, specs) {
			c := *stored
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func sessionMatches(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ById:
			if s.Id != v.Id {
				return false
			}
		case specification.SessionByStatus:
			if string(s.Status) != v.Status {
				return false
			}
		case specification.SessionByAgentId:
			if s.AgentId == nil || *s.AgentId != v.AgentId {
				return false
			}
		case specification.SessionOwnedBy:
			owned := (s.UserId != nil && *s.UserId == v.OwnerId) ||
				(s.GuestId != nil && *s.GuestId == v.OwnerId)
			if !owned {
				return false
			}
		case specification.SessionIdleSince:
			if s.Status != entity.SessionActive || s.LastMessageAt == nil || !s.LastMessageAt.Before(v.Cutoff) {
				return false
			}
		}
	}
	return true
}

// --- messages ---

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("message.create")
	r.store.seq++
	message.Seq = r.store.seq
	c := *message
	r.store.messages = append(r.store.messages, &c)
	return nil
}

func (r *fakeMessageRepo) Update(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("message.update")
	for i, m := range r.store.messages {
		if m.Id == message.Id {
			c := *message
			r.store.messages[i] = &c
			return nil
		}
	}
	return nil
}

func (r *fakeMessageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.messages {
		if m.Id == id {
			m.Status = status
		}
	}
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatMessage
	for _, m := range r.store.messages {
		if messageMatches(m, specs) {
			c := *m
			out = append(out, &c)
		}
	}

	limit := 0
	descending := false
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.OrderBy:
			descending = v.Expression == "seq DESC"
		case specification.Limit:
			limit = v.Limit
		}
	}
	// Insertion order is seq order already; only DESC needs a flip.
	if descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func messageMatches(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ById:
			if m.Id != v.Id {
				return false
			}
		case specification.MessageBySessionId:
			if m.SessionId != v.SessionId {
				return false
			}
		case specification.MessageByStatus:
			if string(m.Status) != v.Status {
				return false
			}
		case specification.MessageSeqAfter:
			if m.Seq <= v.After {
				return false
			}
		}
	}
	return true
}

// --- templates ---

type fakeTemplateRepo struct {
	store *fakeStore
}

func (r *fakeTemplateRepo) Create(ctx context.Context, template *entity.ChatTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *template
	r.store.templates = append(r.store.templates, &c)
	return nil
}

func (r *fakeTemplateRepo) Update(ctx context.Context, template *entity.ChatTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, t := range r.store.templates {
		if t.Id == template.Id {
			c := *template
			r.store.templates[i] = &c
		}
	}
	return nil
}

func (r *fakeTemplateRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.templates {
		if t.Id == id {
			t.IsActive = false
		}
	}
	return nil
}

func (r *fakeTemplateRepo) IncrementUsage(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.templates {
		if t.Id == id {
			t.TimesUsed++
			when := usedAt
			t.LastUsedAt = &when
		}
	}
	return nil
}

func (r *fakeTemplateRepo) AddRating(ctx context.Context, id uuid.UUID, rating float64) error {
	return nil
}

func (r *fakeTemplateRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatTemplate, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeTemplateRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatTemplate
	for _, t := range r.store.templates {
		if templateMatches(t, specs) {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func templateMatches(t *entity.ChatTemplate, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ById:
			if t.Id != v.Id {
				return false
			}
		case specification.TemplateByType:
			if t.Type != v.Type {
				return false
			}
		case specification.TemplateByCategory:
			if t.Category != v.Category {
				return false
			}
		case specification.TemplateActiveOnly:
			if !t.IsActive {
				return false
			}
		}
	}
	return true
}

// --- agents ---

type fakeAgentRepo struct {
	store *fakeStore
}

func (r *fakeAgentRepo) Create(ctx context.Context, agent *entity.LiveAgent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *agent
	r.store.agents[agent.Id] = &c
	return nil
}

func (r *fakeAgentRepo) Update(ctx context.Context, agent *entity.LiveAgent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("agent.update")
	c := *agent
	r.store.agents[agent.Id] = &c
	return nil
}

func (r *fakeAgentRepo) AcquireSlot(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("agent.acquire")

	a, ok := r.store.agents[id]
	if !ok {
		return false, nil
	}
	if a.Status != entity.AgentOnline && a.Status != entity.AgentAvailable {
		return false, nil
	}
	if a.CurrentSessions >= a.MaxChats {
		return false, nil
	}
	a.CurrentSessions++
	if r.store.inTx {
		r.store.pendingAcquires = append(r.store.pendingAcquires, id)
	}
	return true, nil
}

func (r *fakeAgentRepo) ReleaseSlot(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("agent.release")
	if a, ok := r.store.agents[id]; ok && a.CurrentSessions > 0 {
		a.CurrentSessions--
	}
	return nil
}

func (r *fakeAgentRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a, ok := r.store.agents[id]; ok {
		when := at
		a.LastActiveAt = &when
	}
	return nil
}

func (r *fakeAgentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AgentStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a, ok := r.store.agents[id]; ok {
		a.Status = status
	}
	return nil
}

func (r *fakeAgentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LiveAgent, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeAgentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LiveAgent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.LiveAgent
	for _, a := range r.store.agents {
		if agentMatches(a, specs) {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func agentMatches(a *entity.LiveAgent, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ById:
			if a.Id != v.Id {
				return false
			}
		case specification.AgentAvailable:
			available := a.IsActive && a.CurrentSessions < a.MaxChats &&
				(a.Status == entity.AgentOnline || a.Status == entity.AgentAvailable)
			if !available {
				return false
			}
		case specification.AgentByDepartment:
			if a.Department != v.Department {
				return false
			}
		case specification.AgentActiveOnly:
			if !a.IsActive {
				return false
			}
		}
	}
	return true
}

// --- metrics ---

type fakeMetricsRepo struct {
	store *fakeStore
}

func (r *fakeMetricsRepo) Create(ctx context.Context, metrics *entity.ChatMetrics) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("metrics.create")
	c := *metrics
	r.store.metrics[metrics.SessionId] = &c
	return nil
}

func (r *fakeMetricsRepo) Update(ctx context.Context, metrics *entity.ChatMetrics) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.record("metrics.update")
	c := *metrics
	r.store.metrics[metrics.SessionId] = &c
	return nil
}

func (r *fakeMetricsRepo) FindBySession(ctx context.Context, sessionId uuid.UUID) (*entity.ChatMetrics, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if m, ok := r.store.metrics[sessionId]; ok {
		c := *m
		return &c, nil
	}
	return nil, nil
}

func (r *fakeMetricsRepo) IncrementMessageCount(ctx context.Context, sessionId uuid.UUID, kind entity.SenderKind) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.metrics[sessionId]
	if !ok {
		return nil
	}
	switch kind {
	case entity.SenderUser, entity.SenderGuest:
		m.UserMessages++
	case entity.SenderBot:
		m.BotMessages++
	case entity.SenderAgent:
		m.AgentMessages++
	default:
		m.SystemMessages++
	}
	return nil
}

func (r *fakeMetricsRepo) IncrementTransferCount(ctx context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if m, ok := r.store.metrics[sessionId]; ok {
		m.TransferCount++
	}
	return nil
}

// --- publisher ---

type capturedEvent struct {
	Channel string
	Type    string
	Data    interface{}
}

type capturePublisher struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func (p *capturePublisher) PublishEvent(ctx context.Context, channel, eventType string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{Channel: channel, Type: eventType, Data: data})
	return nil
}

func (p *capturePublisher) Events() []capturedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]capturedEvent, len(p.events))
	copy(out, p.events)
	return out
}

// --- fixture ---

type chatFixture struct {
	store      *fakeStore
	factory    *fakeUow
	publisher  *capturePublisher
	scheduler  *ReplyScheduler
	codec      *crypto.Codec
	writer     *MessageWriter
	hoursSvc   IHoursService
	templates  ITemplateService
	assignment IAssignmentService
	sessions   ISessionService
	messages   IMessageService
	bot        *botResponder
}

func newChatFixture() *chatFixture {
	store := newFakeStore()
	factory := &fakeUow{store: store}
	log := nopLogger{}

	codec, err := crypto.NewCodec("fixture-secret")
	if err != nil {
		panic(err)
	}
	publisher := &capturePublisher{}
	writer := NewMessageWriter(factory, codec, publisher, log)
	scheduler := NewReplyScheduler()
	renderer := render.NewRenderer()

	hoursSvc := NewHoursService(factory, hours.NewConfigCache(time.Minute), log)
	assignment := NewAssignmentService(factory, log)
	templates := NewTemplateService(factory, renderer, log)

	sessions := NewSessionService(
		factory,
		hoursSvc,
		assignment,
		templates,
		writer,
		publisher,
		nil,
		scheduler,
		renderer,
		log,
		30*time.Minute,
	)
	bot := NewBotResponder(factory, templates, sessions, hoursSvc, writer, scheduler, time.Millisecond, log).(*botResponder)
	messages := NewMessageService(factory, writer, codec, bot, publisher, log)

	return &chatFixture{
		store:      store,
		factory:    factory,
		publisher:  publisher,
		scheduler:  scheduler,
		codec:      codec,
		writer:     writer,
		hoursSvc:   hoursSvc,
		templates:  templates,
		assignment: assignment,
		sessions:   sessions,
		messages:   messages,
		bot:        bot,
	}
}

// openAllDay keeps the schedule open around the clock, every day.
func (f *chatFixture) openAllDay() {
	f.store.hoursCfg = &entity.BusinessHoursConfig{
		Id:        uuid.New(),
		Timezone:  "UTC",
		StartTime: "00:00",
		EndTime:   "23:59",
		WorkingDays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		OutsideHoursMessage: "We are currently closed.",
		IsActive:            true,
	}
}

// closedAllWeek configures a schedule with no working days at all.
func (f *chatFixture) closedAllWeek() {
	f.store.hoursCfg = &entity.BusinessHoursConfig{
		Id:                  uuid.New(),
		Timezone:            "UTC",
		StartTime:           "09:00",
		EndTime:             "17:00",
		OutsideHoursMessage: "We are currently closed.",
		OutsideHoursOptions: []string{"Leave a message"},
		IsActive:            true,
	}
}

func (f *chatFixture) seedAgent(mutate func(*entity.LiveAgent)) *entity.LiveAgent {
	active := time.Now().Add(-5 * time.Minute)
	agent := &entity.LiveAgent{
		Id:           uuid.New(),
		Name:         "Dana",
		Email:        "dana@example.com",
		Status:       entity.AgentAvailable,
		MaxChats:     5,
		Priority:     1,
		IsActive:     true,
		LastActiveAt: &active,
	}
	if mutate != nil {
		mutate(agent)
	}
	f.store.putAgent(agent)
	c := *agent
	return &c
}

func (f *chatFixture) seedSession(mutate func(*entity.ChatSession)) *entity.ChatSession {
	userId := uuid.New()
	session := &entity.ChatSession{
		Id:                 uuid.New(),
		UserId:             &userId,
		SessionType:        entity.SessionTypeBot,
		Status:             entity.SessionActive,
		ContactName:        "Riley",
		ContactEmail:       "riley@example.com",
		CreatedAt:          time.Now().Add(-time.Hour),
		CreatedDuringHours: true,
	}
	if mutate != nil {
		mutate(session)
	}
	f.store.putSession(session)
	f.store.putMetrics(&entity.ChatMetrics{
		Id:                   uuid.New(),
		SessionId:            session.Id,
		RequestedDuringHours: session.CreatedDuringHours,
		CreatedAt:            session.CreatedAt,
	})
	c := *session
	return &c
}

func (f *chatFixture) seedMessage(sessionId uuid.UUID, sender entity.Sender, createdAt time.Time) *entity.ChatMessage {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.seq++
	msg := &entity.ChatMessage{
		Id:          uuid.New(),
		SessionId:   sessionId,
		Seq:         f.store.seq,
		Sender:      sender,
		Body:        "seeded",
		MessageType: entity.MessageText,
		Status:      entity.MessageSent,
		CreatedAt:   createdAt,
	}
	c := *msg
	f.store.messages = append(f.store.messages, &c)
	return msg
}

// decrypt recovers a stored message body for assertions.
func (f *chatFixture) decrypt(msg *entity.ChatMessage) string {
	plain, err := f.codec.Decrypt(msg.Body, msg.Encrypted)
	if err != nil {
		return ""
	}
	return plain
}
