package service

import (
	"context"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// AssignmentPreferences narrow the candidate pool for a handoff.
type AssignmentPreferences struct {
	Department string
	Category   string // matched against agent skills for the specialization bonus
}

// AssignmentResult reports what happened during an assignment attempt.
type AssignmentResult struct {
	Agent           *entity.LiveAgent
	AlreadyAssigned bool
}

type IAssignmentService interface {
	FindAvailableAgent(ctx context.Context, prefs AssignmentPreferences) (*entity.LiveAgent, error)
	AssignAgentToSession(ctx context.Context, session *entity.ChatSession, agent *entity.LiveAgent) (*AssignmentResult, error)
	ReleaseAgentFromSession(ctx context.Context, session *entity.ChatSession, agentId uuid.UUID) error
}

type assignmentService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAssignmentService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAssignmentService {
	return &assignmentService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

// ScoreAgent computes the load-balancing score for one candidate. Higher wins.
func ScoreAgent(agent *entity.LiveAgent, category string, now time.Time) int {
	score := agent.Priority * 5

	// Load component: fewer active sessions score higher, floor at zero.
	load := 30 - agent.CurrentSessions*6
	if load > 0 {
		score += load
	}

	if category != "" && agent.HasSkill(category) {
		score += 20
	}

	if agent.LastActiveAt != nil {
		since := now.Sub(*agent.LastActiveAt)
		switch {
		case since <= time.Hour:
			score += 10
		case since <= 4*time.Hour:
			score += 5
		}
	}

	switch agent.Status {
	case entity.AgentAvailable:
		score += 15
	case entity.AgentOnline:
		score += 10
	}

	return score
}

// SelectBestAgent picks the highest-scoring candidate. Ties go to the agent
// with the fewest current sessions, then the most recent activity.
func SelectBestAgent(candidates []*entity.LiveAgent, prefs AssignmentPreferences, now time.Time) *entity.LiveAgent {
	var best *entity.LiveAgent
	bestScore := -1

	for _, agent := range candidates {
		score := ScoreAgent(agent, prefs.Category, now)
		if best == nil || score > bestScore {
			best, bestScore = agent, score
			continue
		}
		if score < bestScore {
			continue
		}

		// Tie-break 1: fewest current sessions.
		if agent.CurrentSessions != best.CurrentSessions {
			if agent.CurrentSessions < best.CurrentSessions {
				best = agent
			}
			continue
		}

		// Tie-break 2: most recent activity.
		if agent.LastActiveAt != nil && (best.LastActiveAt == nil || agent.LastActiveAt.After(*best.LastActiveAt)) {
			best = agent
		}
	}

	return best
}

func (s *assignmentService) FindAvailableAgent(ctx context.Context, prefs AssignmentPreferences) (*entity.LiveAgent, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.AgentAvailable{}}
	if prefs.Department != "" {
		specs = append(specs, specification.AgentByDepartment{Department: prefs.Department})
	}

	candidates, err := uow.LiveAgentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Schedule windows are checked here rather than in SQL; the agent's
	// calendar and one-off unavailability window live inside a JSON column.
	eligible := make([]*entity.LiveAgent, 0, len(candidates))
	for _, agent := range candidates {
		if !agent.HasCapacity() || !agent.ScheduledNow(now) {
			continue
		}
		eligible = append(eligible, agent)
	}

	return SelectBestAgent(eligible, prefs, now), nil
}

func (s *assignmentService) AssignAgentToSession(ctx context.Context, session *entity.ChatSession, agent *entity.LiveAgent) (*AssignmentResult, error) {
	// Idempotency: re-assigning the bound agent must not double-increment
	// workload.
	if session.AgentId != nil {
		if *session.AgentId == agent.Id {
			return &AssignmentResult{Agent: agent, AlreadyAssigned: true}, nil
		}
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "agent_id", Message: "session is already assigned to another agent"},
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The conditional increment is the concurrency gate: it fails when the
	// agent is at capacity at the moment of the attempt, so two racing
	// assignments can never overcommit the same agent.
	acquired, err := uow.LiveAgentRepository().AcquireSlot(ctx, agent.Id)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, serverutils.NewCapacityError("agent is at capacity")
	}

	now := time.Now()

	// The binding itself is conditional too: two racing assignments both
	// pass the in-memory nil check above, but only one UPDATE matches
	// agent_id IS NULL. The loser's slot is rolled back with the
	// transaction, so no agent workload leaks.
	bound, err := uow.ChatSessionRepository().Bind(ctx, session.Id, agent.Id, now)
	if err != nil {
		return nil, err
	}
	if !bound {
		uow.Rollback()
		current, err := uow.ChatSessionRepository().FindOne(ctx, specification.ById{Id: session.Id})
		if err == nil && current != nil && current.BoundTo(agent.Id) {
			*session = *current
			return &AssignmentResult{Agent: agent, AlreadyAssigned: true}, nil
		}
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "agent_id", Message: "session is already assigned to another agent"},
		})
	}

	session.AgentId = &agent.Id
	session.Status = entity.SessionActive
	session.SessionType = entity.SessionTypeLiveAgent
	session.AssignedAt = &now

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("assignment", "agent assigned to session", map[string]interface{}{
		"session_id": session.Id,
		"agent_id":   agent.Id,
	})

	return &AssignmentResult{Agent: agent}, nil
}

func (s *assignmentService) ReleaseAgentFromSession(ctx context.Context, session *entity.ChatSession, agentId uuid.UUID) error {
	// Releasing an agent that is not bound to this session is a no-op.
	if !session.BoundTo(agentId) {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LiveAgentRepository().ReleaseSlot(ctx, agentId); err != nil {
		return err
	}

	s.logger.Info("assignment", "agent released from session", map[string]interface{}{
		"session_id": session.Id,
		"agent_id":   agentId,
	})
	return nil
}
