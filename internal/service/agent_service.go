package service

import (
	"context"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAgentService interface {
	Create(ctx context.Context, req *dto.CreateAgentRequest) (*dto.AgentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAgentRequest) (*dto.AgentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Show(ctx context.Context, id uuid.UUID) (*dto.AgentResponse, error)
	GetAll(ctx context.Context, req *dto.AgentListRequest) ([]*dto.AgentResponse, error)

	// Heartbeat records agent activity; the assignment scorer rewards recency.
	Heartbeat(ctx context.Context, id uuid.UUID) error
}

type agentService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAgentService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAgentService {
	return &agentService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

var validAgentStatuses = map[entity.AgentStatus]bool{
	entity.AgentOnline:    true,
	entity.AgentOffline:   true,
	entity.AgentBusy:      true,
	entity.AgentAway:      true,
	entity.AgentBreak:     true,
	entity.AgentAvailable: true,
}

func (s *agentService) Create(ctx context.Context, req *dto.CreateAgentRequest) (*dto.AgentResponse, error) {
	var fieldErrs []serverutils.FieldError
	if req.Name == "" {
		fieldErrs = append(fieldErrs, serverutils.FieldError{Field: "name", Message: "name is required"})
	}
	if req.Email == "" {
		fieldErrs = append(fieldErrs, serverutils.FieldError{Field: "email", Message: "email is required"})
	}
	if req.MaxChats <= 0 {
		fieldErrs = append(fieldErrs, serverutils.FieldError{Field: "max_chats", Message: "max_chats must be positive"})
	}
	if len(fieldErrs) > 0 {
		return nil, serverutils.NewValidationError(fieldErrs)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.LiveAgentRepository().FindOne(ctx, specification.AgentByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "email", Message: "an agent with this email already exists"},
		})
	}

	agent := &entity.LiveAgent{
		Id:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Skills:     req.Specializations,
		Status:     entity.AgentOffline,
		MaxChats:   req.MaxChats,
		Priority:   req.Priority,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}

	if err := uow.LiveAgentRepository().Create(ctx, agent); err != nil {
		return nil, err
	}

	s.logger.Info("agent", "agent created", map[string]interface{}{
		"agent_id": agent.Id,
		"email":    agent.Email,
	})

	return agentEntityToResponse(agent), nil
}

func (s *agentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAgentRequest) (*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agent, err := uow.LiveAgentRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, serverutils.NewNotFoundError("agent not found")
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Department != nil {
		agent.Department = *req.Department
	}
	if req.Specializations != nil {
		agent.Skills = req.Specializations
	}
	if req.MaxChats != nil {
		if *req.MaxChats <= 0 {
			return nil, serverutils.NewValidationError([]serverutils.FieldError{
				{Field: "max_chats", Message: "max_chats must be positive"},
			})
		}
		agent.MaxChats = *req.MaxChats
	}
	if req.Priority != nil {
		agent.Priority = *req.Priority
	}
	now := time.Now()
	agent.UpdatedAt = &now

	if err := uow.LiveAgentRepository().Update(ctx, agent); err != nil {
		return nil, err
	}

	return agentEntityToResponse(agent), nil
}

func (s *agentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	st := entity.AgentStatus(status)
	if !validAgentStatuses[st] {
		return serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "status", Message: "unknown agent status"},
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LiveAgentRepository().UpdateStatus(ctx, id, st); err != nil {
		return err
	}

	// Status changes count as activity.
	return uow.LiveAgentRepository().Touch(ctx, id, time.Now())
}

func (s *agentService) Show(ctx context.Context, id uuid.UUID) (*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agent, err := uow.LiveAgentRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, serverutils.NewNotFoundError("agent not found")
	}

	return agentEntityToResponse(agent), nil
}

func (s *agentService) GetAll(ctx context.Context, req *dto.AgentListRequest) ([]*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OrderBy{Expression: "name ASC"}}
	if req.Department != "" {
		specs = append(specs, specification.AgentByDepartment{Department: req.Department})
	}
	if req.OnlyActive {
		specs = append(specs, specification.AgentActiveOnly{})
	}
	if req.Limit > 0 {
		specs = append(specs, specification.Limit{Limit: req.Limit})
	}
	if req.Offset > 0 {
		specs = append(specs, specification.Offset{Offset: req.Offset})
	}

	agents, err := uow.LiveAgentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AgentResponse, 0, len(agents))
	for _, agent := range agents {
		result = append(result, agentEntityToResponse(agent))
	}
	return result, nil
}

func (s *agentService) Heartbeat(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.LiveAgentRepository().Touch(ctx, id, time.Now())
}

func agentEntityToResponse(agent *entity.LiveAgent) *dto.AgentResponse {
	return &dto.AgentResponse{
		Id:              agent.Id,
		Name:            agent.Name,
		Email:           agent.Email,
		Department:      agent.Department,
		Specializations: agent.Skills,
		Status:          string(agent.Status),
		CurrentSessions: agent.CurrentSessions,
		MaxChats:        agent.MaxChats,
		Priority:        agent.Priority,
		AvgRating:       agent.AvgRating,
		LastActivityAt:  agent.LastActiveAt,
		CreatedAt:       agent.CreatedAt,
	}
}
