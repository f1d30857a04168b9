package contract

import (
	"context"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"

	"github.com/google/uuid"
)

type LiveAgentRepository interface {
	Create(ctx context.Context, agent *entity.LiveAgent) error
	Update(ctx context.Context, agent *entity.LiveAgent) error

	// AcquireSlot atomically increments the agent's workload iff it is below
	// the maximum at the moment of the attempt. Returns false when the agent
	// was already at capacity; two concurrent acquires can never overcommit.
	AcquireSlot(ctx context.Context, id uuid.UUID) (bool, error)

	// ReleaseSlot decrements the workload, never below zero.
	ReleaseSlot(ctx context.Context, id uuid.UUID) error

	// Touch records agent activity for the recency scoring bonus.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AgentStatus) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LiveAgent, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LiveAgent, error)
}
