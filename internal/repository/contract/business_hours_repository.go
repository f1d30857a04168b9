package contract

import (
	"context"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"

	"github.com/google/uuid"
)

type BusinessHoursRepository interface {
	Create(ctx context.Context, cfg *entity.BusinessHoursConfig) error
	Update(ctx context.Context, cfg *entity.BusinessHoursConfig) error

	// Activate marks the given config active and deactivates every other one
	// in a single transaction, preserving the exactly-one-active invariant.
	Activate(ctx context.Context, id uuid.UUID) error

	// Deactivate soft-disables a config; configs are never hard-deleted.
	Deactivate(ctx context.Context, id uuid.UUID) error

	FindActive(ctx context.Context) (*entity.BusinessHoursConfig, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BusinessHoursConfig, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BusinessHoursConfig, error)
}
