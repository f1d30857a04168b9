package contract

import (
	"context"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatTemplateRepository interface {
	Create(ctx context.Context, template *entity.ChatTemplate) error
	Update(ctx context.Context, template *entity.ChatTemplate) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	// IncrementUsage bumps the usage counter with plain increment semantics;
	// exact correctness is not required for analytics fields.
	IncrementUsage(ctx context.Context, id uuid.UUID, usedAt time.Time) error

	// AddRating folds a new rating into the rolling average.
	AddRating(ctx context.Context, id uuid.UUID, rating float64) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatTemplate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTemplate, error)
}
