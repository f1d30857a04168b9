package contract

import (
	"context"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"

	"github.com/google/uuid"
)

type ChatMetricsRepository interface {
	Create(ctx context.Context, metrics *entity.ChatMetrics) error
	Update(ctx context.Context, metrics *entity.ChatMetrics) error
	FindBySession(ctx context.Context, sessionId uuid.UUID) (*entity.ChatMetrics, error)

	// Counter updates use simple increments; eventual correctness is
	// acceptable for analytics fields.
	IncrementMessageCount(ctx context.Context, sessionId uuid.UUID, kind entity.SenderKind) error
	IncrementTransferCount(ctx context.Context, sessionId uuid.UUID) error
}
