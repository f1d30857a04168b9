package implementation

import (
	"context"
	"errors"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/mapper"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/model"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMetricsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMetricsRepository(db *gorm.DB) contract.ChatMetricsRepository {
	return &ChatMetricsRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMetricsRepositoryImpl) Create(ctx context.Context, metrics *entity.ChatMetrics) error {
	m := r.mapper.MetricsToModel(metrics)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*metrics = *r.mapper.MetricsToEntity(m)
	return nil
}

func (r *ChatMetricsRepositoryImpl) Update(ctx context.Context, metrics *entity.ChatMetrics) error {
	m := r.mapper.MetricsToModel(metrics)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*metrics = *r.mapper.MetricsToEntity(m)
	return nil
}

func (r *ChatMetricsRepositoryImpl) FindBySession(ctx context.Context, sessionId uuid.UUID) (*entity.ChatMetrics, error) {
	var m model.ChatMetrics
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MetricsToEntity(&m), nil
}

func (r *ChatMetricsRepositoryImpl) IncrementMessageCount(ctx context.Context, sessionId uuid.UUID, kind entity.SenderKind) error {
	var column string
	switch kind {
	case entity.SenderUser, entity.SenderGuest:
		column = "user_messages"
	case entity.SenderBot:
		column = "bot_messages"
	case entity.SenderAgent:
		column = "agent_messages"
	case entity.SenderSystem:
		column = "system_messages"
	default:
		return nil
	}

	return r.db.WithContext(ctx).Model(&model.ChatMetrics{}).
		Where("session_id = ?", sessionId).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (r *ChatMetricsRepositoryImpl) IncrementTransferCount(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ChatMetrics{}).
		Where("session_id = ?", sessionId).
		UpdateColumn("transfer_count", gorm.Expr("transfer_count + 1")).Error
}
