package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/mapper"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/model"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/contract"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LiveAgentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgentMapper
}

func NewLiveAgentRepository(db *gorm.DB) contract.LiveAgentRepository {
	return &LiveAgentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgentMapper(),
	}
}

func (r *LiveAgentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LiveAgentRepositoryImpl) Create(ctx context.Context, agent *entity.LiveAgent) error {
	m := r.mapper.ToModel(agent)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*agent = *r.mapper.ToEntity(m)
	return nil
}

func (r *LiveAgentRepositoryImpl) Update(ctx context.Context, agent *entity.LiveAgent) error {
	m := r.mapper.ToModel(agent)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*agent = *r.mapper.ToEntity(m)
	return nil
}

// AcquireSlot relies on a single conditional UPDATE so two concurrent
// assignments can never push an agent past max_chats. RowsAffected == 0 means
// the guard failed: the agent was already full (or offline).
func (r *LiveAgentRepositoryImpl) AcquireSlot(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.LiveAgent{}).
		Where("id = ? AND current_sessions < max_chats AND status IN ? AND is_active = ?", id, []string{string(entity.AgentOnline), string(entity.AgentAvailable)}, true).
		UpdateColumn("current_sessions", gorm.Expr("current_sessions + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *LiveAgentRepositoryImpl) ReleaseSlot(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.LiveAgent{}).
		Where("id = ? AND current_sessions > 0", id).
		UpdateColumn("current_sessions", gorm.Expr("current_sessions - 1")).Error
}

func (r *LiveAgentRepositoryImpl) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.LiveAgent{}).
		Where("id = ?", id).
		UpdateColumn("last_active_at", at).Error
}

func (r *LiveAgentRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AgentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.LiveAgent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         string(status),
			"last_active_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LiveAgentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LiveAgent, error) {
	var m model.LiveAgent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LiveAgentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LiveAgent, error) {
	var models []*model.LiveAgent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.LiveAgent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
