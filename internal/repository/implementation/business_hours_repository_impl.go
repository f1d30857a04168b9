package implementation

import (
	"context"
	"errors"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/mapper"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/model"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/contract"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessHoursRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HoursMapper
}

func NewBusinessHoursRepository(db *gorm.DB) contract.BusinessHoursRepository {
	return &BusinessHoursRepositoryImpl{
		db:     db,
		mapper: mapper.NewHoursMapper(),
	}
}

func (r *BusinessHoursRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BusinessHoursRepositoryImpl) Create(ctx context.Context, cfg *entity.BusinessHoursConfig) error {
	m := r.mapper.ToModel(cfg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*cfg = *r.mapper.ToEntity(m)
	return nil
}

func (r *BusinessHoursRepositoryImpl) Update(ctx context.Context, cfg *entity.BusinessHoursConfig) error {
	m := r.mapper.ToModel(cfg)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*cfg = *r.mapper.ToEntity(m)
	return nil
}

// Activate keeps the exactly-one-active invariant by deactivating all configs
// and activating the target inside one transaction.
func (r *BusinessHoursRepositoryImpl) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.BusinessHoursConfig{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.BusinessHoursConfig{}).
			Where("id = ?", id).
			Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *BusinessHoursRepositoryImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.BusinessHoursConfig{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *BusinessHoursRepositoryImpl) FindActive(ctx context.Context) (*entity.BusinessHoursConfig, error) {
	return r.FindOne(ctx, specification.ActiveConfig{})
}

func (r *BusinessHoursRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BusinessHoursConfig, error) {
	var m model.BusinessHoursConfig
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BusinessHoursRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BusinessHoursConfig, error) {
	var models []*model.BusinessHoursConfig
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.BusinessHoursConfig, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
