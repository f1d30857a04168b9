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

type ChatTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TemplateMapper
}

func NewChatTemplateRepository(db *gorm.DB) contract.ChatTemplateRepository {
	return &ChatTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewTemplateMapper(),
	}
}

func (r *ChatTemplateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatTemplateRepositoryImpl) Create(ctx context.Context, template *entity.ChatTemplate) error {
	m := r.mapper.ToModel(template)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatTemplateRepositoryImpl) Update(ctx context.Context, template *entity.ChatTemplate) error {
	m := r.mapper.ToModel(template)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatTemplateRepositoryImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ChatTemplate{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *ChatTemplateRepositoryImpl) IncrementUsage(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ChatTemplate{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"times_used":   gorm.Expr("times_used + 1"),
			"last_used_at": usedAt,
		}).Error
}

// AddRating folds a rating into the rolling average in a single statement.
func (r *ChatTemplateRepositoryImpl) AddRating(ctx context.Context, id uuid.UUID, rating float64) error {
	return r.db.WithContext(ctx).Model(&model.ChatTemplate{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"avg_rating":   gorm.Expr("(avg_rating * rating_count + ?) / (rating_count + 1)", rating),
			"rating_count": gorm.Expr("rating_count + 1"),
		}).Error
}

func (r *ChatTemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatTemplate, error) {
	var m model.ChatTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatTemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTemplate, error) {
	var models []*model.ChatTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatTemplate, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
