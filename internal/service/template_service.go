package service

import (
	"context"
	"sort"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"
	"github.com/sansitamalhotra/ChatBot-sub003/pkg/render"

	"github.com/google/uuid"
)

type ITemplateService interface {
	Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error)
	GetAll(ctx context.Context, req *dto.TemplateListRequest) ([]*dto.TemplateResponse, error)

	// Clone creates a new version of an existing template, linked by parent.
	Clone(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error)

	Render(ctx context.Context, id uuid.UUID, vars map[string]interface{}) (*dto.RenderTemplateResponse, error)
	Rate(ctx context.Context, id uuid.UUID, rating float64) error

	// FindMatching picks the best active template for the given type and
	// render context. Returns nil when nothing applies.
	FindMatching(ctx context.Context, templateType string, context map[string]string, duringHours bool) (*entity.ChatTemplate, error)

	// RenderEntity expands a template entity with request variables layered
	// over declared defaults, and records the usage.
	RenderEntity(ctx context.Context, tpl *entity.ChatTemplate, vars map[string]interface{}) string
}

type templateService struct {
	uowFactory unitofwork.RepositoryFactory
	renderer   *render.Renderer
	logger     logger.ILogger
}

func NewTemplateService(
	uowFactory unitofwork.RepositoryFactory,
	renderer *render.Renderer,
	log logger.ILogger,
) ITemplateService {
	return &templateService{
		uowFactory: uowFactory,
		renderer:   renderer,
		logger:     log,
	}
}

func (s *templateService) Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if fieldErrs := validateTemplateRequest(req); len(fieldErrs) > 0 {
		return nil, serverutils.NewValidationError(fieldErrs)
	}

	tpl := &entity.ChatTemplate{
		Id:                uuid.New(),
		Type:              req.Type,
		Category:          req.Category,
		Content:           req.Content,
		Variables:         variablesFromMap(req.Variables),
		QuickReplies:      req.QuickReplies,
		Conditions:        req.Conditions,
		BusinessHoursOnly: req.BusinessHoursOnly,
		Priority:          req.Priority,
		Version:           1,
		IsActive:          true,
		CreatedAt:         time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatTemplateRepository().Create(ctx, tpl); err != nil {
		return nil, err
	}

	return templateEntityToResponse(tpl), nil
}

func (s *templateService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tpl, err := uow.ChatTemplateRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, serverutils.NewNotFoundError("template not found")
	}

	if req.Category != nil {
		tpl.Category = *req.Category
	}
	if req.Content != nil {
		tpl.Content = *req.Content
	}
	if req.QuickReplies != nil {
		tpl.QuickReplies = req.QuickReplies
	}
	if req.Variables != nil {
		tpl.Variables = variablesFromMap(req.Variables)
	}
	if req.Conditions != nil {
		tpl.Conditions = req.Conditions
	}
	if req.Priority != nil {
		tpl.Priority = *req.Priority
	}
	if req.BusinessHoursOnly != nil {
		tpl.BusinessHoursOnly = *req.BusinessHoursOnly
	}
	now := time.Now()
	tpl.UpdatedAt = &now

	if err := uow.ChatTemplateRepository().Update(ctx, tpl); err != nil {
		return nil, err
	}

	return templateEntityToResponse(tpl), nil
}

func (s *templateService) Deactivate(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatTemplateRepository().Deactivate(ctx, id)
}

func (s *templateService) Show(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tpl, err := uow.ChatTemplateRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, serverutils.NewNotFoundError("template not found")
	}

	return templateEntityToResponse(tpl), nil
}

func (s *templateService) GetAll(ctx context.Context, req *dto.TemplateListRequest) ([]*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.TemplatesByPriority{}}
	if req.Type != "" {
		specs = append(specs, specification.TemplateByType{Type: req.Type})
	}
	if req.Category != "" {
		specs = append(specs, specification.TemplateByCategory{Category: req.Category})
	}
	if req.OnlyActive {
		specs = append(specs, specification.TemplateActiveOnly{})
	}
	if req.Limit > 0 {
		specs = append(specs, specification.Limit{Limit: req.Limit})
	}
	if req.Offset > 0 {
		specs = append(specs, specification.Offset{Offset: req.Offset})
	}

	templates, err := uow.ChatTemplateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		result = append(result, templateEntityToResponse(tpl))
	}
	return result, nil
}

func (s *templateService) Clone(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	parent, err := uow.ChatTemplateRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, serverutils.NewNotFoundError("template not found")
	}

	clone := *parent
	clone.Id = uuid.New()
	clone.ParentId = &parent.Id
	clone.Version = parent.Version + 1
	clone.TimesUsed = 0
	clone.LastUsedAt = nil
	clone.AvgRating = 0
	clone.RatingCount = 0
	clone.IsActive = false // New versions go live explicitly
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = nil

	if err := uow.ChatTemplateRepository().Create(ctx, &clone); err != nil {
		return nil, err
	}

	s.logger.Info("template", "template cloned", map[string]interface{}{
		"parent_id": parent.Id,
		"clone_id":  clone.Id,
		"version":   clone.Version,
	})

	return templateEntityToResponse(&clone), nil
}

func (s *templateService) Render(ctx context.Context, id uuid.UUID, vars map[string]interface{}) (*dto.RenderTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tpl, err := uow.ChatTemplateRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, serverutils.NewNotFoundError("template not found")
	}

	return &dto.RenderTemplateResponse{
		Content:      s.RenderEntity(ctx, tpl, vars),
		QuickReplies: tpl.QuickReplies,
	}, nil
}

func (s *templateService) Rate(ctx context.Context, id uuid.UUID, rating float64) error {
	if rating < 1 || rating > 5 {
		return serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "rating", Message: "rating must be between 1 and 5"},
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatTemplateRepository().AddRating(ctx, id, rating)
}

func (s *templateService) FindMatching(ctx context.Context, templateType string, matchCtx map[string]string, duringHours bool) (*entity.ChatTemplate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	candidates, err := uow.ChatTemplateRepository().FindAll(ctx,
		specification.TemplateByType{Type: templateType},
		specification.TemplateActiveOnly{},
		specification.TemplatesByPriority{},
	)
	if err != nil {
		return nil, err
	}

	// Stable order so equal priorities resolve deterministically.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	for _, tpl := range candidates {
		if tpl.BusinessHoursOnly && !duringHours {
			continue
		}
		if tpl.Matches(matchCtx) {
			return tpl, nil
		}
	}
	return nil, nil
}

func (s *templateService) RenderEntity(ctx context.Context, tpl *entity.ChatTemplate, vars map[string]interface{}) string {
	defaults := make(map[string]string, len(tpl.Variables))
	for _, v := range tpl.Variables {
		defaults[v.Name] = v.Default
	}

	content := s.renderer.Render(tpl.Content, vars, defaults)

	// Usage tracking is best effort; rendering never fails on it.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatTemplateRepository().IncrementUsage(ctx, tpl.Id, time.Now()); err != nil {
		s.logger.Warn("template", "failed to record template usage", map[string]interface{}{
			"template_id": tpl.Id,
			"error":       err.Error(),
		})
	}

	return content
}

// --- helpers ---

func validateTemplateRequest(req *dto.CreateTemplateRequest) []serverutils.FieldError {
	var errs []serverutils.FieldError
	if req.Type == "" {
		errs = append(errs, serverutils.FieldError{Field: "type", Message: "type is required"})
	}
	if req.Content == "" {
		errs = append(errs, serverutils.FieldError{Field: "content", Message: "content is required"})
	}
	return errs
}

func variablesFromMap(vars map[string]string) []entity.TemplateVariable {
	if len(vars) == 0 {
		return nil
	}
	out := make([]entity.TemplateVariable, 0, len(vars))
	for name, def := range vars {
		out = append(out, entity.TemplateVariable{Name: name, Default: def})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func variablesToMap(vars []entity.TemplateVariable) map[string]string {
	if len(vars) == 0 {
		return nil
	}
	out := make(map[string]string, len(vars))
	for _, v := range vars {
		out[v.Name] = v.Default
	}
	return out
}

func templateEntityToResponse(tpl *entity.ChatTemplate) *dto.TemplateResponse {
	res := &dto.TemplateResponse{
		Id:                tpl.Id,
		Type:              tpl.Type,
		Category:          tpl.Category,
		Content:           tpl.Content,
		QuickReplies:      tpl.QuickReplies,
		Variables:         variablesToMap(tpl.Variables),
		Conditions:        tpl.Conditions,
		Priority:          tpl.Priority,
		BusinessHoursOnly: tpl.BusinessHoursOnly,
		IsActive:          tpl.IsActive,
		UsageCount:        int(tpl.TimesUsed),
		AvgRating:         tpl.AvgRating,
		Version:           tpl.Version,
		ParentId:          tpl.ParentId,
		CreatedAt:         tpl.CreatedAt,
	}
	if tpl.UpdatedAt != nil {
		res.UpdatedAt = *tpl.UpdatedAt
	}
	return res
}
