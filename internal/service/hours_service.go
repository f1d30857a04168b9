package service

import (
	"context"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/hours"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/logger"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/specification"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IHoursService interface {
	Create(ctx context.Context, req *dto.BusinessHoursRequest) (*dto.BusinessHoursResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.BusinessHoursRequest) (*dto.BusinessHoursResponse, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.BusinessHoursResponse, error)
	GetAll(ctx context.Context) ([]*dto.BusinessHoursResponse, error)

	// Status answers "can a visitor chat right now" from the cached active
	// config. This is the hot path the widget polls.
	Status(ctx context.Context) (*dto.HoursStatusResponse, error)

	// ActiveConfig returns the cached active config for other services.
	ActiveConfig(ctx context.Context) (*entity.BusinessHoursConfig, error)
}

type hoursService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *hours.ConfigCache
	logger     logger.ILogger
}

func NewHoursService(
	uowFactory unitofwork.RepositoryFactory,
	cache *hours.ConfigCache,
	log logger.ILogger,
) IHoursService {
	return &hoursService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
	}
}

func (s *hoursService) Create(ctx context.Context, req *dto.BusinessHoursRequest) (*dto.BusinessHoursResponse, error) {
	cfg := hoursRequestToEntity(req)
	cfg.Id = uuid.New()
	cfg.CreatedAt = time.Now()

	if fieldErrs := hours.Validate(cfg); len(fieldErrs) > 0 {
		return nil, serverutils.NewValidationError(fieldErrs)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.BusinessHoursRepository().Create(ctx, cfg); err != nil {
		return nil, err
	}

	s.logger.Info("hours", "business hours config created", map[string]interface{}{
		"config_id": cfg.Id,
		"timezone":  cfg.Timezone,
	})

	return hoursEntityToResponse(cfg), nil
}

func (s *hoursService) Update(ctx context.Context, id uuid.UUID, req *dto.BusinessHoursRequest) (*dto.BusinessHoursResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.BusinessHoursRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, serverutils.NewNotFoundError("business hours config not found")
	}

	cfg := hoursRequestToEntity(req)
	cfg.Id = existing.Id
	cfg.IsActive = existing.IsActive
	cfg.CreatedAt = existing.CreatedAt
	now := time.Now()
	cfg.UpdatedAt = &now

	if fieldErrs := hours.Validate(cfg); len(fieldErrs) > 0 {
		return nil, serverutils.NewValidationError(fieldErrs)
	}

	if err := uow.BusinessHoursRepository().Update(ctx, cfg); err != nil {
		return nil, err
	}

	// Updating the active config must be visible immediately, not after TTL.
	if cfg.IsActive {
		s.cache.Invalidate()
	}

	return hoursEntityToResponse(cfg), nil
}

func (s *hoursService) Activate(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.BusinessHoursRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return serverutils.NewNotFoundError("business hours config not found")
	}

	if err := uow.BusinessHoursRepository().Activate(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate()

	s.logger.Info("hours", "business hours config activated", map[string]interface{}{
		"config_id": id,
	})
	return nil
}

func (s *hoursService) Deactivate(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.BusinessHoursRepository().Deactivate(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

func (s *hoursService) Show(ctx context.Context, id uuid.UUID) (*dto.BusinessHoursResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cfg, err := uow.BusinessHoursRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, serverutils.NewNotFoundError("business hours config not found")
	}

	return hoursEntityToResponse(cfg), nil
}

func (s *hoursService) GetAll(ctx context.Context) ([]*dto.BusinessHoursResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	configs, err := uow.BusinessHoursRepository().FindAll(ctx, specification.OrderBy{Expression: "created_at DESC"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BusinessHoursResponse, 0, len(configs))
	for _, cfg := range configs {
		result = append(result, hoursEntityToResponse(cfg))
	}
	return result, nil
}

func (s *hoursService) ActiveConfig(ctx context.Context) (*entity.BusinessHoursConfig, error) {
	if cfg, ok := s.cache.Get(); ok {
		return cfg, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := uow.BusinessHoursRepository().FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}

	s.cache.Set(cfg)
	return cfg, nil
}

func (s *hoursService) Status(ctx context.Context) (*dto.HoursStatusResponse, error) {
	cfg, err := s.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		// No config means no schedule restriction: always open.
		return &dto.HoursStatusResponse{
			IsOpen:         true,
			AllowNewChats:  true,
			FormattedHours: "24/7",
			Timezone:       "UTC",
		}, nil
	}

	now := time.Now()
	res := &dto.HoursStatusResponse{
		IsOpen:         hours.IsOpen(cfg, now),
		AllowNewChats:  hours.AllowNewChats(cfg, now),
		IsNearClosing:  hours.IsNearClosing(cfg, now),
		FormattedHours: hours.FormatHours(cfg),
		Timezone:       cfg.Timezone,
	}

	if res.IsOpen {
		res.MinutesUntilClose = hours.MinutesUntilClose(cfg, now)
	} else {
		msg, _ := hours.OutsideHoursMessage(cfg, now)
		res.Message = msg
		if next, ok := hours.NextAvailable(cfg, now); ok {
			res.NextAvailableAt = &next
		}
	}

	return res, nil
}

// --- DTO mapping ---

func hoursRequestToEntity(req *dto.BusinessHoursRequest) *entity.BusinessHoursConfig {
	days := make([]time.Weekday, 0, len(req.WorkingDays))
	for _, d := range req.WorkingDays {
		days = append(days, time.Weekday(d))
	}

	holidays := make([]entity.Holiday, 0, len(req.Holidays))
	for _, h := range req.Holidays {
		holidays = append(holidays, entity.Holiday{
			Date:      h.Date,
			Name:      h.Name,
			Recurring: h.Recurring,
		})
	}

	special := make([]entity.SpecialHours, 0, len(req.SpecialHours))
	for _, sp := range req.SpecialHours {
		special = append(special, entity.SpecialHours{
			Date:      sp.Date,
			StartTime: sp.StartTime,
			EndTime:   sp.EndTime,
			IsClosed:  sp.IsClosed,
			Reason:    sp.Reason,
		})
	}

	return &entity.BusinessHoursConfig{
		Timezone:                        req.Timezone,
		StartTime:                       req.StartTime,
		EndTime:                         req.EndTime,
		WorkingDays:                     days,
		Holidays:                        holidays,
		SpecialHours:                    special,
		OutsideHoursMessage:             req.OutsideHoursMessage,
		WeekendMessage:                  req.WeekendMessage,
		OutsideHoursOptions:             req.OutsideHoursOptions,
		WarningMinutesBeforeClose:       req.WarningMinutes,
		AllowNewChatsMinutesBeforeClose: req.AllowNewChatsCutoffMins,
	}
}

func hoursEntityToResponse(cfg *entity.BusinessHoursConfig) *dto.BusinessHoursResponse {
	days := make([]int, 0, len(cfg.WorkingDays))
	for _, d := range cfg.WorkingDays {
		days = append(days, int(d))
	}

	holidays := make([]dto.HolidayRequest, 0, len(cfg.Holidays))
	for _, h := range cfg.Holidays {
		holidays = append(holidays, dto.HolidayRequest{
			Date:      h.Date,
			Name:      h.Name,
			Recurring: h.Recurring,
		})
	}

	special := make([]dto.SpecialHoursRequest, 0, len(cfg.SpecialHours))
	for _, sp := range cfg.SpecialHours {
		special = append(special, dto.SpecialHoursRequest{
			Date:      sp.Date,
			StartTime: sp.StartTime,
			EndTime:   sp.EndTime,
			IsClosed:  sp.IsClosed,
			Reason:    sp.Reason,
		})
	}

	res := &dto.BusinessHoursResponse{
		Id:                      cfg.Id,
		Timezone:                cfg.Timezone,
		StartTime:               cfg.StartTime,
		EndTime:                 cfg.EndTime,
		WorkingDays:             days,
		Holidays:                holidays,
		SpecialHours:            special,
		OutsideHoursMessage:     cfg.OutsideHoursMessage,
		WeekendMessage:          cfg.WeekendMessage,
		OutsideHoursOptions:     cfg.OutsideHoursOptions,
		WarningMinutes:          cfg.WarningMinutesBeforeClose,
		AllowNewChatsCutoffMins: cfg.AllowNewChatsMinutesBeforeClose,
		IsActive:                cfg.IsActive,
		CreatedAt:               cfg.CreatedAt,
	}
	if cfg.UpdatedAt != nil {
		res.UpdatedAt = *cfg.UpdatedAt
	}
	return res
}
