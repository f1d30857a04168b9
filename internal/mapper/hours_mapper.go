package mapper

import (
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/model"
)

type HoursMapper struct{}

func NewHoursMapper() *HoursMapper {
	return &HoursMapper{}
}

func (m *HoursMapper) ToEntity(c *model.BusinessHoursConfig) *entity.BusinessHoursConfig {
	if c == nil {
		return nil
	}

	var workingDays []time.Weekday
	fromJSON(c.WorkingDays, &workingDays)

	var holidays []entity.Holiday
	fromJSON(c.Holidays, &holidays)

	var special []entity.SpecialHours
	fromJSON(c.SpecialHours, &special)

	var options []string
	fromJSON(c.OutsideHoursOptions, &options)

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.BusinessHoursConfig{
		Id:                              c.Id,
		Timezone:                        c.Timezone,
		StartTime:                       c.StartTime,
		EndTime:                         c.EndTime,
		WorkingDays:                     workingDays,
		Holidays:                        holidays,
		SpecialHours:                    special,
		OutsideHoursMessage:             c.OutsideHoursMessage,
		WeekendMessage:                  c.WeekendMessage,
		OutsideHoursOptions:             options,
		WarningMinutesBeforeClose:       c.WarningMinutesBeforeClose,
		AllowNewChatsMinutesBeforeClose: c.AllowNewChatsMinutesBeforeClose,
		IsActive:                        c.IsActive,
		CreatedAt:                       c.CreatedAt,
		UpdatedAt:                       updatedAt,
	}
}

func (m *HoursMapper) ToModel(c *entity.BusinessHoursConfig) *model.BusinessHoursConfig {
	if c == nil {
		return nil
	}

	return &model.BusinessHoursConfig{
		Id:                              c.Id,
		Timezone:                        c.Timezone,
		StartTime:                       c.StartTime,
		EndTime:                         c.EndTime,
		WorkingDays:                     toJSON(c.WorkingDays),
		Holidays:                        toJSON(c.Holidays),
		SpecialHours:                    toJSON(c.SpecialHours),
		OutsideHoursMessage:             c.OutsideHoursMessage,
		WeekendMessage:                  c.WeekendMessage,
		OutsideHoursOptions:             toJSON(c.OutsideHoursOptions),
		WarningMinutesBeforeClose:       c.WarningMinutesBeforeClose,
		AllowNewChatsMinutesBeforeClose: c.AllowNewChatsMinutesBeforeClose,
		IsActive:                        c.IsActive,
		CreatedAt:                       c.CreatedAt,
	}
}
