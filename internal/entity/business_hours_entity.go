package entity

import (
	"time"

	"github.com/google/uuid"
)

// Holiday closes the whole day. Recurring holidays match month+day every year.
type Holiday struct {
	Date        string `json:"date"` // "2006-01-02"
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Recurring   bool   `json:"recurring"`
}

// SpecialHours fully overrides the regular schedule for one exact date.
type SpecialHours struct {
	Date      string `json:"date"`                 // "2006-01-02"
	StartTime string `json:"start_time,omitempty"` // "15:04"
	EndTime   string `json:"end_time,omitempty"`
	IsClosed  bool   `json:"is_closed"`
	Reason    string `json:"reason,omitempty"`
}

type BusinessHoursConfig struct {
	Id       uuid.UUID
	Timezone string // IANA identifier, e.g. "America/New_York"

	StartTime   string // "15:04", minute precision
	EndTime     string
	WorkingDays []time.Weekday

	Holidays     []Holiday
	SpecialHours []SpecialHours

	OutsideHoursMessage string
	WeekendMessage      string
	OutsideHoursOptions []string

	WarningMinutesBeforeClose       int
	AllowNewChatsMinutesBeforeClose int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// SpecialHoursFor returns the override for the given local date, if any.
func (c *BusinessHoursConfig) SpecialHoursFor(date string) *SpecialHours {
	for i := range c.SpecialHours {
		if c.SpecialHours[i].Date == date {
			return &c.SpecialHours[i]
		}
	}
	return nil
}

// HolidayFor returns the holiday matching the given local date, if any.
func (c *BusinessHoursConfig) HolidayFor(date string) *Holiday {
	for i := range c.Holidays {
		h := &c.Holidays[i]
		if h.Date == date {
			return h
		}
		if h.Recurring && len(h.Date) == 10 && len(date) == 10 && h.Date[5:] == date[5:] {
			return h
		}
	}
	return nil
}

func (c *BusinessHoursConfig) IsWorkingDay(day time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}
