package dto

import (
	"time"

	"github.com/google/uuid"
)

type SpecialHoursRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	IsClosed  bool   `json:"is_closed"`
	Reason    string `json:"reason,omitempty"`
}

type HolidayRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

type BusinessHoursRequest struct {
	Timezone                string                `json:"timezone"`
	StartTime               string                `json:"start_time"` // HH:MM
	EndTime                 string                `json:"end_time"`   // HH:MM
	WorkingDays             []int                 `json:"working_days"`
	Holidays                []HolidayRequest      `json:"holidays,omitempty"`
	SpecialHours            []SpecialHoursRequest `json:"special_hours,omitempty"`
	OutsideHoursMessage     string                `json:"outside_hours_message,omitempty"`
	WeekendMessage          string                `json:"weekend_message,omitempty"`
	OutsideHoursOptions     []string              `json:"outside_hours_options,omitempty"`
	WarningMinutes          int                   `json:"warning_minutes"`
	AllowNewChatsCutoffMins int                   `json:"allow_new_chats_cutoff_mins"`
}

type BusinessHoursResponse struct {
	Id                      uuid.UUID             `json:"id"`
	Timezone                string                `json:"timezone"`
	StartTime               string                `json:"start_time"`
	EndTime                 string                `json:"end_time"`
	WorkingDays             []int                 `json:"working_days"`
	Holidays                []HolidayRequest      `json:"holidays,omitempty"`
	SpecialHours            []SpecialHoursRequest `json:"special_hours,omitempty"`
	OutsideHoursMessage     string                `json:"outside_hours_message,omitempty"`
	WeekendMessage          string                `json:"weekend_message,omitempty"`
	OutsideHoursOptions     []string              `json:"outside_hours_options,omitempty"`
	WarningMinutes          int                   `json:"warning_minutes"`
	AllowNewChatsCutoffMins int                   `json:"allow_new_chats_cutoff_mins"`
	IsActive                bool                  `json:"is_active"`
	CreatedAt               time.Time             `json:"created_at"`
	UpdatedAt               time.Time             `json:"updated_at"`
}

// HoursStatusResponse is what the chat widget polls to decide which UI to show.
type HoursStatusResponse struct {
	IsOpen            bool       `json:"is_open"`
	AllowNewChats     bool       `json:"allow_new_chats"`
	IsNearClosing     bool       `json:"is_near_closing"`
	MinutesUntilClose int        `json:"minutes_until_close,omitempty"`
	NextAvailableAt   *time.Time `json:"next_available_at,omitempty"`
	Message           string     `json:"message,omitempty"`
	FormattedHours    string     `json:"formatted_hours"`
	Timezone          string     `json:"timezone"`
}
