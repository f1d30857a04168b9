package hours

import (
	"fmt"
	"strings"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// NextAvailable scans forward at most this many days.
	maxLookaheadDays = 14
)

// parseClock converts a "15:04" string into minutes from midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func location(cfg *entity.BusinessHoursConfig) *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// window is the effective open/close pair (minutes from midnight) for one
// local date, after applying holiday and special-hours precedence.
type window struct {
	open  int
	close int
}

// effectiveWindow resolves the window for the given local instant.
// Precedence: holiday > special hours > regular weekday schedule.
func effectiveWindow(cfg *entity.BusinessHoursConfig, local time.Time) (window, bool) {
	date := local.Format(dateLayout)

	if cfg.HolidayFor(date) != nil {
		return window{}, false
	}

	if sh := cfg.SpecialHoursFor(date); sh != nil {
		if sh.IsClosed {
			return window{}, false
		}
		open, okOpen := parseClock(sh.StartTime)
		close, okClose := parseClock(sh.EndTime)
		if okOpen && okClose {
			return window{open: open, close: close}, true
		}
		// Malformed override falls back to the regular window below.
	}

	if !cfg.IsWorkingDay(local.Weekday()) {
		return window{}, false
	}

	open, okOpen := parseClock(cfg.StartTime)
	close, okClose := parseClock(cfg.EndTime)
	if !okOpen || !okClose {
		return window{}, false
	}
	return window{open: open, close: close}, true
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsOpen reports whether the instant falls inside business hours. Bounds are
// inclusive on both ends.
func IsOpen(cfg *entity.BusinessHoursConfig, now time.Time) bool {
	local := now.In(location(cfg))
	w, ok := effectiveWindow(cfg, local)
	if !ok {
		return false
	}
	m := minuteOfDay(local)
	return m >= w.open && m <= w.close
}

// NextAvailable returns the next opening instant strictly after now, scanning
// forward day by day. The second return value is false when no opening exists
// within the lookahead horizon.
func NextAvailable(cfg *entity.BusinessHoursConfig, now time.Time) (time.Time, bool) {
	loc := location(cfg)
	local := now.In(loc)

	for i := 0; i <= maxLookaheadDays; i++ {
		day := local.AddDate(0, 0, i)
		date := day.Format(dateLayout)

		if cfg.HolidayFor(date) != nil {
			continue
		}

		var open int
		if sh := cfg.SpecialHoursFor(date); sh != nil {
			if sh.IsClosed {
				continue
			}
			o, ok := parseClock(sh.StartTime)
			if !ok {
				continue
			}
			open = o
		} else {
			if !cfg.IsWorkingDay(day.Weekday()) {
				continue
			}
			o, ok := parseClock(cfg.StartTime)
			if !ok {
				continue
			}
			open = o
		}

		// Today only counts if the opening time is still ahead of us.
		if i == 0 && minuteOfDay(local) >= open {
			continue
		}

		next := time.Date(day.Year(), day.Month(), day.Day(), open/60, open%60, 0, 0, loc)
		return next, true
	}

	return time.Time{}, false
}

// IsNearClosing reports whether we are open and within the configured warning
// threshold of the effective closing time.
func IsNearClosing(cfg *entity.BusinessHoursConfig, now time.Time) bool {
	if !IsOpen(cfg, now) {
		return false
	}
	local := now.In(location(cfg))
	w, _ := effectiveWindow(cfg, local)
	return w.close-minuteOfDay(local) <= cfg.WarningMinutesBeforeClose
}

// AllowNewChats reports whether a new chat may still start: open, and before
// the new-chat cutoff ahead of the effective close.
func AllowNewChats(cfg *entity.BusinessHoursConfig, now time.Time) bool {
	if !IsOpen(cfg, now) {
		return false
	}
	local := now.In(location(cfg))
	w, _ := effectiveWindow(cfg, local)
	return minuteOfDay(local) < w.close-cfg.AllowNewChatsMinutesBeforeClose
}

// MinutesUntilClose returns the minutes remaining until the effective closing
// time, or 0 when closed.
func MinutesUntilClose(cfg *entity.BusinessHoursConfig, now time.Time) int {
	if !IsOpen(cfg, now) {
		return 0
	}
	local := now.In(location(cfg))
	w, _ := effectiveWindow(cfg, local)
	return w.close - minuteOfDay(local)
}

// OutsideHoursMessage resolves the guidance text shown while closed.
// Precedence: special-hours reason > holiday > weekend message > regular.
func OutsideHoursMessage(cfg *entity.BusinessHoursConfig, now time.Time) (string, []string) {
	local := now.In(location(cfg))
	date := local.Format(dateLayout)

	if sh := cfg.SpecialHoursFor(date); sh != nil && sh.Reason != "" {
		return sh.Reason, cfg.OutsideHoursOptions
	}
	if h := cfg.HolidayFor(date); h != nil {
		if h.Description != "" {
			return h.Description, cfg.OutsideHoursOptions
		}
		return fmt.Sprintf("We are closed today for %s.", h.Name), cfg.OutsideHoursOptions
	}
	if !cfg.IsWorkingDay(local.Weekday()) && cfg.WeekendMessage != "" {
		return cfg.WeekendMessage, cfg.OutsideHoursOptions
	}
	return cfg.OutsideHoursMessage, cfg.OutsideHoursOptions
}

// FormatHours renders the weekly schedule for UI consumption, e.g.
// "Mon, Tue, Wed: 09:00 - 18:00 (America/New_York)".
func FormatHours(cfg *entity.BusinessHoursConfig) string {
	if len(cfg.WorkingDays) == 0 {
		return ""
	}
	days := make([]string, 0, len(cfg.WorkingDays))
	for _, d := range cfg.WorkingDays {
		days = append(days, d.String()[:3])
	}
	return fmt.Sprintf("%s: %s - %s (%s)", strings.Join(days, ", "), cfg.StartTime, cfg.EndTime, cfg.Timezone)
}
