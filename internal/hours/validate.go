package hours

import (
	"fmt"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
)

// Validate checks a configuration on write. All problems are collected into a
// field-level list instead of stopping at the first one.
func Validate(cfg *entity.BusinessHoursConfig) []serverutils.FieldError {
	var errs []serverutils.FieldError

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		errs = append(errs, serverutils.FieldError{Field: "timezone", Message: "unrecognized timezone identifier"})
	}

	start, okStart := parseClock(cfg.StartTime)
	if !okStart {
		errs = append(errs, serverutils.FieldError{Field: "start_time", Message: "must be in HH:MM format"})
	}
	end, okEnd := parseClock(cfg.EndTime)
	if !okEnd {
		errs = append(errs, serverutils.FieldError{Field: "end_time", Message: "must be in HH:MM format"})
	}
	if okStart && okEnd && start >= end {
		errs = append(errs, serverutils.FieldError{Field: "start_time", Message: "must be before end_time"})
	}

	if len(cfg.WorkingDays) == 0 {
		errs = append(errs, serverutils.FieldError{Field: "working_days", Message: "must not be empty"})
	}
	for _, d := range cfg.WorkingDays {
		if d < time.Sunday || d > time.Saturday {
			errs = append(errs, serverutils.FieldError{Field: "working_days", Message: fmt.Sprintf("invalid weekday %d", d)})
		}
	}

	for i, h := range cfg.Holidays {
		if _, err := time.Parse(dateLayout, h.Date); err != nil {
			errs = append(errs, serverutils.FieldError{
				Field:   fmt.Sprintf("holidays[%d].date", i),
				Message: "must be a valid YYYY-MM-DD date",
			})
		}
	}

	for i, sh := range cfg.SpecialHours {
		if _, err := time.Parse(dateLayout, sh.Date); err != nil {
			errs = append(errs, serverutils.FieldError{
				Field:   fmt.Sprintf("special_hours[%d].date", i),
				Message: "must be a valid YYYY-MM-DD date",
			})
		}
		if sh.IsClosed {
			continue
		}
		shStart, okS := parseClock(sh.StartTime)
		shEnd, okE := parseClock(sh.EndTime)
		if !okS || !okE {
			errs = append(errs, serverutils.FieldError{
				Field:   fmt.Sprintf("special_hours[%d]", i),
				Message: "custom window requires start_time and end_time in HH:MM format",
			})
		} else if shStart >= shEnd {
			errs = append(errs, serverutils.FieldError{
				Field:   fmt.Sprintf("special_hours[%d].start_time", i),
				Message: "must be before end_time",
			})
		}
	}

	if cfg.WarningMinutesBeforeClose < 0 {
		errs = append(errs, serverutils.FieldError{Field: "warning_minutes_before_close", Message: "must not be negative"})
	}
	if cfg.AllowNewChatsMinutesBeforeClose < 0 {
		errs = append(errs, serverutils.FieldError{Field: "allow_new_chats_minutes_before_close", Message: "must not be negative"})
	}

	return errs
}
