package hours

import (
	"testing"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
)

func weekdayConfig() *entity.BusinessHoursConfig {
	return &entity.BusinessHoursConfig{
		Timezone:    "America/New_York",
		StartTime:   "09:00",
		EndTime:     "18:00",
		WorkingDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Holidays: []entity.Holiday{
			{Date: "2025-12-25", Name: "Christmas", Recurring: true},
		},
		OutsideHoursMessage:             "We are currently closed.",
		WeekendMessage:                  "We are closed on weekends.",
		OutsideHoursOptions:             []string{"Leave a message", "See opening hours"},
		WarningMinutesBeforeClose:       30,
		AllowNewChatsMinutesBeforeClose: 15,
	}
}

func nyTime(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func TestIsOpen(t *testing.T) {
	cfg := weekdayConfig()

	tests := []struct {
		name string
		now  string
		want bool
	}{
		{"monday mid-morning", "2025-06-02 10:00", true},
		{"monday at open", "2025-06-02 09:00", true},
		{"monday at close", "2025-06-02 18:00", true},
		{"monday before open", "2025-06-02 08:59", false},
		{"monday after close", "2025-06-02 18:01", false},
		{"saturday", "2025-06-07 10:00", false},
		{"christmas inside regular window", "2025-12-25 10:00", false},
		{"recurring holiday next year", "2026-12-25 10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOpen(cfg, nyTime(t, tt.now)); got != tt.want {
				t.Errorf("IsOpen(%s) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestIsOpenSpecialHours(t *testing.T) {
	cfg := weekdayConfig()
	cfg.SpecialHours = []entity.SpecialHours{
		{Date: "2025-06-02", StartTime: "12:00", EndTime: "15:00", Reason: "Inventory day"},
		{Date: "2025-06-03", IsClosed: true, Reason: "Office move"},
	}

	// Special window fully overrides the regular one
	if IsOpen(cfg, nyTime(t, "2025-06-02 10:00")) {
		t.Error("expected closed before special window opens")
	}
	if !IsOpen(cfg, nyTime(t, "2025-06-02 13:00")) {
		t.Error("expected open inside special window")
	}
	// isClosed wins even on a working day
	if IsOpen(cfg, nyTime(t, "2025-06-03 10:00")) {
		t.Error("expected closed on special closed day")
	}
}

func TestNextAvailable(t *testing.T) {
	cfg := weekdayConfig()

	// On a holiday, the next opening is the following working day.
	next, ok := NextAvailable(cfg, nyTime(t, "2025-12-25 10:00"))
	if !ok {
		t.Fatal("expected an opening within the lookahead window")
	}
	want := nyTime(t, "2025-12-26 09:00")
	if !next.Equal(want) {
		t.Errorf("NextAvailable = %v, want %v", next, want)
	}

	// Before opening on a working day, today's opening is returned.
	next, ok = NextAvailable(cfg, nyTime(t, "2025-06-02 07:30"))
	if !ok {
		t.Fatal("expected an opening")
	}
	if want := nyTime(t, "2025-06-02 09:00"); !next.Equal(want) {
		t.Errorf("NextAvailable = %v, want %v", next, want)
	}

	// During open hours, today's opening is already past: skip to tomorrow.
	next, ok = NextAvailable(cfg, nyTime(t, "2025-06-02 10:00"))
	if !ok {
		t.Fatal("expected an opening")
	}
	if want := nyTime(t, "2025-06-03 09:00"); !next.Equal(want) {
		t.Errorf("NextAvailable = %v, want %v", next, want)
	}
}

func TestNextAvailableNeverInPast(t *testing.T) {
	cfg := weekdayConfig()
	instants := []string{
		"2025-06-02 07:30",
		"2025-06-02 10:00",
		"2025-06-02 18:30",
		"2025-06-07 12:00",
		"2025-12-25 10:00",
	}
	for _, s := range instants {
		now := nyTime(t, s)
		next, ok := NextAvailable(cfg, now)
		if ok && !next.After(now) {
			t.Errorf("NextAvailable(%s) = %v is not after now", s, next)
		}
	}
}

func TestNextAvailableNoOpening(t *testing.T) {
	cfg := weekdayConfig()
	cfg.WorkingDays = nil // never open

	if _, ok := NextAvailable(cfg, nyTime(t, "2025-06-02 10:00")); ok {
		t.Error("expected explicit unknown result when nothing opens in 14 days")
	}
}

func TestNearClosingAndNewChatCutoff(t *testing.T) {
	cfg := weekdayConfig()

	// Spec scenario: Monday 17:45 with a 30 minute warning and 15 minute cutoff.
	now := nyTime(t, "2025-06-02 17:45")
	if !IsNearClosing(cfg, now) {
		t.Error("expected near-closing at 17:45")
	}
	if AllowNewChats(cfg, now) {
		t.Error("expected new chats blocked at 17:45 with a 15 minute cutoff")
	}

	now = nyTime(t, "2025-06-02 14:00")
	if IsNearClosing(cfg, now) {
		t.Error("did not expect near-closing at 14:00")
	}
	if !AllowNewChats(cfg, now) {
		t.Error("expected new chats allowed at 14:00")
	}
}

func TestClosedImpliesNotNearClosing(t *testing.T) {
	cfg := weekdayConfig()
	closedInstants := []string{
		"2025-06-02 08:00",
		"2025-06-02 19:00",
		"2025-06-07 12:00",
		"2025-12-25 17:45",
	}
	for _, s := range closedInstants {
		now := nyTime(t, s)
		if IsNearClosing(cfg, now) {
			t.Errorf("IsNearClosing(%s) true while closed", s)
		}
		if AllowNewChats(cfg, now) {
			t.Errorf("AllowNewChats(%s) true while closed", s)
		}
	}
}

func TestMinutesUntilClose(t *testing.T) {
	cfg := weekdayConfig()

	if got := MinutesUntilClose(cfg, nyTime(t, "2025-06-02 17:45")); got != 15 {
		t.Errorf("MinutesUntilClose = %d, want 15", got)
	}
	if got := MinutesUntilClose(cfg, nyTime(t, "2025-06-02 19:00")); got != 0 {
		t.Errorf("MinutesUntilClose while closed = %d, want 0", got)
	}
}

func TestOutsideHoursMessagePrecedence(t *testing.T) {
	cfg := weekdayConfig()
	cfg.SpecialHours = []entity.SpecialHours{
		{Date: "2025-06-04", IsClosed: true, Reason: "Closed for maintenance"},
	}

	msg, opts := OutsideHoursMessage(cfg, nyTime(t, "2025-06-04 10:00"))
	if msg != "Closed for maintenance" {
		t.Errorf("special-hours reason should win, got %q", msg)
	}
	if len(opts) != 2 {
		t.Errorf("expected configured options, got %v", opts)
	}

	msg, _ = OutsideHoursMessage(cfg, nyTime(t, "2025-12-25 10:00"))
	if msg != "We are closed today for Christmas." {
		t.Errorf("holiday message mismatch: %q", msg)
	}

	msg, _ = OutsideHoursMessage(cfg, nyTime(t, "2025-06-07 10:00"))
	if msg != "We are closed on weekends." {
		t.Errorf("weekend message mismatch: %q", msg)
	}

	msg, _ = OutsideHoursMessage(cfg, nyTime(t, "2025-06-02 20:00"))
	if msg != "We are currently closed." {
		t.Errorf("regular message mismatch: %q", msg)
	}
}
