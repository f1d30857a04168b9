package entity

import (
	"math"
	"testing"
	"time"
)

// mondayNoon is a Monday, 12:00 UTC.
var mondayNoon = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func weekdaySchedule(mutate func(*AgentSchedule)) AgentSchedule {
	s := AgentSchedule{
		Timezone:    "UTC",
		WorkingDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		StartTime:   "09:00",
		EndTime:     "17:00",
	}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestAgentScheduleOpenAt(t *testing.T) {
	tests := []struct {
		name     string
		schedule AgentSchedule
		at       time.Time
		want     bool
	}{
		{"empty schedule always open", AgentSchedule{}, mondayNoon, true},
		{"inside shift", weekdaySchedule(nil), mondayNoon, true},
		{"before shift", weekdaySchedule(nil), mondayNoon.Add(-4 * time.Hour), false},
		{"after shift", weekdaySchedule(nil), mondayNoon.Add(6 * time.Hour), false},
		{"boundary start inclusive", weekdaySchedule(nil), time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC), true},
		{"boundary end inclusive", weekdaySchedule(nil), time.Date(2026, time.August, 31, 17, 0, 0, 0, time.UTC), true},
		{"non-working day", weekdaySchedule(nil), mondayNoon.Add(-24 * time.Hour), false}, // Sunday
		{
			"holiday closes the day",
			weekdaySchedule(func(s *AgentSchedule) { s.Holidays = []string{"2026-08-31"} }),
			mondayNoon,
			false,
		},
		{
			// Noon UTC is 21:00 in Tokyo, past a 09:00-17:00 local shift.
			"evaluated in the agent's timezone",
			weekdaySchedule(func(s *AgentSchedule) { s.Timezone = "Asia/Tokyo" }),
			mondayNoon,
			false,
		},
		{
			"days without times open all day",
			AgentSchedule{Timezone: "UTC", WorkingDays: []time.Weekday{time.Monday}},
			mondayNoon.Add(10 * time.Hour),
			true,
		},
		{
			"unknown timezone falls back to UTC",
			weekdaySchedule(func(s *AgentSchedule) { s.Timezone = "Mars/Olympus" }),
			mondayNoon,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.schedule.OpenAt(tt.at); got != tt.want {
				t.Errorf("OpenAt(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestScheduledNow(t *testing.T) {
	from := mondayNoon.Add(-time.Hour)
	until := mondayNoon.Add(time.Hour)

	onShift := &LiveAgent{Schedule: weekdaySchedule(nil)}
	if !onShift.ScheduledNow(mondayNoon) {
		t.Error("agent inside shift should be scheduled")
	}

	away := &LiveAgent{Schedule: weekdaySchedule(func(s *AgentSchedule) {
		s.UnavailableFrom = &from
		s.UnavailableUntil = &until
	})}
	if away.ScheduledNow(mondayNoon) {
		t.Error("unavailability window must override an open calendar")
	}
	if !away.ScheduledNow(until.Add(time.Minute)) {
		t.Error("agent should be scheduled again once the window ends")
	}
}

func TestAgentAggregateFolds(t *testing.T) {
	a := &LiveAgent{}

	a.RecordClosure(true)
	a.RecordClosure(true)
	a.RecordClosure(false)
	if a.ClosedSessions != 3 {
		t.Errorf("ClosedSessions = %d, want 3", a.ClosedSessions)
	}
	if math.Abs(a.ResolutionRate-2.0/3.0) > 1e-9 {
		t.Errorf("ResolutionRate = %v, want 2/3", a.ResolutionRate)
	}

	a.RecordRating(5)
	a.RecordRating(3)
	if a.RatedSessions != 2 {
		t.Errorf("RatedSessions = %d, want 2", a.RatedSessions)
	}
	if math.Abs(a.AvgRating-4.0) > 1e-9 {
		t.Errorf("AvgRating = %v, want 4", a.AvgRating)
	}

	a.RecordResponseTime(10)
	a.RecordResponseTime(30)
	if a.ResponseSessions != 2 {
		t.Errorf("ResponseSessions = %d, want 2", a.ResponseSessions)
	}
	if math.Abs(a.AvgResponseSeconds-20.0) > 1e-9 {
		t.Errorf("AvgResponseSeconds = %v, want 20", a.AvgResponseSeconds)
	}
}
