package entity

import (
	"time"

	"github.com/google/uuid"
)

type AgentStatus string

const (
	AgentOnline  AgentStatus = "online"
	AgentOffline AgentStatus = "offline"
	AgentBusy    AgentStatus = "busy"
	AgentAway    AgentStatus = "away"
	AgentBreak   AgentStatus = "break"

	// AgentAvailable is an explicit "ready for chats" signal that scores
	// higher than plain online.
	AgentAvailable AgentStatus = "available"
)

// AgentSchedule is the agent's own availability calendar, in their timezone.
type AgentSchedule struct {
	Timezone    string         `json:"timezone"`
	WorkingDays []time.Weekday `json:"working_days"`
	StartTime   string         `json:"start_time"` // "15:04"
	EndTime     string         `json:"end_time"`
	Holidays    []string       `json:"holidays,omitempty"` // "2006-01-02"

	UnavailableFrom  *time.Time `json:"unavailable_from,omitempty"`
	UnavailableUntil *time.Time `json:"unavailable_until,omitempty"`
}

type LiveAgent struct {
	Id         uuid.UUID
	Name       string
	Email      string
	Department string
	Skills     []string

	Status AgentStatus

	// CurrentSessions is mutated only through the assignment service,
	// via an atomic conditional increment at the storage layer.
	CurrentSessions int
	MaxChats        int

	Schedule AgentSchedule

	// Performance aggregates, folded in as sessions close. The paired
	// counters make the running averages exact.
	AvgResponseSeconds float64
	ResponseSessions   int64
	AvgRating          float64
	RatedSessions      int64
	ResolutionRate     float64
	ClosedSessions     int64

	Priority int

	LastActiveAt *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (a *LiveAgent) HasCapacity() bool {
	return a.CurrentSessions < a.MaxChats
}

func (a *LiveAgent) HasSkill(skill string) bool {
	for _, s := range a.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// TemporarilyUnavailable checks the schedule's one-off unavailability window.
func (a *LiveAgent) TemporarilyUnavailable(now time.Time) bool {
	if a.Schedule.UnavailableFrom == nil || a.Schedule.UnavailableUntil == nil {
		return false
	}
	return !now.Before(*a.Schedule.UnavailableFrom) && now.Before(*a.Schedule.UnavailableUntil)
}

// OpenAt evaluates the agent's working calendar at the given instant, in the
// agent's own timezone. An agent with no calendar configured is always open;
// a partially configured one (days but no times) is open on those days.
func (s *AgentSchedule) OpenAt(now time.Time) bool {
	if len(s.WorkingDays) == 0 && s.StartTime == "" && s.EndTime == "" {
		return true
	}

	loc := time.UTC
	if s.Timezone != "" {
		if l, err := time.LoadLocation(s.Timezone); err == nil {
			loc = l
		}
	}
	local := now.In(loc)

	date := local.Format("2006-01-02")
	for _, h := range s.Holidays {
		if h == date {
			return false
		}
	}

	if len(s.WorkingDays) > 0 {
		working := false
		for _, d := range s.WorkingDays {
			if d == local.Weekday() {
				working = true
				break
			}
		}
		if !working {
			return false
		}
	}

	open, okOpen := clockMinutes(s.StartTime)
	close, okClose := clockMinutes(s.EndTime)
	if !okOpen || !okClose {
		return true
	}
	m := local.Hour()*60 + local.Minute()
	return m >= open && m <= close
}

func clockMinutes(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// RecordClosure folds one closed session into the resolution rate.
func (a *LiveAgent) RecordClosure(resolved bool) {
	n := float64(a.ClosedSessions)
	r := 0.0
	if resolved {
		r = 1.0
	}
	a.ResolutionRate = (a.ResolutionRate*n + r) / (n + 1)
	a.ClosedSessions++
}

// RecordRating folds one satisfaction score into the rating average.
func (a *LiveAgent) RecordRating(rating float64) {
	n := float64(a.RatedSessions)
	a.AvgRating = (a.AvgRating*n + rating) / (n + 1)
	a.RatedSessions++
}

// RecordResponseTime folds one session's average response time in.
func (a *LiveAgent) RecordResponseTime(seconds float64) {
	n := float64(a.ResponseSessions)
	a.AvgResponseSeconds = (a.AvgResponseSeconds*n + seconds) / (n + 1)
	a.ResponseSessions++
}

// ScheduledNow combines the working calendar with the one-off unavailability
// window: eligible for new chats only when on shift and not away.
func (a *LiveAgent) ScheduledNow(now time.Time) bool {
	return a.Schedule.OpenAt(now) && !a.TemporarilyUnavailable(now)
}
