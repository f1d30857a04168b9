package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionType string

const (
	SessionTypeBot         SessionType = "bot"
	SessionTypeLiveAgent   SessionType = "live_agent"
	SessionTypeTransferred SessionType = "transferred"
)

type SessionStatus string

const (
	SessionActive          SessionStatus = "active"
	SessionWaitingForAgent SessionStatus = "waiting_for_agent"
	SessionTransferred     SessionStatus = "transferred"
	SessionClosed          SessionStatus = "closed"
	SessionOutsideHours    SessionStatus = "outside_hours"
)

type ChatSession struct {
	Id      uuid.UUID
	UserId  *uuid.UUID // exactly one of UserId/GuestId is set
	GuestId *uuid.UUID

	SessionType SessionType
	Status      SessionStatus
	AgentId     *uuid.UUID

	// Contact snapshot taken at creation time
	ContactName  string
	ContactEmail string
	ContactPhone string

	SelectedOption string
	Priority       int

	CreatedAt     time.Time
	LastMessageAt *time.Time
	AssignedAt    *time.Time
	TransferredAt *time.Time
	ClosedAt      *time.Time

	MessageCount       int
	CreatedDuringHours bool
}

// HasValidOwner enforces the ownership invariant: exactly one of user/guest.
func (s *ChatSession) HasValidOwner() bool {
	return (s.UserId != nil) != (s.GuestId != nil)
}

// OwnedBy reports whether the given caller owns this session.
func (s *ChatSession) OwnedBy(caller CallerIdentity) bool {
	if s.UserId != nil && *s.UserId == caller.Id {
		return true
	}
	if s.GuestId != nil && *s.GuestId == caller.Id {
		return true
	}
	return false
}

// BoundTo reports whether the given agent is assigned to this session.
func (s *ChatSession) BoundTo(agentId uuid.UUID) bool {
	return s.AgentId != nil && *s.AgentId == agentId
}

// Expired reports whether the session idled past the given timeout while active.
// Expiry is a read-time predicate; an external sweep closes expired sessions.
func (s *ChatSession) Expired(idleTimeout time.Duration, now time.Time) bool {
	if s.Status != SessionActive || s.LastMessageAt == nil {
		return false
	}
	return now.Sub(*s.LastMessageAt) > idleTimeout
}
