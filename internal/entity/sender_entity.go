package entity

import (
	"github.com/google/uuid"
)

// SenderKind discriminates who authored a chat message.
type SenderKind string

const (
	SenderUser   SenderKind = "user"
	SenderGuest  SenderKind = "guest"
	SenderAgent  SenderKind = "agent"
	SenderBot    SenderKind = "bot"
	SenderSystem SenderKind = "system"
)

// Sender is a tagged variant: bot/system senders carry no id.
type Sender struct {
	Id   *uuid.UUID
	Kind SenderKind
}

func UserSender(id uuid.UUID) Sender  { return Sender{Id: &id, Kind: SenderUser} }
func GuestSender(id uuid.UUID) Sender { return Sender{Id: &id, Kind: SenderGuest} }
func AgentSender(id uuid.UUID) Sender { return Sender{Id: &id, Kind: SenderAgent} }
func BotSender() Sender               { return Sender{Kind: SenderBot} }
func SystemSender() Sender            { return Sender{Kind: SenderSystem} }

// Role carried by the caller identity (already authenticated upstream).
type Role string

const (
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// CallerIdentity is the trusted auth output every mutating call receives.
type CallerIdentity struct {
	Id   uuid.UUID
	Role Role
}

func (c CallerIdentity) Sender() Sender {
	switch c.Role {
	case RoleAgent:
		return AgentSender(c.Id)
	case RoleGuest:
		return GuestSender(c.Id)
	default:
		return UserSender(c.Id)
	}
}
