package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Session DTOs ---

type StartSessionRequest struct {
	GuestId      *uuid.UUID `json:"guest_id,omitempty"`
	Type         string     `json:"type,omitempty"` // bot (default) or live_agent
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	Department   string     `json:"department,omitempty"`
	PageURL      string     `json:"page_url,omitempty"`
}

type SessionResponse struct {
	Id                 uuid.UUID  `json:"id"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	ContactName        string     `json:"contact_name"`
	AgentId            *uuid.UUID `json:"agent_id,omitempty"`
	AgentName          string     `json:"agent_name,omitempty"`
	MessageCount       int        `json:"message_count"`
	CreatedDuringHours bool       `json:"created_during_hours"`
	CreatedAt          time.Time  `json:"created_at"`
	LastActivityAt     time.Time  `json:"last_activity_at"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
}

type StartSessionResponse struct {
	Session SessionResponse `json:"session"`

	// Welcome is set for bot sessions; live-agent requests get an
	// Assignment describing where the handoff landed instead.
	Welcome      *MessageResponse      `json:"welcome,omitempty"`
	Assignment   *RequestAgentResponse `json:"assignment,omitempty"`
	OutsideHours bool                  `json:"outside_hours"`
}

type SessionListRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type TransferSessionRequest struct {
	ToAgentId uuid.UUID `json:"to_agent_id"`
	Reason    string    `json:"reason,omitempty"`
}

type CloseSessionRequest struct {
	Rating  *int   `json:"rating,omitempty"`
	Comment string `json:"comment,omitempty"`
}

type RequestAgentResponse struct {
	Session      SessionResponse `json:"session"`
	AgentId      *uuid.UUID      `json:"agent_id,omitempty"`
	AgentName    string          `json:"agent_name,omitempty"`
	Queued       bool            `json:"queued"`
	OutsideHours bool            `json:"outside_hours"`
	Notice       string          `json:"notice,omitempty"`
}

// --- Message DTOs ---

type SendMessageRequest struct {
	Body     string                 `json:"body"`
	Type     string                 `json:"type,omitempty"` // defaults to text
	ReplyTo  *uuid.UUID             `json:"reply_to,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type MessageResponse struct {
	Id           uuid.UUID  `json:"id"`
	SessionId    uuid.UUID  `json:"session_id"`
	Seq          int64      `json:"seq"`
	SenderKind   string     `json:"sender_kind"`
	SenderId     *uuid.UUID `json:"sender_id,omitempty"`
	Type         string     `json:"type"`
	Body         string     `json:"body"`
	Status       string     `json:"status"`
	QuickReplies []string   `json:"quick_replies,omitempty"`
	ReplyToId    *uuid.UUID `json:"reply_to_id,omitempty"`
	DecryptError bool       `json:"decrypt_error,omitempty"`
	EditedAt     *time.Time `json:"edited_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type MessageListRequest struct {
	Limit  int   `query:"limit"`
	Offset int   `query:"offset"`
	After  int64 `query:"after"` // return messages with seq > after
}

type EditMessageRequest struct {
	Body string `json:"body"`
}

type MarkReadRequest struct {
	MessageIds []uuid.UUID `json:"message_ids"`
}

// --- Metrics DTOs ---

type SessionMetricsResponse struct {
	SessionId         uuid.UUID `json:"session_id"`
	UserMessages      int       `json:"user_messages"`
	BotMessages       int       `json:"bot_messages"`
	AgentMessages     int       `json:"agent_messages"`
	SystemMessages    int       `json:"system_messages"`
	TransferCount     int       `json:"transfer_count"`
	Escalated         bool      `json:"escalated"`
	Resolved          bool      `json:"resolved"`
	SatisfactionScore *float64  `json:"satisfaction_score,omitempty"`
	Feedback          string    `json:"feedback,omitempty"`
	DurationSeconds   int64     `json:"duration_seconds"`
}
