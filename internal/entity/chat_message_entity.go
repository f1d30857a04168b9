package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageText               MessageType = "text"
	MessageOptionSelection    MessageType = "option_selection"
	MessageFormData           MessageType = "form_data"
	MessageSystem             MessageType = "system"
	MessageOutsideHoursNotice MessageType = "outside_hours_notice"
	MessageTransferNotice     MessageType = "transfer_notice"
)

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
	MessageFailed    MessageStatus = "failed"
)

// MessageMetadata is the free-form bag persisted alongside a message.
type MessageMetadata struct {
	QuickReplies []string               `json:"quick_replies,omitempty"`
	TemplateId   *uuid.UUID             `json:"template_id,omitempty"`
	OutsideHours bool                   `json:"outside_hours,omitempty"`
	Attachments  []string               `json:"attachments,omitempty"`
	System       map[string]interface{} `json:"system,omitempty"`

	// Edit history: original body kept when an agent edits a message
	OriginalBody string     `json:"original_body,omitempty"`
	EditedAt     *time.Time `json:"edited_at,omitempty"`
}

type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID

	// Seq is the authoritative conversation order, assigned by the database.
	Seq int64

	Sender Sender

	Body      string // ciphertext or plaintext per Encrypted
	Encrypted bool

	MessageType MessageType
	Status      MessageStatus
	Metadata    MessageMetadata
	ReplyToId   *uuid.UUID

	// DecryptError is set on read when this one message failed to decrypt,
	// so one corrupt row does not block history retrieval.
	DecryptError string

	CreatedAt time.Time
	UpdatedAt *time.Time
}
