package dto

import "encoding/json"

// ChatEvent is the fan-out envelope flowing through the in-process bus to the
// websocket hub. Channel addresses either one session or the agent pool.
type ChatEvent struct {
	Channel string          `json:"channel"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
}

// Chat event types pushed to subscribers.
const (
	EventNewMessage     = "new_message"
	EventMessageEdited  = "message_edited"
	EventMessageRead    = "message_read"
	EventSessionWaiting = "session_waiting"
	EventAgentAssigned  = "agent_assigned"
	EventSessionClosed  = "session_closed"
	EventTransfer       = "session_transferred"
	EventTyping         = "typing"
)
