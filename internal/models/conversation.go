package models

import "time"

// ConversationRole identifies who produced a turn.
type ConversationRole string

const (
	RoleUser      ConversationRole = "user"
	RoleAssistant ConversationRole = "assistant"
)

// ConversationTurn is a single message in a user's conversation history.
// Turns are owned exclusively by one history, identified by user id.
type ConversationTurn struct {
	Role      ConversationRole `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
}
