package model

import (
	"fmt"
	"time"
)

// MessageRole identifies who authored a chat message.
type MessageRole string

const (
	RoleUser  MessageRole = "user"
	RoleModel MessageRole = "model"
)

// Message represents one turn of the support chat transcript.
type Message struct {
	Key       string      `json:"key"`
	Role      MessageRole `json:"role" validate:"required,oneof=user model"`
	Text      string      `json:"text" validate:"required"`
	Timestamp time.Time   `json:"timestamp"`
	// Crisis marks a model message that carried the crisis protocol marker.
	// The marker itself is stripped before the message is stored.
	Crisis bool `json:"crisis,omitempty"`
}

// SetKey sets the database key for this message.
func (m *Message) SetKey(key string) {
	m.Key = key
}

// GetKey returns the database key for this message.
func (m *Message) GetKey() string {
	return m.Key
}

// IsFromUser returns true for user-authored messages.
func (m *Message) IsFromUser() bool {
	return m.Role == RoleUser
}

// GenerateMessageKey generates an ordered database key for a message.
// Nanosecond timestamps keep transcript iteration in send order.
func GenerateMessageKey(t time.Time) string {
	return fmt.Sprintf("%s:%020d", PrefixMessage, t.UnixNano())
}

// NewMessage creates a chat message stamped with the current time.
func NewMessage(role MessageRole, text string) *Message {
	now := time.Now()
	return &Message{
		Key:       GenerateMessageKey(now),
		Role:      role,
		Text:      text,
		Timestamp: now,
	}
}
