package model

import (
	"fmt"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a chat message in the conversation
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role, content string) Message {
	return Message{Role: role, Content: content, Timestamp: time.Now()}
}

// ValidRole reports whether role is one a provider accepts.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// ValidateMessages checks an outbound list before it leaves the process.
func ValidateMessages(messages []Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("message list is empty")
	}
	for i, msg := range messages {
		if !ValidRole(msg.Role) {
			return fmt.Errorf("message %d has invalid role %q", i, msg.Role)
		}
	}
	return nil
}
