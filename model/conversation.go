package model

// Conversation is the ordered message history of one session. It only grows
// by Append or is reset by Clear. It is not safe for concurrent use on its
// own; Session serializes access.
type Conversation struct {
	messages  []Message
	highlight int // index of the newest message while flashing, -1 otherwise
}

// NewConversation returns an empty history with no highlight.
func NewConversation() *Conversation {
	return &Conversation{highlight: -1}
}

// Append adds msg to the end and marks it as the highlighted message.
// Returns the index of the new message.
func (c *Conversation) Append(msg Message) int {
	c.messages = append(c.messages, msg)
	c.highlight = len(c.messages) - 1
	return c.highlight
}

// Clear drops every message and the highlight.
func (c *Conversation) Clear() {
	c.messages = nil
	c.highlight = -1
}

// Snapshot returns a copy of the history.
func (c *Conversation) Snapshot() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Highlight returns the highlighted index, if any.
func (c *Conversation) Highlight() (int, bool) {
	if c.highlight < 0 {
		return 0, false
	}
	return c.highlight, true
}

// ExpireHighlight clears the highlight only if it still points at idx, so a
// timer started for an older message never cancels a newer flash.
func (c *Conversation) ExpireHighlight(idx int) bool {
	if c.highlight < 0 || c.highlight != idx {
		return false
	}
	c.highlight = -1
	return true
}
