package entity

import (
	"time"
)

// Conversation is the durable record of one caller/assistant exchange
// thread. The orchestrator treats it as a handle into the external store;
// no server-side session affinity is required.
type Conversation struct {
	// ID is the unique conversation identifier.
	ID string `json:"id"`

	// CallerID is the owning caller; empty for anonymous conversations.
	CallerID string `json:"caller_id,omitempty"`

	// Messages is the ordered, append-only message history.
	Messages []*Message `json:"messages"`

	// ToolsUsed is the set of tool names ever invoked in this
	// conversation, kept for audit.
	ToolsUsed []string `json:"tools_used,omitempty"`

	// CreatedAt is when this conversation was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when this conversation was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// AppendMessage appends a message to the conversation history.
func (c *Conversation) AppendMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// RecordToolUse adds tool names to the conversation's audit set,
// preserving first-use order.
func (c *Conversation) RecordToolUse(names []string) {
	if len(names) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(c.ToolsUsed))
	for _, n := range c.ToolsUsed {
		seen[n] = struct{}{}
	}
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		c.ToolsUsed = append(c.ToolsUsed, n)
	}
	c.UpdatedAt = time.Now()
}
