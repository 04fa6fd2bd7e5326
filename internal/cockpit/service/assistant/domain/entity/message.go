package entity

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single entry in a conversation transcript. Messages are
// append-only: once created they are never edited or deleted.
//
// Conversion to/from Eino's schema.Message is handled by the converter in
// the service layer.
type Message struct {
	// Role is the sender role (system/user/assistant/tool).
	Role Role `json:"role"`

	// Content is the text content of the message.
	Content string `json:"content"`

	// Name is an optional sender name (used for tool results).
	Name string `json:"name,omitempty"`

	// ToolCalls are tool invocations requested by the assistant. Only
	// present when Role == RoleAssistant and the model wanted tools.
	ToolCalls []*ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID is the ID of the tool call this message responds to.
	// Only present when Role == RoleTool.
	ToolCallID string `json:"tool_call_id,omitempty"`

	// TokenCount is an optional token count reported by the model.
	TokenCount int64 `json:"token_count,omitempty"`

	// CreatedAt is when this message was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return &Message{
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) *Message {
	return &Message{
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
