package v1

// ChatRequest is the body of POST /v1/assistant/chat.
type ChatRequest struct {
	// ConversationID continues an existing conversation when set.
	ConversationID string `json:"conversation_id,omitempty"`

	// Message is the user's text.
	Message string `json:"message" binding:"required"`

	// History lets a client that keeps its own transcript supply prior
	// turns instead of a conversation ID. Ignored once the conversation
	// has stored messages.
	History []HistoryMessage `json:"history,omitempty"`
}

// HistoryMessage is one prior turn supplied by the client.
type HistoryMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// ChatResponse is the assistant's reply for one turn.
type ChatResponse struct {
	ConversationID string   `json:"conversation_id"`
	Message        string   `json:"message"`
	ToolsUsed      []string `json:"tools_used,omitempty"`
}
