package chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/colonyops/cockpit/pkg/utils/json"
)

// chatRequest is the request body for /v1/assistant/chat.
type chatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

// chatResponse is the assistant's reply.
type chatResponse struct {
	ConversationID string   `json:"conversation_id"`
	Message        string   `json:"message"`
	ToolsUsed      []string `json:"tools_used,omitempty"`
	Error          *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Client talks to a cockpitd server. A conversation ID is captured from the
// first reply and sent back on every following message, so the server keeps
// the thread.
type Client struct {
	BaseURL        string
	Token          string
	ConversationID string
	HTTPClient     *http.Client
}

// NewClient creates a client for the given server address and access token.
func NewClient(baseURL, token, conversationID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 180 * time.Second}
	}
	return &Client{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Token:          token,
		ConversationID: conversationID,
		HTTPClient:     httpClient,
	}
}

// Reset drops the current conversation; the next message starts a new one.
func (c *Client) Reset() {
	c.ConversationID = ""
}

// Send posts one message and returns the reply plus the tools the assistant
// used answering it.
func (c *Client) Send(ctx context.Context, message string) (string, []string, error) {
	body, err := json.Marshal(chatRequest{
		ConversationID: c.ConversationID,
		Message:        message,
	})
	if err != nil {
		return "", nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/assistant/chat", bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
		}
		return "", nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if chatResp.Error != nil {
		return "", nil, fmt.Errorf("server error: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	if chatResp.ConversationID != "" {
		c.ConversationID = chatResp.ConversationID
	}
	return chatResp.Message, chatResp.ToolsUsed, nil
}
