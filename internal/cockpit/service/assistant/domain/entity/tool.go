package entity

import (
	"context"
)

// ToolDefinition describes a tool the model may invoke. Definitions are
// immutable and registered once at startup.
type ToolDefinition struct {
	// Name is the tool's unique name. (e.g. "search_places")
	Name string

	// Description tells the model when and why to call the tool.
	Description string

	// Parameters defines the input schema for the tool.
	Parameters []ParameterDef

	// Handler is called when the tool is invoked.
	Handler ToolHandler
}

// ParameterDef defines a single parameter for a tool.
type ParameterDef struct {
	// Name is the parameter's unique name. (e.g. "query")
	Name string

	// Type is the parameter's data type. (e.g. "string", "number")
	Type string

	// Description is a brief description of the parameter's purpose.
	Description string

	// Required indicates whether the parameter is mandatory.
	Required bool

	// Enum restricts the parameter to a fixed set of values, when set.
	Enum []string
}

// ToolHandler executes a tool invocation. Handlers report outcome through
// the ToolResult envelope; a returned error is converted to a failed
// ToolResult by the dispatcher and never propagates further.
type ToolHandler func(ctx context.Context, args ToolArgs, tc *ToolContext) (*ToolResult, error)

// ToolArgs is the decoded tool input, keyed by parameter name.
type ToolArgs map[string]interface{}

// Str returns the named argument as a string; missing or non-string values
// yield "".
func (a ToolArgs) Str(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the named argument as an int; JSON numbers decode as float64,
// so both are accepted. Missing or non-numeric values yield 0.
func (a ToolArgs) Int(key string) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// ToolResult is the only channel through which a tool reports outcome.
// A lookup that finds nothing is NOT a failure: it reports Success with a
// found:false payload so the model can answer helpfully instead of
// apologizing for a system fault.
type ToolResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK builds a successful result carrying data.
func OK(data interface{}) *ToolResult {
	return &ToolResult{Success: true, Data: data}
}

// Fail builds a failed result with an error message.
func Fail(msg string) *ToolResult {
	return &ToolResult{Success: false, Error: msg}
}

// NotFound builds a successful "no data" result.
func NotFound(msg string) *ToolResult {
	return &ToolResult{Success: true, Data: map[string]interface{}{
		"found":   false,
		"message": msg,
	}}
}

// ToolContext is the per-turn context handed to every tool handler. Its
// result list only grows within a turn and is discarded at turn end.
//
// RecentResults is appended to by the orchestrator after each tool round
// completes, never concurrently with handler execution.
type ToolContext struct {
	// Caller is the identity driving this turn.
	Caller Caller

	// ConversationID is the conversation this turn belongs to.
	ConversationID string

	// RecentResults holds this turn's successful tool results so far, in
	// invocation order. Tools like save_lookup use it to reference what
	// an earlier call in the same turn surfaced.
	RecentResults []*ToolResult
}

// NewToolContext creates a ToolContext for one turn.
func NewToolContext(caller Caller, conversationID string) *ToolContext {
	return &ToolContext{
		Caller:         caller,
		ConversationID: conversationID,
	}
}

// AppendResult records a successful result for later tools in the same turn.
func (tc *ToolContext) AppendResult(r *ToolResult) {
	if r == nil || !r.Success {
		return
	}
	tc.RecentResults = append(tc.RecentResults, r)
}

// LastResult returns the most recent successful result of this turn, or nil.
func (tc *ToolContext) LastResult() *ToolResult {
	if len(tc.RecentResults) == 0 {
		return nil
	}
	return tc.RecentResults[len(tc.RecentResults)-1]
}

// ToolCall represents a model's request to execute a tool.
type ToolCall struct {
	// ID is the unique identifier for the tool call.
	ID string `json:"id"`

	// Name is the tool name to invoke.
	Name string `json:"name"`

	// Arguments is the JSON string of the tool arguments.
	Arguments string `json:"arguments"`
}

// ForcedTool names a tool the next model call must use. The empty value
// means "let the model decide". A forced choice applies only to the first
// model call of a turn.
type ForcedTool string

// ForcedToolAuto lets the model pick tools freely.
const ForcedToolAuto ForcedTool = ""
