package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/repo"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/pkg/errno"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/tools"
	"github.com/colonyops/cockpit/pkg/logger"
	"github.com/colonyops/cockpit/pkg/utils/json"
	"github.com/colonyops/cockpit/pkg/utils/safego"
)

const (
	// deniedReply is returned to callers whose tier grants no access.
	// No model call is made for them.
	deniedReply = "Sorry, you don't have access to the assistant. Ask a coordinator to set you up with a token."

	// exhaustedReply is the fallback when the model still wants tools after
	// the final round and produced no usable text.
	exhaustedReply = "I wasn't able to finish that in one go. Could you try asking in a smaller step?"

	// emptyReply stands in when the model stops without any text at all.
	// A turn never returns an empty string.
	emptyReply = "I didn't come up with an answer for that one. Could you rephrase?"

	// modelDownReply is returned when the model call itself fails. The user
	// message is already persisted by then, so the turn is retryable.
	modelDownReply = "Sorry, I'm having trouble reaching the model right now. Please try again in a moment."

	systemPrompt = `You are the operations assistant for a community trap-neuter-return program in Sonoma County.
You help staff and volunteers look up colony sites, trapping requests, people, cats and clinic appointments, and record follow-ups.
Use the available tools to answer from real records; never invent addresses, phone numbers or case details.
If a lookup finds nothing, say so plainly and offer the closest thing you did find.
Keep replies short and conversational, like a dispatcher on the radio.`
)

// ModelProvider hands out the chat model for a turn.
type ModelProvider interface {
	GetChatModel(ctx context.Context) (model.ToolCallingChatModel, error)
}

// TurnRequest is one user message in a conversation.
type TurnRequest struct {
	// ConversationID continues an existing conversation when set; empty
	// starts a new one.
	ConversationID string

	// Message is the user's text.
	Message string

	// History carries prior turns from a client that keeps its own
	// transcript. It seeds the model transcript only when the conversation
	// has no stored messages, and is never persisted.
	History []*entity.Message

	// Caller is the authenticated identity, resolved by the auth middleware.
	Caller entity.Caller
}

// TurnResult is the assistant's reply for one turn.
type TurnResult struct {
	ConversationID string
	Reply          string

	// ToolsUsed names the tools invoked during this turn, in first-use order.
	ToolsUsed []string
}

// OrchestratorConfig bounds a turn.
type OrchestratorConfig struct {
	// MaxToolRounds caps model calls per turn. Each round is one model call
	// optionally followed by tool execution.
	MaxToolRounds int

	// ModelTimeout bounds a single model call.
	ModelTimeout time.Duration

	// TurnDeadline bounds the whole turn.
	TurnDeadline time.Duration
}

// Orchestrator drives the bounded model/tool loop for one turn at a time.
type Orchestrator struct {
	conversations repo.ConversationRepository
	gate          *AccessGate
	intent        *IntentDetector
	registry      *tools.Registry
	models        ModelProvider

	maxToolRounds int
	modelTimeout  time.Duration
	turnDeadline  time.Duration
}

func NewOrchestrator(
	conversations repo.ConversationRepository,
	gate *AccessGate,
	intent *IntentDetector,
	registry *tools.Registry,
	models ModelProvider,
	cfg OrchestratorConfig,
) *Orchestrator {
	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = 3
	}
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = time.Minute
	}
	if cfg.TurnDeadline <= 0 {
		cfg.TurnDeadline = 3 * time.Minute
	}
	return &Orchestrator{
		conversations: conversations,
		gate:          gate,
		intent:        intent,
		registry:      registry,
		models:        models,
		maxToolRounds: cfg.MaxToolRounds,
		modelTimeout:  cfg.ModelTimeout,
		turnDeadline:  cfg.TurnDeadline,
	}
}

// RunTurn executes one conversational turn end to end: access check, intent
// detection, the bounded model/tool loop, then persistence. Persistence
// failures are logged and swallowed; the caller still gets their reply.
func (o *Orchestrator) RunTurn(ctx context.Context, req *TurnRequest) (*TurnResult, error) {
	// Tier none is turned away before any model or storage traffic.
	if req.Caller.Tier == entity.TierNone {
		return &TurnResult{ConversationID: req.ConversationID, Reply: deniedReply}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, o.turnDeadline)
	defer cancel()

	conv, err := o.resolveConversation(ctx, req.Caller, req.ConversationID)
	if err != nil {
		return nil, err
	}

	// Client-side history only counts when the server has nothing stored,
	// otherwise the stored transcript wins.
	var history []*entity.Message
	if len(conv.Messages) == 0 {
		history = req.History
	}

	// The user message is persisted before the model is consulted, so a
	// model failure never loses what the user said.
	conv.AppendMessage(entity.NewUserMessage(req.Message))
	o.persist(ctx, conv)

	reply, toolsUsed := o.runLoop(ctx, req, conv, history)

	conv.AppendMessage(entity.NewAssistantMessage(reply))
	conv.RecordToolUse(toolsUsed)
	o.persist(ctx, conv)

	return &TurnResult{
		ConversationID: conv.ID,
		Reply:          reply,
		ToolsUsed:      toolsUsed,
	}, nil
}

// runLoop is the bounded model/tool loop. It never returns an error: model
// failures and exhausted rounds both collapse to fixed replies.
func (o *Orchestrator) runLoop(ctx context.Context, req *TurnRequest, conv *entity.Conversation, history []*entity.Message) (reply string, toolsUsed []string) {
	chatModel, err := o.models.GetChatModel(ctx)
	if err != nil {
		logger.Error("[Orchestrator] no chat model: %v", err)
		return modelDownReply, nil
	}

	allowed := o.gate.ToolsFor(req.Caller.Tier)
	allInfos := tools.ToolInfos(allowed)
	forced := o.intent.Detect(req.Message, req.Caller.Tier)

	// Working transcript for this turn. Tool request/result traffic stays
	// here; only the user message and the final reply are persisted.
	transcript := make([]*schema.Message, 0, len(history)+len(conv.Messages)+8)
	transcript = append(transcript, &schema.Message{Role: schema.System, Content: systemPrompt})
	transcript = append(transcript, ToSchemaMessages(history)...)
	transcript = append(transcript, ToSchemaMessages(conv.Messages)...)

	tc := entity.NewToolContext(req.Caller, conv.ID)

	var lastContent string
	for round := 0; round < o.maxToolRounds; round++ {
		resp, err := o.generate(ctx, chatModel, allInfos, allowed, transcript, round == 0, forced)
		if err != nil {
			logger.Error("[Orchestrator] model call failed (conversation=%s round=%d): %v", conv.ID, round, err)
			return modelDownReply, toolsUsed
		}
		lastContent = resp.Content

		if len(resp.ToolCalls) == 0 {
			if resp.Content == "" {
				return emptyReply, toolsUsed
			}
			return resp.Content, toolsUsed
		}

		transcript = append(transcript, resp)

		calls := fromSchemaToolCalls(resp.ToolCalls)
		results := o.executeCalls(ctx, calls, tc, req.Caller.Tier)
		for i, call := range calls {
			if o.gate.CanUse(req.Caller.Tier, call.Name) {
				toolsUsed = appendToolUse(toolsUsed, call.Name)
			}
			payload, merr := json.MarshalString(results[i])
			if merr != nil {
				payload = fmt.Sprintf(`{"success":false,"error":%q}`, merr.Error())
			}
			transcript = append(transcript, &schema.Message{
				Role:       schema.Tool,
				Content:    payload,
				Name:       call.Name,
				ToolCallID: call.ID,
			})
		}

		// Results feed later tools in the same turn, appended only after
		// the whole round has joined.
		for _, r := range results {
			tc.AppendResult(r)
		}
	}

	if lastContent != "" {
		return lastContent, toolsUsed
	}
	return exhaustedReply, toolsUsed
}

// generate performs one model call. A forced tool applies to the first call
// only and is enforced by binding just that tool with a forced tool choice.
func (o *Orchestrator) generate(
	ctx context.Context,
	chatModel model.ToolCallingChatModel,
	allInfos []*schema.ToolInfo,
	allowed []*entity.ToolDefinition,
	transcript []*schema.Message,
	firstCall bool,
	forced entity.ForcedTool,
) (*schema.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, o.modelTimeout)
	defer cancel()

	infos := allInfos
	var opts []model.Option
	if firstCall && forced != entity.ForcedToolAuto {
		for i, def := range allowed {
			if def.Name == string(forced) {
				infos = allInfos[i : i+1]
				opts = append(opts, model.WithToolChoice(schema.ToolChoiceForced))
				break
			}
		}
	}

	if len(infos) == 0 {
		return chatModel.Generate(ctx, transcript)
	}

	bound, err := chatModel.WithTools(infos)
	if err != nil {
		return nil, fmt.Errorf("bind tools: %w", err)
	}
	return bound.Generate(ctx, transcript, opts...)
}

// executeCalls runs one round's tool calls concurrently and returns results
// in call order. Every call is re-checked against the gate: binding only the
// caller's tools does not stop the model from naming one it was never shown.
// Every slot is filled; panics and handler errors come back as failed
// results, never as gaps.
func (o *Orchestrator) executeCalls(ctx context.Context, calls []*entity.ToolCall, tc *entity.ToolContext, tier entity.AccessTier) []*entity.ToolResult {
	results := make([]*entity.ToolResult, len(calls))

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		i, call := i, call
		safego.Go(ctx, func() {
			defer wg.Done()
			if !o.gate.CanUse(tier, call.Name) {
				results[i] = entity.Fail(fmt.Sprintf("tool %s is not available at your access level", call.Name))
				return
			}
			results[i] = o.registry.Execute(ctx, call, tc)
		})
	}
	wg.Wait()

	return results
}

func (o *Orchestrator) resolveConversation(ctx context.Context, caller entity.Caller, id string) (*entity.Conversation, error) {
	if id != "" {
		conv, err := o.conversations.Get(ctx, id)
		if err != nil && !errors.Is(err, errno.ErrConversationNotFound) {
			return nil, err
		}
		if conv != nil {
			return conv, nil
		}
	}

	conv := &entity.Conversation{
		ID:        uuid.New().String(),
		CallerID:  caller.ID,
		Messages:  make([]*entity.Message, 0),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := o.conversations.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// persist updates the conversation, logging and swallowing failures so a
// storage hiccup never eats a reply.
func (o *Orchestrator) persist(ctx context.Context, conv *entity.Conversation) {
	if err := o.conversations.Update(ctx, conv); err != nil {
		logger.Warn("[Orchestrator] persist conversation %s failed: %v", conv.ID, err)
	}
}

func fromSchemaToolCalls(calls []schema.ToolCall) []*entity.ToolCall {
	out := make([]*entity.ToolCall, 0, len(calls))
	for _, c := range calls {
		out = append(out, &entity.ToolCall{
			ID:        c.ID,
			Name:      c.Function.Name,
			Arguments: c.Function.Arguments,
		})
	}
	return out
}

func appendToolUse(used []string, name string) []string {
	for _, u := range used {
		if u == name {
			return used
		}
	}
	return append(used, name)
}
