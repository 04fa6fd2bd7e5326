package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/store/inmemory"
)

// fakeChatModel replays a scripted sequence of responses. Once the script
// runs out the last response repeats, which makes "always wants tools"
// scenarios trivial to set up.
type fakeChatModel struct {
	mu        sync.Mutex
	script    []*schema.Message
	genErr    error
	generated int
	inputs    [][]*schema.Message
	bound     [][]string
}

func (m *fakeChatModel) WithTools(infos []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	m.mu.Lock()
	m.bound = append(m.bound, names)
	m.mu.Unlock()
	return m, nil
}

func (m *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.genErr != nil {
		return nil, m.genErr
	}
	idx := m.generated
	m.generated++
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	return m.script[idx], nil
}

func (m *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (m *fakeChatModel) generateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generated
}

type fakeProvider struct {
	model model.ToolCallingChatModel
	err   error
}

func (p *fakeProvider) GetChatModel(context.Context) (model.ToolCallingChatModel, error) {
	return p.model, p.err
}

// countingRepo wraps the in-memory store so tests can assert on storage
// traffic, not just on replies.
type countingRepo struct {
	*inmemory.ConversationStore
	creates int
	updates int
}

func (r *countingRepo) Create(ctx context.Context, conv *entity.Conversation) error {
	r.creates++
	return r.ConversationStore.Create(ctx, conv)
}

func (r *countingRepo) Update(ctx context.Context, conv *entity.Conversation) error {
	r.updates++
	return r.ConversationStore.Update(ctx, conv)
}

func newTestOrchestrator(t *testing.T, models ModelProvider) (*Orchestrator, *countingRepo) {
	t.Helper()
	gate, registry, _ := newTestGate(t)
	store := &countingRepo{ConversationStore: inmemory.NewConversationStore()}
	o := NewOrchestrator(store, gate, NewIntentDetector(), registry, models, OrchestratorConfig{MaxToolRounds: 3})
	return o, store
}

func contentMsg(text string) *schema.Message {
	return &schema.Message{Role: schema.Assistant, Content: text}
}

func toolCallMsg(name, args string) *schema.Message {
	return &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{
			{ID: "call-1", Function: schema.FunctionCall{Name: name, Arguments: args}},
		},
	}
}

func TestRunTurnTierNoneIsDenied(t *testing.T) {
	chat := &fakeChatModel{script: []*schema.Message{contentMsg("should never happen")}}
	o, store := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "who is on the trapping schedule?",
		Caller:  entity.Caller{ID: "stranger", Name: "Stranger", Tier: entity.TierNone},
	})
	require.NoError(t, err)

	assert.Equal(t, deniedReply, res.Reply)
	assert.Empty(t, res.ToolsUsed)
	assert.Zero(t, chat.generateCalls())
	assert.Zero(t, store.creates)
	assert.Zero(t, store.updates)
}

func TestRunTurnPlainReply(t *testing.T) {
	chat := &fakeChatModel{script: []*schema.Message{contentMsg("Hi there, what do you need?")}}
	o, store := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "hello",
		Caller:  entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hi there, what do you need?", res.Reply)
	assert.Empty(t, res.ToolsUsed)
	assert.NotEmpty(t, res.ConversationID)
	assert.Equal(t, 1, chat.generateCalls())

	conv, err := store.Get(context.Background(), res.ConversationID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, entity.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "hello", conv.Messages[0].Content)
	assert.Equal(t, entity.RoleAssistant, conv.Messages[1].Role)
}

func TestRunTurnEmptyModelTextGetsFallback(t *testing.T) {
	// A model may stop without tool calls and without text; the caller
	// still gets a reply.
	chat := &fakeChatModel{script: []*schema.Message{contentMsg("")}}
	o, _ := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "hello?",
		Caller:  entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly},
	})
	require.NoError(t, err)
	assert.Equal(t, emptyReply, res.Reply)
	assert.Equal(t, 1, chat.generateCalls())
}

func TestRunTurnAboveTierToolCallIsRefused(t *testing.T) {
	// A read_only caller's model names an admin tool it was never shown.
	// The handler must not run; the model sees a failed result instead.
	chat := &fakeChatModel{script: []*schema.Message{
		toolCallMsg("update_request_status", `{"request":"ferals","status":"closed"}`),
		contentMsg("I can't change request statuses for you."),
	}}
	o, _ := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "close out the feral request",
		Caller:  entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly},
	})
	require.NoError(t, err)

	assert.Equal(t, "I can't change request statuses for you.", res.Reply)
	assert.Empty(t, res.ToolsUsed)

	// The second model call carries the refusal as the tool observation.
	require.Len(t, chat.inputs, 2)
	last := chat.inputs[1][len(chat.inputs[1])-1]
	assert.Equal(t, schema.Tool, last.Role)
	assert.Contains(t, last.Content, "not available at your access level")
}

func TestRunTurnToolRoundThenReply(t *testing.T) {
	chat := &fakeChatModel{script: []*schema.Message{
		toolCallMsg("search_places", `{"query":"Sebastopol"}`),
		contentMsg("Two active sites around Sebastopol."),
	}}
	o, store := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "any colonies near Sebastopol?",
		Caller:  entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly},
	})
	require.NoError(t, err)

	assert.Equal(t, "Two active sites around Sebastopol.", res.Reply)
	assert.Equal(t, []string{"search_places"}, res.ToolsUsed)
	assert.Equal(t, 2, chat.generateCalls())

	// Tool request/result traffic stays in the working transcript; only the
	// user message and final reply land in storage, plus the audit set.
	conv, err := store.Get(context.Background(), res.ConversationID)
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 2)
	assert.Equal(t, []string{"search_places"}, conv.ToolsUsed)
}

func TestRunTurnRoundCap(t *testing.T) {
	// The script never ends in text, so the loop must stop on its own.
	chat := &fakeChatModel{script: []*schema.Message{
		toolCallMsg("search_places", `{"query":"park"}`),
	}}
	o, _ := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "keep digging",
		Caller:  entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, chat.generateCalls())
	assert.Equal(t, exhaustedReply, res.Reply)
	assert.Equal(t, []string{"search_places"}, res.ToolsUsed)
}

func TestRunTurnProviderFailure(t *testing.T) {
	o, _ := newTestOrchestrator(t, &fakeProvider{err: errors.New("no provider configured")})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "hello",
		Caller:  entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly},
	})
	require.NoError(t, err)
	assert.Equal(t, modelDownReply, res.Reply)
}

func TestRunTurnModelFailureKeepsUserMessage(t *testing.T) {
	chat := &fakeChatModel{genErr: errors.New("upstream 529")}
	o, store := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "is the Guerneville site still active?",
		Caller:  entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly},
	})
	require.NoError(t, err)
	assert.Equal(t, modelDownReply, res.Reply)

	conv, serr := store.Get(context.Background(), res.ConversationID)
	require.NoError(t, serr)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "is the Guerneville site still active?", conv.Messages[0].Content)
}

func TestRunTurnConversationContinuity(t *testing.T) {
	chat := &fakeChatModel{script: []*schema.Message{contentMsg("Sure.")}}
	o, store := newTestOrchestrator(t, &fakeProvider{model: chat})
	caller := entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly}

	first, err := o.RunTurn(context.Background(), &TurnRequest{Message: "first", Caller: caller})
	require.NoError(t, err)

	second, err := o.RunTurn(context.Background(), &TurnRequest{
		ConversationID: first.ConversationID,
		Message:        "second",
		Caller:         caller,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, 1, store.creates)

	conv, err := store.Get(context.Background(), second.ConversationID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 4)
	assert.Equal(t, "second", conv.Messages[2].Content)
}

func TestRunTurnClientHistorySeedsTranscript(t *testing.T) {
	chat := &fakeChatModel{script: []*schema.Message{contentMsg("Right, the gray tabby.")}}
	o, store := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "which cat was that again?",
		History: []*entity.Message{
			{Role: entity.RoleUser, Content: "any cats trapped at the depot?"},
			{Role: entity.RoleAssistant, Content: "One gray tabby, not yet altered."},
		},
		Caller: entity.Caller{ID: "vol-1", Name: "Tester", Tier: entity.TierReadOnly},
	})
	require.NoError(t, err)

	// system + two history turns + the new user message
	require.Len(t, chat.inputs, 1)
	require.Len(t, chat.inputs[0], 4)
	assert.Equal(t, schema.System, chat.inputs[0][0].Role)
	assert.Equal(t, "any cats trapped at the depot?", chat.inputs[0][1].Content)

	// History is transcript seed only, not stored state.
	conv, err := store.Get(context.Background(), res.ConversationID)
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 2)
}

func TestRunTurnForcedToolBinding(t *testing.T) {
	chat := &fakeChatModel{script: []*schema.Message{
		toolCallMsg("create_reminder", `{"title":"call Dana","due":"tomorrow"}`),
		contentMsg("Reminder set for tomorrow morning."),
	}}
	o, _ := newTestOrchestrator(t, &fakeProvider{model: chat})

	res, err := o.RunTurn(context.Background(), &TurnRequest{
		Message: "remind me to call Dana tomorrow",
		Caller:  entity.Caller{ID: "coord-1", Name: "Coordinator", Tier: entity.TierReadWrite},
	})
	require.NoError(t, err)

	assert.Equal(t, "Reminder set for tomorrow morning.", res.Reply)
	assert.Equal(t, []string{"create_reminder"}, res.ToolsUsed)

	// The first call binds only the forced tool; the follow-up call sees the
	// caller's full toolset again.
	require.GreaterOrEqual(t, len(chat.bound), 2)
	assert.Equal(t, []string{"create_reminder"}, chat.bound[0])
	assert.Greater(t, len(chat.bound[1]), 1)
}
