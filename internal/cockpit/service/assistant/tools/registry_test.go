package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/directory"
)

func newTestRegistry(t *testing.T) (*Registry, *directory.Store) {
	t.Helper()
	dir, err := directory.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dir.Close() })
	require.NoError(t, dir.Seed(context.Background()))
	return NewRegistry(dir, directory.NewRegionExpander()), dir
}

func testToolContext() *entity.ToolContext {
	return entity.NewToolContext(entity.Caller{ID: "tester", Name: "Tester", Tier: entity.TierFull}, "conv-1")
}

func TestExecuteUnknownTool(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := r.Execute(context.Background(), &entity.ToolCall{ID: "c1", Name: "frobnicate", Arguments: "{}"}, testToolContext())
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Equal(t, "Unknown tool", res.Error)
}

func TestExecuteMalformedArguments(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := r.Execute(context.Background(), &entity.ToolCall{ID: "c1", Name: "search_places", Arguments: "{not json"}, testToolContext())
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestExecuteRecoversPanics(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.register(entity.ToolDefinition{
		Name:        "explode",
		Description: "always panics",
		Handler: func(context.Context, entity.ToolArgs, *entity.ToolContext) (*entity.ToolResult, error) {
			panic("boom")
		},
	})

	res := r.Execute(context.Background(), &entity.ToolCall{ID: "c1", Name: "explode", Arguments: "{}"}, testToolContext())
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestExecuteValidationFailure(t *testing.T) {
	r, _ := newTestRegistry(t)

	// search_people with no query is a tool failure, not a transport error.
	res := r.Execute(context.Background(), &entity.ToolCall{ID: "c1", Name: "search_people", Arguments: "{}"}, testToolContext())
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestLookupMissIsSuccessfulNotFound(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := r.Execute(context.Background(), &entity.ToolCall{
		ID: "c1", Name: "search_people",
		Arguments: `{"query":"nobody by this name"}`,
	}, testToolContext())
	require.NotNil(t, res)
	assert.True(t, res.Success, "a miss is not a failure")

	data, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["found"])
	assert.NotEmpty(t, data["message"])
}

func TestSearchPlacesExpandsArea(t *testing.T) {
	r, _ := newTestRegistry(t)

	// Seed data has places in Guerneville and Sebastopol; "west county"
	// covers both even though neither city is named.
	res := r.Execute(context.Background(), &entity.ToolCall{
		ID: "c1", Name: "search_places",
		Arguments: `{"area":"west county"}`,
	}, testToolContext())
	require.NotNil(t, res)
	require.True(t, res.Success, res.Error)

	data, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["found"])
}

func TestSilentToolsAlwaysSucceed(t *testing.T) {
	r, _ := newTestRegistry(t)
	tc := testToolContext()

	res := r.Execute(context.Background(), &entity.ToolCall{
		ID: "c1", Name: "log_discrepancy",
		Arguments: `{"entity_type":"place","entity":"somewhere","note":"colony size looks stale"}`,
	}, tc)
	require.NotNil(t, res)
	assert.True(t, res.Success)

	res = r.Execute(context.Background(), &entity.ToolCall{
		ID: "c2", Name: "log_unanswerable_question",
		Arguments: `{"question":"how many cats were altered in 2019?"}`,
	}, tc)
	require.NotNil(t, res)
	assert.True(t, res.Success)
}

func TestSaveLookupNeedsAPriorResult(t *testing.T) {
	r, _ := newTestRegistry(t)
	tc := testToolContext()

	res := r.Execute(context.Background(), &entity.ToolCall{
		ID: "c1", Name: "save_lookup", Arguments: `{"label":"my cats"}`,
	}, tc)
	require.NotNil(t, res)
	assert.False(t, res.Success)

	// After a successful lookup lands in the turn context, saving works.
	lookup := r.Execute(context.Background(), &entity.ToolCall{
		ID: "c2", Name: "search_cats", Arguments: `{"query":"Smokey"}`,
	}, tc)
	require.True(t, lookup.Success)
	tc.AppendResult(lookup)

	res = r.Execute(context.Background(), &entity.ToolCall{
		ID: "c3", Name: "save_lookup", Arguments: `{"label":"my cats"}`,
	}, tc)
	require.NotNil(t, res)
	assert.True(t, res.Success, res.Error)
}

func TestUpdateRequestStatusValidatesEnum(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := r.Execute(context.Background(), &entity.ToolCall{
		ID: "c1", Name: "update_request_status",
		Arguments: `{"request":"anything","status":"done"}`,
	}, testToolContext())
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid status")
}

func TestCreateReminderParsesDue(t *testing.T) {
	r, dir := newTestRegistry(t)
	tc := testToolContext()

	res := r.Execute(context.Background(), &entity.ToolCall{
		ID: "c1", Name: "create_reminder",
		Arguments: `{"title":"call back about traps","due":"tomorrow"}`,
	}, tc)
	require.NotNil(t, res)
	require.True(t, res.Success, res.Error)

	reminders, err := dir.ListReminders(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "call back about traps", reminders[0].Title)
	assert.Equal(t, 9, reminders[0].DueAt.Hour())
	assert.Equal(t, "Tester", reminders[0].CreatedBy)
}
