package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/tools"
	"github.com/colonyops/cockpit/internal/cockpit/service/directory"
)

func newTestGate(t *testing.T) (*AccessGate, *tools.Registry, *directory.Store) {
	t.Helper()
	dir, err := directory.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dir.Close() })
	require.NoError(t, dir.Seed(context.Background()))

	registry := tools.NewRegistry(dir, directory.NewRegionExpander())
	return NewAccessGate(registry), registry, dir
}

func TestGateTierNoneSeesNothing(t *testing.T) {
	gate, _, _ := newTestGate(t)
	assert.Empty(t, gate.ToolsFor(entity.TierNone))
}

func TestGateReadOnlySeesOnlyReadTools(t *testing.T) {
	gate, _, _ := newTestGate(t)

	for _, def := range gate.ToolsFor(entity.TierReadOnly) {
		assert.False(t, writeToolNames[def.Name], "write tool %s leaked to read_only", def.Name)
		assert.False(t, adminToolNames[def.Name], "admin tool %s leaked to read_only", def.Name)
	}
	assert.NotEmpty(t, gate.ToolsFor(entity.TierReadOnly))
}

func TestGateReadWriteSeesNoAdminTools(t *testing.T) {
	gate, _, _ := newTestGate(t)

	names := make(map[string]bool)
	for _, def := range gate.ToolsFor(entity.TierReadWrite) {
		assert.False(t, adminToolNames[def.Name], "admin tool %s leaked to read_write", def.Name)
		names[def.Name] = true
	}
	assert.True(t, names["search_places"])
	assert.True(t, names["create_reminder"])
	assert.False(t, names["update_request_status"])
}

func TestGateFullSeesEverything(t *testing.T) {
	gate, registry, _ := newTestGate(t)
	assert.Len(t, gate.ToolsFor(entity.TierFull), registry.Len())
}

func TestGateCanUse(t *testing.T) {
	gate, _, _ := newTestGate(t)

	assert.True(t, gate.CanUse(entity.TierReadOnly, "search_places"))
	assert.False(t, gate.CanUse(entity.TierReadOnly, "create_reminder"))
	assert.True(t, gate.CanUse(entity.TierReadWrite, "create_reminder"))
	assert.False(t, gate.CanUse(entity.TierReadWrite, "reassign_request"))
	assert.True(t, gate.CanUse(entity.TierFull, "reassign_request"))
	assert.False(t, gate.CanUse(entity.TierFull, "no_such_tool"))
}

func TestGateListsStayAlignedWithRegistry(t *testing.T) {
	_, registry, _ := newTestGate(t)

	// Every gated name must exist in the registry, so a rename cannot
	// silently orphan a gate entry.
	for name := range writeToolNames {
		assert.NotNil(t, registry.Get(name), "write list names unknown tool %s", name)
	}
	for name := range adminToolNames {
		assert.NotNil(t, registry.Get(name), "admin list names unknown tool %s", name)
	}
}
