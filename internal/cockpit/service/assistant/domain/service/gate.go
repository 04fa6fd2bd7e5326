// Package service holds the assistant's domain services: the access gate,
// the intent detector and the turn orchestrator.
package service

import (
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/tools"
)

// writeToolNames and adminToolNames are the fixed gate lists. Tools not on
// either list are read tools. Gating is by name so a registry change cannot
// silently widen a tier.
var (
	writeToolNames = map[string]bool{
		"create_reminder":           true,
		"send_message":              true,
		"save_lookup":               true,
		"log_observation":           true,
		"log_discrepancy":           true,
		"log_unanswerable_question": true,
		"create_draft_request":      true,
	}

	adminToolNames = map[string]bool{
		"update_request_status": true,
		"reassign_request":      true,
	}
)

// AccessGate decides which registered tools a caller's tier may see and use.
type AccessGate struct {
	registry *tools.Registry
}

func NewAccessGate(registry *tools.Registry) *AccessGate {
	return &AccessGate{registry: registry}
}

// MinTier returns the lowest tier allowed to use the named tool.
func MinTier(name string) entity.AccessTier {
	switch {
	case adminToolNames[name]:
		return entity.TierFull
	case writeToolNames[name]:
		return entity.TierReadWrite
	default:
		return entity.TierReadOnly
	}
}

// CanUse reports whether tier is allowed to invoke the named tool.
func (g *AccessGate) CanUse(tier entity.AccessTier, name string) bool {
	if g.registry.Get(name) == nil {
		return false
	}
	return tier.AtLeast(MinTier(name))
}

// ToolsFor returns the tool definitions visible to tier, in registration
// order. Tier none sees nothing.
func (g *AccessGate) ToolsFor(tier entity.AccessTier) []*entity.ToolDefinition {
	if tier == entity.TierNone {
		return nil
	}
	var out []*entity.ToolDefinition
	for _, def := range g.registry.All() {
		if tier.AtLeast(MinTier(def.Name)) {
			out = append(out, def)
		}
	}
	return out
}
