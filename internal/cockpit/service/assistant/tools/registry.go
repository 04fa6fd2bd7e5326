// Package tools holds the assistant's tool registry and every tool
// handler. Tools are the only way the model touches the directory store;
// each invocation reports through the ToolResult envelope and nothing a
// handler does, error or panic, escapes the dispatcher.
package tools

import (
	"context"
	"fmt"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/directory"
	"github.com/colonyops/cockpit/pkg/logger"
	"github.com/colonyops/cockpit/pkg/utils/json"
)

// Registry maps tool names to their immutable definitions. It is built
// once at startup and injected wherever tools are needed.
type Registry struct {
	defs  map[string]*entity.ToolDefinition
	order []string
}

// NewRegistry builds the full tool registry over the directory store.
func NewRegistry(dir *directory.Store, regions *directory.RegionExpander) *Registry {
	r := &Registry{defs: make(map[string]*entity.ToolDefinition)}

	p := &provider{dir: dir, regions: regions}
	for _, def := range p.readTools() {
		r.register(def)
	}
	for _, def := range p.writeTools() {
		r.register(def)
	}
	for _, def := range p.adminTools() {
		r.register(def)
	}
	return r
}

func (r *Registry) register(def entity.ToolDefinition) {
	if _, exists := r.defs[def.Name]; exists {
		panic(fmt.Sprintf("duplicate tool registration: %s", def.Name))
	}
	d := def
	r.defs[def.Name] = &d
	r.order = append(r.order, def.Name)
}

// Get returns the definition for name, or nil.
func (r *Registry) Get(name string) *entity.ToolDefinition {
	return r.defs[name]
}

// All returns every definition in registration order.
func (r *Registry) All() []*entity.ToolDefinition {
	out := make([]*entity.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}

// Execute dispatches one tool call. It validates the name, decodes the
// raw JSON arguments and runs the handler behind a catch-all: a handler
// error or panic becomes a failed ToolResult, never an escaping panic.
func (r *Registry) Execute(ctx context.Context, call *entity.ToolCall, tc *entity.ToolContext) (result *entity.ToolResult) {
	def := r.Get(call.Name)
	if def == nil {
		return entity.Fail("Unknown tool")
	}

	args := entity.ToolArgs{}
	if call.Arguments != "" && call.Arguments != "{}" {
		if err := json.UnmarshalString(call.Arguments, &args); err != nil {
			return entity.Fail(fmt.Sprintf("invalid tool arguments: %v", err))
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("[tools] %s panicked: %v", call.Name, rec)
			result = entity.Fail(fmt.Sprintf("tool %s panicked: %v", call.Name, rec))
		}
	}()

	res, err := def.Handler(ctx, args, tc)
	if err != nil {
		return entity.Fail(err.Error())
	}
	if res == nil {
		return entity.Fail(fmt.Sprintf("tool %s returned no result", call.Name))
	}
	return res
}

// provider binds tool handlers to their dependencies.
type provider struct {
	dir     *directory.Store
	regions *directory.RegionExpander
}
