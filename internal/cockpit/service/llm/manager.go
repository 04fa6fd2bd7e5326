package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/pkg/errno"
	"github.com/colonyops/cockpit/internal/pkg/options"
	"github.com/colonyops/cockpit/pkg/logger"
)

// Manager builds and caches chat models per configured provider.
type Manager struct {
	opts *options.ModelOptions

	mu     sync.Mutex
	models map[string]model.ToolCallingChatModel
}

func NewManager(opts *options.ModelOptions) *Manager {
	return &Manager{
		opts:   opts,
		models: make(map[string]model.ToolCallingChatModel),
	}
}

// GetChatModel returns the default provider's chat model, building it on
// first use.
func (m *Manager) GetChatModel(ctx context.Context) (model.ToolCallingChatModel, error) {
	return m.GetChatModelByProvider(ctx, m.opts.DefaultProvider)
}

// GetChatModelByProvider returns the named provider's chat model.
func (m *Manager) GetChatModelByProvider(ctx context.Context, name string) (model.ToolCallingChatModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cm, ok := m.models[name]; ok {
		return cm, nil
	}

	cfg, ok := m.opts.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q: %w", name, errno.ErrNoModelAvailable)
	}

	cm, err := buildChatModel(ctx, name, cfg)
	if err != nil {
		return nil, fmt.Errorf("build chat model for provider %q: %w", name, err)
	}
	logger.Info("[LLM] provider %s ready (model=%s)", name, cfg.Model)

	m.models[name] = cm
	return cm, nil
}
