// Package assistant wires the directory-backed tool registry, the access
// gate, the intent detector and the turn orchestrator into one module.
package assistant

import (
	"context"
	"fmt"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/repo"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/service"
	boltdbStore "github.com/colonyops/cockpit/internal/cockpit/service/assistant/store/boltdb"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/store/inmemory"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/tools"
	"github.com/colonyops/cockpit/internal/cockpit/service/directory"
	"github.com/colonyops/cockpit/internal/cockpit/service/llm"
	"github.com/colonyops/cockpit/internal/pkg/options"
	"github.com/colonyops/cockpit/pkg/logger"
)

// Config holds the configuration for the Assistant module.
// Follows the Config → Complete() → New(ctx, deps) pattern.
type Config struct {
	AssistantOptions *options.AssistantOptions
	StoreOptions     *options.StoreOptions
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.AssistantOptions == nil {
		c.AssistantOptions = options.NewAssistantOptions()
	}
	if c.StoreOptions == nil {
		c.StoreOptions = options.NewStoreOptions()
	}
	return CompletedConfig{c}
}

// Dependencies holds the external modules required by the Assistant module.
type Dependencies struct {
	LLM *llm.Module
}

// Module is the top-level Assistant module.
type Module struct {
	Orchestrator *service.Orchestrator
	Gate         *service.AccessGate
	Registry     *tools.Registry
	Directory    *directory.Store

	boltDB *boltdbStore.DB // nil when using the inmemory store
}

// Close releases the module's store handles.
func (m *Module) Close() error {
	if m.boltDB != nil {
		if err := m.boltDB.Close(); err != nil {
			return err
		}
	}
	return m.Directory.Close()
}

// New creates and initializes the Assistant module from a completed config.
func (c CompletedConfig) New(ctx context.Context, deps Dependencies) (*Module, error) {
	if deps.LLM == nil {
		return nil, fmt.Errorf("LLM module dependency is required")
	}

	dir, err := directory.Open(c.StoreOptions.DirectoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory store at %s: %w", c.StoreOptions.DirectoryPath, err)
	}
	if c.StoreOptions.Seed {
		if err := dir.Seed(ctx); err != nil {
			dir.Close()
			return nil, fmt.Errorf("failed to seed directory store: %w", err)
		}
		logger.Info("[Assistant] directory store seeded with demo data")
	}

	var (
		conversations repo.ConversationRepository
		boltDB        *boltdbStore.DB
	)
	switch c.StoreOptions.ConversationStore {
	case options.ConversationStoreBoltDB:
		boltDB, err = boltdbStore.Open(c.StoreOptions.BoltPath)
		if err != nil {
			dir.Close()
			return nil, fmt.Errorf("failed to open boltdb at %s: %w", c.StoreOptions.BoltPath, err)
		}
		conversations = boltdbStore.NewConversationStore(boltDB)
		logger.Info("[Assistant] using BoltDB conversation store at %s", c.StoreOptions.BoltPath)
	default:
		conversations = inmemory.NewConversationStore()
		logger.Info("[Assistant] using in-memory conversation store")
	}

	registry := tools.NewRegistry(dir, directory.NewRegionExpander())
	gate := service.NewAccessGate(registry)
	intent := service.NewIntentDetector()

	orchestrator := service.NewOrchestrator(
		conversations,
		gate,
		intent,
		registry,
		deps.LLM.Manager,
		service.OrchestratorConfig{
			MaxToolRounds: c.AssistantOptions.MaxToolRounds,
			ModelTimeout:  c.AssistantOptions.ModelTimeout,
			TurnDeadline:  c.AssistantOptions.TurnDeadline,
		},
	)

	logger.Info("[Assistant] module initialized (tools=%d, max_rounds=%d, model_timeout=%s, turn_deadline=%s)",
		registry.Len(), c.AssistantOptions.MaxToolRounds, c.AssistantOptions.ModelTimeout, c.AssistantOptions.TurnDeadline)

	return &Module{
		Orchestrator: orchestrator,
		Gate:         gate,
		Registry:     registry,
		Directory:    dir,
		boltDB:       boltDB,
	}, nil
}
