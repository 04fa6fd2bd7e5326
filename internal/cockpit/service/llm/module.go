// Package llm builds Eino chat models from provider configuration and hands
// them to the assistant.
package llm

import (
	"github.com/colonyops/cockpit/internal/pkg/options"
)

// Config holds the configuration for the LLM module.
type Config struct {
	ModelOptions *options.ModelOptions
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.ModelOptions == nil {
		c.ModelOptions = options.NewModelOptions()
	}
	return CompletedConfig{c}
}

// Module is the top-level LLM module.
type Module struct {
	Manager *Manager
}

// New creates the LLM module from a completed config.
func (c CompletedConfig) New() *Module {
	return &Module{Manager: NewManager(c.ModelOptions)}
}
