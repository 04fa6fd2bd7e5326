package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/gg/gptr"
	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"
	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/colonyops/cockpit/internal/pkg/options"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

const defaultMaxTokens = 4096

// buildChatModel constructs an Eino chat model for one configured provider.
func buildChatModel(ctx context.Context, name string, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	switch name {
	case ProviderAnthropic:
		return buildClaude(ctx, cfg)
	case ProviderOpenAI:
		return buildOpenAI(ctx, cfg)
	case ProviderOllama:
		return buildOllama(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

func buildClaude(ctx context.Context, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	conf := &einoClaude.Config{
		APIKey:    resolveEnvValue(cfg.APIKey),
		Model:     cfg.Model,
		MaxTokens: maxTokens,
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = &cfg.BaseURL
	}
	if cfg.Temperature != nil {
		conf.Temperature = cfg.Temperature
	}
	if cfg.TopP != nil {
		conf.TopP = cfg.TopP
	}

	return einoClaude.NewChatModel(ctx, conf)
}

func buildOpenAI(ctx context.Context, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	conf := &einoOpenAI.ChatModelConfig{
		APIKey: resolveEnvValue(cfg.APIKey),
		Model:  cfg.Model,
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	if cfg.MaxTokens > 0 {
		conf.MaxTokens = gptr.Of(cfg.MaxTokens)
	}
	if cfg.Temperature != nil {
		conf.Temperature = cfg.Temperature
	}
	if cfg.TopP != nil {
		conf.TopP = cfg.TopP
	}

	return einoOpenAI.NewChatModel(ctx, conf)
}

func buildOllama(ctx context.Context, cfg *options.ProviderConfig) (model.ToolCallingChatModel, error) {
	conf := &einoOllama.ChatModelConfig{
		BaseURL: "http://127.0.0.1:11434",
		Model:   cfg.Model,
		Options: &einoOllama.Options{},
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	if cfg.Temperature != nil {
		conf.Options.Temperature = *cfg.Temperature
	}
	if cfg.TopP != nil {
		conf.Options.TopP = *cfg.TopP
	}

	return einoOllama.NewChatModel(ctx, conf)
}

// resolveEnvValue expands a "${ENV_VAR}" placeholder to its environment
// value; anything else passes through unchanged.
func resolveEnvValue(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}
