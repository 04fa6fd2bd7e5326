package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ModelOptions configure the chat model providers.
type ModelOptions struct {
	DefaultProvider string                     `json:"default-provider" mapstructure:"default-provider"`
	Providers       map[string]*ProviderConfig `json:"providers" mapstructure:"providers"`
}

// ProviderConfig is one provider's connection settings. APIKey supports
// ${ENV_VAR} expansion.
type ProviderConfig struct {
	BaseURL     string   `json:"base-url" mapstructure:"base-url"`
	APIKey      string   `json:"api-key" mapstructure:"api-key"`
	Model       string   `json:"model" mapstructure:"model"`
	MaxTokens   int      `json:"max-tokens" mapstructure:"max-tokens"`
	Temperature *float32 `json:"temperature" mapstructure:"temperature"`
	TopP        *float32 `json:"top-p" mapstructure:"top-p"`
}

func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		DefaultProvider: "anthropic",
		Providers:       make(map[string]*ProviderConfig),
	}
}

func (o *ModelOptions) Validate() []error {
	var errs []error
	for id, p := range o.Providers {
		if p.Model == "" {
			errs = append(errs, fmt.Errorf("provider %q: model is required", id))
		}
	}
	if len(o.Providers) > 0 {
		if _, ok := o.Providers[o.DefaultProvider]; !ok {
			errs = append(errs, fmt.Errorf("default provider %q is not configured", o.DefaultProvider))
		}
	}
	return errs
}

func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DefaultProvider, "models.default-provider", o.DefaultProvider, "Default provider ID.")
}
