package options

import (
	"github.com/spf13/pflag"

	genericoptions "github.com/colonyops/cockpit/internal/pkg/options"
	"github.com/colonyops/cockpit/pkg/utils/json"
)

// Options is the full option set of the cockpit daemon.
type Options struct {
	ServingOptions   *genericoptions.ServingOptions   `json:"serving" mapstructure:"serving"`
	ModelOptions     *genericoptions.ModelOptions     `json:"models" mapstructure:"models"`
	StoreOptions     *genericoptions.StoreOptions     `json:"store" mapstructure:"store"`
	AssistantOptions *genericoptions.AssistantOptions `json:"assistant" mapstructure:"assistant"`
}

func NewOptions() *Options {
	return &Options{
		ServingOptions:   genericoptions.NewServingOptions(),
		ModelOptions:     genericoptions.NewModelOptions(),
		StoreOptions:     genericoptions.NewStoreOptions(),
		AssistantOptions: genericoptions.NewAssistantOptions(),
	}
}

// AddFlags registers every option group on the flag set.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.ServingOptions.AddFlags(fs)
	o.ModelOptions.AddFlags(fs)
	o.StoreOptions.AddFlags(fs)
	o.AssistantOptions.AddFlags(fs)
}

// Validate collects validation errors from every option group.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.ServingOptions.Validate()...)
	errs = append(errs, o.ModelOptions.Validate()...)
	errs = append(errs, o.StoreOptions.Validate()...)
	errs = append(errs, o.AssistantOptions.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)
	return string(data)
}
