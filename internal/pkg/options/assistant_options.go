package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// AssistantOptions bound the orchestrator and define the access token table.
type AssistantOptions struct {
	// MaxToolRounds caps model calls per turn.
	MaxToolRounds int `json:"max-tool-rounds" mapstructure:"max-tool-rounds"`

	// ModelTimeout bounds one model call.
	ModelTimeout time.Duration `json:"model-timeout" mapstructure:"model-timeout"`

	// TurnDeadline bounds one whole turn.
	TurnDeadline time.Duration `json:"turn-deadline" mapstructure:"turn-deadline"`

	// AccessTokens maps bearer tokens to callers. Tokens support ${ENV_VAR}
	// expansion; requests with no matching token run at tier none.
	AccessTokens []AccessTokenConfig `json:"access-tokens" mapstructure:"access-tokens"`
}

// AccessTokenConfig is one row of the token table.
type AccessTokenConfig struct {
	Token string `json:"token" mapstructure:"token"`
	Name  string `json:"name" mapstructure:"name"`
	Tier  string `json:"tier" mapstructure:"tier"`
}

func NewAssistantOptions() *AssistantOptions {
	return &AssistantOptions{
		MaxToolRounds: 3,
		ModelTimeout:  time.Minute,
		TurnDeadline:  3 * time.Minute,
	}
}

func (o *AssistantOptions) Validate() []error {
	var errs []error
	if o.MaxToolRounds < 1 {
		errs = append(errs, fmt.Errorf("max tool rounds must be at least 1"))
	}
	for i, t := range o.AccessTokens {
		if t.Token == "" {
			errs = append(errs, fmt.Errorf("access token %d: token is required", i))
		}
		switch t.Tier {
		case "read_only", "read_write", "full":
		default:
			errs = append(errs, fmt.Errorf("access token %d: invalid tier %q", i, t.Tier))
		}
	}
	return errs
}

func (o *AssistantOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxToolRounds, "assistant.max-tool-rounds", o.MaxToolRounds, "Maximum model calls per turn.")
	fs.DurationVar(&o.ModelTimeout, "assistant.model-timeout", o.ModelTimeout, "Timeout for a single model call.")
	fs.DurationVar(&o.TurnDeadline, "assistant.turn-deadline", o.TurnDeadline, "Deadline for a whole turn.")
}
