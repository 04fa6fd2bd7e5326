package cockpit

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/colonyops/cockpit/internal/cockpit/config"
	"github.com/colonyops/cockpit/internal/cockpit/options"
	"github.com/colonyops/cockpit/pkg/logger"
)

// NewCommand builds the cockpitd root command: flags, config file binding
// and the run loop.
func NewCommand() *cobra.Command {
	opts := options.NewOptions()
	var configFile string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "cockpitd",
		Short: "cockpitd is the conversational operations assistant for TNR field work",
		Long: heredoc.Doc(`
			cockpitd serves a chat assistant over the program's operational
			directory: colony sites, trapping requests, requesters, cats and
			clinic appointments.

			Staff and volunteers talk to it in plain language; it answers from
			real records through a gated tool set, so what a caller can do is
			decided by their access token, not by the model.`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(logLevel, ""); err != nil {
				return err
			}

			if configFile != "" {
				viper.SetConfigFile(configFile)
				if err := viper.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %q: %w", configFile, err)
				}
				if err := viper.Unmarshal(opts); err != nil {
					return fmt.Errorf("unmarshal config: %w", err)
				}
			}

			if errs := opts.Validate(); len(errs) > 0 {
				return fmt.Errorf("invalid configuration: %v", errs)
			}

			cfg, err := config.CreateConfigFromOptions(opts)
			if err != nil {
				return err
			}
			return Run(cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&configFile, "config", "c", "", "Path to the yaml configuration file.")
	fs.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error.")
	opts.AddFlags(fs)
	_ = viper.BindPFlags(fs)

	return cmd
}
