package cockpit

import (
	"github.com/colonyops/cockpit/internal/cockpit/config"
)

// Run starts the cockpit server from a completed configuration and blocks
// until shutdown.
func Run(cfg *config.Config) error {
	server, err := createAPIServer(cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun(cfg).Run()
}
