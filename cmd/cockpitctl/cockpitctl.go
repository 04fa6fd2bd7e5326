package main

import (
	"os"

	"github.com/colonyops/cockpit/internal/cockpitctl"
)

func main() {
	if err := cockpitctl.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
