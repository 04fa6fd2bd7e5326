package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/colonyops/cockpit/internal/cockpit"
)

func main() {
	if err := cockpit.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
