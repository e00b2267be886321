package main

import (
	"github.com/mrlokans/madr/internal/config"
	"github.com/mrlokans/madr/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
