package main

import (
	"log"

	"github.com/starkteam/stark/config"
	"github.com/starkteam/stark/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	api.StartServer(cfg)
}
