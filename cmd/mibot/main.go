package main

import (
	"github.com/joho/godotenv"

	"github.com/Lucia2467/mibot/internal/app/agent"
	"github.com/Lucia2467/mibot/internal/config"
)

func main() {
	_ = godotenv.Load() // optional; real env wins

	cfg := config.Load()
	config.SetupLogging(cfg.Agent.LogLevel, cfg.Agent.LogFormat)
	agent.Run(cfg)
}
