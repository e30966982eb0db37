package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/hardik-python-lr/our-gate-backend/internal/app"
	"github.com/hardik-python-lr/our-gate-backend/internal/config"
	"github.com/hardik-python-lr/our-gate-backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(logger.Config{
		ServiceName: "our-gate",
		Environment: cfg.Env,
		Version:     cfg.Version,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := app.Run(cfg, zl); err != nil {
		zl.Fatal("app stopped", zap.Error(err))
	}
}
