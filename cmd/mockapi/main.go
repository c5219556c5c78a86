package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-console/internal/mockapi"
	"github.com/noah-isme/academy-console/pkg/config"
	"github.com/noah-isme/academy-console/pkg/logger"
	"github.com/noah-isme/academy-console/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := mockapi.New(cfg.MockAPI, logr, metrics.New())
	if err != nil {
		logr.Sugar().Fatalw("failed to build mock api", "error", err)
	}

	if err := srv.Run(); err != nil {
		logr.Sugar().Fatalw("mock api failed", "error", err)
	}
}
