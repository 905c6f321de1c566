package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anonto42/linkfeed/backend/internal/server"
	"github.com/anonto42/linkfeed/backend/pkg/config"
	"github.com/anonto42/linkfeed/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, zlog); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
