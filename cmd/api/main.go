package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/solvik/vollur/internal/app"
	"github.com/solvik/vollur/internal/config"
	"github.com/solvik/vollur/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = application.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.ServeHTTP(ctx); err != nil {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
}
