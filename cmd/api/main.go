package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/VS237/momshop/docs"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger().Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		log.Error("error starting application", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
