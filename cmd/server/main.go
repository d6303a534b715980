package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CETEN-BDE/bot-discord/internal/app"
	"github.com/CETEN-BDE/bot-discord/internal/config"
	"github.com/CETEN-BDE/bot-discord/internal/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", map[string]any{
			"error": err.Error(),
		})
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{
			"error": err.Error(),
		})
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Fatal("bot failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("bot started", map[string]any{
		"port": cfg.Port,
	})

	<-ctx.Done() // wait for Ctrl+C

	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("bot stopped cleanly", nil)
}
