package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirillkom/telegram-doc-analyzer/internal/bootstrap"
	"github.com/kirillkom/telegram-doc-analyzer/internal/config"
	"github.com/kirillkom/telegram-doc-analyzer/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := logging.NewJSONLogger("telegram-doc-analyzer", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		server := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: mux}
		logger.Info("metrics server listening", "port", cfg.MetricsPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	logger.Info("bot starting")
	if err := app.Bot.Run(ctx, app.Analyze); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped unexpectedly: %v", err)
	}
	logger.Info("bot stopped")
}
