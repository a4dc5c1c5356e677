package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sefazor/eventsphere-backend/internal/config"
	"github.com/sefazor/eventsphere-backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Config'i yükle
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	zapLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLog.Sync()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			AttachStacktrace: true,
		}); err != nil {
			zapLog.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	app, cleanup, err := InitializeApp(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to initialize application", zap.Error(err))
	}
	defer cleanup()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLog.Error("server stopped", zap.Error(err))
		}
	}()
	zapLog.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zapLog.Error("shutdown failed", zap.Error(err))
	}
}
