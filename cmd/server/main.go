package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftline/infinite-library/internal/api"
	"github.com/driftline/infinite-library/internal/config"
	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/driftline/infinite-library/internal/domain"
	"github.com/driftline/infinite-library/internal/logging"
	"github.com/driftline/infinite-library/internal/session"
	"github.com/driftline/infinite-library/internal/store"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := logging.New(config.LogLevel(), config.LogFilePath())
	defer func() { _ = logger.Sync() }()

	lib := corpus.Default()
	logger.Info("corpus loaded",
		zap.Int("documents", len(lib.Documents())),
		zap.Int("agents", len(lib.Agents())),
	)

	settings := store.NewSettingsStore(
		store.NewFileStorage(config.DataDir()),
		domain.Settings{ModelSlug: config.DefaultModelSlug()},
		logger,
	)

	// audit trail for settings writes; the value of the key never hits a log
	settings.Subscribe(func(s domain.Settings) {
		logger.Info("settings updated",
			zap.String("model_slug", s.ModelSlug),
			zap.Bool("api_key_set", s.APIKey != ""),
		)
	})

	sessions := session.NewService(lib, config.SessionTTL(), logger)

	app := api.NewApp(lib, settings, sessions, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
