package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/profilesvc/internal/api"
	"github.com/vytor/profilesvc/internal/config"
	"github.com/vytor/profilesvc/internal/db"
	"github.com/vytor/profilesvc/internal/logger"
	"github.com/vytor/profilesvc/internal/repository"
	"github.com/vytor/profilesvc/internal/repository/memory"
	"github.com/vytor/profilesvc/internal/repository/sqlite"
	"github.com/vytor/profilesvc/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("%s starting", api.ServiceName)
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("store_backend=%s", cfg.StoreBackend)
	log.Debug("cors_allowed_origins=%v", cfg.AllowedOrigins)
	log.Debug("shutdown_timeout=%s", cfg.ShutdownTimeout)

	srv := &api.Server{AllowedOrigins: cfg.AllowedOrigins}

	var profileRepo repository.ProfileRepository
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		log.Debug("db_path=%s", cfg.DBPath)
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			log.Error("failed to open database: %v", err)
			os.Exit(1)
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
		profileRepo = sqlite.NewProfileRepository(database.DB)
		srv.Store = database
	default:
		profileRepo = memory.NewProfileRepository()
	}

	srv.ProfileService = services.NewProfileService(profileRepo, services.SystemClock)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-errCh:
		log.Error("HTTP server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("%s stopped", api.ServiceName)
}
