package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/archivo/archivo/internal/config"
	"github.com/archivo/archivo/internal/database"
	"github.com/archivo/archivo/internal/handler"
	"github.com/archivo/archivo/internal/idgen"
	"github.com/archivo/archivo/internal/logger"
	"github.com/archivo/archivo/internal/middleware"
	"github.com/archivo/archivo/internal/repository"
	"github.com/archivo/archivo/internal/router"
	"github.com/archivo/archivo/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", handler.Version).Msg("starting Archivo server")

	// Redis is optional. Interfaces stay untyped nil when it is off.
	var (
		counter middleware.RateCounter
		events  service.EventPublisher
		checks  = map[string]handler.HealthChecker{}
	)
	if cfg.Redis.Enabled {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("connected to Redis")

		counter = rdb
		events = rdb
		checks["redis"] = rdb
	} else {
		log.Warn().Msg("Redis disabled: rate limiting and catalog events are off")
	}

	// Initialize repositories
	libraryRepo := repository.NewLibraryRepository()
	bookRepo := repository.NewBookRepository()

	// Initialize services
	librarySvc := service.NewLibraryService(libraryRepo, idgen.NewUUID(idgen.LibraryPrefix), events, cfg, log)
	bookSvc := service.NewBookService(bookRepo, librarySvc, idgen.NewUUID(idgen.BookPrefix), events, cfg, log)

	// Initialize handlers
	h := handler.New(log, cfg, librarySvc, bookSvc, checks)

	// Initialize middleware
	mw := middleware.New(counter, log, cfg)

	// Set up router
	r := router.New(h, mw, cfg)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
