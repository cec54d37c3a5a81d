package handler

import (
	"context"

	"github.com/archivo/archivo/internal/config"
	"github.com/archivo/archivo/internal/logger"
	"github.com/archivo/archivo/internal/service"
)

// Version is reported by the root and health endpoints
const Version = "0.1.0"

// HealthChecker is a dependency that can report its health
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds all HTTP handlers
type Handler struct {
	log        *logger.Logger
	cfg        *config.Config
	librarySvc *service.LibraryService
	bookSvc    *service.BookService
	checks     map[string]HealthChecker
}

// New creates a new Handler instance. checks may be nil.
func New(log *logger.Logger, cfg *config.Config, librarySvc *service.LibraryService, bookSvc *service.BookService, checks map[string]HealthChecker) *Handler {
	if checks == nil {
		checks = map[string]HealthChecker{}
	}
	return &Handler{
		log:        log.WithComponent("handler"),
		cfg:        cfg,
		librarySvc: librarySvc,
		bookSvc:    bookSvc,
		checks:     checks,
	}
}
