package router

import (
	"net/http"
	"time"

	"github.com/archivo/archivo/internal/config"
	"github.com/archivo/archivo/internal/handler"
	"github.com/archivo/archivo/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints (not rate limited)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /{$}", h.Root)

	window, err := cfg.Security.RateLimiting.Window()
	if err != nil {
		window = time.Minute
	}
	readLimit := mw.RateLimit(middleware.RateLimitConfig{
		Name:   "read",
		Limit:  cfg.Security.RateLimiting.DefaultLimit,
		Window: window,
		KeyFn:  middleware.IPKey,
	})
	// creations cost more than reads
	writeLimit := mw.RateLimit(middleware.RateLimitConfig{
		Name:   "write",
		Limit:  max(1, cfg.Security.RateLimiting.DefaultLimit/4),
		Window: window,
		KeyFn:  middleware.IPKey,
	})

	// Dimensional libraries; collection routes also answer without the trailing slash
	for _, p := range []string{"/bibliotecas/{$}", "/bibliotecas"} {
		mux.Handle("POST "+p, writeLimit(http.HandlerFunc(h.CreateLibrary)))
		mux.Handle("GET "+p, readLimit(http.HandlerFunc(h.ListLibraries)))
	}
	mux.Handle("GET /bibliotecas/{id}", readLimit(http.HandlerFunc(h.GetLibrary)))

	// Lost books
	for _, p := range []string{"/libros/{$}", "/libros"} {
		mux.Handle("POST "+p, writeLimit(http.HandlerFunc(h.CreateBook)))
		mux.Handle("GET "+p, readLimit(http.HandlerFunc(h.ListBooks)))
	}
	mux.Handle("GET /libros/{id}", readLimit(http.HandlerFunc(h.GetBook)))

	// Apply middleware stack, outermost first
	return middleware.Chain(mux,
		mw.Recover,
		mw.RequestID,
		mw.Timing,
		mw.Logger,
		mw.SecurityHeaders,
		mw.CORS(cfg.CORS.AllowedOrigins),
	)
}
