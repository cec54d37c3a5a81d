package middleware

import (
	"net/http"

	"github.com/archivo/archivo/internal/config"
	"github.com/archivo/archivo/internal/logger"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	counter RateCounter
	log     *logger.Logger
	cfg     *config.Config
}

// New creates a new Middleware instance.
// counter may be nil, in which case rate limiting is a pass-through.
func New(counter RateCounter, log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		counter: counter,
		log:     log.WithComponent("http"),
		cfg:     cfg,
	}
}

// Chain applies middlewares so the first one listed is the outermost
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
