package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivo/archivo/internal/config"
	"github.com/archivo/archivo/internal/logger"
	"github.com/archivo/archivo/internal/middleware"
)

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
	err    error
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCounter) Incr(_ context.Context, key string) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *memoryCounter) Expire(_ context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCounter) TTL(_ context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key], nil
}

func testConfig(rateLimited bool) *config.Config {
	return &config.Config{Security: config.SecurityConfig{RateLimiting: config.RateLimitingConfig{
		Enabled:       rateLimited,
		DefaultLimit:  2,
		DefaultWindow: "1m",
	}}}
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func Test_RequestID_GeneratesAndEchoes(t *testing.T) {
	mw := middleware.New(nil, logger.Nop(), testConfig(false))

	var seen string
	h := mw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "given-id", seen)
	assert.Equal(t, "given-id", rec.Header().Get("X-Request-ID"))
}

func Test_RequestID_ReplacesInvalidClientIDs(t *testing.T) {
	mw := middleware.New(nil, logger.Nop(), testConfig(false))

	var seen string
	h := mw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	tests := []struct {
		name string
		id   string
	}{
		{name: "too_long", id: strings.Repeat("a", middleware.MaxRequestIDLength+1)},
		{name: "spaces", id: "req 42"},
		{name: "json_breaking_quote", id: `req"}`},
		{name: "non_ascii", id: "petición-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", tt.id)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.NotEqual(t, tt.id, seen)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err, "Should fall back to a generated uuid")
			assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
		})
	}
}

func Test_ValidRequestID(t *testing.T) {
	assert.True(t, middleware.ValidRequestID("req-42"))
	assert.True(t, middleware.ValidRequestID("trace:ab_12.3"))
	assert.True(t, middleware.ValidRequestID(strings.Repeat("a", middleware.MaxRequestIDLength)))
	assert.False(t, middleware.ValidRequestID(""))
	assert.False(t, middleware.ValidRequestID(strings.Repeat("a", middleware.MaxRequestIDLength+1)))
	assert.False(t, middleware.ValidRequestID("a/b"))
}

func Test_Recover_ReturnsJSON500(t *testing.T) {
	var buf bytes.Buffer
	mw := middleware.New(nil, logger.NewWithWriter(&buf, "info", "json"), testConfig(false))

	h := mw.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/libros/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["error"]["code"])
	assert.Contains(t, buf.String(), "panic recovered")
}

func Test_Logger_RecordsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	mw := middleware.New(nil, logger.NewWithWriter(&buf, "info", "json"), testConfig(false))

	h := middleware.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}), mw.RequestID, mw.Timing, mw.Logger)

	req := httptest.NewRequest(http.MethodPost, "/bibliotecas/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.EqualValues(t, 201, entry["status"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "http", entry["component"])
}

func Test_Chain_FirstIsOutermost(t *testing.T) {
	order := []string{}
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	middleware.Chain(okHandler, tag("a"), tag("b"), tag("c")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func Test_RateLimit(t *testing.T) {
	limitCfg := middleware.RateLimitConfig{Name: "test", Limit: 2, Window: time.Minute, KeyFn: middleware.IPKey}

	t.Run("blocks_after_limit", func(t *testing.T) {
		counter := newMemoryCounter()
		h := middleware.New(counter, logger.Nop(), testConfig(true)).RateLimit(limitCfg)(okHandler)

		codes := make([]int, 0, 3)
		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			last = httptest.NewRecorder()
			h.ServeHTTP(last, req)
			codes = append(codes, last.Code)
		}

		assert.Equal(t, []int{200, 200, 429}, codes)
		assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "60", last.Header().Get("Retry-After"))
		assert.Equal(t, time.Minute, counter.ttls["ratelimit:test:10.0.0.1"])
	})

	t.Run("keys_are_per_client", func(t *testing.T) {
		h := middleware.New(newMemoryCounter(), logger.Nop(), testConfig(true)).RateLimit(limitCfg)(okHandler)

		for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Forwarded-For", ip)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("disabled_in_config", func(t *testing.T) {
		h := middleware.New(newMemoryCounter(), logger.Nop(), testConfig(false)).RateLimit(limitCfg)(okHandler)

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
		}
	})

	t.Run("no_counter_passes_through", func(t *testing.T) {
		h := middleware.New(nil, logger.Nop(), testConfig(true)).RateLimit(limitCfg)(okHandler)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("counter_failure_fails_open", func(t *testing.T) {
		counter := newMemoryCounter()
		counter.err = errors.New("redis down")
		h := middleware.New(counter, logger.Nop(), testConfig(true)).RateLimit(limitCfg)(okHandler)

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func Test_CORS(t *testing.T) {
	mw := middleware.New(nil, logger.Nop(), testConfig(false))
	h := mw.CORS([]string{"http://localhost:3000"})(okHandler)

	tests := []struct {
		name        string
		method      string
		origin      string
		preflight   bool
		wantAllowed string
		wantCode    int
	}{
		{name: "allowed_origin", method: http.MethodGet, origin: "http://localhost:3000", wantAllowed: "http://localhost:3000", wantCode: 200},
		{name: "unknown_origin", method: http.MethodGet, origin: "http://evil.example", wantAllowed: "", wantCode: 200},
		{name: "preflight", method: http.MethodOptions, origin: "http://localhost:3000", preflight: true, wantAllowed: "http://localhost:3000", wantCode: 204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/bibliotecas/", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func Test_SecurityHeaders(t *testing.T) {
	mw := middleware.New(nil, logger.Nop(), testConfig(false))
	rec := httptest.NewRecorder()

	mw.SecurityHeaders(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func Test_ClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote_addr_without_port", remote: "10.0.0.1:1234", want: "10.0.0.1"},
		{name: "forwarded_first_hop", remote: "10.0.0.1:1234", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, want: "203.0.113.7"},
		{name: "real_ip", remote: "10.0.0.1:1234", headers: map[string]string{"X-Real-IP": "198.51.100.4"}, want: "198.51.100.4"},
		{name: "unparseable_remote", remote: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, middleware.ClientIP(req))
		})
	}
}
