package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/worthyten/internal/metrics"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, rl.Allow("10.0.0.2"), "clients are limited independently")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "one token refilled")
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = now.Add(clientIdleTTL + time.Minute)
	rl.Allow("10.0.0.2")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "10.0.0.1")
	assert.Contains(t, rl.clients, "10.0.0.2")
}

func TestRateLimit_OnlyListedRoutes(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(0.001, 1, "POST /api/v1/sessions"))
	e.POST("/api/v1/sessions", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })
	e.GET("/api/v1/sessions/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, http.NoBody)
		req.RemoteAddr = "192.0.2.10:4312"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	before := testutil.ToFloat64(metrics.RateLimitedTotal.WithLabelValues("/api/v1/sessions"))

	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/v1/sessions").Code)

	rec := do(http.MethodPost, "/api/v1/sessions")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too many requests")

	for range 3 {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/sessions/abc").Code)
	}

	after := testutil.ToFloat64(metrics.RateLimitedTotal.WithLabelValues("/api/v1/sessions"))
	assert.InDelta(t, 1.0, after-before, 0)
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.Use(RateLimit(0, 1))
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for range 5 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
