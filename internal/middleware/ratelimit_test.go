package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circa/reservations/internal/config"
)

const testRemoteAddr = "1.2.3.4:1234"

func limitConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
}

func newLimitedEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	e.POST("/reservations", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/reservations", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	return e
}

func doRequest(e *echo.Echo, method, target, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLocalLimiterBlocksAfterCapacity(t *testing.T) {
	e := newLimitedEcho(NewTokenBucket(limitConfig(3), nil))

	for range 3 {
		rec := doRequest(e, http.MethodPost, "/reservations", testRemoteAddr)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(e, http.MethodPost, "/reservations", testRemoteAddr)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "too_many_requests", resp["error"])
}

func TestLocalLimiterKeysByIPAndRoute(t *testing.T) {
	e := newLimitedEcho(NewTokenBucket(limitConfig(1), nil))

	require.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/reservations", testRemoteAddr).Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(e, http.MethodPost, "/reservations", testRemoteAddr).Code)

	// Another client and another route each get their own bucket.
	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/reservations", "5.6.7.8:4321").Code)
	assert.Equal(t, http.StatusOK, doRequest(e, http.MethodGet, "/reservations", testRemoteAddr).Code)
}

func TestDisabledLimiterPassesThrough(t *testing.T) {
	cfg := limitConfig(1)
	cfg.Enabled = false
	e := newLimitedEcho(NewTokenBucket(cfg, nil))

	for range 5 {
		assert.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/reservations", testRemoteAddr).Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
	req.RemoteAddr = testRemoteAddr
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/reservations")

	tests := []struct {
		strategy string
		want     string
	}{
		{"ip", "rl:ip:1.2.3.4"},
		{"route", "rl:route:POST /reservations"},
		{"ip_route", "rl:ip:1.2.3.4:route:POST /reservations"},
		{"", "rl:ip:1.2.3.4:route:POST /reservations"},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			cfg := limitConfig(1)
			cfg.KeyStrategy = tt.strategy
			assert.Equal(t, tt.want, buildRateKey(cfg, c))
		})
	}
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(7), asInt64(int64(7)))
	assert.Equal(t, int64(7), asInt64("7"))
	assert.Equal(t, int64(2), asInt64(2.9))
	assert.Equal(t, int64(0), asInt64(nil))
}
