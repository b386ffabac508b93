package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestResponseCache_Integration(t *testing.T) {
	rdb := setupRedis(t)
	rc := NewRedisCache(cacheConfig(), rdb)

	calls := 0
	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/reservations", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, []string{"amaka"})
	})

	first := doRequest(e, http.MethodGet, "/reservations", testRemoteAddr)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := doRequest(e, http.MethodGet, "/reservations", testRemoteAddr)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	require.NoError(t, rc.Purge(t.Context(), "/reservations"))

	third := doRequest(e, http.MethodGet, "/reservations", testRemoteAddr)
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestResponseCache_PathParamsIntegration(t *testing.T) {
	rdb := setupRedis(t)
	rc := NewRedisCache(cacheConfig(), rdb)

	e := echo.New()
	e.Use(rc.Middleware())
	e.GET("/reservations/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id")})
	})

	first := doRequest(e, http.MethodGet, "/reservations/1", testRemoteAddr)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	other := doRequest(e, http.MethodGet, "/reservations/2", testRemoteAddr)
	require.Equal(t, http.StatusOK, other.Code)
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"id":"2"}`, other.Body.String())

	again := doRequest(e, http.MethodGet, "/reservations/1", testRemoteAddr)
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"id":"1"}`, again.Body.String())

	require.NoError(t, rc.Purge(t.Context(), "/reservations/:id"))
	purged := doRequest(e, http.MethodGet, "/reservations/2", testRemoteAddr)
	assert.Equal(t, "MISS", purged.Header().Get("X-Cache"))
}

func TestRedisTokenBucket_Integration(t *testing.T) {
	rdb := setupRedis(t)
	e := newLimitedEcho(NewTokenBucket(limitConfig(2), rdb))

	for range 2 {
		rec := doRequest(e, http.MethodPost, "/reservations", testRemoteAddr)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(e, http.MethodPost, "/reservations", testRemoteAddr)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
