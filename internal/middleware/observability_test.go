package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circa/reservations/internal/metrics"
)

func TestMetricsCountsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/hero/poster.png", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues("/hero/poster.png", http.MethodGet, "204")
	before := testutil.ToFloat64(counter)

	doRequest(e, http.MethodGet, "/hero/poster.png?w=10", testRemoteAddr)
	doRequest(e, http.MethodGet, "/hero/poster.png?w=20", testRemoteAddr)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRequestLoggerWritesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(RequestID(), RequestLogger(logger))
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := doRequest(e, http.MethodGet, "/healthz", testRemoteAddr)
	require.Equal(t, http.StatusOK, rec.Code)

	id := rec.Header().Get(echo.HeaderXRequestID)
	require.Len(t, id, 36)
	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"uri":"/healthz"`)
}
