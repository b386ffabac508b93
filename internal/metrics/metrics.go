package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	// HTTPRequestsTotal tracks requests by route template, method and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route", "method"},
	)

	// CacheLookups tracks response cache lookups by result (hit/miss)
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"},
	)

	// RateLimited tracks rejected requests by limiter backend (redis/local)
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"backend"},
	)
)

// Reservation Metrics
var (
	// ReservationsCreated tracks create attempts by status (ok/error)
	ReservationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Reservation create attempts by status",
		},
		[]string{"status"},
	)

	// ReservationEventsPublished tracks broker publishes by status (ok/error/open_circuit)
	ReservationEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_events_published_total",
			Help: "Reservation events published to the broker by status",
		},
		[]string{"status"},
	)

	// ReservationEventsConsumed tracks worker deliveries by status (ack/nack)
	ReservationEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_events_consumed_total",
			Help: "Reservation events handled by the worker",
		},
		[]string{"status"},
	)
)

// Hero Metrics
var (
	// PosterRenders tracks server-side poster frame renders
	PosterRenders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hero_poster_renders_total",
			Help: "Hero poster frames rendered on the server",
		},
	)

	// PosterRenderDuration tracks poster render latency in seconds
	PosterRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hero_poster_render_duration_seconds",
			Help:    "Hero poster render duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
