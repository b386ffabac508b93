package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/circa/reservations/internal/metrics"
	"github.com/circa/reservations/internal/model"
	"github.com/circa/reservations/internal/repository"
)

// ReservationsRoute is the collection path; cached GET responses are keyed
// under it and purged after every successful create.
const ReservationsRoute = "/reservations"

const sideEffectTimeout = 5 * time.Second

// ReservationStore is the persistence the handler needs. All repository
// implementations satisfy it.
type ReservationStore interface {
	Create(ctx context.Context, in model.NewReservation) (*model.Reservation, error)
	Get(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
}

// EventPublisher announces stored reservations to other services.
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, res model.Reservation) error
}

// CachePurger drops cached responses of a route.
type CachePurger interface {
	Purge(ctx context.Context, route string) error
}

// ReservationHandler serves the reservation endpoints. Events and Cache are
// optional; when set they run after the response is decided and their
// failures are only logged.
type ReservationHandler struct {
	Store  ReservationStore
	Events EventPublisher
	Cache  CachePurger
	Logger *slog.Logger

	wg sync.WaitGroup
}

func NewReservationHandler(store ReservationStore, events EventPublisher, cache CachePurger, logger *slog.Logger) *ReservationHandler {
	if store == nil {
		panic("nil store passed to NewReservationHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationHandler{Store: store, Events: events, Cache: cache, Logger: logger}
}

// Create handles POST /reservations. The body is stored as sent: there are
// no business rules beyond what the schema enforces.
func (h *ReservationHandler) Create(c echo.Context) error {
	var in model.NewReservation
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	res, err := h.Store.Create(ctx, in)
	if err != nil {
		metrics.ReservationsCreated.WithLabelValues("error").Inc()
		h.Logger.Error("Failed to save reservation", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	metrics.ReservationsCreated.WithLabelValues("ok").Inc()

	if h.Cache != nil {
		if err := h.Cache.Purge(ctx, ReservationsRoute); err != nil {
			h.Logger.Warn("Failed to purge reservation cache", "error", err)
		}
	}
	if h.Events != nil {
		h.publish(context.WithoutCancel(ctx), *res)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Reservation saved successfully!",
		"data":    res,
	})
}

func (h *ReservationHandler) publish(parent context.Context, res model.Reservation) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(parent, sideEffectTimeout)
		defer cancel()
		if err := h.Events.PublishReservationCreated(ctx, res); err != nil {
			h.Logger.Warn("Failed to publish reservation event", "reservation_id", res.ID, "error", err)
		}
	}()
}

// Wait blocks until every in-flight event publish has finished.
func (h *ReservationHandler) Wait() { h.wg.Wait() }

// List handles GET /reservations and returns all reservations newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	list, err := h.Store.List(c.Request().Context())
	if err != nil {
		h.Logger.Error("Failed to list reservations", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Store.Get(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if err != nil {
		h.Logger.Error("Failed to get reservation", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}
