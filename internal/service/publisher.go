// Package service publishes reservation domain events to RabbitMQ.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"

	"github.com/circa/reservations/internal/metrics"
	"github.com/circa/reservations/internal/model"
	"github.com/circa/reservations/internal/queue"
)

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type dialFunc func(url string) (channel, io.Closer, error)

func dialAMQP(url string) (channel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	return ch, conn, nil
}

// Publisher sends ReservationCreatedEvents to a durable queue over one
// long-lived channel. A circuit breaker stops dialling a dead broker on
// every request; while it is open Publish fails fast.
type Publisher struct {
	url    string
	queue  string
	dial   dialFunc
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger

	mu   sync.Mutex
	ch   channel
	conn io.Closer
}

func NewPublisher(url, queueName string, logger *slog.Logger) *Publisher {
	return newPublisher(url, queueName, dialAMQP, logger)
}

func newPublisher(url, queueName string, dial dialFunc, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Publisher{url: url, queue: queueName, dial: dial, logger: logger}
	p.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "rabbitmq",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "component", name, "from", from.String(), "to", to.String())
		},
	})
	return p
}

// PublishReservationCreated publishes a persistent JSON event for res.
func (p *Publisher) PublishReservationCreated(ctx context.Context, res model.Reservation) error {
	body, err := json.Marshal(queue.NewReservationCreatedEvent(res))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.publish(ctx, body)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ReservationEventsPublished.WithLabelValues("open_circuit").Inc()
		return fmt.Errorf("publish reservation %d: %w", res.ID, err)
	case err != nil:
		metrics.ReservationEventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish reservation %d: %w", res.ID, err)
	}
	metrics.ReservationEventsPublished.WithLabelValues("ok").Inc()
	return nil
}

func (p *Publisher) publish(ctx context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		ch, conn, err := p.dial(p.url)
		if err != nil {
			return err
		}
		// Durable so messages survive broker restarts.
		if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("queue declare: %w", err)
		}
		p.ch, p.conn = ch, conn
	}

	err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		// Drop the channel so the next attempt re-dials.
		p.resetLocked()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *Publisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}
