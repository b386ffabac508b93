// Package queue defines the reservation events exchanged over the message
// broker and the worker that consumes them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/circa/reservations/internal/model"
)

// ReservationCreatedEvent is published after a reservation is stored. It
// carries the whole reservation so consumers never query the database.
type ReservationCreatedEvent struct {
	EventID       string `json:"event_id"`
	ReservationID int64  `json:"reservation_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Guests        int    `json:"guests"`
	Message       string `json:"message"`
	CreatedAt     string `json:"created_at"` // RFC 3339, UTC
}

func NewReservationCreatedEvent(res model.Reservation) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		EventID:       uuid.NewString(),
		ReservationID: res.ID,
		Name:          res.Name,
		Email:         res.Email,
		Phone:         res.Phone,
		Date:          res.Date,
		Time:          res.Time,
		Guests:        res.Guests,
		Message:       res.Message,
		CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	}
}
