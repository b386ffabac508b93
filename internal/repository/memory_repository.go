package repository

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/circa/reservations/internal/model"
)

// MemoryReservationRepo keeps reservations in process memory. Data is lost
// on restart; it exists for local development and tests.
type MemoryReservationRepo struct {
	mu     sync.RWMutex
	clock  clockwork.Clock
	nextID int64
	items  []model.Reservation
}

func NewMemoryReservationRepo(clock clockwork.Clock) *MemoryReservationRepo {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryReservationRepo{clock: clock}
}

func (r *MemoryReservationRepo) Create(_ context.Context, in model.NewReservation) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	res := model.Reservation{
		ID:        r.nextID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Date:      in.Date,
		Time:      in.Time,
		Guests:    int(in.Guests),
		Message:   in.Message,
		CreatedAt: r.clock.Now().UTC(),
	}
	r.items = append(r.items, res)
	return &res, nil
}

func (r *MemoryReservationRepo) Get(_ context.Context, id int64) (*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.items {
		if res.ID == id {
			return &res, nil
		}
	}
	return nil, ErrNotFound
}

// List returns a copy of all reservations, newest first.
func (r *MemoryReservationRepo) List(_ context.Context) ([]model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Reservation, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}

func (r *MemoryReservationRepo) Ping(context.Context) error { return nil }
