package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circa/reservations/internal/database"
	"github.com/circa/reservations/internal/model"
)

type reservationStore interface {
	Create(ctx context.Context, in model.NewReservation) (*model.Reservation, error)
	Get(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	Ping(ctx context.Context) error
}

func newSQLiteRepo(t *testing.T) *SQLReservationRepo {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, "sqlite"))
	return NewSQLReservationRepo(db)
}

func sampleReservation(name string, guests int) model.NewReservation {
	return model.NewReservation{
		Name:    name,
		Email:   name + "@example.com",
		Phone:   "+234 800 000 0000",
		Date:    "2026-12-24",
		Time:    "20:00",
		Guests:  model.GuestCount(guests),
		Message: "",
	}
}

// storeContract runs the behaviour every reservation store must share.
func storeContract(t *testing.T, newStore func(t *testing.T) reservationStore, advance func()) {
	ctx := context.Background()

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		store := newStore(t)
		before := time.Now().UTC().Add(-time.Minute)

		res, err := store.Create(ctx, sampleReservation("amaka", 2))
		require.NoError(t, err)
		assert.NotZero(t, res.ID)
		assert.Equal(t, "amaka", res.Name)
		assert.Equal(t, "amaka@example.com", res.Email)
		assert.Equal(t, "2026-12-24", res.Date)
		assert.Equal(t, "20:00", res.Time)
		assert.Equal(t, 2, res.Guests)
		assert.Empty(t, res.Message)
		assert.True(t, res.CreatedAt.After(before), "created_at %v should be recent", res.CreatedAt)
	})

	t.Run("list is newest first", func(t *testing.T) {
		store := newStore(t)
		for _, name := range []string{"first", "second", "third"} {
			_, err := store.Create(ctx, sampleReservation(name, 1))
			require.NoError(t, err)
			advance()
		}

		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "third", list[0].Name)
		assert.Equal(t, "second", list[1].Name)
		assert.Equal(t, "first", list[2].Name)
	})

	t.Run("get by id", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, sampleReservation("ngozi", 4))
		require.NoError(t, err)

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "ngozi", got.Name)
		assert.Equal(t, 4, got.Guests)

		_, err = store.Get(ctx, created.ID+100)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		list, err := newStore(t).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}

func TestSQLReservationRepo_SQLite(t *testing.T) {
	storeContract(t, func(t *testing.T) reservationStore { return newSQLiteRepo(t) }, func() {})
}

func TestMemoryReservationRepo(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Now())
	storeContract(t,
		func(t *testing.T) reservationStore { return NewMemoryReservationRepo(clock) },
		func() { clock.Advance(time.Second) },
	)
}

func TestMemoryReservationRepo_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReservationRepo(nil)
	_, err := repo.Create(ctx, sampleReservation("obi", 3))
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Name = "mutated"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "obi", again[0].Name)
}
