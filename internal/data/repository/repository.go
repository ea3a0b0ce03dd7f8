package repository

import (
	"context"

	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/metrics"

	"go.uber.org/zap"
)

// Repository groups the pool-bound repositories used outside transactions
// together with the unit of work that opens transactional ones.
type Repository struct {
	Seat     SeatRepository
	SeatLock SeatLockRepository
	Session  BookingSessionRepository
	Order    OrderRepository
	Showtime ShowtimeRepository
	UoW      UnitOfWork
}

// Tx exposes repositories bound to one open transaction.
type Tx interface {
	Seats() SeatRepository
	SeatLocks() SeatLockRepository
	Sessions() BookingSessionRepository
	Orders() OrderRepository
}

type UnitOfWork interface {
	// Within runs fn in a READ COMMITTED transaction. fn may run more than
	// once when Postgres reports a serialization failure or deadlock, so it
	// must not have side effects outside tx.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger, m *metrics.Metrics) *Repository {
	return &Repository{
		Seat:     NewSeatRepository(db, log),
		SeatLock: NewSeatLockRepository(db, log),
		Session:  NewBookingSessionRepository(db, log),
		Order:    NewOrderRepository(db, log),
		Showtime: NewShowtimeRepository(db, log),
		UoW:      NewUnitOfWork(db, log, m),
	}
}
