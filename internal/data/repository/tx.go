package repository

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"time"

	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/metrics"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	maxTxRetries  = 3
	txBackoffBase = 50 * time.Millisecond
)

var (
	errTxBegin            = errors.New("failed to begin transaction")
	errTxCommit           = errors.New("failed to commit transaction")
	errMaxRetriesExceeded = errors.New("transaction failed after max retries")
)

type pgUnitOfWork struct {
	db      database.PgxIface
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewUnitOfWork(db database.PgxIface, log *zap.Logger, m *metrics.Metrics) UnitOfWork {
	return &pgUnitOfWork{
		db:      db,
		log:     log.With(zap.String("repository", "uow")),
		metrics: m,
	}
}

func (u *pgUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	// No defer inside the loop: each attempt closes its own transaction.
	for attempt := 0; attempt <= maxTxRetries; attempt++ {
		pgxTx, err := u.db.BeginTx(ctx, opts)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "begin transaction"), errTxBegin)
		}

		err = fn(ctx, &pgTx{tx: pgxTx, log: u.log})
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errors.Mark(errors.Wrap(err, "commit transaction"), errTxCommit)
		}

		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.log.Warn("Rollback failed", zap.Int("attempt", attempt+1), zap.Error(rbErr))
		}

		if !database.IsRetryable(err) {
			return err
		}
		if attempt == maxTxRetries {
			u.log.Error("Transaction failed after max retries",
				zap.Int("attempts", attempt+1),
				zap.Error(err),
			)
			return errors.Mark(err, errMaxRetriesExceeded)
		}

		wait := backoff(attempt, txBackoffBase)
		u.metrics.ObserveTxRetry()
		u.log.Warn("Retrying transaction",
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return errMaxRetriesExceeded
}

func backoff(attempt int, base time.Duration) time.Duration {
	wait := time.Duration(1<<attempt) * base
	return wait + time.Duration(jitter(int64(wait/5)))
}

func jitter(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// #nosec G115 -- high bit masked
	return int64(binary.BigEndian.Uint64(buf[:])&0x7FFFFFFFFFFFFFFF) % n
}

type pgTx struct {
	tx  pgx.Tx
	log *zap.Logger

	seats     SeatRepository
	seatLocks SeatLockRepository
	sessions  BookingSessionRepository
	orders    OrderRepository
}

func (t *pgTx) Seats() SeatRepository {
	if t.seats == nil {
		t.seats = NewSeatRepository(t.tx, t.log)
	}
	return t.seats
}

func (t *pgTx) SeatLocks() SeatLockRepository {
	if t.seatLocks == nil {
		t.seatLocks = NewSeatLockRepository(t.tx, t.log)
	}
	return t.seatLocks
}

func (t *pgTx) Sessions() BookingSessionRepository {
	if t.sessions == nil {
		t.sessions = NewBookingSessionRepository(t.tx, t.log)
	}
	return t.sessions
}

func (t *pgTx) Orders() OrderRepository {
	if t.orders == nil {
		t.orders = NewOrderRepository(t.tx, t.log)
	}
	return t.orders
}
