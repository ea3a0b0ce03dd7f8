package repository

import (
	"context"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrSeatAlreadyLocked is returned when inserting a lock for a seat that
// already has one. The seat_id primary key makes this the last line of
// defence against double locking.
var ErrSeatAlreadyLocked = errors.New("seat already locked")

type SeatLockRepository interface {
	CreateBatch(ctx context.Context, locks []*entity.SeatLock) error
	FindBySeatIDs(ctx context.Context, seatIDs []uuid.UUID) ([]*entity.SeatLock, error)
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.SeatLock, error)
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
	Extend(ctx context.Context, sessionID uuid.UUID, seatIDs []uuid.UUID, expiresAt time.Time) error
	DeleteBySeats(ctx context.Context, sessionID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error)
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)

	// FindExpired lists expired locks of DRAFT sessions. Rows are not locked;
	// callers re-check them under the session lock before releasing.
	FindExpired(ctx context.Context, now time.Time, limit int) ([]*entity.SeatLock, error)
}

type seatLockRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewSeatLockRepository(db database.DBTX, log *zap.Logger) SeatLockRepository {
	return &seatLockRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_lock")),
	}
}

const seatLockColumns = `seat_id, locked_by_session, expires_at, created_at`

func (r *seatLockRepository) CreateBatch(ctx context.Context, locks []*entity.SeatLock) error {
	if len(locks) == 0 {
		return nil
	}

	seatIDs := make([]uuid.UUID, len(locks))
	sessions := make([]uuid.UUID, len(locks))
	expires := make([]time.Time, len(locks))
	created := make([]time.Time, len(locks))
	for i, l := range locks {
		seatIDs[i] = l.SeatID
		sessions[i] = l.LockedBySession
		expires[i] = l.ExpiresAt
		created[i] = l.CreatedAt
	}

	query := `
		INSERT INTO seat_locks (` + seatLockColumns + `)
		SELECT * FROM UNNEST($1::uuid[], $2::uuid[], $3::timestamptz[], $4::timestamptz[])
	`

	if _, err := r.db.Exec(ctx, query, seatIDs, sessions, expires, created); err != nil {
		if database.IsUniqueViolation(err) {
			return errors.Mark(errors.Wrap(err, "create seat locks"), ErrSeatAlreadyLocked)
		}
		r.log.Error("Failed to create seat locks",
			zap.Error(err),
			zap.Int("count", len(locks)),
		)
		return errors.Wrap(err, "create seat locks")
	}

	return nil
}

func (r *seatLockRepository) FindBySeatIDs(ctx context.Context, seatIDs []uuid.UUID) ([]*entity.SeatLock, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + seatLockColumns + `
		FROM seat_locks
		WHERE seat_id = ANY($1)
		ORDER BY seat_id
	`

	rows, err := r.db.Query(ctx, query, seatIDs)
	if err != nil {
		r.log.Error("Failed to find seat locks by seat ids", zap.Error(err))
		return nil, errors.Wrap(err, "find seat locks by seat ids")
	}

	return scanSeatLocks(rows)
}

func (r *seatLockRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.SeatLock, error) {
	query := `
		SELECT ` + seatLockColumns + `
		FROM seat_locks
		WHERE locked_by_session = $1
		ORDER BY created_at, seat_id
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to find seat locks by session",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, errors.Wrap(err, "find seat locks by session")
	}

	return scanSeatLocks(rows)
}

func (r *seatLockRepository) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM seat_locks WHERE locked_by_session = $1`,
		sessionID,
	).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count seat locks",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return 0, errors.Wrap(err, "count seat locks")
	}

	return count, nil
}

func (r *seatLockRepository) Extend(ctx context.Context, sessionID uuid.UUID, seatIDs []uuid.UUID, expiresAt time.Time) error {
	if len(seatIDs) == 0 {
		return nil
	}

	query := `
		UPDATE seat_locks
		SET expires_at = $1
		WHERE locked_by_session = $2 AND seat_id = ANY($3)
	`

	if _, err := r.db.Exec(ctx, query, expiresAt, sessionID, seatIDs); err != nil {
		r.log.Error("Failed to extend seat locks",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return errors.Wrap(err, "extend seat locks")
	}

	return nil
}

func (r *seatLockRepository) DeleteBySeats(ctx context.Context, sessionID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}

	query := `
		DELETE FROM seat_locks
		WHERE locked_by_session = $1 AND seat_id = ANY($2)
		RETURNING seat_id
	`

	rows, err := r.db.Query(ctx, query, sessionID, seatIDs)
	if err != nil {
		r.log.Error("Failed to delete seat locks",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, errors.Wrap(err, "delete seat locks")
	}

	return scanIDs(rows)
}

func (r *seatLockRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		DELETE FROM seat_locks
		WHERE locked_by_session = $1
		RETURNING seat_id
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to delete session seat locks",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, errors.Wrap(err, "delete session seat locks")
	}

	return scanIDs(rows)
}

func (r *seatLockRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]*entity.SeatLock, error) {
	query := `
		SELECT l.seat_id, l.locked_by_session, l.expires_at, l.created_at
		FROM seat_locks l
		JOIN booking_sessions s ON s.id = l.locked_by_session
		WHERE l.expires_at <= $1 AND s.state = $2
		ORDER BY l.expires_at
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, now, entity.BookingSessionDraft, limit)
	if err != nil {
		r.log.Error("Failed to find expired seat locks", zap.Error(err))
		return nil, errors.Wrap(err, "find expired seat locks")
	}

	return scanSeatLocks(rows)
}

func scanSeatLocks(rows pgx.Rows) ([]*entity.SeatLock, error) {
	defer rows.Close()

	var locks []*entity.SeatLock
	for rows.Next() {
		var l entity.SeatLock
		if err := rows.Scan(&l.SeatID, &l.LockedBySession, &l.ExpiresAt, &l.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan seat lock")
		}
		locks = append(locks, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate seat locks")
	}
	return locks, nil
}

func scanIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, errors.Wrap(err, "collect ids")
	}
	return ids, nil
}
