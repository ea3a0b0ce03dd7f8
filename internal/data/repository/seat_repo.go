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

type SeatRepository interface {
	Create(ctx context.Context, seat *entity.Seat) error
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error)

	// Lock path: rows are returned ordered by id and locked until the
	// surrounding transaction ends.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	UpdateStatus(ctx context.Context, ids []uuid.UUID, from, to entity.SeatStatus, updatedAt time.Time) (int64, error)
}

type seatRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewSeatRepository(db database.DBTX, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

const seatColumns = `id, showtime_id, row_label, seat_number, status, created_at, updated_at`

func (r *seatRepository) Create(ctx context.Context, seat *entity.Seat) error {
	return r.CreateBatch(ctx, []*entity.Seat{seat})
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, seat := range seats {
		batch.Queue(`
			INSERT INTO seats (`+seatColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			seat.ID,
			seat.ShowtimeID,
			seat.RowLabel,
			seat.SeatNumber,
			seat.Status,
			seat.CreatedAt,
			seat.UpdatedAt,
		)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		r.log.Error("Failed to create seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return errors.Wrap(err, "create seats")
	}

	return nil
}

func (r *seatRepository) FindByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE showtime_id = $1
		ORDER BY row_label, seat_number
	`

	rows, err := r.db.Query(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to find seats by showtime",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, errors.Wrap(err, "find seats by showtime")
	}

	return scanSeats(rows)
}

func (r *seatRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// Locking in id order keeps concurrent batches from deadlocking each other.
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to lock seats",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, errors.Wrap(err, "find seats for update")
	}

	return scanSeats(rows)
}

func (r *seatRepository) UpdateStatus(ctx context.Context, ids []uuid.UUID, from, to entity.SeatStatus, updatedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE seats
		SET status = $1, updated_at = $2
		WHERE id = ANY($3) AND status = $4
	`

	tag, err := r.db.Exec(ctx, query, to, updatedAt, ids, from)
	if err != nil {
		r.log.Error("Failed to update seat status",
			zap.Error(err),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Int("count", len(ids)),
		)
		return 0, errors.Wrapf(err, "update seat status %s -> %s", from, to)
	}

	return tag.RowsAffected(), nil
}

func scanSeats(rows pgx.Rows) ([]*entity.Seat, error) {
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		if err := rows.Scan(
			&seat.ID,
			&seat.ShowtimeID,
			&seat.RowLabel,
			&seat.SeatNumber,
			&seat.Status,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan seat")
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate seats")
	}
	return seats, nil
}
