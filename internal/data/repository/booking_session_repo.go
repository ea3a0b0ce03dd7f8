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

type BookingSessionRepository interface {
	Create(ctx context.Context, session *entity.BookingSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error)
	UpdateState(ctx context.Context, id uuid.UUID, state entity.BookingSessionState, updatedAt time.Time) error
}

type bookingSessionRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingSessionRepository(db database.DBTX, log *zap.Logger) BookingSessionRepository {
	return &bookingSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_session")),
	}
}

func (r *bookingSessionRepository) Create(ctx context.Context, session *entity.BookingSession) error {
	query := `
		INSERT INTO booking_sessions (id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.State,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking session",
			zap.Error(err),
			zap.String("session_id", session.ID.String()),
		)
		return errors.Wrap(err, "create booking session")
	}

	return nil
}

func (r *bookingSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error) {
	return r.find(ctx, `SELECT id, state, created_at, updated_at FROM booking_sessions WHERE id = $1`, id)
}

func (r *bookingSessionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error) {
	return r.find(ctx, `SELECT id, state, created_at, updated_at FROM booking_sessions WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingSessionRepository) find(ctx context.Context, query string, id uuid.UUID) (*entity.BookingSession, error) {
	var session entity.BookingSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.State,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, errors.Wrap(err, "find booking session")
	}

	return &session, nil
}

func (r *bookingSessionRepository) UpdateState(ctx context.Context, id uuid.UUID, state entity.BookingSessionState, updatedAt time.Time) error {
	query := `
		UPDATE booking_sessions
		SET state = $1, updated_at = $2
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, state, updatedAt, id)
	if err != nil {
		r.log.Error("Failed to update booking session state",
			zap.Error(err),
			zap.String("session_id", id.String()),
			zap.String("state", string(state)),
		)
		return errors.Wrap(err, "update booking session state")
	}
	if tag.RowsAffected() == 0 {
		return errors.Newf("booking session %s not found", id)
	}

	return nil
}
