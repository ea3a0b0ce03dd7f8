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

// ErrPendingOrderExists is returned when a session already has a PENDING order.
var ErrPendingOrderExists = errors.New("booking session already has a pending order")

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, updatedAt time.Time) error
	FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error)
}

type orderRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewOrderRepository(db database.DBTX, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, booking_session_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.BookingSessionID,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errors.Mark(errors.Wrap(err, "create order"), ErrPendingOrderExists)
		}
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("booking_session_id", order.BookingSessionID.String()),
		)
		return errors.Wrap(err, "create order")
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.find(ctx, `
		SELECT id, booking_session_id, status, created_at, updated_at
		FROM orders
		WHERE id = $1`, id)
}

func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.find(ctx, `
		SELECT id, booking_session_id, status, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE`, id)
}

func (r *orderRepository) find(ctx context.Context, query string, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.BookingSessionID,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, errors.Wrap(err, "find order")
	}

	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, updatedAt time.Time) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, status, updatedAt, id)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return errors.Wrap(err, "update order status")
	}
	if tag.RowsAffected() == 0 {
		return errors.Newf("order %s not found", id)
	}

	return nil
}

func (r *orderRepository) FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM orders
		WHERE status = $1 AND created_at <= $2
		ORDER BY created_at
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, entity.OrderStatusPending, createdBefore, limit)
	if err != nil {
		r.log.Error("Failed to find stale pending orders", zap.Error(err))
		return nil, errors.Wrap(err, "find stale pending orders")
	}

	return scanIDs(rows)
}
