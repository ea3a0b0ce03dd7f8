package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/apperr"
	"cinema-reservation/pkg/clock"
	"cinema-reservation/pkg/events"
	"cinema-reservation/pkg/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	// Create opens a PENDING order for a DRAFT session that holds seats and
	// moves the session to PENDING_PAYMENT.
	Create(ctx context.Context, sessionID string) (*response.OrderResponse, error)

	// Expire moves a PENDING order to EXPIRED, returns its session to DRAFT
	// and frees every seat the session holds, atomically.
	Expire(ctx context.Context, orderID string) (*response.ExpireOrderResponse, error)

	// ExpireStale expires up to limit PENDING orders older than the payment
	// timeout and returns how many were expired.
	ExpireStale(ctx context.Context, limit int) (int, error)
}

type orderService struct {
	repo           *repository.Repository
	paymentTimeout time.Duration
	clock          clock.Clock
	after          afterCommit
	log            *zap.Logger
}

func NewOrderService(repo *repository.Repository, config utils.ReservationConfig, ports Ports, log *zap.Logger) OrderService {
	log = log.With(zap.String("service", "order"))
	return &orderService{
		repo:           repo,
		paymentTimeout: config.PaymentTimeout,
		clock:          ports.Clock,
		after:          newAfterCommit(ports, log),
		log:            log,
	}
}

func (s *orderService) Create(ctx context.Context, sessionID string) (*response.OrderResponse, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, invalidPathID("session_id", sessionID)
	}

	now := s.clock.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingSessionID: sid,
		Status:           entity.OrderStatusPending,
	}

	err = s.repo.UoW.Within(ctx, func(ctx context.Context, tx repository.Tx) error {
		session, err := tx.Sessions().FindByIDForUpdate(ctx, sid)
		if err != nil {
			return err
		}
		if session == nil {
			return apperr.NotFound("booking session", sid.String())
		}
		if session.State != entity.BookingSessionDraft {
			return apperr.Validation(apperr.KindInvalidSessionState,
				fmt.Sprintf("booking session %s is %s, orders can only be created from DRAFT", sid, session.State), nil)
		}

		held, err := tx.SeatLocks().CountBySession(ctx, sid)
		if err != nil {
			return err
		}
		if held == 0 {
			return apperr.Validation(apperr.KindInvalidSessionState,
				fmt.Sprintf("booking session %s holds no seats", sid), nil)
		}

		if err := tx.Orders().Create(ctx, order); err != nil {
			if errors.Is(err, repository.ErrPendingOrderExists) {
				return apperr.Validation(apperr.KindInvalidSessionState,
					fmt.Sprintf("booking session %s already has a pending order", sid), nil)
			}
			return err
		}

		return tx.Sessions().UpdateState(ctx, sid, entity.BookingSessionPendingPayment, now)
	})
	if err != nil {
		logFailure(s.log, "Create order failed", err, zap.String("session_id", sid.String()))
		return nil, err
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("session_id", sid.String()),
	)

	s.after.publish(ctx, events.RoutingOrderCreated, events.OrderCreated{
		OrderID:    order.ID.String(),
		SessionID:  sid.String(),
		OccurredAt: now,
	})

	res := response.OrderToResponse(order)
	return &res, nil
}

func (s *orderService) Expire(ctx context.Context, orderID string) (res *response.ExpireOrderResponse, err error) {
	defer func() {
		seats := 0
		if res != nil {
			seats = len(res.ReleasedSeats)
		}
		s.after.observe("expire", err, seats)
	}()

	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, invalidPathID("order_id", orderID)
	}

	now := s.clock.Now()
	var (
		sessionID uuid.UUID
		released  []uuid.UUID
		showtimes []string
	)

	// Lock order: order, then session, then seats.
	err = s.repo.UoW.Within(ctx, func(ctx context.Context, tx repository.Tx) error {
		order, err := tx.Orders().FindByIDForUpdate(ctx, oid)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.NotFound("order", oid.String())
		}
		if order.Status != entity.OrderStatusPending {
			return apperr.InvalidOrderState(oid, string(order.Status))
		}
		sessionID = order.BookingSessionID

		if err := tx.Orders().UpdateStatus(ctx, oid, entity.OrderStatusExpired, now); err != nil {
			return err
		}

		session, err := tx.Sessions().FindByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if session != nil && session.State == entity.BookingSessionPendingPayment {
			if err := tx.Sessions().UpdateState(ctx, sessionID, entity.BookingSessionDraft, now); err != nil {
				return err
			}
		}

		locks, err := tx.SeatLocks().FindBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		seatIDs := make([]uuid.UUID, len(locks))
		for i, l := range locks {
			seatIDs[i] = l.SeatID
		}

		seats, err := tx.Seats().FindByIDsForUpdate(ctx, seatIDs)
		if err != nil {
			return err
		}

		released, err = tx.SeatLocks().DeleteBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		if _, err := tx.Seats().UpdateStatus(ctx, released, entity.SeatStatusLocked, entity.SeatStatusAvailable, now); err != nil {
			return err
		}

		showtimes = showtimeIDs(seats)
		return nil
	})
	if err != nil {
		logFailure(s.log, "Expire order failed", err, zap.String("order_id", oid.String()))
		return nil, err
	}

	releasedIDs := utils.UUIDStrings(released)
	s.log.Info("Order expired",
		zap.String("order_id", oid.String()),
		zap.String("session_id", sessionID.String()),
		zap.Int("released_seats", len(releasedIDs)),
	)

	s.after.invalidate(ctx, showtimes...)
	s.after.publish(ctx, events.RoutingOrderExpired, events.OrderExpired{
		OrderID:       oid.String(),
		SessionID:     sessionID.String(),
		ReleasedSeats: releasedIDs,
		ExpiredAt:     now,
	})
	if len(releasedIDs) > 0 {
		s.after.publish(ctx, events.RoutingSeatReleased, events.SeatsReleased{
			SessionID:  sessionID.String(),
			SeatIDs:    releasedIDs,
			Reason:     "order_expired",
			OccurredAt: now,
		})
	}

	return &response.ExpireOrderResponse{
		OrderID:       oid.String(),
		Status:        entity.OrderStatusExpired,
		ExpiredAt:     now,
		Message:       fmt.Sprintf("order expired, %d seats released", len(releasedIDs)),
		ReleasedSeats: releasedIDs,
	}, nil
}

func (s *orderService) ExpireStale(ctx context.Context, limit int) (int, error) {
	cutoff := s.clock.Now().Add(-s.paymentTimeout)

	ids, err := s.repo.Order.FindStalePending(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	var (
		expired int
		errs    error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return expired, errors.CombineErrors(errs, err)
		}

		_, err := s.Expire(ctx, id.String())
		switch {
		case err == nil:
			expired++
		case apperr.KindOf(err) == apperr.KindInvalidOrderState, errors.Is(err, apperr.ErrNotFound):
			// Paid or expired by someone else since it was listed.
		default:
			errs = errors.CombineErrors(errs, err)
		}
	}

	return expired, errs
}
