package usecase

//go:generate mockgen -destination=usecasemock/service_mock.go -package=usecasemock . SeatLockService,OrderService,BookingSessionService,ShowtimeService,EventPublisher,SeatMapCache

import (
	"context"
	"time"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/apperr"
	"cinema-reservation/pkg/clock"
	"cinema-reservation/pkg/metrics"
	"cinema-reservation/pkg/utils"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// EventPublisher delivers domain events after commit.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// SeatMapCache stores rendered seat maps keyed by showtime id. Every
// Invalidate bumps the showtime's generation; Set only writes when the
// generation still matches the one read before the seats were loaded, so a
// map rendered before a commit is never stored after its invalidation.
type SeatMapCache interface {
	Get(ctx context.Context, showtimeID string) ([]byte, error)
	Generation(ctx context.Context, showtimeID string) (int64, error)
	Set(ctx context.Context, showtimeID string, generation int64, data []byte, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, showtimeIDs ...string) error
}

type Service struct {
	SeatLock       SeatLockService
	Order          OrderService
	BookingSession BookingSessionService
	Showtime       ShowtimeService
}

// Ports are the collaborators outside the database. Nil fields fall back to
// no-op implementations and the real clock.
type Ports struct {
	Publisher EventPublisher
	Cache     SeatMapCache
	Clock     clock.Clock
	Metrics   *metrics.Metrics
}

func NewService(repo *repository.Repository, config *utils.Config, ports Ports, log *zap.Logger) *Service {
	if ports.Publisher == nil {
		ports.Publisher = noopPublisher{}
	}
	if ports.Cache == nil {
		ports.Cache = noopCache{}
	}
	if ports.Clock == nil {
		ports.Clock = clock.NewRealClock()
	}

	return &Service{
		SeatLock:       NewSeatLockService(repo, config.Reservation, ports, log),
		Order:          NewOrderService(repo, config.Reservation, ports, log),
		BookingSession: NewBookingSessionService(repo, ports, log),
		Showtime:       NewShowtimeService(repo, config.Redis.SeatMapTTL, ports, log),
	}
}

// afterCommit runs the best-effort side effects of a committed transaction.
// Failures are logged and never returned.
type afterCommit struct {
	publisher EventPublisher
	cache     SeatMapCache
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func newAfterCommit(ports Ports, log *zap.Logger) afterCommit {
	return afterCommit{
		publisher: ports.Publisher,
		cache:     ports.Cache,
		metrics:   ports.Metrics,
		log:       log,
	}
}

func (a afterCommit) invalidate(ctx context.Context, showtimeIDs ...string) {
	if len(showtimeIDs) == 0 {
		return
	}
	if err := a.cache.Invalidate(context.WithoutCancel(ctx), showtimeIDs...); err != nil {
		a.log.Warn("Failed to invalidate seat map cache",
			zap.Error(err),
			zap.Strings("showtime_ids", showtimeIDs),
		)
	}
}

func (a afterCommit) publish(ctx context.Context, routingKey string, payload any) {
	if err := a.publisher.Publish(context.WithoutCancel(ctx), routingKey, payload); err != nil {
		a.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
		)
	}
}

func (a afterCommit) observe(operation string, err error, seats int) {
	a.metrics.ObserveSeatOperation(operation, outcome(err), seats)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperr.ErrValidation):
		return "validation"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, error) { return nil, errCacheDisabled }

func (noopCache) Generation(context.Context, string) (int64, error) { return 0, errCacheDisabled }

func (noopCache) Set(context.Context, string, int64, []byte, time.Duration) (bool, error) {
	return false, nil
}

func (noopCache) Invalidate(context.Context, ...string) error { return nil }

var errCacheDisabled = errors.New("seat map cache disabled")
