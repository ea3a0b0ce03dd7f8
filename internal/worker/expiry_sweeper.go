package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// OrderExpirer expires PENDING orders past the payment timeout.
type OrderExpirer interface {
	ExpireStale(ctx context.Context, limit int) (int, error)
}

// LockReleaser frees expired seat locks of sessions without an order.
type LockReleaser interface {
	ReleaseExpired(ctx context.Context, limit int) (int, error)
}

// ExpirySweeper periodically expires stale orders and releases expired
// seat locks. Each pass is a batch of independent transactions, so
// stopping mid-pass leaves no partial state behind.
type ExpirySweeper struct {
	orders    OrderExpirer
	locks     LockReleaser
	interval  time.Duration
	batchSize int
	log       *zap.Logger

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewExpirySweeper(orders OrderExpirer, locks LockReleaser, interval time.Duration, batchSize int, log *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		orders:    orders,
		locks:     locks,
		interval:  interval,
		batchSize: batchSize,
		log:       log.With(zap.String("worker", "expiry_sweeper")),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called. A second call
// returns immediately.
func (s *ExpirySweeper) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	defer close(s.doneCh)

	if s.interval <= 0 {
		s.log.Error("Expiry sweeper not started", zap.Duration("interval", s.interval))
		return
	}

	s.log.Info("Expiry sweeper started",
		zap.Duration("interval", s.interval),
		zap.Int("batch_size", s.batchSize),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Expiry sweeper stopped", zap.String("reason", "context cancelled"))
			return
		case <-s.stopCh:
			s.log.Info("Expiry sweeper stopped", zap.String("reason", "stop requested"))
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop signals Start to return and waits for the current pass to finish.
// It does not wait when Start never ran.
func (s *ExpirySweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	if s.started.Load() {
		<-s.doneCh
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	expired, err := s.orders.ExpireStale(ctx, s.batchSize)
	if err != nil {
		s.log.Error("Failed to expire stale orders", zap.Error(err), zap.Int("expired", expired))
	} else if expired > 0 {
		s.log.Info("Stale orders expired", zap.Int("count", expired))
	}

	released, err := s.locks.ReleaseExpired(ctx, s.batchSize)
	if err != nil {
		s.log.Error("Failed to release expired seat locks", zap.Error(err), zap.Int("released", released))
		return
	}
	if released > 0 {
		s.log.Info("Expired seat locks released", zap.Int("count", released))
	} else {
		s.log.Debug("Nothing to sweep")
	}
}
