package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockOrderExpirer struct {
	mock.Mock
}

func (m *mockOrderExpirer) ExpireStale(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

type mockLockReleaser struct {
	mock.Mock
}

func (m *mockLockReleaser) ReleaseExpired(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

func TestNewExpirySweeper(t *testing.T) {
	sweeper := NewExpirySweeper(new(mockOrderExpirer), new(mockLockReleaser), time.Minute, 50, zap.NewNop())

	assert.Equal(t, time.Minute, sweeper.interval)
	assert.Equal(t, 50, sweeper.batchSize)
	assert.NotNil(t, sweeper.stopCh)
	assert.NotNil(t, sweeper.doneCh)
}

func TestExpirySweeper_Sweep(t *testing.T) {
	t.Run("expires orders then releases locks", func(t *testing.T) {
		orders, locks := new(mockOrderExpirer), new(mockLockReleaser)
		orders.On("ExpireStale", mock.Anything, 100).Return(2, nil).Once()
		locks.On("ReleaseExpired", mock.Anything, 100).Return(3, nil).Once()

		NewExpirySweeper(orders, locks, time.Minute, 100, zap.NewNop()).sweep(context.Background())

		orders.AssertExpectations(t)
		locks.AssertExpectations(t)
	})

	t.Run("order failure does not skip lock release", func(t *testing.T) {
		orders, locks := new(mockOrderExpirer), new(mockLockReleaser)
		orders.On("ExpireStale", mock.Anything, 10).Return(0, errors.New("db down")).Once()
		locks.On("ReleaseExpired", mock.Anything, 10).Return(0, nil).Once()

		NewExpirySweeper(orders, locks, time.Minute, 10, zap.NewNop()).sweep(context.Background())

		locks.AssertExpectations(t)
	})
}

func TestExpirySweeper_StartStop(t *testing.T) {
	var passes atomic.Int32
	orders, locks := new(mockOrderExpirer), new(mockLockReleaser)
	orders.On("ExpireStale", mock.Anything, 5).Return(0, nil)
	locks.On("ReleaseExpired", mock.Anything, 5).Return(0, nil).Run(func(mock.Arguments) {
		passes.Add(1)
	})

	sweeper := NewExpirySweeper(orders, locks, 10*time.Millisecond, 5, zap.NewNop())
	go sweeper.Start(context.Background())

	assert.Eventually(t, func() bool {
		return passes.Load() > 0
	}, time.Second, 5*time.Millisecond)

	sweeper.Stop()
	sweeper.Stop()
}

func TestExpirySweeper_StopsOnContextCancel(t *testing.T) {
	sweeper := NewExpirySweeper(new(mockOrderExpirer), new(mockLockReleaser), time.Hour, 5, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go sweeper.Start(ctx)
	cancel()

	select {
	case <-sweeper.doneCh:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}

func TestExpirySweeper_NonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		orders, locks := new(mockOrderExpirer), new(mockLockReleaser)
		sweeper := NewExpirySweeper(orders, locks, interval, 100, zap.NewNop())

		assert.NotPanics(t, func() { sweeper.Start(context.Background()) })
		assert.NotPanics(t, sweeper.Stop)
		orders.AssertNotCalled(t, "ExpireStale", mock.Anything, mock.Anything)
		locks.AssertNotCalled(t, "ReleaseExpired", mock.Anything, mock.Anything)
	}
}

func TestExpirySweeper_StopWithoutStart(t *testing.T) {
	sweeper := NewExpirySweeper(new(mockOrderExpirer), new(mockLockReleaser), time.Hour, 5, zap.NewNop())

	stopped := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked although Start never ran")
	}

	// a late Start observes the stop and returns
	sweeper.Start(context.Background())
}
