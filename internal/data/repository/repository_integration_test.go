//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/apperr"
	"cinema-reservation/pkg/clock"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

const (
	dbName      = "cinema_reservation"
	dbUser      = "test_user"
	dbPassword  = "test_password"
	dbImageName = "postgres:17-alpine"
)

type postgresSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        database.PgxIface
	repo      *repository.Repository
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(postgresSuite))
}

func (s *postgresSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, dbImageName,
		tcpostgres.WithDatabase(dbName),
		tcpostgres.WithUsername(dbUser),
		tcpostgres.WithPassword(dbPassword),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(dsn, "file://../../../migrations"))

	s.db, err = database.Connect(ctx, dsn, 20)
	s.Require().NoError(err)
	s.repo = repository.NewRepository(s.db, zap.NewNop(), nil)
}

func (s *postgresSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *postgresSuite) SetupTest() {
	_, err := s.db.Exec(context.Background(),
		`TRUNCATE orders, seat_locks, booking_sessions, seats, showtimes CASCADE`)
	s.Require().NoError(err)
}

func (s *postgresSuite) seedShowtime(seats int) (uuid.UUID, []uuid.UUID) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	showtime := &entity.Showtime{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:    "Late Show",
		StartsAt: now.Add(3 * time.Hour),
	}
	s.Require().NoError(s.repo.Showtime.Create(ctx, showtime))

	rows := make([]*entity.Seat, seats)
	ids := make([]uuid.UUID, seats)
	for i := range rows {
		rows[i] = &entity.Seat{
			Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			ShowtimeID: showtime.ID,
			RowLabel:   "A",
			SeatNumber: i + 1,
			Status:     entity.SeatStatusAvailable,
		}
		ids[i] = rows[i].ID
	}
	s.Require().NoError(s.repo.Seat.CreateBatch(ctx, rows))
	return showtime.ID, ids
}

func (s *postgresSuite) seedSession() uuid.UUID {
	now := time.Now().UTC().Truncate(time.Microsecond)
	session := &entity.BookingSession{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		State: entity.BookingSessionDraft,
	}
	s.Require().NoError(s.repo.Session.Create(context.Background(), session))
	return session.ID
}

func (s *postgresSuite) newService() *usecase.Service {
	config := &utils.Config{
		Redis: utils.RedisConfig{SeatMapTTL: time.Second},
		Reservation: utils.ReservationConfig{
			LockTTL:        10 * time.Minute,
			PaymentTimeout: 15 * time.Minute,
		},
	}
	return usecase.NewService(s.repo, config, usecase.Ports{Clock: clock.NewRealClock()}, zap.NewNop())
}

func (s *postgresSuite) TestSeatLockPrimaryKeyRejectsSecondHolder() {
	ctx := context.Background()
	_, seats := s.seedShowtime(2)
	first, second := s.seedSession(), s.seedSession()
	expires := time.Now().UTC().Add(time.Minute)

	s.Require().NoError(s.repo.SeatLock.CreateBatch(ctx, []*entity.SeatLock{
		{SeatID: seats[0], LockedBySession: first, ExpiresAt: expires, CreatedAt: time.Now().UTC()},
	}))

	err := s.repo.SeatLock.CreateBatch(ctx, []*entity.SeatLock{
		{SeatID: seats[1], LockedBySession: second, ExpiresAt: expires, CreatedAt: time.Now().UTC()},
		{SeatID: seats[0], LockedBySession: second, ExpiresAt: expires, CreatedAt: time.Now().UTC()},
	})
	s.Require().Error(err)
	s.True(errors.Is(err, repository.ErrSeatAlreadyLocked))

	// the batch insert is a single statement, so the first row is gone too
	locks, err := s.repo.SeatLock.FindBySeatIDs(ctx, seats)
	s.Require().NoError(err)
	s.Require().Len(locks, 1)
	s.Equal(first, locks[0].LockedBySession)
}

func (s *postgresSuite) TestOnePendingOrderPerSession() {
	ctx := context.Background()
	session := s.seedSession()
	now := time.Now().UTC().Truncate(time.Microsecond)

	newOrder := func() *entity.Order {
		return &entity.Order{
			Base:             entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			BookingSessionID: session,
			Status:           entity.OrderStatusPending,
		}
	}

	first := newOrder()
	s.Require().NoError(s.repo.Order.Create(ctx, first))

	err := s.repo.Order.Create(ctx, newOrder())
	s.Require().Error(err)
	s.True(errors.Is(err, repository.ErrPendingOrderExists))

	s.Require().NoError(s.repo.Order.UpdateStatus(ctx, first.ID, entity.OrderStatusExpired, now))
	s.NoError(s.repo.Order.Create(ctx, newOrder()))
}

func (s *postgresSuite) TestWithinRollsBackOnError() {
	ctx := context.Background()
	showtime, seats := s.seedShowtime(1)
	session := s.seedSession()
	boom := errors.New("boom")

	err := s.repo.UoW.Within(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, err := tx.Seats().UpdateStatus(ctx, seats, entity.SeatStatusAvailable, entity.SeatStatusLocked, time.Now().UTC()); err != nil {
			return err
		}
		if err := tx.SeatLocks().CreateBatch(ctx, []*entity.SeatLock{
			{SeatID: seats[0], LockedBySession: session, ExpiresAt: time.Now().UTC().Add(time.Minute), CreatedAt: time.Now().UTC()},
		}); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	locks, err := s.repo.SeatLock.FindBySession(ctx, session)
	s.Require().NoError(err)
	s.Empty(locks)

	got, err := s.repo.Seat.FindByShowtime(ctx, showtime)
	s.Require().NoError(err)
	s.Equal(entity.SeatStatusAvailable, got[0].Status)
}

func (s *postgresSuite) TestFindExpiredSkipsLiveLocksAndOrderedSessions() {
	ctx := context.Background()
	_, seats := s.seedShowtime(3)
	stale, live, ordered := s.seedSession(), s.seedSession(), s.seedSession()
	now := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.repo.SeatLock.CreateBatch(ctx, []*entity.SeatLock{
		{SeatID: seats[0], LockedBySession: stale, ExpiresAt: now.Add(-time.Minute), CreatedAt: now},
		{SeatID: seats[1], LockedBySession: live, ExpiresAt: now.Add(time.Minute), CreatedAt: now},
		{SeatID: seats[2], LockedBySession: ordered, ExpiresAt: now.Add(-time.Minute), CreatedAt: now},
	}))
	s.Require().NoError(s.repo.Session.UpdateState(ctx, ordered, entity.BookingSessionPendingPayment, now))

	expired, err := s.repo.SeatLock.FindExpired(ctx, now, 10)
	s.Require().NoError(err)
	s.Require().Len(expired, 1)
	s.Equal(seats[0], expired[0].SeatID)
}

func (s *postgresSuite) TestConcurrentLocksHaveOneWinner() {
	ctx := context.Background()
	_, seats := s.seedShowtime(4)
	svc := s.newService()

	const contenders = 12
	sessions := make([]uuid.UUID, contenders)
	for i := range sessions {
		sessions[i] = s.seedSession()
	}

	req := &request.SeatSelectionRequest{SeatIDs: utils.UUIDStrings(seats[1:3])}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for _, session := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.SeatLock.Lock(ctx, session.String(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, apperr.ErrConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	s.Empty(others)
	s.Equal(1, wins)
	s.Equal(contenders-1, conflicts)

	locks, err := s.repo.SeatLock.FindBySeatIDs(ctx, seats)
	s.Require().NoError(err)
	s.Require().Len(locks, 2)
	s.Equal(locks[0].LockedBySession, locks[1].LockedBySession)
}

func (s *postgresSuite) TestLockOrderExpireRoundTrip() {
	ctx := context.Background()
	showtime, seats := s.seedShowtime(4)
	svc := s.newService()
	session := s.seedSession()

	locked, err := svc.SeatLock.Lock(ctx, session.String(), &request.SeatSelectionRequest{
		SeatIDs: utils.UUIDStrings(seats[:2]),
	})
	s.Require().NoError(err)
	s.Equal(2, locked.TotalHeld)

	order, err := svc.Order.Create(ctx, session.String())
	s.Require().NoError(err)

	expired, err := svc.Order.Expire(ctx, order.ID)
	s.Require().NoError(err)
	s.Len(expired.ReleasedSeats, 2)

	got, err := s.repo.Seat.FindByShowtime(ctx, showtime)
	s.Require().NoError(err)
	for _, seat := range got {
		s.Equal(entity.SeatStatusAvailable, seat.Status, seat.Label())
	}

	_, err = svc.Order.Expire(ctx, order.ID)
	s.Require().Error(err)
	s.Equal(apperr.KindInvalidOrderState, apperr.KindOf(err))
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, dbImageName,
		tcpostgres.WithDatabase(dbName),
		tcpostgres.WithUsername(dbUser),
		tcpostgres.WithPassword(dbPassword),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(dsn, "file://../../../migrations"))
	assert.NoError(t, database.Migrate(dsn, "file://../../../migrations"), "second run is a no-op")
}
