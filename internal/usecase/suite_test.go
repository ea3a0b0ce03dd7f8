package usecase_test

import (
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/internal/usecase/usecasemock"
	"cinema-reservation/pkg/clock"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	lockTTL        = 10 * time.Minute
	paymentTimeout = 15 * time.Minute
)

var baseTime = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func testConfig() *utils.Config {
	return &utils.Config{
		Redis: utils.RedisConfig{SeatMapTTL: 30 * time.Second},
		Reservation: utils.ReservationConfig{
			LockTTL:        lockTTL,
			PaymentTimeout: paymentTimeout,
			SweepBatchSize: 100,
		},
	}
}

// serviceSuite wires the services to an in-memory store. Publisher and
// cache accept any call; tests that assert on side effects build their own
// service with strict mocks through newService.
type serviceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *memStore
	clock     *clock.MockClock
	publisher *usecasemock.MockEventPublisher
	cache     *usecasemock.MockSeatMapCache
	svc       *usecase.Service

	showtime uuid.UUID
	rowA     []uuid.UUID
}

func (s *serviceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = newMemStore()
	s.clock = clock.NewMockClock(baseTime)

	s.publisher = usecasemock.NewMockEventPublisher(s.ctrl)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.cache = usecasemock.NewMockSeatMapCache(s.ctrl)
	s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.svc = s.newService(s.publisher, s.cache)

	s.showtime = s.store.addShowtime(baseTime)
	s.rowA = s.store.addRow(s.showtime, "A", 10, baseTime)
}

func (s *serviceSuite) newService(publisher usecase.EventPublisher, cache usecase.SeatMapCache) *usecase.Service {
	return usecase.NewService(s.store.repository(), testConfig(), usecase.Ports{
		Publisher: publisher,
		Cache:     cache,
		Clock:     s.clock,
	}, zap.NewNop())
}

func (s *serviceSuite) draftSession() uuid.UUID {
	return s.store.addSession(entity.BookingSessionDraft, s.clock.Now())
}

func selection(ids ...uuid.UUID) *request.SeatSelectionRequest {
	return &request.SeatSelectionRequest{SeatIDs: utils.UUIDStrings(ids)}
}
