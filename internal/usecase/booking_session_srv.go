package usecase

import (
	"context"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/apperr"
	"cinema-reservation/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingSessionService interface {
	Create(ctx context.Context) (*response.BookingSessionResponse, error)
	Get(ctx context.Context, sessionID string) (*response.BookingSessionResponse, error)
}

type bookingSessionService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewBookingSessionService(repo *repository.Repository, ports Ports, log *zap.Logger) BookingSessionService {
	return &bookingSessionService{
		repo:  repo,
		clock: ports.Clock,
		log:   log.With(zap.String("service", "booking_session")),
	}
}

func (s *bookingSessionService) Create(ctx context.Context) (*response.BookingSessionResponse, error) {
	now := s.clock.Now()
	session := &entity.BookingSession{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		State: entity.BookingSessionDraft,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("Booking session created", zap.String("session_id", session.ID.String()))

	res := response.BookingSessionToResponse(session, nil)
	return &res, nil
}

func (s *bookingSessionService) Get(ctx context.Context, sessionID string) (*response.BookingSessionResponse, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, invalidPathID("session_id", sessionID)
	}

	session, err := s.repo.Session.FindByID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.NotFound("booking session", sid.String())
	}

	locks, err := s.repo.SeatLock.FindBySession(ctx, sid)
	if err != nil {
		return nil, err
	}

	res := response.BookingSessionToResponse(session, locks)
	return &res, nil
}
