package usecase

import (
	"context"
	"encoding/json"
	"time"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	// SeatMap is a read-only view. Lock and Release never consult it.
	SeatMap(ctx context.Context, showtimeID string) (*response.SeatMapResponse, error)
}

type showtimeService struct {
	repo  *repository.Repository
	cache SeatMapCache
	ttl   time.Duration
	log   *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, ttl time.Duration, ports Ports, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo:  repo,
		cache: ports.Cache,
		ttl:   ttl,
		log:   log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) SeatMap(ctx context.Context, showtimeID string) (*response.SeatMapResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, invalidPathID("showtime_id", showtimeID)
	}

	if data, err := s.cache.Get(ctx, id.String()); err == nil {
		var cached response.SeatMapResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.log.Warn("Discarding unreadable seat map cache entry", zap.String("showtime_id", id.String()))
	}

	// read before the seats so an invalidation racing this read is detected
	generation, genErr := s.cache.Generation(ctx, id.String())

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, apperr.NotFound("showtime", id.String())
	}

	seats, err := s.repo.Seat.FindByShowtime(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &response.SeatMapResponse{
		ShowtimeID: showtime.ID.String(),
		Title:      showtime.Title,
		StartsAt:   showtime.StartsAt,
		Seats:      make([]response.SeatResponse, 0, len(seats)),
	}
	for _, seat := range seats {
		res.Seats = append(res.Seats, response.SeatToResponse(seat))
	}

	if genErr != nil {
		return res, nil
	}
	if data, err := json.Marshal(res); err == nil {
		stored, err := s.cache.Set(ctx, id.String(), generation, data, s.ttl)
		switch {
		case err != nil:
			s.log.Warn("Failed to cache seat map", zap.Error(err), zap.String("showtime_id", id.String()))
		case !stored:
			s.log.Debug("Seat map changed while rendering, not cached", zap.String("showtime_id", id.String()))
		}
	}

	return res, nil
}
