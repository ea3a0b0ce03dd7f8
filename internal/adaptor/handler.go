package adaptor

import (
	"cinema-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking  *BookingHandler
	Order    *OrderHandler
	Showtime *ShowtimeHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, db Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Booking:  NewBookingHandler(service.SeatLock, service.BookingSession, log),
		Order:    NewOrderHandler(service.Order, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Health:   NewHealthHandler(db, log),
	}
}
