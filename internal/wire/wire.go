package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/metrics"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds what main needs after wiring: the router to serve and the
// services the background worker drives.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(repo *repository.Repository, db adaptor.Pinger, config *utils.Config, ports usecase.Ports, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, ports, logger)
	handler := adaptor.NewHandler(service, db, logger)

	return &App{
		Router:  setupRouter(handler, ports.Metrics, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, m *metrics.Metrics, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	wireBooking(r, handler.Booking)
	wireOrder(r, handler.Order)
	wireShowtime(r, handler.Showtime)

	r.Get("/health", handler.Health.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
