package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/internal/usecase/usecasemock"
	"cinema-reservation/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T) *chi.Mux {
	ctrl := gomock.NewController(t)
	service := &usecase.Service{
		SeatLock:       usecasemock.NewMockSeatLockService(ctrl),
		Order:          usecasemock.NewMockOrderService(ctrl),
		BookingSession: usecasemock.NewMockBookingSessionService(ctrl),
		Showtime:       usecasemock.NewMockShowtimeService(ctrl),
	}
	db := pingFunc(func(context.Context) error { return nil })

	handler := adaptor.NewHandler(service, db, zap.NewNop())
	return setupRouter(handler, metrics.NewWithRegistry(prometheus.NewRegistry()), zap.NewNop())
}

func TestRoutes(t *testing.T) {
	router := newTestRouter(t)

	registered := make(map[string]bool)
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for _, route := range []string{
		"POST /booking/sessions",
		"GET /booking/sessions/{session_id}",
		"POST /booking/sessions/{session_id}/seats",
		"DELETE /booking/sessions/{session_id}/seats",
		"POST /booking/sessions/{session_id}/orders",
		"POST /orders/{order_id}/expire",
		"GET /showtimes/{showtime_id}/seats",
		"GET /health",
		"GET /metrics",
	} {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
