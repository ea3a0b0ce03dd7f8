package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler) {
	// GET /showtimes/{showtime_id}/seats - cached seat map, read only
	r.Get("/showtimes/{showtime_id}/seats", showtimeHandler.SeatMap)
}
