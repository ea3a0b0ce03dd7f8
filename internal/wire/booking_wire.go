package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /booking/sessions - start a DRAFT session
	r.Post("/booking/sessions", bookingHandler.CreateSession)
	r.Get("/booking/sessions/{session_id}", bookingHandler.GetSession)

	// Seat locks are claimed and released as one batch.
	r.Post("/booking/sessions/{session_id}/seats", bookingHandler.LockSeats)
	r.Delete("/booking/sessions/{session_id}/seats", bookingHandler.ReleaseSeats)
}
