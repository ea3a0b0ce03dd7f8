package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/apperr"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	seats    usecase.SeatLockService
	sessions usecase.BookingSessionService
	log      *zap.Logger
}

func NewBookingHandler(seats usecase.SeatLockService, sessions usecase.BookingSessionService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		seats:    seats,
		sessions: sessions,
		log:      log.With(zap.String("handler", "booking")),
	}
}

// CreateSession handles POST /booking/sessions
func (h *BookingHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Create(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "create booking session")
		return
	}

	utils.ResponseCreated(w, "Booking session created", session)
}

// GetSession handles GET /booking/sessions/{session_id}
func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get booking session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// LockSeats handles POST /booking/sessions/{session_id}/seats
func (h *BookingHandler) LockSeats(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSelection(w, r)
	if !ok {
		return
	}

	result, err := h.seats.Lock(r.Context(), chi.URLParam(r, "session_id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "lock seats")
		return
	}

	utils.ResponseSuccess(w, "Seats locked", result)
}

// ReleaseSeats handles DELETE /booking/sessions/{session_id}/seats
func (h *BookingHandler) ReleaseSeats(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSelection(w, r)
	if !ok {
		return
	}

	result, err := h.seats.Release(r.Context(), chi.URLParam(r, "session_id"), req)
	if err != nil {
		writeServiceError(w, h.log, err, "release seats")
		return
	}

	utils.ResponseSuccess(w, "Seats released", result)
}

func (h *BookingHandler) decodeSelection(w http.ResponseWriter, r *http.Request) (*request.SeatSelectionRequest, bool) {
	var req request.SeatSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("Invalid request body", zap.Error(err))
		utils.ResponseBadRequest(w, string(apperr.KindInvalidRequest), "Invalid request body", map[string]utils.ErrorDetail{
			"body": {Msg: "body must be a JSON object with a seatIds array", Path: "", Location: "body"},
		})
		return nil, false
	}
	return &req, true
}
