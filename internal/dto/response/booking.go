package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type HeldSeatResponse struct {
	SeatID    string    `json:"seatId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type BookingSessionResponse struct {
	ID        string                     `json:"id"`
	State     entity.BookingSessionState `json:"state"`
	HeldSeats []HeldSeatResponse         `json:"heldSeats"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

func BookingSessionToResponse(session *entity.BookingSession, locks []*entity.SeatLock) BookingSessionResponse {
	held := make([]HeldSeatResponse, 0, len(locks))
	for _, l := range locks {
		held = append(held, HeldSeatResponse{
			SeatID:    l.SeatID.String(),
			ExpiresAt: l.ExpiresAt,
		})
	}

	return BookingSessionResponse{
		ID:        session.ID.String(),
		State:     session.State,
		HeldSeats: held,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
