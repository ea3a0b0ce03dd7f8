package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type SeatResponse struct {
	ID         string            `json:"id"`
	ShowtimeID string            `json:"showtimeId"`
	RowLabel   string            `json:"rowLabel"`
	SeatNumber int               `json:"seatNumber"`
	Label      string            `json:"label"`
	Status     entity.SeatStatus `json:"status"`
}

type LockedSeatResponse struct {
	SeatResponse
	ExpiresAt time.Time `json:"expiresAt"`
}

type LockSeatsResponse struct {
	LockedSeats []LockedSeatResponse `json:"lockedSeats"`
	TotalHeld   int                  `json:"totalHeld"`
}

type ReleaseSeatsResponse struct {
	ReleasedSeats []string `json:"releasedSeats"`
}

type SeatMapResponse struct {
	ShowtimeID string         `json:"showtimeId"`
	Title      string         `json:"title"`
	StartsAt   time.Time      `json:"startsAt"`
	Seats      []SeatResponse `json:"seats"`
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:         seat.ID.String(),
		ShowtimeID: seat.ShowtimeID.String(),
		RowLabel:   seat.RowLabel,
		SeatNumber: seat.SeatNumber,
		Label:      seat.Label(),
		Status:     seat.Status,
	}
}
