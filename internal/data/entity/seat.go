package entity

import (
	"strconv"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusLocked    SeatStatus = "LOCKED"
	SeatStatusSold      SeatStatus = "SOLD"
)

type Seat struct {
	Base
	ShowtimeID uuid.UUID  `db:"showtime_id"`
	RowLabel   string     `db:"row_label"`   // A, B, C, etc.
	SeatNumber int        `db:"seat_number"` // 1, 2, 3, etc.
	Status     SeatStatus `db:"status"`
}

// Label returns the printable position, e.g. "A7".
func (s *Seat) Label() string {
	return s.RowLabel + strconv.Itoa(s.SeatNumber)
}
