package entity

import (
	"time"

	"github.com/google/uuid"
)

type SeatLock struct {
	SeatID          uuid.UUID `db:"seat_id"`
	LockedBySession uuid.UUID `db:"locked_by_session"`
	ExpiresAt       time.Time `db:"expires_at"`
	CreatedAt       time.Time `db:"created_at"`
}

func (l *SeatLock) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
