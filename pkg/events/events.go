// Package events publishes reservation domain events to RabbitMQ after the
// owning transaction has committed.
package events

import (
	"time"
)

const (
	RoutingSeatLocked   = "seat.locked"
	RoutingSeatReleased = "seat.released"
	RoutingOrderCreated = "order.created"
	RoutingOrderExpired = "order.expired"
)

type SeatsLocked struct {
	SessionID  string    `json:"session_id"`
	ShowtimeID string    `json:"showtime_id"`
	SeatIDs    []string  `json:"seat_ids"`
	ExpiresAt  time.Time `json:"expires_at"`
	TotalHeld  int       `json:"total_held"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SeatsReleased covers user releases, order expiry and lock sweeps; Reason
// tells them apart.
type SeatsReleased struct {
	SessionID  string    `json:"session_id"`
	SeatIDs    []string  `json:"seat_ids"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

type OrderCreated struct {
	OrderID    string    `json:"order_id"`
	SessionID  string    `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type OrderExpired struct {
	OrderID       string    `json:"order_id"`
	SessionID     string    `json:"session_id"`
	ReleasedSeats []string  `json:"released_seats"`
	ExpiredAt     time.Time `json:"expired_at"`
}
