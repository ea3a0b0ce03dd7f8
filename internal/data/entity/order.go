package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusExpired OrderStatus = "EXPIRED"
)

type Order struct {
	Base
	BookingSessionID uuid.UUID   `db:"booking_session_id"`
	Status           OrderStatus `db:"status"`
}
