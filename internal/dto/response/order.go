package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type OrderResponse struct {
	ID               string             `json:"id"`
	BookingSessionID string             `json:"bookingSessionId"`
	Status           entity.OrderStatus `json:"status"`
	CreatedAt        time.Time          `json:"createdAt"`
}

type ExpireOrderResponse struct {
	OrderID       string             `json:"orderId"`
	Status        entity.OrderStatus `json:"status"`
	ExpiredAt     time.Time          `json:"expiredAt"`
	Message       string             `json:"message"`
	ReleasedSeats []string           `json:"releasedSeats"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:               order.ID.String(),
		BookingSessionID: order.BookingSessionID.String(),
		Status:           order.Status,
		CreatedAt:        order.CreatedAt,
	}
}
