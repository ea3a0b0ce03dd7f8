package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler) {
	// POST /booking/sessions/{session_id}/orders - start payment
	r.Post("/booking/sessions/{session_id}/orders", orderHandler.CreateOrder)

	// POST /orders/{order_id}/expire - payment timed out or was abandoned
	r.Post("/orders/{order_id}/expire", orderHandler.ExpireOrder)
}
