package adaptor

import (
	"net/http"

	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /booking/sessions/{session_id}/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Create(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		writeServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Order created", order)
}

// ExpireOrder handles POST /orders/{order_id}/expire
func (h *OrderHandler) ExpireOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Expire(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		writeServiceError(w, h.log, err, "expire order")
		return
	}

	utils.ResponseSuccess(w, "Order expired", result)
}
