package request

// SeatSelectionRequest is the body of both lock and release calls.
type SeatSelectionRequest struct {
	SeatIDs []string `json:"seatIds" validate:"required,min=1,dive,uuid"`
}
