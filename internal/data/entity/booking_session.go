package entity

type BookingSessionState string

const (
	BookingSessionDraft          BookingSessionState = "DRAFT"
	BookingSessionPendingPayment BookingSessionState = "PENDING_PAYMENT"
)

type BookingSession struct {
	Base
	State BookingSessionState `db:"state"`
}

// CanHoldSeats reports whether seat locks may reference the session.
func (s *BookingSession) CanHoldSeats() bool {
	return s.State == BookingSessionDraft || s.State == BookingSessionPendingPayment
}
