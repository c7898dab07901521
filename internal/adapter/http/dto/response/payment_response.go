package response

import (
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase"
)

type PaymentSessionResponse struct {
	ID               string     `json:"id"`
	BookingID        string     `json:"booking_id"`
	PaymentType      string     `json:"payment_type"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	GatewaySessionID string     `json:"gateway_session_id"`
	RedirectURL      string     `json:"redirect_url"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	CapturedAt       *time.Time `json:"captured_at,omitempty"`
}

func FromPaymentSession(s entities.PaymentSession) PaymentSessionResponse {
	return PaymentSessionResponse{
		ID:               s.ID,
		BookingID:        s.BookingID,
		PaymentType:      string(s.PaymentType),
		Amount:           int64(s.Amount),
		Currency:         s.Currency,
		GatewaySessionID: s.GatewaySessionID,
		RedirectURL:      s.RedirectURL,
		Status:           string(s.Status),
		CreatedAt:        s.CreatedAt,
		ExpiresAt:        s.ExpiresAt,
		ConfirmedAt:      s.ConfirmedAt,
		CapturedAt:       s.CapturedAt,
	}
}

func FromPaymentSessions(in []entities.PaymentSession) []PaymentSessionResponse {
	out := make([]PaymentSessionResponse, 0, len(in))
	for _, s := range in {
		out = append(out, FromPaymentSession(s))
	}
	return out
}

type SessionHandleResponse struct {
	PaymentSessionResponse
	Reused bool `json:"reused"`
}

func FromSessionHandle(h usecase.SessionHandle) SessionHandleResponse {
	return SessionHandleResponse{PaymentSessionResponse: FromPaymentSession(h.Session), Reused: h.Reused}
}

type PaymentConfirmationResponse struct {
	Session  PaymentSessionResponse `json:"session"`
	Booking  BookingResponse        `json:"booking"`
	Replayed bool                   `json:"replayed"`
}

func FromPaymentConfirmation(c usecase.PaymentConfirmation) PaymentConfirmationResponse {
	return PaymentConfirmationResponse{
		Session:  FromPaymentSession(c.Session),
		Booking:  FromBooking(c.Booking),
		Replayed: c.Replayed,
	}
}
