package entities

import (
	"time"

	"event_marketplace/internal/domain/money"
)

type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "DEPOSIT"
	PaymentTypeBalance PaymentType = "BALANCE"
	PaymentTypeFull    PaymentType = "FULL"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeDeposit, PaymentTypeBalance, PaymentTypeFull:
		return true
	}
	return false
}

type PaymentSessionStatus string

const (
	PaymentSessionStatusCreated   PaymentSessionStatus = "CREATED"
	PaymentSessionStatusConfirmed PaymentSessionStatus = "CONFIRMED"
	PaymentSessionStatusExpired   PaymentSessionStatus = "EXPIRED"
)

// PaymentSession tracks one gateway checkout for a (booking, payment type)
// pair. At most one CREATED session per pair is live at a time and at most
// one session per pair ever reaches CONFIRMED.
//
// Storage model (DynamoDB):
//   - PK: id (also sent to the gateway as external reference)
//   - GSI (gateway_session_id-index): gateway_session_id
//   - GSI (booking_id-index): booking_id
type PaymentSession struct {
	ID               string               `json:"id"`
	BookingID        string               `json:"booking_id"`
	PaymentType      PaymentType          `json:"payment_type"`
	Amount           money.Cents          `json:"amount"`
	Currency         string               `json:"currency"`
	GatewaySessionID string               `json:"gateway_session_id"`
	RedirectURL      string               `json:"redirect_url"`
	Status           PaymentSessionStatus `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
	ExpiresAt        time.Time            `json:"expires_at"`
	ConfirmedAt      *time.Time           `json:"confirmed_at,omitempty"`
	CapturedAt       *time.Time           `json:"captured_at,omitempty"`
}

// Reusable reports whether the session can be handed back to the client
// instead of opening a new gateway checkout.
func (s PaymentSession) Reusable(now time.Time) bool {
	return s.Status == PaymentSessionStatusCreated && now.Before(s.ExpiresAt)
}

// GatewayEvent is a normalized payment confirmation, whichever channel it
// arrived on (signed webhook, gateway notification, redirect verification).
type GatewayEvent struct {
	GatewaySessionID string      `json:"gateway_session_id"`
	Reference        string      `json:"reference,omitempty"`
	PaymentRef       string      `json:"payment_ref,omitempty"`
	AmountCaptured   money.Cents `json:"amount_captured"`
	CapturedAt       time.Time   `json:"captured_at"`
	Captured         bool        `json:"captured"`
}
