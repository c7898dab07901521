package interfaces

import (
	"context"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
)

type CheckoutRequest struct {
	// Reference is the internal PaymentSession id, echoed back by the gateway
	// as external reference.
	Reference   string
	BookingID   string
	PaymentType entities.PaymentType
	Amount      money.Cents
	Currency    string
	Description string
	PayerEmail  string
	ExpiresAt   time.Time
}

type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

// IPaymentGateway abstracts external payment providers (Mercado Pago, Omise).
//
// Transient failures are returned wrapping ErrGatewayUnavailable. Neither
// method changes engine state.
type IPaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	// ResolvePayment fetches a payment by the gateway's payment reference and
	// normalizes it into a GatewayEvent.
	ResolvePayment(ctx context.Context, paymentRef string) (entities.GatewayEvent, error)
}
