package interfaces

import (
	"context"

	"event_marketplace/internal/domain/entities"
)

// IPaymentSessionRepository abstracts persistence for PaymentSession.
//
// UpdateStatus moves a session out of from; it fails with ErrVersionConflict
// when the stored status is no longer from.
type IPaymentSessionRepository interface {
	Create(ctx context.Context, s entities.PaymentSession) (entities.PaymentSession, error)
	GetByID(ctx context.Context, id string) (entities.PaymentSession, error)
	GetByGatewaySessionID(ctx context.Context, gatewaySessionID string) (entities.PaymentSession, error)
	ListByBookingID(ctx context.Context, bookingID string) ([]entities.PaymentSession, error)
	ListByStatus(ctx context.Context, status entities.PaymentSessionStatus) ([]entities.PaymentSession, error)
	UpdateStatus(ctx context.Context, s entities.PaymentSession, from entities.PaymentSessionStatus) (entities.PaymentSession, error)
}
