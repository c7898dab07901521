package interfaces

import (
	"context"

	"event_marketplace/internal/domain/entities"
)

// ITransactionalRepository groups the writes that must land together or not
// at all.
type ITransactionalRepository interface {
	// AcceptQuote stores the accepted quote (conditioned on q.Version) and
	// creates booking b in one atomic write.
	AcceptQuote(ctx context.Context, q entities.Quote, b entities.Booking) error
	// ConfirmPayment moves s from CREATED or EXPIRED to CONFIRMED and stores
	// b (conditioned on b.Version) in one atomic write. A session that is
	// already CONFIRMED fails the write with ErrVersionConflict.
	ConfirmPayment(ctx context.Context, s entities.PaymentSession, b entities.Booking) error
}
