package memory

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"
)

type TransactionRepository struct {
	s *Store
}

var _ interfaces.ITransactionalRepository = (*TransactionRepository)(nil)

// AcceptQuote validates both writes before applying either.
func (r *TransactionRepository) AcceptQuote(_ context.Context, q entities.Quote, b entities.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.quotes[q.ID]
	if !ok || stored.Version != q.Version {
		return fmt.Errorf("quote %s: %w", q.ID, interfaces.ErrVersionConflict)
	}
	if _, exists := r.s.bookings[b.ID]; exists {
		return fmt.Errorf("booking %s: %w", b.ID, ErrAlreadyExists)
	}
	if _, err := r.s.updateQuote(q); err != nil {
		return err
	}
	return r.s.insertBooking(b)
}

func (r *TransactionRepository) ConfirmPayment(_ context.Context, ps entities.PaymentSession, b entities.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	storedSession, ok := r.s.sessions[ps.ID]
	if !ok || storedSession.Status == entities.PaymentSessionStatusConfirmed {
		return fmt.Errorf("payment session %s: %w", ps.ID, interfaces.ErrVersionConflict)
	}
	storedBooking, ok := r.s.bookings[b.ID]
	if !ok || storedBooking.Version != b.Version {
		return fmt.Errorf("booking %s: %w", b.ID, interfaces.ErrVersionConflict)
	}
	if err := r.s.updateSession(ps, entities.PaymentSessionStatusCreated, entities.PaymentSessionStatusExpired); err != nil {
		return err
	}
	_, err := r.s.updateBooking(b)
	return err
}
