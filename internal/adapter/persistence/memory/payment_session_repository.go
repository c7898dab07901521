package memory

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"
)

type PaymentSessionRepository struct {
	s *Store
}

var _ interfaces.IPaymentSessionRepository = (*PaymentSessionRepository)(nil)

func (r *PaymentSessionRepository) Create(_ context.Context, ps entities.PaymentSession) (entities.PaymentSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[ps.ID]; ok {
		return entities.PaymentSession{}, fmt.Errorf("payment session %s: %w", ps.ID, ErrAlreadyExists)
	}
	if r.s.liveSessionTaken(ps) {
		return entities.PaymentSession{}, fmt.Errorf("booking %s %s: %w", ps.BookingID, ps.PaymentType, ErrLiveSessionTaken)
	}
	r.s.sessions[ps.ID] = ps
	return ps, nil
}

func (r *PaymentSessionRepository) GetByID(_ context.Context, id string) (entities.PaymentSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sessions[id], nil
}

func (r *PaymentSessionRepository) GetByGatewaySessionID(_ context.Context, gatewaySessionID string) (entities.PaymentSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ps := range r.s.sessions {
		if ps.GatewaySessionID == gatewaySessionID {
			return ps, nil
		}
	}
	return entities.PaymentSession{}, nil
}

func (r *PaymentSessionRepository) ListByBookingID(_ context.Context, bookingID string) ([]entities.PaymentSession, error) {
	return r.list(func(ps entities.PaymentSession) bool { return ps.BookingID == bookingID }), nil
}

func (r *PaymentSessionRepository) ListByStatus(_ context.Context, status entities.PaymentSessionStatus) ([]entities.PaymentSession, error) {
	return r.list(func(ps entities.PaymentSession) bool { return ps.Status == status }), nil
}

func (r *PaymentSessionRepository) UpdateStatus(_ context.Context, ps entities.PaymentSession, from entities.PaymentSessionStatus) (entities.PaymentSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.updateSession(ps, from); err != nil {
		return entities.PaymentSession{}, err
	}
	return ps, nil
}

func (r *PaymentSessionRepository) list(match func(entities.PaymentSession) bool) []entities.PaymentSession {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.PaymentSession, 0)
	for _, ps := range r.s.sessions {
		if match(ps) {
			out = append(out, ps)
		}
	}
	sortByCreatedAt(out, func(ps entities.PaymentSession) int64 { return ps.CreatedAt.UnixNano() })
	return out
}

// updateSession must be called with s.mu held.
func (s *Store) updateSession(ps entities.PaymentSession, from ...entities.PaymentSessionStatus) error {
	stored, ok := s.sessions[ps.ID]
	if !ok {
		return fmt.Errorf("payment session %s: %w", ps.ID, interfaces.ErrVersionConflict)
	}
	allowed := false
	for _, f := range from {
		if stored.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("payment session %s is %s: %w", ps.ID, stored.Status, interfaces.ErrVersionConflict)
	}
	s.sessions[ps.ID] = ps
	return nil
}
