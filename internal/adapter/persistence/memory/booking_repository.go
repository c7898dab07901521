package memory

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"
)

type BookingRepository struct {
	s *Store
}

var _ interfaces.IBookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) Create(_ context.Context, b entities.Booking) (entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.insertBooking(b); err != nil {
		return entities.Booking{}, err
	}
	return b.Clone(), nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return entities.Booking{}, nil
	}
	return b.Clone(), nil
}

func (r *BookingRepository) Update(_ context.Context, b entities.Booking) (entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateBooking(b)
}

func (r *BookingRepository) ListByStatus(_ context.Context, status entities.BookingStatus) ([]entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.Booking, 0)
	for _, b := range r.s.bookings {
		if b.Status == status {
			out = append(out, b.Clone())
		}
	}
	sortByCreatedAt(out, func(b entities.Booking) int64 { return b.CreatedAt.UnixNano() })
	return out, nil
}

// insertBooking must be called with s.mu held.
func (s *Store) insertBooking(b entities.Booking) error {
	if _, ok := s.bookings[b.ID]; ok {
		return fmt.Errorf("booking %s: %w", b.ID, ErrAlreadyExists)
	}
	s.bookings[b.ID] = b.Clone()
	return nil
}

// updateBooking must be called with s.mu held.
func (s *Store) updateBooking(b entities.Booking) (entities.Booking, error) {
	stored, ok := s.bookings[b.ID]
	if !ok || stored.Version != b.Version {
		return entities.Booking{}, fmt.Errorf("booking %s: %w", b.ID, interfaces.ErrVersionConflict)
	}
	next := b.Clone()
	next.Version++
	s.bookings[b.ID] = next
	return next.Clone(), nil
}
