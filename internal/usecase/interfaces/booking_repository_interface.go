package interfaces

import (
	"context"

	"event_marketplace/internal/domain/entities"
)

// IBookingRepository abstracts persistence for Booking. There is no delete:
// bookings end in a terminal status and stay.
//
// Update follows the same optimistic contract as IQuoteRepository.Update.
type IBookingRepository interface {
	Create(ctx context.Context, b entities.Booking) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	Update(ctx context.Context, b entities.Booking) (entities.Booking, error)
	ListByStatus(ctx context.Context, status entities.BookingStatus) ([]entities.Booking, error)
}
