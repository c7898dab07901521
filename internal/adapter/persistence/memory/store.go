package memory

import (
	"errors"
	"sort"
	"sync"

	"event_marketplace/internal/domain/entities"
)

var (
	ErrAlreadyExists    = errors.New("entity already exists")
	ErrLiveSessionTaken = errors.New("a live payment session already exists for booking and payment type")
)

// Store keeps every entity in process memory behind one mutex, so a
// multi-entity write is a single critical section. It backs the local
// driver and the use case tests.
type Store struct {
	mu       sync.Mutex
	quotes   map[string]entities.Quote
	bookings map[string]entities.Booking
	sessions map[string]entities.PaymentSession
	listings map[string]entities.Listing
}

func NewStore() *Store {
	return &Store{
		quotes:   make(map[string]entities.Quote),
		bookings: make(map[string]entities.Booking),
		sessions: make(map[string]entities.PaymentSession),
		listings: make(map[string]entities.Listing),
	}
}

func (s *Store) Quotes() *QuoteRepository { return &QuoteRepository{s: s} }

func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

func (s *Store) PaymentSessions() *PaymentSessionRepository { return &PaymentSessionRepository{s: s} }

func (s *Store) Listings() *ListingRepository { return &ListingRepository{s: s} }

func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{s: s} }

// liveSessionTaken must be called with s.mu held.
func (s *Store) liveSessionTaken(ps entities.PaymentSession) bool {
	if ps.Status != entities.PaymentSessionStatusCreated {
		return false
	}
	for _, other := range s.sessions {
		if other.ID != ps.ID &&
			other.BookingID == ps.BookingID &&
			other.PaymentType == ps.PaymentType &&
			other.Status == entities.PaymentSessionStatusCreated {
			return true
		}
	}
	return false
}

func sortByCreatedAt[T any](items []T, createdAt func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool { return createdAt(items[i]) < createdAt(items[j]) })
}
