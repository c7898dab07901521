package memory

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"
)

type ListingRepository struct {
	s *Store
}

var _ interfaces.IListingRepository = (*ListingRepository)(nil)

func (r *ListingRepository) Create(_ context.Context, l entities.Listing) (entities.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[l.ID]; ok {
		return entities.Listing{}, fmt.Errorf("listing %s: %w", l.ID, ErrAlreadyExists)
	}
	r.s.listings[l.ID] = l
	return l, nil
}

func (r *ListingRepository) GetByID(_ context.Context, id string) (entities.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.listings[id], nil
}
