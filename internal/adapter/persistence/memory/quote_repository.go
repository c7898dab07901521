package memory

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"
)

type QuoteRepository struct {
	s *Store
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quotes[q.ID]; ok {
		return entities.Quote{}, fmt.Errorf("quote %s: %w", q.ID, ErrAlreadyExists)
	}
	r.s.quotes[q.ID] = q.Clone()
	return q.Clone(), nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok {
		return entities.Quote{}, nil
	}
	return q.Clone(), nil
}

func (r *QuoteRepository) Update(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateQuote(q)
}

func (r *QuoteRepository) ListByStatus(_ context.Context, status entities.QuoteStatus) ([]entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.Quote, 0)
	for _, q := range r.s.quotes {
		if q.Status == status {
			out = append(out, q.Clone())
		}
	}
	sortByCreatedAt(out, func(q entities.Quote) int64 { return q.CreatedAt.UnixNano() })
	return out, nil
}

// updateQuote must be called with s.mu held.
func (s *Store) updateQuote(q entities.Quote) (entities.Quote, error) {
	stored, ok := s.quotes[q.ID]
	if !ok || stored.Version != q.Version {
		return entities.Quote{}, fmt.Errorf("quote %s: %w", q.ID, interfaces.ErrVersionConflict)
	}
	next := q.Clone()
	next.Version++
	s.quotes[q.ID] = next
	return next.Clone(), nil
}
