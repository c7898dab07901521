package interfaces

import (
	"context"

	"event_marketplace/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote.
//
// GetByID returns a zero Quote and a nil error when nothing is stored under
// id. Update is conditioned on q.Version matching the stored version and
// stores q with Version+1.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Update(ctx context.Context, q entities.Quote) (entities.Quote, error)
	ListByStatus(ctx context.Context, status entities.QuoteStatus) ([]entities.Quote, error)
}
