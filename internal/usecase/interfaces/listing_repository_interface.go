package interfaces

import (
	"context"

	"event_marketplace/internal/domain/entities"
)

type IListingRepository interface {
	Create(ctx context.Context, l entities.Listing) (entities.Listing, error)
	GetByID(ctx context.Context, id string) (entities.Listing, error)
}
