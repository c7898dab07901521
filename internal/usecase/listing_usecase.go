package usecase

import (
	"context"
	"fmt"
	"strings"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// IListingUseCase manages the vendor services that direct bookings price
// against.
type IListingUseCase interface {
	Create(ctx context.Context, actor entities.Actor, in ListingInput) (entities.Listing, error)
	GetByID(ctx context.Context, id string) (entities.Listing, error)
}

type ListingInput struct {
	Title                string
	MinPrice             money.Cents
	Currency             string
	AllowsCashOnDelivery bool
}

type ListingUseCase struct {
	repo interfaces.IListingRepository
	opts options
}

var _ IListingUseCase = (*ListingUseCase)(nil)

func NewListingUseCase(repo interfaces.IListingRepository, opts ...Option) *ListingUseCase {
	o := newOptions(opts)
	o.log = o.log.With().Str("component", "listing").Str("layer", "usecase").Logger()
	return &ListingUseCase{repo: repo, opts: o}
}

func (u *ListingUseCase) Create(ctx context.Context, actor entities.Actor, in ListingInput) (entities.Listing, error) {
	if actor.Role != entities.RoleVendor {
		return entities.Listing{}, fmt.Errorf("%w: only vendors publish listings", ErrForbidden)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return entities.Listing{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.MinPrice <= 0 {
		return entities.Listing{}, fmt.Errorf("%w: min_price must be positive", ErrInvalidInput)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = u.opts.currency
	}

	now := u.opts.now()
	l := entities.Listing{
		ID:                   uuid.NewString(),
		ProviderID:           actor.UserID,
		Title:                title,
		MinPrice:             in.MinPrice,
		Currency:             currency,
		AllowsCashOnDelivery: in.AllowsCashOnDelivery,
		Active:               true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	created, err := u.repo.Create(ctx, l)
	if err != nil {
		return entities.Listing{}, err
	}
	u.opts.log.Info().Str("listing_id", created.ID).Str("provider_id", created.ProviderID).Msg("listing created")
	return created, nil
}

func (u *ListingUseCase) GetByID(ctx context.Context, id string) (entities.Listing, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Listing{}, fmt.Errorf("%w: listing id is required", ErrInvalidInput)
	}
	l, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Listing{}, err
	}
	if l.ID == "" {
		return entities.Listing{}, ErrListingNotFound
	}
	return l, nil
}
