package postgres

import (
	"context"
	"errors"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ListingRepository struct {
	db *pgxpool.Pool
}

var _ interfaces.IListingRepository = (*ListingRepository)(nil)

func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l entities.Listing) (entities.Listing, error) {
	_, err := r.db.Exec(ctx, `INSERT INTO listings
		(id, provider_id, title, min_price, currency, allows_cash_on_delivery, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.ProviderID, l.Title, int64(l.MinPrice), l.Currency, l.AllowsCashOnDelivery, l.Active, l.CreatedAt.UTC(), l.UpdatedAt.UTC())
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return entities.Listing{}, fmt.Errorf("listing %s: %w", l.ID, ErrAlreadyExists)
		}
		return entities.Listing{}, err
	}
	return l, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (entities.Listing, error) {
	var (
		l        entities.Listing
		minPrice int64
	)
	err := r.db.QueryRow(ctx, `SELECT id, provider_id, title, min_price, currency, allows_cash_on_delivery, active, created_at, updated_at
		FROM listings WHERE id = $1`, id).
		Scan(&l.ID, &l.ProviderID, &l.Title, &minPrice, &l.Currency, &l.AllowsCashOnDelivery, &l.Active, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Listing{}, nil
	}
	if err != nil {
		return entities.Listing{}, err
	}
	l.MinPrice = money.Cents(minPrice)
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return l, nil
}
