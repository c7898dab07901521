package repository

import (
	"context"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"
)

const defaultListingsTableName = "listings"

type listingItem struct {
	ID                   string `dynamodbav:"id"`
	ProviderID           string `dynamodbav:"provider_id"`
	Title                string `dynamodbav:"title"`
	MinPrice             int64  `dynamodbav:"min_price"`
	Currency             string `dynamodbav:"currency"`
	AllowsCashOnDelivery bool   `dynamodbav:"allows_cash_on_delivery"`
	Active               bool   `dynamodbav:"active"`
	CreatedAt            string `dynamodbav:"created_at"`
	UpdatedAt            string `dynamodbav:"updated_at"`
}

// ListingDynamoRepository persists Listing entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type ListingDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IListingRepository = (*ListingDynamoRepository)(nil)

func NewListingDynamoRepository(ddb DynamoAPI, table string) *ListingDynamoRepository {
	return &ListingDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "LISTINGS_TABLE", defaultListingsTableName),
	}
}

func (r *ListingDynamoRepository) Create(ctx context.Context, l entities.Listing) (entities.Listing, error) {
	put, err := createPut(r.tableName, listingItem{
		ID:                   l.ID,
		ProviderID:           l.ProviderID,
		Title:                l.Title,
		MinPrice:             int64(l.MinPrice),
		Currency:             l.Currency,
		AllowsCashOnDelivery: l.AllowsCashOnDelivery,
		Active:               l.Active,
		CreatedAt:            formatTime(l.CreatedAt),
		UpdatedAt:            formatTime(l.UpdatedAt),
	})
	if err != nil {
		return entities.Listing{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		if isConditionalFailure(err) {
			return entities.Listing{}, fmt.Errorf("listing %s: %w", l.ID, ErrAlreadyExists)
		}
		return entities.Listing{}, err
	}
	return l, nil
}

func (r *ListingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Listing, error) {
	var it listingItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Listing{}, err
	}
	return entities.Listing{
		ID:                   it.ID,
		ProviderID:           it.ProviderID,
		Title:                it.Title,
		MinPrice:             money.Cents(it.MinPrice),
		Currency:             it.Currency,
		AllowsCashOnDelivery: it.AllowsCashOnDelivery,
		Active:               it.Active,
		CreatedAt:            parseTime(it.CreatedAt),
		UpdatedAt:            parseTime(it.UpdatedAt),
	}, nil
}
