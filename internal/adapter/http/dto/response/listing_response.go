package response

import (
	"time"

	"event_marketplace/internal/domain/entities"
)

type ListingResponse struct {
	ID                   string    `json:"id"`
	ProviderID           string    `json:"provider_id"`
	Title                string    `json:"title"`
	MinPrice             int64     `json:"min_price"`
	Currency             string    `json:"currency"`
	AllowsCashOnDelivery bool      `json:"allows_cash_on_delivery"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"created_at"`
}

func FromListing(l entities.Listing) ListingResponse {
	return ListingResponse{
		ID:                   l.ID,
		ProviderID:           l.ProviderID,
		Title:                l.Title,
		MinPrice:             int64(l.MinPrice),
		Currency:             l.Currency,
		AllowsCashOnDelivery: l.AllowsCashOnDelivery,
		Active:               l.Active,
		CreatedAt:            l.CreatedAt,
	}
}
