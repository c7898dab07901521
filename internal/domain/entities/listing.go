package entities

import (
	"time"

	"event_marketplace/internal/domain/money"
)

// Listing is a vendor service offered for direct "Book Now" bookings. Its
// MinPrice is the price the server charges; clients never submit totals.
type Listing struct {
	ID                   string      `json:"id"`
	ProviderID           string      `json:"provider_id"`
	Title                string      `json:"title"`
	MinPrice             money.Cents `json:"min_price"`
	Currency             string      `json:"currency"`
	AllowsCashOnDelivery bool        `json:"allows_cash_on_delivery"`
	Active               bool        `json:"active"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}
