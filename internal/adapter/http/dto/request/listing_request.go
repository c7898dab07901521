package request

import (
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase"
)

type ListingRequest struct {
	Title                string `json:"title" binding:"required"`
	MinPrice             int64  `json:"min_price" binding:"required"`
	Currency             string `json:"currency"`
	AllowsCashOnDelivery bool   `json:"allows_cash_on_delivery"`
}

func (r ListingRequest) ToInput() usecase.ListingInput {
	return usecase.ListingInput{
		Title:                r.Title,
		MinPrice:             money.Cents(r.MinPrice),
		Currency:             r.Currency,
		AllowsCashOnDelivery: r.AllowsCashOnDelivery,
	}
}
