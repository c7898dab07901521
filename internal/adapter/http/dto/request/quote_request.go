package request

import (
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase"
)

type QuoteItemRequest struct {
	Description string `json:"description" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	UnitPrice   int64  `json:"unit_price"`
}

// QuoteDraftRequest creates or replaces a draft. Amounts are minor units; the
// total is always derived from items.
type QuoteDraftRequest struct {
	InquiryID           string             `json:"inquiry_id"`
	ClientID            string             `json:"client_id" binding:"required"`
	Items               []QuoteItemRequest `json:"items"`
	Currency            string             `json:"currency"`
	ValidUntil          *time.Time         `json:"valid_until"`
	PaymentMode         string             `json:"payment_mode"`
	AllowedPaymentModes []string           `json:"allowed_payment_modes"`
	DepositPercent      *int               `json:"deposit_percent"`
	Notes               string             `json:"notes"`
}

func (r QuoteDraftRequest) ToInput() usecase.QuoteDraftInput {
	items := make([]entities.QuoteItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.QuoteItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   money.Cents(it.UnitPrice),
		})
	}
	var modes []entities.PaymentMode
	for _, m := range r.AllowedPaymentModes {
		modes = append(modes, paymentMode(m))
	}
	in := usecase.QuoteDraftInput{
		InquiryID:           strings.TrimSpace(r.InquiryID),
		ClientID:            strings.TrimSpace(r.ClientID),
		Items:               items,
		Currency:            strings.TrimSpace(r.Currency),
		PaymentMode:         paymentMode(r.PaymentMode),
		AllowedPaymentModes: modes,
		DepositPercent:      r.DepositPercent,
		Notes:               strings.TrimSpace(r.Notes),
	}
	if r.ValidUntil != nil {
		in.ValidUntil = r.ValidUntil.UTC()
	}
	return in
}

// AcceptanceRequest carries the client's details when accepting a quote.
type AcceptanceRequest struct {
	PaymentMode     string    `json:"payment_mode"`
	ClientName      string    `json:"client_name" binding:"required"`
	ClientEmail     string    `json:"client_email" binding:"required"`
	ClientPhone     string    `json:"client_phone"`
	EventDate       time.Time `json:"event_date" binding:"required"`
	EventLocation   string    `json:"event_location"`
	GuestsCount     int       `json:"guests_count"`
	SpecialRequests string    `json:"special_requests"`
}

func (r AcceptanceRequest) ToDetails() usecase.AcceptanceDetails {
	return usecase.AcceptanceDetails{
		PaymentMode:     paymentMode(r.PaymentMode),
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		ClientPhone:     r.ClientPhone,
		EventDate:       r.EventDate.UTC(),
		EventLocation:   r.EventLocation,
		GuestsCount:     r.GuestsCount,
		SpecialRequests: r.SpecialRequests,
	}
}

func paymentMode(s string) entities.PaymentMode {
	return entities.PaymentMode(strings.ToUpper(strings.TrimSpace(s)))
}
