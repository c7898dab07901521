package response

import (
	"time"

	"event_marketplace/internal/domain/entities"
)

type QuoteItemResponse struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
}

type QuoteResponse struct {
	ID                  string              `json:"id"`
	InquiryID           string              `json:"inquiry_id,omitempty"`
	ProviderID          string              `json:"provider_id"`
	ClientID            string              `json:"client_id"`
	Items               []QuoteItemResponse `json:"items"`
	Total               int64               `json:"total"`
	Currency            string              `json:"currency"`
	Status              string              `json:"status"`
	ValidUntil          *time.Time          `json:"valid_until,omitempty"`
	PaymentMode         string              `json:"payment_mode,omitempty"`
	AllowedPaymentModes []string            `json:"allowed_payment_modes,omitempty"`
	DepositPercent      *int                `json:"deposit_percent,omitempty"`
	Notes               string              `json:"notes,omitempty"`
	SentAt              *time.Time          `json:"sent_at,omitempty"`
	ViewedAt            *time.Time          `json:"viewed_at,omitempty"`
	AcceptedAt          *time.Time          `json:"accepted_at,omitempty"`
	DeclinedAt          *time.Time          `json:"declined_at,omitempty"`
	BookingID           string              `json:"booking_id,omitempty"`
	Version             int64               `json:"version"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// FromQuote renders q with the status it has at now, so a quote past its
// validity reads as EXPIRED before the sweep persists it.
func FromQuote(q entities.Quote, now time.Time) QuoteResponse {
	items := make([]QuoteItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, QuoteItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   int64(it.UnitPrice),
			Subtotal:    int64(it.UnitPrice) * int64(it.Quantity),
		})
	}
	var modes []string
	for _, m := range q.AllowedPaymentModes {
		modes = append(modes, string(m))
	}
	res := QuoteResponse{
		ID:                  q.ID,
		InquiryID:           q.InquiryID,
		ProviderID:          q.ProviderID,
		ClientID:            q.ClientID,
		Items:               items,
		Total:               int64(q.Total()),
		Currency:            q.Currency,
		Status:              string(q.EffectiveStatus(now)),
		PaymentMode:         string(q.PaymentMode),
		AllowedPaymentModes: modes,
		DepositPercent:      q.DepositPercent,
		Notes:               q.Notes,
		SentAt:              q.SentAt,
		ViewedAt:            q.ViewedAt,
		AcceptedAt:          q.AcceptedAt,
		DeclinedAt:          q.DeclinedAt,
		BookingID:           q.BookingID,
		Version:             q.Version,
		CreatedAt:           q.CreatedAt,
		UpdatedAt:           q.UpdatedAt,
	}
	if !q.ValidUntil.IsZero() {
		v := q.ValidUntil
		res.ValidUntil = &v
	}
	return res
}

type AcceptQuoteResponse struct {
	Quote   QuoteResponse   `json:"quote"`
	Booking BookingResponse `json:"booking"`
}
