package entities

import (
	"time"

	"event_marketplace/internal/domain/money"
)

// QuoteStatus represents the lifecycle of a vendor quote.
//
// Domain notes:
//   - DRAFT and REVISED are the only editable states.
//   - EXPIRED is derived at read time from ValidUntil; a sweep job persists it
//     for quotes nobody touched.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusViewed   QuoteStatus = "VIEWED"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusDeclined QuoteStatus = "DECLINED"
	QuoteStatusExpired  QuoteStatus = "EXPIRED"
	QuoteStatusRevised  QuoteStatus = "REVISED"
)

type PaymentMode string

const (
	PaymentModeFull           PaymentMode = "FULL_PAYMENT"
	PaymentModeDepositBalance PaymentMode = "DEPOSIT_BALANCE"
	PaymentModeCashOnDelivery PaymentMode = "CASH_ON_DELIVERY"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeFull, PaymentModeDepositBalance, PaymentModeCashOnDelivery:
		return true
	}
	return false
}

// Online reports whether the mode is settled through the payment gateway.
func (m PaymentMode) Online() bool {
	return m == PaymentModeFull || m == PaymentModeDepositBalance
}

type QuoteItem struct {
	Description string      `json:"description"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Cents `json:"unit_price"`
}

// Quote is a vendor's priced offer answering a client inquiry.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (status-index): status, used by the expiry sweep
//
// Monetary representation:
//   - UnitPrice and Total are minor units (cents). Total is always derived
//     from Items and never accepted from a client.
type Quote struct {
	ID                  string        `json:"id"`
	InquiryID           string        `json:"inquiry_id"`
	ProviderID          string        `json:"provider_id"`
	ClientID            string        `json:"client_id"`
	Items               []QuoteItem   `json:"items"`
	Currency            string        `json:"currency"`
	Status              QuoteStatus   `json:"status"`
	ValidUntil          time.Time     `json:"valid_until"`
	PaymentMode         PaymentMode   `json:"payment_mode,omitempty"`
	AllowedPaymentModes []PaymentMode `json:"allowed_payment_modes,omitempty"`
	DepositPercent      *int          `json:"deposit_percent,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	SentAt              *time.Time    `json:"sent_at,omitempty"`
	ViewedAt            *time.Time    `json:"viewed_at,omitempty"`
	AcceptedAt          *time.Time    `json:"accepted_at,omitempty"`
	DeclinedAt          *time.Time    `json:"declined_at,omitempty"`
	BookingID           string        `json:"booking_id,omitempty"`
	Version             int64         `json:"version"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// Total is the sum of quantity * unitPrice over the quote items. Invalid lines
// (non-positive quantity, negative price) contribute nothing; they are
// rejected when the draft is written.
func (q Quote) Total() money.Cents {
	var total money.Cents
	for _, it := range q.Items {
		line, err := money.LineTotal(it.Quantity, it.UnitPrice)
		if err != nil {
			continue
		}
		total += line
	}
	return total
}

func (q Quote) IsExpired(now time.Time) bool {
	if q.ValidUntil.IsZero() {
		return false
	}
	return !now.Before(q.ValidUntil)
}

// EffectiveStatus is the status a reader should see: awaiting quotes past
// their validity read as EXPIRED even before the sweep persists it.
func (q Quote) EffectiveStatus(now time.Time) QuoteStatus {
	switch q.Status {
	case QuoteStatusSent, QuoteStatusViewed:
		if q.IsExpired(now) {
			return QuoteStatusExpired
		}
	}
	return q.Status
}

func (q Quote) Editable() bool {
	return q.Status == QuoteStatusDraft || q.Status == QuoteStatusRevised
}

// AwaitingAnswer is true while the client can still accept or decline.
func (q Quote) AwaitingAnswer() bool {
	return q.Status == QuoteStatusSent || q.Status == QuoteStatusViewed
}

func (q Quote) HasPricedItem() bool {
	for _, it := range q.Items {
		if it.UnitPrice > 0 && it.Quantity >= 1 {
			return true
		}
	}
	return false
}

func (q Quote) Clone() Quote {
	out := q
	out.Items = append([]QuoteItem(nil), q.Items...)
	out.AllowedPaymentModes = append([]PaymentMode(nil), q.AllowedPaymentModes...)
	out.DepositPercent = cloneInt(q.DepositPercent)
	out.SentAt = cloneTime(q.SentAt)
	out.ViewedAt = cloneTime(q.ViewedAt)
	out.AcceptedAt = cloneTime(q.AcceptedAt)
	out.DeclinedAt = cloneTime(q.DeclinedAt)
	return out
}
