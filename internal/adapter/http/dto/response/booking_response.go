package response

import (
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
)

type TimelineEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type BookingResponse struct {
	ID                 string                  `json:"id"`
	ProviderID         string                  `json:"provider_id"`
	ClientID           string                  `json:"client_id"`
	QuoteID            string                  `json:"quote_id,omitempty"`
	ListingIDs         []string                `json:"listing_ids,omitempty"`
	ClientName         string                  `json:"client_name"`
	ClientEmail        string                  `json:"client_email"`
	ClientPhone        string                  `json:"client_phone,omitempty"`
	EventDate          time.Time               `json:"event_date"`
	EventLocation      string                  `json:"event_location,omitempty"`
	GuestsCount        int                     `json:"guests_count,omitempty"`
	SpecialRequests    string                  `json:"special_requests,omitempty"`
	PricingTotal       int64                   `json:"pricing_total"`
	Currency           string                  `json:"currency"`
	PaymentMode        string                  `json:"payment_mode"`
	DepositPercent     *int                    `json:"deposit_percent,omitempty"`
	DepositAmount      *int64                  `json:"deposit_amount,omitempty"`
	BalanceAmount      *int64                  `json:"balance_amount,omitempty"`
	OutstandingBalance int64                   `json:"outstanding_balance"`
	DepositPaidAt      *time.Time              `json:"deposit_paid_at,omitempty"`
	BalancePaidAt      *time.Time              `json:"balance_paid_at,omitempty"`
	BalanceDueDate     *time.Time              `json:"balance_due_date,omitempty"`
	Status             string                  `json:"status"`
	StatusTimeline     []TimelineEntryResponse `json:"status_timeline"`
	CancelledBy        string                  `json:"cancelled_by,omitempty"`
	Version            int64                   `json:"version"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

func FromBooking(b entities.Booking) BookingResponse {
	timeline := make([]TimelineEntryResponse, 0, len(b.StatusTimeline))
	for _, e := range b.StatusTimeline {
		timeline = append(timeline, TimelineEntryResponse{Status: string(e.Status), Timestamp: e.Timestamp, Note: e.Note})
	}
	return BookingResponse{
		ID:                 b.ID,
		ProviderID:         b.ProviderID,
		ClientID:           b.ClientID,
		QuoteID:            b.QuoteID,
		ListingIDs:         b.ListingIDs,
		ClientName:         b.ClientName,
		ClientEmail:        b.ClientEmail,
		ClientPhone:        b.ClientPhone,
		EventDate:          b.EventDate,
		EventLocation:      b.EventLocation,
		GuestsCount:        b.GuestsCount,
		SpecialRequests:    b.SpecialRequests,
		PricingTotal:       int64(b.PricingTotal),
		Currency:           b.Currency,
		PaymentMode:        string(b.PaymentMode),
		DepositPercent:     b.DepositPercent,
		DepositAmount:      centsPtr(b.DepositAmount),
		BalanceAmount:      centsPtr(b.BalanceAmount),
		OutstandingBalance: int64(b.OutstandingBalance()),
		DepositPaidAt:      b.DepositPaidAt,
		BalancePaidAt:      b.BalancePaidAt,
		BalanceDueDate:     b.BalanceDueDate,
		Status:             string(b.Status),
		StatusTimeline:     timeline,
		CancelledBy:        b.CancelledBy,
		Version:            b.Version,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func centsPtr(v *money.Cents) *int64 {
	if v == nil {
		return nil
	}
	c := int64(*v)
	return &c
}
