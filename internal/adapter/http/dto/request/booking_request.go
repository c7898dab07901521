package request

import (
	"strings"

	"event_marketplace/internal/usecase"
)

// DirectBookingRequest books listings without a quote ("Book Now"). The price
// is computed server side from the listings.
type DirectBookingRequest struct {
	AcceptanceRequest
	ProviderID string   `json:"provider_id" binding:"required"`
	ListingIDs []string `json:"listing_ids" binding:"required"`
}

func (r DirectBookingRequest) ToInput() usecase.DirectBookingInput {
	ids := make([]string, 0, len(r.ListingIDs))
	for _, id := range r.ListingIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return usecase.DirectBookingInput{
		ProviderID: strings.TrimSpace(r.ProviderID),
		ListingIDs: ids,
		Details:    r.ToDetails(),
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type RefundBookingRequest struct {
	Note string `json:"note"`
}
