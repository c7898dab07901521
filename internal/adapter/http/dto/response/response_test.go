package response

import (
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase"
)

func TestFromQuote(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := entities.Quote{
		ID:         "q-1",
		ProviderID: "vendor-1",
		ClientID:   "client-1",
		Items: []entities.QuoteItem{
			{Description: "DJ", Quantity: 2, UnitPrice: 25000},
			{Description: "Lights", Quantity: 1, UnitPrice: 50000},
		},
		Status:     entities.QuoteStatusSent,
		ValidUntil: now.Add(-time.Minute),
		Version:    3,
	}

	res := FromQuote(q, now)
	if res.Total != 100000 {
		t.Fatalf("expected total 100000, got %d", res.Total)
	}
	if res.Items[0].Subtotal != 50000 {
		t.Fatalf("unexpected subtotal %d", res.Items[0].Subtotal)
	}
	if res.Status != "EXPIRED" {
		t.Fatalf("expected expired status at read time, got %s", res.Status)
	}
	if res.ValidUntil == nil || res.Version != 3 {
		t.Fatalf("unexpected response %+v", res)
	}

	draft := FromQuote(entities.Quote{ID: "q-2", Status: entities.QuoteStatusDraft}, now)
	if draft.ValidUntil != nil || draft.Status != "DRAFT" {
		t.Fatalf("unexpected draft response %+v", draft)
	}
}

func TestFromBooking(t *testing.T) {
	deposit, balance := money.Cents(30000), money.Cents(70000)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := entities.Booking{
		ID:            "b-1",
		PricingTotal:  100000,
		PaymentMode:   entities.PaymentModeDepositBalance,
		DepositAmount: &deposit,
		BalanceAmount: &balance,
		Status:        entities.BookingStatusDepositPaid,
		StatusTimeline: []entities.StatusTimelineEntry{
			{Status: entities.BookingStatusPendingPayment, Timestamp: now},
			{Status: entities.BookingStatusDepositPaid, Timestamp: now},
		},
	}

	res := FromBooking(b)
	if *res.DepositAmount != 30000 || *res.BalanceAmount != 70000 || res.OutstandingBalance != 70000 {
		t.Fatalf("unexpected amounts %+v", res)
	}
	if len(res.StatusTimeline) != 2 || res.StatusTimeline[1].Status != "DEPOSIT_PAID" {
		t.Fatalf("unexpected timeline %+v", res.StatusTimeline)
	}

	full := FromBooking(entities.Booking{ID: "b-2", PaymentMode: entities.PaymentModeFull})
	if full.DepositAmount != nil || full.OutstandingBalance != 0 || full.StatusTimeline == nil {
		t.Fatalf("unexpected full booking response %+v", full)
	}
}

func TestFromPaymentConfirmation(t *testing.T) {
	c := usecase.PaymentConfirmation{
		Session:  entities.PaymentSession{ID: "ps-1", Amount: 30000, Status: entities.PaymentSessionStatusConfirmed},
		Booking:  entities.Booking{ID: "b-1"},
		Replayed: true,
	}
	res := FromPaymentConfirmation(c)
	if res.Session.ID != "ps-1" || res.Session.Status != "CONFIRMED" || res.Booking.ID != "b-1" || !res.Replayed {
		t.Fatalf("unexpected confirmation %+v", res)
	}

	h := FromSessionHandle(usecase.SessionHandle{Session: entities.PaymentSession{ID: "ps-2"}, Reused: true})
	if h.ID != "ps-2" || !h.Reused {
		t.Fatalf("unexpected handle %+v", h)
	}
	if len(FromPaymentSessions(nil)) != 0 {
		t.Fatalf("expected empty slice")
	}
}
