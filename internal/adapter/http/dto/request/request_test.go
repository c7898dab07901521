package request

import (
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"
)

func TestQuoteDraftRequest_ToInput(t *testing.T) {
	valid := time.Date(2026, 4, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	pct := 40
	r := QuoteDraftRequest{
		InquiryID:           " inq-1 ",
		ClientID:            "client-1",
		Items:               []QuoteItemRequest{{Description: " DJ set ", Quantity: 2, UnitPrice: 50000}},
		ValidUntil:          &valid,
		PaymentMode:         "deposit_balance",
		AllowedPaymentModes: []string{"full_payment", "DEPOSIT_BALANCE"},
		DepositPercent:      &pct,
	}

	in := r.ToInput()
	if in.InquiryID != "inq-1" || in.Items[0].Description != "DJ set" {
		t.Fatalf("expected trimmed fields, got %+v", in)
	}
	if in.Items[0].UnitPrice != 50000 || in.Items[0].Quantity != 2 {
		t.Fatalf("unexpected item %+v", in.Items[0])
	}
	if in.PaymentMode != entities.PaymentModeDepositBalance {
		t.Fatalf("unexpected mode %s", in.PaymentMode)
	}
	if len(in.AllowedPaymentModes) != 2 || in.AllowedPaymentModes[0] != entities.PaymentModeFull {
		t.Fatalf("unexpected allowed modes %v", in.AllowedPaymentModes)
	}
	if in.ValidUntil.Location() != time.UTC || !in.ValidUntil.Equal(valid) {
		t.Fatalf("expected valid_until in UTC, got %v", in.ValidUntil)
	}
	if *in.DepositPercent != 40 {
		t.Fatalf("unexpected deposit percent %d", *in.DepositPercent)
	}

	if !(QuoteDraftRequest{ClientID: "c"}).ToInput().ValidUntil.IsZero() {
		t.Fatalf("expected zero valid_until when omitted")
	}
}

func TestDirectBookingRequest_ToInput(t *testing.T) {
	r := DirectBookingRequest{
		AcceptanceRequest: AcceptanceRequest{ClientName: "Ana", ClientEmail: "ana@example.com", PaymentMode: "cash_on_delivery"},
		ProviderID:        " vendor-1 ",
		ListingIDs:        []string{"l-1", " ", " l-2"},
	}
	in := r.ToInput()
	if in.ProviderID != "vendor-1" {
		t.Fatalf("unexpected provider %q", in.ProviderID)
	}
	if len(in.ListingIDs) != 2 || in.ListingIDs[1] != "l-2" {
		t.Fatalf("unexpected listing ids %v", in.ListingIDs)
	}
	if in.Details.PaymentMode != entities.PaymentModeCashOnDelivery {
		t.Fatalf("unexpected mode %s", in.Details.PaymentMode)
	}
}

func TestGatewayWebhookRequest_ToEvent(t *testing.T) {
	ev := GatewayWebhookRequest{GatewaySessionID: " g-1 ", AmountCaptured: 30000}.ToEvent()
	if ev.GatewaySessionID != "g-1" || ev.AmountCaptured != 30000 || !ev.Captured {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestParseGatewayNotification(t *testing.T) {
	cases := []struct {
		name string
		body string
		id   string
		ok   bool
	}{
		{"string id", `{"type":"payment","data":{"id":"123"}}`, "123", true},
		{"numeric id", `{"type":"payment","data":{"id":456}}`, "456", true},
		{"other type", `{"type":"merchant_order","data":{"id":"1"}}`, "", false},
		{"signed body", `{"gateway_session_id":"g-1"}`, "", false},
		{"missing id", `{"type":"payment","data":{}}`, "", false},
		{"invalid json", `{`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ParseGatewayNotification([]byte(tc.body))
			if id != tc.id || ok != tc.ok {
				t.Fatalf("expected (%q,%v), got (%q,%v)", tc.id, tc.ok, id, ok)
			}
		})
	}
}

func TestPaymentRequest_Type(t *testing.T) {
	if (PaymentRequest{PaymentType: " deposit "}).Type() != entities.PaymentTypeDeposit {
		t.Fatalf("expected DEPOSIT")
	}
}
