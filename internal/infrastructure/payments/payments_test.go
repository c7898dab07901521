package payments

import (
	"context"
	"testing"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutRequest() interfaces.CheckoutRequest {
	return interfaces.CheckoutRequest{
		Reference:   "ps-1",
		BookingID:   "b-1",
		PaymentType: entities.PaymentTypeDeposit,
		Amount:      30000,
		Currency:    "BRL",
		PayerEmail:  "ana@example.com",
		ExpiresAt:   time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestMockGatewayRoundTrip(t *testing.T) {
	g := NewMockGateway("http://localhost/v1/payments/return", zerolog.Nop())
	ctx := context.Background()

	session, err := g.CreateCheckoutSession(ctx, checkoutRequest())
	require.NoError(t, err)
	assert.Contains(t, session.SessionID, "mock-")
	assert.Equal(t, "http://localhost/v1/payments/return?payment_id="+session.SessionID, session.RedirectURL)

	ev, err := g.ResolvePayment(ctx, session.SessionID)
	require.NoError(t, err)
	assert.True(t, ev.Captured)
	assert.Equal(t, "ps-1", ev.Reference)
	assert.Equal(t, session.SessionID, ev.GatewaySessionID)
	assert.EqualValues(t, 30000, ev.AmountCaptured)

	_, err = g.ResolvePayment(ctx, "unknown")
	assert.Error(t, err)
}

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "")
		t.Setenv("MERCADOPAGO_MOCK", "")
		_, err := NewMercadoPagoGateway(MercadoPagoOptions{}, zerolog.Nop())
		assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
	})

	t.Run("mock mode", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
		g, err := NewMercadoPagoGateway(MercadoPagoOptions{ReturnURL: "http://r"}, zerolog.Nop())
		require.NoError(t, err)

		session, err := g.CreateCheckoutSession(context.Background(), checkoutRequest())
		require.NoError(t, err)
		ev, err := g.ResolvePayment(context.Background(), session.SessionID)
		require.NoError(t, err)
		assert.True(t, ev.Captured)
	})

	t.Run("nil gateway", func(t *testing.T) {
		var g *MercadoPagoGateway
		_, err := g.CreateCheckoutSession(context.Background(), checkoutRequest())
		assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
	})
}

func TestBuildPreference(t *testing.T) {
	p := buildPreference(checkoutRequest(), MercadoPagoOptions{ReturnURL: "http://r", NotificationURL: "http://n"})

	require.Len(t, p.Items, 1)
	assert.Equal(t, 300.0, p.Items[0].UnitPrice)
	assert.Equal(t, "BRL", p.Items[0].CurrencyID)
	assert.Equal(t, "ps-1", p.ExternalReference)
	assert.Equal(t, "http://n", p.NotificationURL)
	assert.Equal(t, "approved", p.AutoReturn)
	assert.Equal(t, "ana@example.com", p.Payer.Email)
	assert.True(t, p.Expires)
	assert.Equal(t, "2026-03-01T12:30:00Z", p.ExpirationDateTo)

	bare := buildPreference(interfaces.CheckoutRequest{Reference: "ps-2", Amount: 1}, MercadoPagoOptions{})
	assert.Nil(t, bare.BackURLs)
	assert.Nil(t, bare.Payer)
	assert.False(t, bare.Expires)
}

func TestMercadoPagoPaymentToEvent(t *testing.T) {
	approved := time.Date(2026, 3, 1, 13, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	ev := mpPayment{ID: 123, Status: "approved", ExternalReference: "ps-1", TransactionAmount: 299.99, DateApproved: &approved}.toEvent()

	assert.True(t, ev.Captured)
	assert.Equal(t, "123", ev.PaymentRef)
	assert.Equal(t, "ps-1", ev.Reference)
	assert.EqualValues(t, 29999, ev.AmountCaptured)
	assert.Equal(t, time.UTC, ev.CapturedAt.Location())

	pending := mpPayment{ID: 124, Status: "in_process"}.toEvent()
	assert.False(t, pending.Captured)
	assert.True(t, pending.CapturedAt.IsZero())
}

func TestNewOmiseGatewayRequiresKeys(t *testing.T) {
	_, err := NewOmiseGateway(OmiseOptions{PublicKey: "pkey_test"}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrMissingOmiseKeys)
}

func TestSignature(t *testing.T) {
	secret := []byte("whsec")
	body := []byte(`{"gateway_session_id":"g-1","amount_captured":30000}`)
	sig := Sign(secret, body)

	assert.Len(t, sig, 64)
	assert.True(t, VerifySignature(secret, body, sig))
	assert.False(t, VerifySignature(secret, append(body, ' '), sig))
	assert.False(t, VerifySignature([]byte("other"), body, sig))
	assert.False(t, VerifySignature(nil, body, Sign(nil, body)))
	assert.False(t, VerifySignature(secret, body, "not-hex"))
}
