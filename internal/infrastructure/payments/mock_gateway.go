package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MockGateway opens fake checkouts and reports each one as captured for the
// requested amount. ResolvePayment accepts the session id it handed out.
type MockGateway struct {
	mu       sync.Mutex
	baseURL  string
	sessions map[string]interfaces.CheckoutRequest
	now      func() time.Time
	log      zerolog.Logger
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway(baseURL string, log zerolog.Logger) *MockGateway {
	return &MockGateway{
		baseURL:  baseURL,
		sessions: make(map[string]interfaces.CheckoutRequest),
		now:      func() time.Time { return time.Now().UTC() },
		log:      log.With().Str("component", "payment-gateway").Str("provider", "mock").Logger(),
	}
}

func (g *MockGateway) CreateCheckoutSession(_ context.Context, req interfaces.CheckoutRequest) (interfaces.CheckoutSession, error) {
	id := "mock-" + uuid.NewString()
	g.mu.Lock()
	g.sessions[id] = req
	g.mu.Unlock()

	g.log.Info().Str("gateway_session_id", id).Str("reference", req.Reference).Int64("amount", int64(req.Amount)).Msg("mock checkout created")
	return interfaces.CheckoutSession{
		SessionID:   id,
		RedirectURL: fmt.Sprintf("%s?payment_id=%s", g.baseURL, id),
	}, nil
}

func (g *MockGateway) ResolvePayment(_ context.Context, paymentRef string) (entities.GatewayEvent, error) {
	g.mu.Lock()
	req, ok := g.sessions[paymentRef]
	g.mu.Unlock()
	if !ok {
		return entities.GatewayEvent{}, fmt.Errorf("mock payment %s not found", paymentRef)
	}
	return entities.GatewayEvent{
		GatewaySessionID: paymentRef,
		Reference:        req.Reference,
		PaymentRef:       paymentRef,
		AmountCaptured:   req.Amount,
		CapturedAt:       g.now(),
		Captured:         true,
	}, nil
}
