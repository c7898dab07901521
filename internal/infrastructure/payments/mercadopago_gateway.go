package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/rs/zerolog"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

type MercadoPagoOptions struct {
	AccessToken     string
	ReturnURL       string
	NotificationURL string
}

// MercadoPagoGateway opens Checkout Pro preferences and resolves payments
// through the Mercado Pago API. In mock mode every call is served by a
// MockGateway.
type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	opts        MercadoPagoOptions
	mock        *MockGateway
	log         zerolog.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(opts MercadoPagoOptions, log zerolog.Logger) (*MercadoPagoGateway, error) {
	log = log.With().Str("component", "payment-gateway").Str("provider", "mercadopago").Logger()
	if isPaymentGatewayMockEnabled() {
		log.Info().Msg("mock mode enabled")
		return &MercadoPagoGateway{opts: opts, mock: NewMockGateway(opts.ReturnURL, log), log: log}, nil
	}

	if opts.AccessToken == "" {
		log.Error().Msg("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed creating sdk config")
		return nil, err
	}
	log.Info().Msg("Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		opts:        opts,
		log:         log,
	}, nil
}

// preferenceRequest mirrors the Checkout Pro preference body. It is decoded
// into the SDK request so the wire names stay those of the API.
type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url,omitempty"`
	BackURLs          *backURLs        `json:"back_urls,omitempty"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	Payer             *payer           `json:"payer,omitempty"`
	Expires           bool             `json:"expires"`
	ExpirationDateTo  string           `json:"expiration_date_to,omitempty"`
}

type preferenceItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	CurrencyID  string  `json:"currency_id"`
	Description string  `json:"description,omitempty"`
}

type backURLs struct {
	Success string `json:"success"`
	Pending string `json:"pending"`
	Failure string `json:"failure"`
}

type payer struct {
	Email string `json:"email"`
}

func buildPreference(req interfaces.CheckoutRequest, opts MercadoPagoOptions) preferenceRequest {
	title := req.Description
	if title == "" {
		title = fmt.Sprintf("Booking %s (%s)", req.BookingID, req.PaymentType)
	}
	p := preferenceRequest{
		Items: []preferenceItem{{
			ID:         req.BookingID,
			Title:      title,
			Quantity:   1,
			UnitPrice:  toMajorUnits(req.Amount),
			CurrencyID: req.Currency,
		}},
		ExternalReference: req.Reference,
		NotificationURL:   opts.NotificationURL,
	}
	if opts.ReturnURL != "" {
		p.BackURLs = &backURLs{Success: opts.ReturnURL, Pending: opts.ReturnURL, Failure: opts.ReturnURL}
		p.AutoReturn = "approved"
	}
	if req.PayerEmail != "" {
		p.Payer = &payer{Email: req.PayerEmail}
	}
	if !req.ExpiresAt.IsZero() {
		p.Expires = true
		p.ExpirationDateTo = req.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return p
}

func (g *MercadoPagoGateway) CreateCheckoutSession(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.CheckoutSession, error) {
	if g != nil && g.mock != nil {
		return g.mock.CreateCheckoutSession(ctx, req)
	}
	if g == nil || g.preferences == nil {
		return interfaces.CheckoutSession{}, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Info().Str("reference", req.Reference).Int64("amount", int64(req.Amount)).Msg("create preference start")

	raw, err := json.Marshal(buildPreference(req, g.opts))
	if err != nil {
		return interfaces.CheckoutSession{}, err
	}
	var sdkReq preference.Request
	if err := json.Unmarshal(raw, &sdkReq); err != nil {
		return interfaces.CheckoutSession{}, fmt.Errorf("build preference request: %w", err)
	}

	resp, err := g.preferences.Create(ctx, sdkReq)
	if err != nil {
		g.log.Warn().Err(err).Str("reference", req.Reference).Msg("sdk create preference failed")
		return interfaces.CheckoutSession{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}

	var created struct {
		ID        string `json:"id"`
		InitPoint string `json:"init_point"`
	}
	if err := remarshal(resp, &created); err != nil {
		return interfaces.CheckoutSession{}, err
	}
	g.log.Info().Str("reference", req.Reference).Str("gateway_session_id", created.ID).Msg("create preference success")
	return interfaces.CheckoutSession{SessionID: created.ID, RedirectURL: created.InitPoint}, nil
}

// mpPayment holds the payment fields the engine reads.
type mpPayment struct {
	ID                int64      `json:"id"`
	Status            string     `json:"status"`
	ExternalReference string     `json:"external_reference"`
	TransactionAmount float64    `json:"transaction_amount"`
	DateApproved      *time.Time `json:"date_approved"`
}

func (g *MercadoPagoGateway) ResolvePayment(ctx context.Context, paymentRef string) (entities.GatewayEvent, error) {
	if g != nil && g.mock != nil {
		return g.mock.ResolvePayment(ctx, paymentRef)
	}
	if g == nil || g.payments == nil {
		return entities.GatewayEvent{}, ErrMercadoPagoGatewayNotConfigured
	}
	id, err := strconv.Atoi(strings.TrimSpace(paymentRef))
	if err != nil {
		return entities.GatewayEvent{}, fmt.Errorf("invalid mercado pago payment id %q", paymentRef)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		g.log.Warn().Err(err).Str("payment_ref", paymentRef).Msg("sdk get payment failed")
		return entities.GatewayEvent{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}
	var p mpPayment
	if err := remarshal(resp, &p); err != nil {
		return entities.GatewayEvent{}, err
	}
	return p.toEvent(), nil
}

func (p mpPayment) toEvent() entities.GatewayEvent {
	ev := entities.GatewayEvent{
		Reference:      p.ExternalReference,
		PaymentRef:     strconv.FormatInt(p.ID, 10),
		AmountCaptured: fromMajorUnits(p.TransactionAmount),
		Captured:       p.Status == "approved",
	}
	if p.DateApproved != nil {
		ev.CapturedAt = p.DateApproved.UTC()
	}
	return ev
}

func remarshal(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func toMajorUnits(c money.Cents) float64 {
	return float64(c) / 100
}

func fromMajorUnits(v float64) money.Cents {
	if v < 0 {
		return money.Cents(v*100 - 0.5)
	}
	return money.Cents(v*100 + 0.5)
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
