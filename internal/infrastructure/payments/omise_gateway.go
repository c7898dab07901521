package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
	"github.com/rs/zerolog"
)

var ErrMissingOmiseKeys = errors.New("missing OMISE_PUBLIC_KEY or OMISE_SECRET_KEY")

type OmiseOptions struct {
	PublicKey  string
	SecretKey  string
	SourceType string
	ReturnURL  string
}

// OmiseGateway opens a redirect source and a charge on it; the charge's
// authorize URI is where the client pays.
type OmiseGateway struct {
	client *omise.Client
	opts   OmiseOptions
	now    func() time.Time
	log    zerolog.Logger
}

var _ interfaces.IPaymentGateway = (*OmiseGateway)(nil)

func NewOmiseGateway(opts OmiseOptions, log zerolog.Logger) (*OmiseGateway, error) {
	if opts.PublicKey == "" || opts.SecretKey == "" {
		return nil, ErrMissingOmiseKeys
	}
	c, err := omise.NewClient(opts.PublicKey, opts.SecretKey)
	if err != nil {
		return nil, err
	}
	if opts.SourceType == "" {
		opts.SourceType = "mobile_banking_kbank"
	}
	return &OmiseGateway{
		client: c,
		opts:   opts,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.With().Str("component", "payment-gateway").Str("provider", "omise").Logger(),
	}, nil
}

func (g *OmiseGateway) CreateCheckoutSession(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.CheckoutSession, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.CheckoutSession{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}
	currency := strings.ToLower(req.Currency)

	src := &omise.Source{}
	if err := g.client.Do(src, &operations.CreateSource{
		Type:     g.opts.SourceType,
		Amount:   int64(req.Amount),
		Currency: currency,
	}); err != nil {
		g.log.Warn().Err(err).Str("reference", req.Reference).Msg("create source failed")
		return interfaces.CheckoutSession{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}

	ch := &omise.Charge{}
	if err := g.client.Do(ch, &operations.CreateCharge{
		Amount:    int64(req.Amount),
		Currency:  currency,
		Source:    src.ID,
		ReturnURI: g.opts.ReturnURL,
		Metadata: map[string]any{
			"reference":    req.Reference,
			"booking_id":   req.BookingID,
			"payment_type": string(req.PaymentType),
		},
	}); err != nil {
		g.log.Warn().Err(err).Str("reference", req.Reference).Msg("create charge failed")
		return interfaces.CheckoutSession{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}

	g.log.Info().Str("reference", req.Reference).Str("charge_id", ch.ID).Str("status", string(ch.Status)).Msg("charge created")
	return interfaces.CheckoutSession{SessionID: ch.ID, RedirectURL: ch.AuthorizeURI}, nil
}

func (g *OmiseGateway) ResolvePayment(ctx context.Context, paymentRef string) (entities.GatewayEvent, error) {
	if err := ctx.Err(); err != nil {
		return entities.GatewayEvent{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}
	ch := &omise.Charge{}
	if err := g.client.Do(ch, &operations.RetrieveCharge{ChargeID: paymentRef}); err != nil {
		g.log.Warn().Err(err).Str("payment_ref", paymentRef).Msg("retrieve charge failed")
		return entities.GatewayEvent{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}

	reference, _ := ch.Metadata["reference"].(string)
	return entities.GatewayEvent{
		GatewaySessionID: ch.ID,
		Reference:        reference,
		PaymentRef:       ch.ID,
		AmountCaptured:   money.Cents(ch.Amount),
		CapturedAt:       g.now(),
		Captured:         string(ch.Status) == "successful",
	}, nil
}
