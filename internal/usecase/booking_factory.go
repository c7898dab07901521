package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"

	"github.com/google/uuid"
)

// AcceptanceDetails is what the client supplies when accepting a quote or
// booking a listing directly.
type AcceptanceDetails struct {
	PaymentMode     entities.PaymentMode
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	EventDate       time.Time
	EventLocation   string
	GuestsCount     int
	SpecialRequests string
}

func (d AcceptanceDetails) validate(now time.Time) error {
	if strings.TrimSpace(d.ClientName) == "" {
		return fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(d.ClientEmail)); err != nil {
		return fmt.Errorf("%w: client_email is invalid", ErrInvalidInput)
	}
	if d.EventDate.IsZero() || !d.EventDate.After(now) {
		return fmt.Errorf("%w: event_date must be in the future", ErrInvalidInput)
	}
	if d.GuestsCount < 0 {
		return fmt.Errorf("%w: guests_count must not be negative", ErrInvalidInput)
	}
	if d.PaymentMode != "" && !d.PaymentMode.Valid() {
		return fmt.Errorf("%w: unknown payment_mode %q", ErrInvalidInput, d.PaymentMode)
	}
	return nil
}

// BookingFactory turns an accepted quote, or a set of listings, into a new
// PENDING_PAYMENT booking with its payment plan computed.
type BookingFactory struct {
	opts options
}

func NewBookingFactory(opts ...Option) *BookingFactory {
	return &BookingFactory{opts: newOptions(opts)}
}

// CreateFromQuote builds the booking for q. The caller has already checked
// that q is acceptable (status and validity).
func (f *BookingFactory) CreateFromQuote(q entities.Quote, d AcceptanceDetails, now time.Time) (entities.Booking, error) {
	if err := d.validate(now); err != nil {
		return entities.Booking{}, err
	}
	mode, err := resolveQuotePaymentMode(q, d.PaymentMode)
	if err != nil {
		return entities.Booking{}, err
	}

	b := f.newBooking(q.ProviderID, q.ClientID, q.Currency, d, now)
	b.QuoteID = q.ID
	b.PricingTotal = q.Total()
	if err := f.applyPlan(&b, mode, q.DepositPercent, now); err != nil {
		return entities.Booking{}, err
	}
	return b, nil
}

// CreateDirect builds a "Book Now" booking priced at the sum of the listings'
// minimum prices. Listings are loaded server side by the caller.
func (f *BookingFactory) CreateDirect(providerID, clientID string, listings []entities.Listing, d AcceptanceDetails, now time.Time) (entities.Booking, error) {
	if err := d.validate(now); err != nil {
		return entities.Booking{}, err
	}
	if len(listings) == 0 {
		return entities.Booking{}, fmt.Errorf("%w: at least one listing is required", ErrInvalidInput)
	}

	codAllowed := true
	ids := make([]string, 0, len(listings))
	var total money.Cents
	currency := ""
	for _, l := range listings {
		if l.ProviderID != providerID {
			return entities.Booking{}, fmt.Errorf("%w: listing %s belongs to another provider", ErrInvalidInput, l.ID)
		}
		if !l.Active {
			return entities.Booking{}, fmt.Errorf("%w: listing %s is not active", ErrInvalidInput, l.ID)
		}
		if currency != "" && l.Currency != "" && l.Currency != currency {
			return entities.Booking{}, fmt.Errorf("%w: listings use different currencies", ErrInvalidInput)
		}
		if l.Currency != "" {
			currency = l.Currency
		}
		codAllowed = codAllowed && l.AllowsCashOnDelivery
		total += l.MinPrice
		ids = append(ids, l.ID)
	}

	mode := d.PaymentMode
	if mode == "" {
		mode = entities.PaymentModeFull
	}
	if mode == entities.PaymentModeCashOnDelivery && !codAllowed {
		return entities.Booking{}, fmt.Errorf("%w: cash on delivery not offered for every listing", ErrPaymentModeMismatch)
	}

	b := f.newBooking(providerID, clientID, currency, d, now)
	b.ListingIDs = ids
	b.PricingTotal = total
	if err := f.applyPlan(&b, mode, nil, now); err != nil {
		return entities.Booking{}, err
	}
	return b, nil
}

func (f *BookingFactory) newBooking(providerID, clientID, currency string, d AcceptanceDetails, now time.Time) entities.Booking {
	if currency == "" {
		currency = f.opts.currency
	}
	return entities.Booking{
		ID:              uuid.NewString(),
		ProviderID:      providerID,
		ClientID:        clientID,
		ClientName:      strings.TrimSpace(d.ClientName),
		ClientEmail:     strings.TrimSpace(d.ClientEmail),
		ClientPhone:     strings.TrimSpace(d.ClientPhone),
		EventDate:       d.EventDate.UTC(),
		EventLocation:   strings.TrimSpace(d.EventLocation),
		GuestsCount:     d.GuestsCount,
		SpecialRequests: strings.TrimSpace(d.SpecialRequests),
		Currency:        currency,
		Status:          entities.BookingStatusPendingPayment,
		StatusTimeline: []entities.StatusTimelineEntry{
			{Status: entities.BookingStatusPendingPayment, Timestamp: now, Note: "created"},
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CheckQuoteTerms rejects a quote whose DEPOSIT_BALANCE terms could never be
// accepted. Quotes that exclude DEPOSIT_BALANCE pass whatever their percent.
func (f *BookingFactory) CheckQuoteTerms(q entities.Quote, now time.Time) error {
	if _, err := resolveQuotePaymentMode(q, entities.PaymentModeDepositBalance); err != nil {
		return nil
	}
	b := entities.Booking{PricingTotal: q.Total()}
	return f.applyPlan(&b, entities.PaymentModeDepositBalance, q.DepositPercent, now)
}

func (f *BookingFactory) applyPlan(b *entities.Booking, mode entities.PaymentMode, depositPercent *int, now time.Time) error {
	if b.PricingTotal <= 0 {
		return fmt.Errorf("%w: pricing total must be positive", ErrInvalidPaymentPlan)
	}
	b.PaymentMode = mode
	if mode != entities.PaymentModeDepositBalance {
		return nil
	}

	pct := f.opts.depositPercent
	if depositPercent != nil {
		pct = *depositPercent
	}
	deposit, balance, err := money.Split(b.PricingTotal, pct)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPaymentPlan, err)
	}
	if deposit == 0 {
		return fmt.Errorf("%w: deposit of %d%% on %s is zero", ErrInvalidPaymentPlan, pct, b.PricingTotal)
	}
	b.DepositPercent = &pct
	b.DepositAmount = &deposit
	b.BalanceAmount = &balance
	if balance > 0 {
		due := b.EventDate.Add(-f.opts.balanceLeadTime)
		if due.Before(now) {
			due = now
		}
		b.BalanceDueDate = &due
	}
	return nil
}

// resolveQuotePaymentMode picks the booking's payment mode from the client's
// choice and the quote terms.
//
//   - AllowedPaymentModes, when set, is the whole list of acceptable modes; a
//     single entry fixes the mode.
//   - Without it, FULL_PAYMENT and DEPOSIT_BALANCE are allowed, plus the
//     quote's suggested mode.
//   - No choice falls back to the fixed mode, then the suggested mode, then
//     FULL_PAYMENT.
func resolveQuotePaymentMode(q entities.Quote, chosen entities.PaymentMode) (entities.PaymentMode, error) {
	allowed := q.AllowedPaymentModes
	if len(allowed) == 0 {
		allowed = []entities.PaymentMode{entities.PaymentModeFull, entities.PaymentModeDepositBalance}
		if q.PaymentMode.Valid() && !containsMode(allowed, q.PaymentMode) {
			allowed = append(allowed, q.PaymentMode)
		}
	}

	mode := chosen
	if mode == "" {
		switch {
		case len(q.AllowedPaymentModes) == 1:
			mode = q.AllowedPaymentModes[0]
		case q.PaymentMode.Valid():
			mode = q.PaymentMode
		default:
			mode = entities.PaymentModeFull
		}
	}
	if !mode.Valid() {
		return "", fmt.Errorf("%w: unknown payment_mode %q", ErrInvalidInput, mode)
	}
	if !containsMode(allowed, mode) {
		return "", fmt.Errorf("%w: %s not in %v", ErrPaymentModeMismatch, mode, allowed)
	}
	return mode, nil
}

func containsMode(modes []entities.PaymentMode, m entities.PaymentMode) bool {
	for _, v := range modes {
		if v == m {
			return true
		}
	}
	return false
}
