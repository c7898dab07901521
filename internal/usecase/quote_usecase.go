package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// IQuoteUseCase drives the quote state machine:
//
//	DRAFT -> SENT -> VIEWED -> ACCEPTED | DECLINED
//	SENT/VIEWED past validUntil read as EXPIRED
//	SENT/VIEWED/EXPIRED -> REVISED -> SENT
//
// Accept creates the booking in the same atomic write.
type IQuoteUseCase interface {
	CreateDraft(ctx context.Context, actor entities.Actor, in QuoteDraftInput) (entities.Quote, error)
	UpdateDraft(ctx context.Context, actor entities.Actor, quoteID string, in QuoteDraftInput) (entities.Quote, error)
	Send(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error)
	MarkViewed(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error)
	Decline(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error)
	Accept(ctx context.Context, actor entities.Actor, quoteID string, details AcceptanceDetails) (entities.Quote, entities.Booking, error)
	Revise(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error)
	GetByID(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error)
	ExpireStale(ctx context.Context) (int, error)
}

type QuoteDraftInput struct {
	InquiryID           string
	ClientID            string
	Items               []entities.QuoteItem
	Currency            string
	ValidUntil          time.Time
	PaymentMode         entities.PaymentMode
	AllowedPaymentModes []entities.PaymentMode
	DepositPercent      *int
	Notes               string
}

func (in QuoteDraftInput) validate() error {
	if strings.TrimSpace(in.InquiryID) == "" {
		return fmt.Errorf("%w: inquiry_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.ClientID) == "" {
		return fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.Description) == "" {
			return fmt.Errorf("%w: items[%d].description is required", ErrInvalidInput, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity must be at least 1", ErrInvalidInput, i)
		}
		if it.UnitPrice < 0 {
			return fmt.Errorf("%w: items[%d].unit_price must not be negative", ErrInvalidInput, i)
		}
	}
	if in.DepositPercent != nil && (*in.DepositPercent < 0 || *in.DepositPercent > 100) {
		return fmt.Errorf("%w: deposit_percent must be between 0 and 100", ErrInvalidInput)
	}
	if in.PaymentMode != "" && !in.PaymentMode.Valid() {
		return fmt.Errorf("%w: unknown payment_mode %q", ErrInvalidInput, in.PaymentMode)
	}
	for _, m := range in.AllowedPaymentModes {
		if !m.Valid() {
			return fmt.Errorf("%w: unknown allowed payment mode %q", ErrInvalidInput, m)
		}
	}
	return nil
}

type QuoteUseCase struct {
	repo     interfaces.IQuoteRepository
	tx       interfaces.ITransactionalRepository
	factory  *BookingFactory
	locker   interfaces.ILocker
	notifier interfaces.INotifier
	opts     options
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	repo interfaces.IQuoteRepository,
	tx interfaces.ITransactionalRepository,
	factory *BookingFactory,
	locker interfaces.ILocker,
	notifier interfaces.INotifier,
	opts ...Option,
) *QuoteUseCase {
	o := newOptions(opts)
	o.log = o.log.With().Str("component", "quote").Str("layer", "usecase").Logger()
	if factory == nil {
		factory = NewBookingFactory(opts...)
	}
	return &QuoteUseCase{repo: repo, tx: tx, factory: factory, locker: locker, notifier: notifier, opts: o}
}

func (u *QuoteUseCase) CreateDraft(ctx context.Context, actor entities.Actor, in QuoteDraftInput) (entities.Quote, error) {
	if actor.Role != entities.RoleVendor {
		return entities.Quote{}, fmt.Errorf("%w: only vendors create quotes", ErrForbidden)
	}
	if err := in.validate(); err != nil {
		return entities.Quote{}, err
	}

	now := u.opts.now()
	q := entities.Quote{
		ID:         uuid.NewString(),
		ProviderID: actor.UserID,
		Status:     entities.QuoteStatusDraft,
		Version:    1,
		CreatedAt:  now,
	}
	u.applyDraft(&q, in, now)

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		u.opts.log.Error().Err(err).Str("quote_id", q.ID).Msg("create draft failed")
		return entities.Quote{}, err
	}
	u.opts.log.Info().Str("quote_id", created.ID).Str("provider_id", created.ProviderID).Msg("draft created")
	return created, nil
}

func (u *QuoteUseCase) UpdateDraft(ctx context.Context, actor entities.Actor, quoteID string, in QuoteDraftInput) (entities.Quote, error) {
	if err := in.validate(); err != nil {
		return entities.Quote{}, err
	}
	return u.mutate(ctx, quoteID, func(q *entities.Quote, now time.Time) ([]entities.LifecycleEvent, error) {
		if !actor.Is(q.ProviderID) {
			return nil, ErrForbidden
		}
		if !q.Editable() {
			return nil, fmt.Errorf("%w: quote %s is %s", ErrInvalidState, q.ID, q.Status)
		}
		u.applyDraft(q, in, now)
		return nil, nil
	})
}

func (u *QuoteUseCase) Send(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error) {
	return u.mutate(ctx, quoteID, func(q *entities.Quote, now time.Time) ([]entities.LifecycleEvent, error) {
		if !actor.Is(q.ProviderID) {
			return nil, ErrForbidden
		}
		if !q.Editable() {
			return nil, fmt.Errorf("%w: quote %s is %s", ErrInvalidState, q.ID, q.Status)
		}
		if !q.HasPricedItem() {
			return nil, fmt.Errorf("%w: quote %s has no priced item", ErrInvalidState, q.ID)
		}
		if q.ValidUntil.IsZero() || q.IsExpired(now) {
			return nil, fmt.Errorf("%w: valid_until must be in the future", ErrInvalidInput)
		}
		if err := u.factory.CheckQuoteTerms(*q, now); err != nil {
			return nil, err
		}
		q.Status = entities.QuoteStatusSent
		q.SentAt = &now
		q.ViewedAt = nil
		return []entities.LifecycleEvent{entities.NewQuoteEvent(entities.EventQuoteSent, *q, now)}, nil
	})
}

// MarkViewed records the client's first look. Viewing an already viewed,
// answered or expired quote changes nothing.
func (u *QuoteUseCase) MarkViewed(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error) {
	return u.mutate(ctx, quoteID, func(q *entities.Quote, now time.Time) ([]entities.LifecycleEvent, error) {
		if !actor.Is(q.ClientID) {
			return nil, ErrForbidden
		}
		if q.Editable() {
			return nil, fmt.Errorf("%w: quote %s is %s", ErrInvalidState, q.ID, q.Status)
		}
		if q.Status != entities.QuoteStatusSent || q.IsExpired(now) {
			return nil, errNoChange
		}
		q.Status = entities.QuoteStatusViewed
		q.ViewedAt = &now
		return nil, nil
	})
}

// Decline follows Accept: expiry wins over whatever status is stored.
func (u *QuoteUseCase) Decline(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error) {
	return u.mutate(ctx, quoteID, func(q *entities.Quote, now time.Time) ([]entities.LifecycleEvent, error) {
		if !actor.Is(q.ClientID) {
			return nil, ErrForbidden
		}
		if q.IsExpired(now) {
			return nil, fmt.Errorf("%w: quote %s expired at %s", ErrExpired, q.ID, q.ValidUntil.Format(time.RFC3339))
		}
		if !q.AwaitingAnswer() {
			return nil, fmt.Errorf("%w: quote %s is %s", ErrInvalidState, q.ID, q.Status)
		}
		q.Status = entities.QuoteStatusDeclined
		q.DeclinedAt = &now
		return []entities.LifecycleEvent{entities.NewQuoteEvent(entities.EventQuoteDeclined, *q, now)}, nil
	})
}

// Revise reopens a sent or expired quote for editing. The client sees it
// again only after the next Send.
func (u *QuoteUseCase) Revise(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error) {
	return u.mutate(ctx, quoteID, func(q *entities.Quote, now time.Time) ([]entities.LifecycleEvent, error) {
		if !actor.Is(q.ProviderID) {
			return nil, ErrForbidden
		}
		switch q.Status {
		case entities.QuoteStatusSent, entities.QuoteStatusViewed, entities.QuoteStatusExpired:
		default:
			return nil, fmt.Errorf("%w: quote %s is %s", ErrInvalidState, q.ID, q.Status)
		}
		q.Status = entities.QuoteStatusRevised
		return nil, nil
	})
}

// Accept checks validity before status, so a quote past validUntil always
// fails with ErrExpired whatever its stored status says.
func (u *QuoteUseCase) Accept(ctx context.Context, actor entities.Actor, quoteID string, details AcceptanceDetails) (entities.Quote, entities.Booking, error) {
	ctx, span := tracer.Start(ctx, "QuoteUseCase.Accept")
	defer span.End()
	span.SetAttributes(attribute.String("quote.id", quoteID))

	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, entities.Booking{}, fmt.Errorf("%w: quote id is required", ErrInvalidInput)
	}
	log := u.opts.log.With().Str("quote_id", quoteID).Logger()
	log.Info().Str("actor", actor.UserID).Msg("accept start")

	var accepted entities.Quote
	var booking entities.Booking
	err := withLock(ctx, u.locker, quoteLockKey(quoteID), func() error {
		q, err := u.load(ctx, quoteID)
		if err != nil {
			return err
		}
		if !actor.Is(q.ClientID) {
			return ErrForbidden
		}
		now := u.opts.now()
		if q.IsExpired(now) {
			return fmt.Errorf("%w: quote %s expired at %s", ErrExpired, q.ID, q.ValidUntil.Format(time.RFC3339))
		}
		if !q.AwaitingAnswer() {
			return fmt.Errorf("%w: quote %s is %s", ErrInvalidState, q.ID, q.Status)
		}

		b, err := u.factory.CreateFromQuote(q, details, now)
		if err != nil {
			return err
		}

		next := q.Clone()
		next.Status = entities.QuoteStatusAccepted
		next.AcceptedAt = &now
		next.BookingID = b.ID
		next.UpdatedAt = now
		if err := u.tx.AcceptQuote(ctx, next, b); err != nil {
			return conflictErr(err)
		}
		next.Version++
		accepted, booking = next, b
		return nil
	})
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("accept failed")
		return entities.Quote{}, entities.Booking{}, err
	}

	log.Info().Str("booking_id", booking.ID).Str("payment_mode", string(booking.PaymentMode)).Msg("accept success")
	publish(ctx, u.notifier, u.opts.log,
		entities.NewQuoteEvent(entities.EventQuoteAccepted, accepted, booking.CreatedAt),
		entities.NewBookingEvent(entities.EventBookingCreated, booking, booking.CreatedAt),
	)
	return accepted, booking, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error) {
	q, err := u.load(ctx, strings.TrimSpace(quoteID))
	if err != nil {
		return entities.Quote{}, err
	}
	if !actor.IsAdmin() && !actor.Is(q.ProviderID) && !actor.Is(q.ClientID) {
		return entities.Quote{}, ErrForbidden
	}
	if actor.Is(q.ClientID) && q.Status == entities.QuoteStatusDraft {
		return entities.Quote{}, ErrQuoteNotFound
	}
	q.Status = q.EffectiveStatus(u.opts.now())
	return q, nil
}

// ExpireStale persists EXPIRED for quotes that are past validity while still
// awaiting an answer. Quotes changed concurrently are skipped.
func (u *QuoteUseCase) ExpireStale(ctx context.Context) (int, error) {
	now := u.opts.now()
	expired := 0
	for _, status := range []entities.QuoteStatus{entities.QuoteStatusSent, entities.QuoteStatusViewed} {
		quotes, err := u.repo.ListByStatus(ctx, status)
		if err != nil {
			return expired, err
		}
		for _, q := range quotes {
			if !q.IsExpired(now) {
				continue
			}
			next := q.Clone()
			next.Status = entities.QuoteStatusExpired
			next.UpdatedAt = now
			if _, err := u.repo.Update(ctx, next); err != nil {
				if errors.Is(err, interfaces.ErrVersionConflict) {
					continue
				}
				return expired, err
			}
			expired++
		}
	}
	if expired > 0 {
		u.opts.log.Info().Int("count", expired).Msg("expired stale quotes")
	}
	return expired, nil
}

var errNoChange = errors.New("no change")

// mutate loads the quote, applies fn to a copy and stores it with an
// optimistic version check. fn returning errNoChange yields the stored quote
// untouched.
func (u *QuoteUseCase) mutate(
	ctx context.Context,
	quoteID string,
	fn func(q *entities.Quote, now time.Time) ([]entities.LifecycleEvent, error),
) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, fmt.Errorf("%w: quote id is required", ErrInvalidInput)
	}

	var out entities.Quote
	var events []entities.LifecycleEvent
	err := withLock(ctx, u.locker, quoteLockKey(quoteID), func() error {
		q, err := u.load(ctx, quoteID)
		if err != nil {
			return err
		}
		now := u.opts.now()
		next := q.Clone()
		events, err = fn(&next, now)
		if errors.Is(err, errNoChange) {
			out = q
			out.Status = q.EffectiveStatus(now)
			return nil
		}
		if err != nil {
			return err
		}
		next.UpdatedAt = now
		stored, err := u.repo.Update(ctx, next)
		if err != nil {
			return conflictErr(err)
		}
		out = stored
		return nil
	})
	if err != nil {
		u.opts.log.Debug().Err(err).Str("quote_id", quoteID).Msg("quote update rejected")
		return entities.Quote{}, err
	}
	publish(ctx, u.notifier, u.opts.log, events...)
	return out, nil
}

func (u *QuoteUseCase) load(ctx context.Context, quoteID string) (entities.Quote, error) {
	q, err := u.repo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) applyDraft(q *entities.Quote, in QuoteDraftInput, now time.Time) {
	q.InquiryID = strings.TrimSpace(in.InquiryID)
	q.ClientID = strings.TrimSpace(in.ClientID)
	q.Items = append([]entities.QuoteItem(nil), in.Items...)
	q.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if q.Currency == "" {
		q.Currency = u.opts.currency
	}
	q.ValidUntil = in.ValidUntil.UTC()
	q.PaymentMode = in.PaymentMode
	q.AllowedPaymentModes = append([]entities.PaymentMode(nil), in.AllowedPaymentModes...)
	q.DepositPercent = nil
	if in.DepositPercent != nil {
		pct := *in.DepositPercent
		q.DepositPercent = &pct
	}
	q.Notes = strings.TrimSpace(in.Notes)
	q.UpdatedAt = now
}
