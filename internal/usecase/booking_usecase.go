package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"go.opentelemetry.io/otel/attribute"
)

// IBookingUseCase exposes the booking lifecycle outside of payments:
// direct bookings, vendor confirmation, cancellation, completion, refunds
// and the sweeps run by the worker.
type IBookingUseCase interface {
	CreateDirect(ctx context.Context, actor entities.Actor, in DirectBookingInput) (entities.Booking, error)
	GetByID(ctx context.Context, actor entities.Actor, bookingID string) (entities.Booking, error)
	Cancel(ctx context.Context, actor entities.Actor, bookingID, reason string) (entities.Booking, error)
	Confirm(ctx context.Context, actor entities.Actor, bookingID string) (entities.Booking, error)
	Complete(ctx context.Context, actor entities.Actor, bookingID string) (entities.Booking, error)
	Refund(ctx context.Context, actor entities.Actor, bookingID, note string) (entities.Booking, error)
	ScheduleDueBalances(ctx context.Context) (int, error)
	CompleteElapsed(ctx context.Context) (int, error)
}

type DirectBookingInput struct {
	ProviderID string
	ListingIDs []string
	Details    AcceptanceDetails
}

type BookingUseCase struct {
	repo     interfaces.IBookingRepository
	listings interfaces.IListingRepository
	factory  *BookingFactory
	locker   interfaces.ILocker
	notifier interfaces.INotifier
	opts     options
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(
	repo interfaces.IBookingRepository,
	listings interfaces.IListingRepository,
	factory *BookingFactory,
	locker interfaces.ILocker,
	notifier interfaces.INotifier,
	opts ...Option,
) *BookingUseCase {
	o := newOptions(opts)
	o.log = o.log.With().Str("component", "booking").Str("layer", "usecase").Logger()
	if factory == nil {
		factory = NewBookingFactory(opts...)
	}
	return &BookingUseCase{repo: repo, listings: listings, factory: factory, locker: locker, notifier: notifier, opts: o}
}

func (u *BookingUseCase) CreateDirect(ctx context.Context, actor entities.Actor, in DirectBookingInput) (entities.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingUseCase.CreateDirect")
	defer span.End()

	if actor.Role != entities.RoleClient {
		return entities.Booking{}, fmt.Errorf("%w: only clients book listings", ErrForbidden)
	}
	providerID := strings.TrimSpace(in.ProviderID)
	if providerID == "" {
		return entities.Booking{}, fmt.Errorf("%w: provider_id is required", ErrInvalidInput)
	}
	if len(in.ListingIDs) == 0 {
		return entities.Booking{}, fmt.Errorf("%w: listing_ids is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(in.ListingIDs))
	listings := make([]entities.Listing, 0, len(in.ListingIDs))
	for _, raw := range in.ListingIDs {
		id := strings.TrimSpace(raw)
		if _, dup := seen[id]; dup || id == "" {
			return entities.Booking{}, fmt.Errorf("%w: listing ids must be unique and non-empty", ErrInvalidInput)
		}
		seen[id] = struct{}{}

		l, err := u.listings.GetByID(ctx, id)
		if err != nil {
			return entities.Booking{}, err
		}
		if l.ID == "" {
			return entities.Booking{}, fmt.Errorf("%w: %s", ErrListingNotFound, id)
		}
		listings = append(listings, l)
	}

	b, err := u.factory.CreateDirect(providerID, actor.UserID, listings, in.Details, u.opts.now())
	if err != nil {
		return entities.Booking{}, err
	}
	created, err := u.repo.Create(ctx, b)
	if err != nil {
		u.opts.log.Error().Err(err).Str("booking_id", b.ID).Msg("create direct booking failed")
		return entities.Booking{}, err
	}
	span.SetAttributes(attribute.String("booking.id", created.ID))
	u.opts.log.Info().
		Str("booking_id", created.ID).
		Str("provider_id", created.ProviderID).
		Str("payment_mode", string(created.PaymentMode)).
		Int64("pricing_total", int64(created.PricingTotal)).
		Msg("direct booking created")

	publish(ctx, u.notifier, u.opts.log, entities.NewBookingEvent(entities.EventBookingCreated, created, created.CreatedAt))
	return created, nil
}

func (u *BookingUseCase) GetByID(ctx context.Context, actor entities.Actor, bookingID string) (entities.Booking, error) {
	b, err := loadBooking(ctx, u.repo, bookingID)
	if err != nil {
		return entities.Booking{}, err
	}
	if !canSeeBooking(actor, b) {
		return entities.Booking{}, ErrForbidden
	}
	return b, nil
}

// Cancel is open to the client, the owning vendor and admins. Captured money
// is not refunded here.
func (u *BookingUseCase) Cancel(ctx context.Context, actor entities.Actor, bookingID, reason string) (entities.Booking, error) {
	return u.mutate(ctx, bookingID, func(b *entities.Booking, now time.Time) ([]entities.LifecycleEvent, error) {
		if !canSeeBooking(actor, *b) {
			return nil, ErrForbidden
		}
		return CancelBooking(b, actor, reason, now)
	})
}

// Confirm is the vendor's commitment: FULLY_PAID -> CONFIRMED, or straight
// from PENDING_PAYMENT for cash-on-delivery bookings.
func (u *BookingUseCase) Confirm(ctx context.Context, actor entities.Actor, bookingID string) (entities.Booking, error) {
	return u.mutate(ctx, bookingID, func(b *entities.Booking, now time.Time) ([]entities.LifecycleEvent, error) {
		if !actor.IsAdmin() && !actor.Is(b.ProviderID) {
			return nil, ErrForbidden
		}
		switch {
		case b.Status == entities.BookingStatusConfirmed:
			return nil, errNoChange
		case b.Status == entities.BookingStatusFullyPaid:
			return transition(b, entities.BookingStatusConfirmed, now, "confirmed by vendor")
		case b.Status == entities.BookingStatusPendingPayment && b.PaymentMode == entities.PaymentModeCashOnDelivery:
			return transition(b, entities.BookingStatusConfirmed, now, "confirmed by vendor, cash on delivery")
		}
		return nil, fmt.Errorf("%w: booking %s is %s", ErrInvalidState, b.ID, b.Status)
	})
}

// Complete closes a confirmed booking once its event date has passed.
// Completing an already completed booking is a no-op.
func (u *BookingUseCase) Complete(ctx context.Context, actor entities.Actor, bookingID string) (entities.Booking, error) {
	return u.mutate(ctx, bookingID, func(b *entities.Booking, now time.Time) ([]entities.LifecycleEvent, error) {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		if b.Status == entities.BookingStatusCompleted {
			return nil, errNoChange
		}
		if b.Status != entities.BookingStatusConfirmed {
			return nil, fmt.Errorf("%w: booking %s is %s", ErrInvalidState, b.ID, b.Status)
		}
		if now.Before(b.EventDate) {
			return nil, fmt.Errorf("%w: event of booking %s has not happened yet", ErrInvalidState, b.ID)
		}
		return transition(b, entities.BookingStatusCompleted, now, "event completed")
	})
}

func (u *BookingUseCase) Refund(ctx context.Context, actor entities.Actor, bookingID, note string) (entities.Booking, error) {
	return u.mutate(ctx, bookingID, func(b *entities.Booking, now time.Time) ([]entities.LifecycleEvent, error) {
		if !actor.IsAdmin() && !actor.Is(b.ProviderID) {
			return nil, ErrForbidden
		}
		msg := "refunded"
		if n := strings.TrimSpace(note); n != "" {
			msg += ": " + n
		}
		return transition(b, entities.BookingStatusRefunded, now, msg)
	})
}

// ScheduleDueBalances moves DEPOSIT_PAID bookings whose balance falls due
// within the reminder window to BALANCE_SCHEDULED. The resulting
// booking.balance_scheduled event is the client's reminder.
func (u *BookingUseCase) ScheduleDueBalances(ctx context.Context) (int, error) {
	bookings, err := u.repo.ListByStatus(ctx, entities.BookingStatusDepositPaid)
	if err != nil {
		return 0, err
	}
	horizon := u.opts.now().Add(u.opts.balanceReminderWindow)
	scheduled := 0
	for _, candidate := range bookings {
		if candidate.BalanceDueDate == nil || candidate.BalanceDueDate.After(horizon) || candidate.OutstandingBalance() == 0 {
			continue
		}
		_, err := u.mutate(ctx, candidate.ID, func(b *entities.Booking, now time.Time) ([]entities.LifecycleEvent, error) {
			if b.Status != entities.BookingStatusDepositPaid {
				return nil, errNoChange
			}
			return transition(b, entities.BookingStatusBalanceScheduled, now, "balance due "+b.BalanceDueDate.Format("2006-01-02"))
		})
		if err != nil {
			if isSkippable(err) {
				continue
			}
			return scheduled, err
		}
		scheduled++
	}
	if scheduled > 0 {
		u.opts.log.Info().Int("count", scheduled).Msg("balances scheduled")
	}
	return scheduled, nil
}

// CompleteElapsed completes every confirmed booking whose event date passed.
func (u *BookingUseCase) CompleteElapsed(ctx context.Context) (int, error) {
	bookings, err := u.repo.ListByStatus(ctx, entities.BookingStatusConfirmed)
	if err != nil {
		return 0, err
	}
	now := u.opts.now()
	completed := 0
	for _, b := range bookings {
		if now.Before(b.EventDate) {
			continue
		}
		if _, err := u.Complete(ctx, entities.SystemActor, b.ID); err != nil {
			if isSkippable(err) {
				continue
			}
			return completed, err
		}
		completed++
	}
	if completed > 0 {
		u.opts.log.Info().Int("count", completed).Msg("bookings completed")
	}
	return completed, nil
}

// mutate runs fn on a copy of the booking under the booking lock and stores
// the result with an optimistic version check. Events fn returns are
// published after the write commits.
func (u *BookingUseCase) mutate(
	ctx context.Context,
	bookingID string,
	fn func(b *entities.Booking, now time.Time) ([]entities.LifecycleEvent, error),
) (entities.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return entities.Booking{}, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	var out entities.Booking
	var events []entities.LifecycleEvent
	err := withLock(ctx, u.locker, bookingLockKey(bookingID), func() error {
		b, err := loadBooking(ctx, u.repo, bookingID)
		if err != nil {
			return err
		}
		next := b.Clone()
		evs, err := fn(&next, u.opts.now())
		if errors.Is(err, errNoChange) {
			out = b
			return nil
		}
		if err != nil {
			return err
		}
		stored, err := u.repo.Update(ctx, next)
		if err != nil {
			return conflictErr(err)
		}
		out, events = stored, evs
		return nil
	})
	if err != nil {
		u.opts.log.Debug().Err(err).Str("booking_id", bookingID).Msg("booking update rejected")
		return entities.Booking{}, err
	}

	for _, ev := range events {
		u.opts.log.Info().Str("booking_id", out.ID).Str("event_type", string(ev.EventType)).Msg("booking transitioned")
	}
	publish(ctx, u.notifier, u.opts.log, events...)
	return out, nil
}

func loadBooking(ctx context.Context, repo interfaces.IBookingRepository, bookingID string) (entities.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return entities.Booking{}, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	b, err := repo.GetByID(ctx, bookingID)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func canSeeBooking(actor entities.Actor, b entities.Booking) bool {
	return actor.IsAdmin() || actor.Is(b.ClientID) || actor.Is(b.ProviderID)
}

// isSkippable reports errors a sweep moves past: the booking changed under
// it or is held by another writer.
func isSkippable(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate) || errors.Is(err, ErrBusy) || errors.Is(err, ErrInvalidState)
}
