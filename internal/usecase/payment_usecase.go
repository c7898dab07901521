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
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// IPaymentUseCase orchestrates gateway checkouts for bookings.
//
// Requested behavior:
//   - RequestPayment opens (or reuses) exactly one live checkout per
//     (booking, payment type).
//   - ConfirmPayment applies a capture at most once, whatever the number of
//     times the gateway reports it.
type IPaymentUseCase interface {
	RequestPayment(ctx context.Context, actor entities.Actor, bookingID string, paymentType entities.PaymentType) (SessionHandle, error)
	ConfirmPayment(ctx context.Context, ev entities.GatewayEvent) (PaymentConfirmation, error)
	VerifyReturn(ctx context.Context, paymentRef string) (PaymentConfirmation, error)
	ListSessions(ctx context.Context, actor entities.Actor, bookingID string) ([]entities.PaymentSession, error)
	ExpireStaleSessions(ctx context.Context) (int, error)
}

type SessionHandle struct {
	Session entities.PaymentSession
	Reused  bool
}

type PaymentConfirmation struct {
	Session entities.PaymentSession
	Booking entities.Booking
	// Replayed is true when the session had already been confirmed and
	// nothing changed.
	Replayed bool
}

type PaymentUseCase struct {
	sessions interfaces.IPaymentSessionRepository
	bookings interfaces.IBookingRepository
	tx       interfaces.ITransactionalRepository
	gateway  interfaces.IPaymentGateway
	locker   interfaces.ILocker
	notifier interfaces.INotifier
	opts     options
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	sessions interfaces.IPaymentSessionRepository,
	bookings interfaces.IBookingRepository,
	tx interfaces.ITransactionalRepository,
	gateway interfaces.IPaymentGateway,
	locker interfaces.ILocker,
	notifier interfaces.INotifier,
	opts ...Option,
) *PaymentUseCase {
	o := newOptions(opts)
	o.log = o.log.With().Str("component", "payment").Str("layer", "usecase").Logger()
	return &PaymentUseCase{
		sessions: sessions,
		bookings: bookings,
		tx:       tx,
		gateway:  gateway,
		locker:   locker,
		notifier: notifier,
		opts:     o,
	}
}

func (u *PaymentUseCase) RequestPayment(ctx context.Context, actor entities.Actor, bookingID string, paymentType entities.PaymentType) (SessionHandle, error) {
	ctx, span := tracer.Start(ctx, "PaymentUseCase.RequestPayment")
	defer span.End()

	bookingID = strings.TrimSpace(bookingID)
	span.SetAttributes(attribute.String("booking.id", bookingID), attribute.String("payment.type", string(paymentType)))
	if bookingID == "" {
		return SessionHandle{}, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if !paymentType.Valid() {
		return SessionHandle{}, fmt.Errorf("%w: unknown payment_type %q", ErrInvalidInput, paymentType)
	}
	log := u.opts.log.With().Str("booking_id", bookingID).Str("payment_type", string(paymentType)).Logger()
	log.Info().Str("actor", actor.UserID).Msg("request-payment start")

	var handle SessionHandle
	err := withLock(ctx, u.locker, bookingLockKey(bookingID), func() error {
		b, err := loadBooking(ctx, u.bookings, bookingID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !actor.Is(b.ClientID) {
			return ErrForbidden
		}
		amount, err := PaymentDue(b, paymentType)
		if err != nil {
			return err
		}

		now := u.opts.now()
		existing, err := u.sessions.ListByBookingID(ctx, b.ID)
		if err != nil {
			return err
		}
		for _, s := range existing {
			if s.PaymentType != paymentType {
				continue
			}
			if s.Reusable(now) && s.Amount == amount {
				log.Info().Str("session_id", s.ID).Msg("reusing live session")
				handle = SessionHandle{Session: s, Reused: true}
				return nil
			}
			if s.Status == entities.PaymentSessionStatusCreated {
				if err := u.expire(ctx, s); err != nil {
					return err
				}
			}
		}

		session := entities.PaymentSession{
			ID:          uuid.NewString(),
			BookingID:   b.ID,
			PaymentType: paymentType,
			Amount:      amount,
			Currency:    b.Currency,
			Status:      entities.PaymentSessionStatusCreated,
			CreatedAt:   now,
			ExpiresAt:   now.Add(u.opts.sessionTTL),
		}
		checkout, err := u.createCheckout(ctx, log, interfaces.CheckoutRequest{
			Reference:   session.ID,
			BookingID:   b.ID,
			PaymentType: paymentType,
			Amount:      amount,
			Currency:    b.Currency,
			Description: fmt.Sprintf("Booking %s (%s)", b.ID, strings.ToLower(string(paymentType))),
			PayerEmail:  b.ClientEmail,
			ExpiresAt:   session.ExpiresAt,
		})
		if err != nil {
			return err
		}
		session.GatewaySessionID = checkout.SessionID
		session.RedirectURL = checkout.RedirectURL

		created, err := u.sessions.Create(ctx, session)
		if err != nil {
			log.Error().Err(err).Str("gateway_session_id", checkout.SessionID).Msg("session persist failed after gateway checkout")
			return err
		}
		handle = SessionHandle{Session: created}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("request-payment failed")
		return SessionHandle{}, err
	}

	log.Info().
		Str("session_id", handle.Session.ID).
		Str("gateway_session_id", handle.Session.GatewaySessionID).
		Int64("amount", int64(handle.Session.Amount)).
		Bool("reused", handle.Reused).
		Msg("request-payment success")
	return handle, nil
}

// createCheckout calls the gateway, retrying transient failures with a
// linear backoff. Every failure surfaces as ErrGatewayUnavailable.
func (u *PaymentUseCase) createCheckout(ctx context.Context, log zerolog.Logger, req interfaces.CheckoutRequest) (interfaces.CheckoutSession, error) {
	if u.gateway == nil {
		return interfaces.CheckoutSession{}, fmt.Errorf("%w: gateway not configured", ErrGatewayUnavailable)
	}
	for attempt := 1; ; attempt++ {
		cs, err := u.gateway.CreateCheckoutSession(ctx, req)
		if err == nil {
			if cs.SessionID == "" {
				return interfaces.CheckoutSession{}, fmt.Errorf("%w: gateway returned no session id", ErrGatewayUnavailable)
			}
			return cs, nil
		}
		if !errors.Is(err, ErrGatewayUnavailable) {
			return interfaces.CheckoutSession{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
		}
		if attempt >= u.opts.gatewayMaxAttempts {
			return interfaces.CheckoutSession{}, fmt.Errorf("after %d attempts: %w", attempt, err)
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("gateway unavailable, retrying")
		select {
		case <-ctx.Done():
			return interfaces.CheckoutSession{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * u.opts.gatewayRetryBackoff):
		}
	}
}

// ConfirmPayment applies a gateway capture. The session status read first is
// the de-duplication boundary: a session already CONFIRMED returns success
// with no side effects.
func (u *PaymentUseCase) ConfirmPayment(ctx context.Context, ev entities.GatewayEvent) (PaymentConfirmation, error) {
	ctx, span := tracer.Start(ctx, "PaymentUseCase.ConfirmPayment")
	defer span.End()
	span.SetAttributes(attribute.String("gateway.session_id", ev.GatewaySessionID), attribute.String("payment.reference", ev.Reference))

	log := u.opts.log.With().
		Str("gateway_session_id", ev.GatewaySessionID).
		Str("reference", ev.Reference).
		Int64("amount_captured", int64(ev.AmountCaptured)).
		Logger()
	log.Info().Msg("confirm-payment start")

	if !ev.Captured {
		return PaymentConfirmation{}, ErrPaymentNotCaptured
	}
	session, err := u.lookupSession(ctx, ev)
	if err != nil {
		return PaymentConfirmation{}, err
	}
	if session.ID == "" {
		log.Error().Bool("alert", true).Msg("confirmation for unknown session, reconciliation required")
		return PaymentConfirmation{}, ErrUnknownSession
	}
	log = log.With().Str("session_id", session.ID).Str("booking_id", session.BookingID).Logger()

	if session.Status == entities.PaymentSessionStatusConfirmed {
		log.Info().Msg("confirmation replay ignored")
		return u.replay(ctx, session)
	}
	if ev.AmountCaptured != session.Amount {
		log.Error().Bool("alert", true).Int64("expected", int64(session.Amount)).Msg("captured amount does not match session")
		return PaymentConfirmation{}, fmt.Errorf("%w: session %s expects %s, captured %s", ErrAmountMismatch, session.ID, session.Amount, ev.AmountCaptured)
	}

	var out PaymentConfirmation
	var events []entities.LifecycleEvent
	err = withLock(ctx, u.locker, bookingLockKey(session.BookingID), func() error {
		current, err := u.sessions.GetByID(ctx, session.ID)
		if err != nil {
			return err
		}
		if current.Status == entities.PaymentSessionStatusConfirmed {
			out, err = u.replay(ctx, current)
			return err
		}

		b, err := loadBooking(ctx, u.bookings, current.BookingID)
		if err != nil {
			log.Error().Bool("alert", true).Err(err).Msg("booking for confirmed session not loadable")
			return err
		}
		now := u.opts.now()
		capturedAt := ev.CapturedAt.UTC()
		if capturedAt.IsZero() {
			capturedAt = now
		}

		next := b.Clone()
		events, err = ApplyPayment(&next, current.PaymentType, ev.AmountCaptured, capturedAt)
		if err != nil {
			log.Error().Bool("alert", true).Err(err).Str("booking_status", string(b.Status)).Msg("capture cannot be applied to booking")
			return err
		}

		current.Status = entities.PaymentSessionStatusConfirmed
		current.ConfirmedAt = &now
		current.CapturedAt = &capturedAt
		if err := u.tx.ConfirmPayment(ctx, current, next); err != nil {
			if !errors.Is(err, interfaces.ErrVersionConflict) {
				return err
			}
			again, gErr := u.sessions.GetByID(ctx, current.ID)
			if gErr == nil && again.Status == entities.PaymentSessionStatusConfirmed {
				events = nil
				out, err = u.replay(ctx, again)
				return err
			}
			return conflictErr(err)
		}
		next.Version++
		out = PaymentConfirmation{Session: current, Booking: next}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("confirm-payment failed")
		return PaymentConfirmation{}, err
	}
	if out.Replayed {
		return out, nil
	}

	log.Info().Str("booking_status", string(out.Booking.Status)).Msg("confirm-payment success")
	publish(ctx, u.notifier, u.opts.log, events...)
	return out, nil
}

// VerifyReturn resolves a payment through the gateway API, for redirect
// returns and gateway-native notifications that carry only a payment id.
func (u *PaymentUseCase) VerifyReturn(ctx context.Context, paymentRef string) (PaymentConfirmation, error) {
	paymentRef = strings.TrimSpace(paymentRef)
	if paymentRef == "" {
		return PaymentConfirmation{}, fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}
	if u.gateway == nil {
		return PaymentConfirmation{}, fmt.Errorf("%w: gateway not configured", ErrGatewayUnavailable)
	}
	ev, err := u.gateway.ResolvePayment(ctx, paymentRef)
	if err != nil {
		u.opts.log.Warn().Err(err).Str("payment_ref", paymentRef).Msg("resolve payment failed")
		if errors.Is(err, ErrGatewayUnavailable) {
			return PaymentConfirmation{}, err
		}
		return PaymentConfirmation{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if !ev.Captured {
		u.opts.log.Info().Str("payment_ref", paymentRef).Msg("payment not captured yet")
		return PaymentConfirmation{}, ErrPaymentNotCaptured
	}
	return u.ConfirmPayment(ctx, ev)
}

func (u *PaymentUseCase) ListSessions(ctx context.Context, actor entities.Actor, bookingID string) ([]entities.PaymentSession, error) {
	b, err := loadBooking(ctx, u.bookings, bookingID)
	if err != nil {
		return nil, err
	}
	if !canSeeBooking(actor, b) {
		return nil, ErrForbidden
	}
	return u.sessions.ListByBookingID(ctx, b.ID)
}

// ExpireStaleSessions marks CREATED sessions past their TTL as EXPIRED.
func (u *PaymentUseCase) ExpireStaleSessions(ctx context.Context) (int, error) {
	sessions, err := u.sessions.ListByStatus(ctx, entities.PaymentSessionStatusCreated)
	if err != nil {
		return 0, err
	}
	now := u.opts.now()
	expired := 0
	for _, s := range sessions {
		if now.Before(s.ExpiresAt) {
			continue
		}
		if err := u.expire(ctx, s); err != nil {
			return expired, err
		}
		expired++
	}
	if expired > 0 {
		u.opts.log.Info().Int("count", expired).Msg("expired stale payment sessions")
	}
	return expired, nil
}

// expire moves s from CREATED to EXPIRED. Losing the race to a confirmation
// is fine: the session simply is not expired.
func (u *PaymentUseCase) expire(ctx context.Context, s entities.PaymentSession) error {
	s.Status = entities.PaymentSessionStatusExpired
	if _, err := u.sessions.UpdateStatus(ctx, s, entities.PaymentSessionStatusCreated); err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return nil
		}
		return err
	}
	return nil
}

func (u *PaymentUseCase) lookupSession(ctx context.Context, ev entities.GatewayEvent) (entities.PaymentSession, error) {
	gid := strings.TrimSpace(ev.GatewaySessionID)
	ref := strings.TrimSpace(ev.Reference)
	if gid == "" && ref == "" {
		return entities.PaymentSession{}, fmt.Errorf("%w: gateway session id or reference is required", ErrInvalidInput)
	}
	if gid != "" {
		s, err := u.sessions.GetByGatewaySessionID(ctx, gid)
		if err != nil || s.ID != "" {
			return s, err
		}
	}
	if ref != "" {
		return u.sessions.GetByID(ctx, ref)
	}
	return entities.PaymentSession{}, nil
}

func (u *PaymentUseCase) replay(ctx context.Context, s entities.PaymentSession) (PaymentConfirmation, error) {
	b, err := u.bookings.GetByID(ctx, s.BookingID)
	if err != nil {
		return PaymentConfirmation{}, err
	}
	return PaymentConfirmation{Session: s, Booking: b, Replayed: true}, nil
}
