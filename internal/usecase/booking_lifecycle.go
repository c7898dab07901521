package usecase

import (
	"fmt"
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/domain/money"
)

// PaymentDue returns the amount a payment of type t must capture for b, or
// why b cannot take that payment right now.
//
//	PENDING_PAYMENT + FULL_PAYMENT          -> FULL    (pricingTotal)
//	PENDING_PAYMENT + DEPOSIT_BALANCE       -> DEPOSIT (depositAmount)
//	DEPOSIT_PAID | BALANCE_SCHEDULED        -> BALANCE (balanceAmount, when > 0 and unpaid)
func PaymentDue(b entities.Booking, t entities.PaymentType) (money.Cents, error) {
	if !b.PaymentMode.Online() {
		return 0, fmt.Errorf("%w: booking %s uses %s", ErrNotPayableOnline, b.ID, b.PaymentMode)
	}

	switch t {
	case entities.PaymentTypeFull:
		if b.Status == entities.BookingStatusPendingPayment && b.PaymentMode == entities.PaymentModeFull {
			return b.PricingTotal, nil
		}
	case entities.PaymentTypeDeposit:
		if b.Status == entities.BookingStatusPendingPayment &&
			b.PaymentMode == entities.PaymentModeDepositBalance &&
			b.DepositAmount != nil && b.DepositPaidAt == nil {
			return *b.DepositAmount, nil
		}
	case entities.PaymentTypeBalance:
		if (b.Status == entities.BookingStatusDepositPaid || b.Status == entities.BookingStatusBalanceScheduled) &&
			b.PaymentMode == entities.PaymentModeDepositBalance &&
			b.OutstandingBalance() > 0 {
			return b.OutstandingBalance(), nil
		}
	default:
		return 0, fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, t)
	}
	return 0, fmt.Errorf("%w: %s payment on %s booking in %s", ErrIneligiblePayment, t, b.PaymentMode, b.Status)
}

// ApplyPayment records a confirmed capture on b and advances its status.
// On error b is left exactly as it was. It returns the events to publish once
// the new state is committed.
func ApplyPayment(b *entities.Booking, t entities.PaymentType, amount money.Cents, paidAt time.Time) ([]entities.LifecycleEvent, error) {
	due, err := PaymentDue(*b, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if amount != due {
		return nil, fmt.Errorf("%w: %s expects %s, captured %s", ErrAmountMismatch, t, due, amount)
	}

	next := b.Clone()
	var reached []entities.BookingStatus
	switch t {
	case entities.PaymentTypeFull:
		if !next.TransitionTo(entities.BookingStatusFullyPaid, paidAt, "paid in full") {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidState, b.Status, entities.BookingStatusFullyPaid)
		}
		reached = append(reached, entities.BookingStatusFullyPaid)
	case entities.PaymentTypeDeposit:
		next.DepositPaidAt = &paidAt
		if !next.TransitionTo(entities.BookingStatusDepositPaid, paidAt, "deposit paid") {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidState, b.Status, entities.BookingStatusDepositPaid)
		}
		reached = append(reached, entities.BookingStatusDepositPaid)
		if next.BalanceAmount != nil && *next.BalanceAmount == 0 {
			next.TransitionTo(entities.BookingStatusFullyPaid, paidAt, "no balance due")
			reached = append(reached, entities.BookingStatusFullyPaid)
		}
	case entities.PaymentTypeBalance:
		next.BalancePaidAt = &paidAt
		if !next.TransitionTo(entities.BookingStatusFullyPaid, paidAt, "balance paid") {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidState, b.Status, entities.BookingStatusFullyPaid)
		}
		reached = append(reached, entities.BookingStatusFullyPaid)
	}

	*b = next
	return statusEvents(*b, paidAt, reached...), nil
}

// CancelBooking moves b to CANCELLED. Refunds are a separate, explicit step.
func CancelBooking(b *entities.Booking, actor entities.Actor, reason string, now time.Time) ([]entities.LifecycleEvent, error) {
	switch b.Status {
	case entities.BookingStatusPendingPayment,
		entities.BookingStatusDepositPaid,
		entities.BookingStatusBalanceScheduled,
		entities.BookingStatusConfirmed:
	default:
		return nil, fmt.Errorf("%w: booking %s is %s", ErrNotCancellable, b.ID, b.Status)
	}

	note := "cancelled by " + string(actor.Role)
	if r := strings.TrimSpace(reason); r != "" {
		note += ": " + r
	}
	if !b.TransitionTo(entities.BookingStatusCancelled, now, note) {
		return nil, fmt.Errorf("%w: booking %s is %s", ErrNotCancellable, b.ID, b.Status)
	}
	b.CancelledBy = actor.UserID
	return statusEvents(*b, now, entities.BookingStatusCancelled), nil
}

// transition wraps TransitionTo for the non-payment moves and reports a
// disallowed move as ErrInvalidState.
func transition(b *entities.Booking, to entities.BookingStatus, now time.Time, note string) ([]entities.LifecycleEvent, error) {
	from := b.Status
	if !b.TransitionTo(to, now, note) {
		return nil, fmt.Errorf("%w: booking %s cannot move %s -> %s", ErrInvalidState, b.ID, from, to)
	}
	return statusEvents(*b, now, to), nil
}

func statusEvents(b entities.Booking, at time.Time, reached ...entities.BookingStatus) []entities.LifecycleEvent {
	events := make([]entities.LifecycleEvent, 0, len(reached))
	for _, s := range reached {
		t, ok := entities.EventTypeForStatus(s)
		if !ok {
			continue
		}
		ev := entities.NewBookingEvent(t, b, at)
		ev.Status = string(s)
		events = append(events, ev)
	}
	return events
}
