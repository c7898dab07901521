package entities

import (
	"time"

	"event_marketplace/internal/domain/money"
)

type BookingStatus string

const (
	BookingStatusPendingPayment   BookingStatus = "PENDING_PAYMENT"
	BookingStatusDepositPaid      BookingStatus = "DEPOSIT_PAID"
	BookingStatusBalanceScheduled BookingStatus = "BALANCE_SCHEDULED"
	BookingStatusFullyPaid        BookingStatus = "FULLY_PAID"
	BookingStatusConfirmed        BookingStatus = "CONFIRMED"
	BookingStatusCompleted        BookingStatus = "COMPLETED"
	BookingStatusCancelled        BookingStatus = "CANCELLED"
	BookingStatusRefunded         BookingStatus = "REFUNDED"
)

// bookingTransitions is the single source of truth for status moves. Payment
// confirmation, vendor actions and sweeps all go through CanTransition.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPendingPayment: {
		BookingStatusFullyPaid,
		BookingStatusDepositPaid,
		BookingStatusCancelled,
		BookingStatusConfirmed,
	},
	BookingStatusDepositPaid: {
		BookingStatusFullyPaid,
		BookingStatusBalanceScheduled,
		BookingStatusCancelled,
	},
	BookingStatusBalanceScheduled: {
		BookingStatusFullyPaid,
		BookingStatusCancelled,
	},
	BookingStatusFullyPaid: {
		BookingStatusConfirmed,
		BookingStatusRefunded,
	},
	BookingStatusConfirmed: {
		BookingStatusCompleted,
		BookingStatusCancelled,
		BookingStatusRefunded,
	},
}

func CanTransition(from, to BookingStatus) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition exists out of s.
func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0
}

type StatusTimelineEntry struct {
	Status    BookingStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Note      string        `json:"note,omitempty"`
}

// Booking is the committed engagement between a client and a vendor.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (status-index): status, used by the worker sweeps
//
// Monetary representation:
//   - PricingTotal is fixed at creation. DepositAmount and BalanceAmount are
//     only set for DEPOSIT_BALANCE and always add up to PricingTotal.
//
// StatusTimeline is append-only and bookings are never deleted.
type Booking struct {
	ID              string                `json:"id"`
	ProviderID      string                `json:"provider_id"`
	ClientID        string                `json:"client_id"`
	QuoteID         string                `json:"quote_id,omitempty"`
	ListingIDs      []string              `json:"listing_ids,omitempty"`
	ClientName      string                `json:"client_name"`
	ClientEmail     string                `json:"client_email"`
	ClientPhone     string                `json:"client_phone,omitempty"`
	EventDate       time.Time             `json:"event_date"`
	EventLocation   string                `json:"event_location,omitempty"`
	GuestsCount     int                   `json:"guests_count,omitempty"`
	SpecialRequests string                `json:"special_requests,omitempty"`
	PricingTotal    money.Cents           `json:"pricing_total"`
	Currency        string                `json:"currency"`
	PaymentMode     PaymentMode           `json:"payment_mode"`
	DepositPercent  *int                  `json:"deposit_percent,omitempty"`
	DepositAmount   *money.Cents          `json:"deposit_amount,omitempty"`
	BalanceAmount   *money.Cents          `json:"balance_amount,omitempty"`
	DepositPaidAt   *time.Time            `json:"deposit_paid_at,omitempty"`
	BalancePaidAt   *time.Time            `json:"balance_paid_at,omitempty"`
	BalanceDueDate  *time.Time            `json:"balance_due_date,omitempty"`
	Status          BookingStatus         `json:"status"`
	StatusTimeline  []StatusTimelineEntry `json:"status_timeline"`
	CancelledBy     string                `json:"cancelled_by,omitempty"`
	Version         int64                 `json:"version"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// TransitionTo moves the booking to status and appends exactly one timeline
// entry. It returns false, leaving the booking untouched, when the move is
// not in the transition table.
func (b *Booking) TransitionTo(status BookingStatus, at time.Time, note string) bool {
	if !CanTransition(b.Status, status) {
		return false
	}
	b.Status = status
	b.StatusTimeline = append(b.StatusTimeline, StatusTimelineEntry{Status: status, Timestamp: at, Note: note})
	b.UpdatedAt = at
	return true
}

func (b Booking) OutstandingBalance() money.Cents {
	if b.BalanceAmount == nil || b.BalancePaidAt != nil {
		return 0
	}
	return *b.BalanceAmount
}

// Clone returns a deep copy so callers can mutate a candidate state and
// discard it when persisting fails.
func (b Booking) Clone() Booking {
	out := b
	out.ListingIDs = append([]string(nil), b.ListingIDs...)
	out.StatusTimeline = append([]StatusTimelineEntry(nil), b.StatusTimeline...)
	out.DepositPercent = cloneInt(b.DepositPercent)
	out.DepositAmount = cloneCents(b.DepositAmount)
	out.BalanceAmount = cloneCents(b.BalanceAmount)
	out.DepositPaidAt = cloneTime(b.DepositPaidAt)
	out.BalancePaidAt = cloneTime(b.BalancePaidAt)
	out.BalanceDueDate = cloneTime(b.BalanceDueDate)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneCents(v *money.Cents) *money.Cents {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
