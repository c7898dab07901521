package entities

import "time"

type EventType string

const (
	EventQuoteSent               EventType = "quote.sent"
	EventQuoteAccepted           EventType = "quote.accepted"
	EventQuoteDeclined           EventType = "quote.declined"
	EventBookingCreated          EventType = "booking.created"
	EventBookingDepositPaid      EventType = "booking.deposit_paid"
	EventBookingBalanceScheduled EventType = "booking.balance_scheduled"
	EventBookingFullyPaid        EventType = "booking.fully_paid"
	EventBookingConfirmed        EventType = "booking.confirmed"
	EventBookingCompleted        EventType = "booking.completed"
	EventBookingCancelled        EventType = "booking.cancelled"
	EventBookingRefunded         EventType = "booking.refunded"
)

// EventTypeForStatus maps a booking status reached by a transition to the
// event published for it.
func EventTypeForStatus(s BookingStatus) (EventType, bool) {
	switch s {
	case BookingStatusDepositPaid:
		return EventBookingDepositPaid, true
	case BookingStatusBalanceScheduled:
		return EventBookingBalanceScheduled, true
	case BookingStatusFullyPaid:
		return EventBookingFullyPaid, true
	case BookingStatusConfirmed:
		return EventBookingConfirmed, true
	case BookingStatusCompleted:
		return EventBookingCompleted, true
	case BookingStatusCancelled:
		return EventBookingCancelled, true
	case BookingStatusRefunded:
		return EventBookingRefunded, true
	}
	return "", false
}

// LifecycleEvent is what the notifier publishes after a committed change.
type LifecycleEvent struct {
	EventType   EventType `json:"event_type"`
	EntityID    string    `json:"entity_id"`
	Status      string    `json:"status,omitempty"`
	ProviderID  string    `json:"provider_id,omitempty"`
	ClientID    string    `json:"client_id,omitempty"`
	ClientEmail string    `json:"client_email,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewBookingEvent(t EventType, b Booking, at time.Time) LifecycleEvent {
	return LifecycleEvent{
		EventType:   t,
		EntityID:    b.ID,
		Status:      string(b.Status),
		ProviderID:  b.ProviderID,
		ClientID:    b.ClientID,
		ClientEmail: b.ClientEmail,
		OccurredAt:  at,
	}
}

func NewQuoteEvent(t EventType, q Quote, at time.Time) LifecycleEvent {
	return LifecycleEvent{
		EventType:  t,
		EntityID:   q.ID,
		Status:     string(q.Status),
		ProviderID: q.ProviderID,
		ClientID:   q.ClientID,
		OccurredAt: at,
	}
}
