package notification

import (
	"context"
	"strings"

	"event_marketplace/internal/domain/entities"

	"github.com/rs/zerolog"
)

var subjects = map[entities.EventType]string{
	entities.EventBookingCreated:          "Your booking request was received",
	entities.EventBookingDepositPaid:      "Deposit received",
	entities.EventBookingBalanceScheduled: "Balance payment is due soon",
	entities.EventBookingFullyPaid:        "Payment complete",
	entities.EventBookingConfirmed:        "Your booking is confirmed",
	entities.EventBookingCompleted:        "Thanks for celebrating with us",
	entities.EventBookingCancelled:        "Your booking was cancelled",
	entities.EventBookingRefunded:         "Your refund was issued",
}

// EmailSender turns consumed events into client emails. Delivery is a log
// record; composition and transport belong to the mail provider.
type EmailSender struct {
	from string
	log  zerolog.Logger
}

func NewEmailSender(from string, log zerolog.Logger) *EmailSender {
	return &EmailSender{from: from, log: log.With().Str("component", "email").Logger()}
}

// Handle is a Handler. Events with no client email or no template are
// skipped.
func (s *EmailSender) Handle(_ context.Context, ev entities.LifecycleEvent) error {
	subject, ok := subjects[ev.EventType]
	to := strings.TrimSpace(ev.ClientEmail)
	if !ok || to == "" {
		s.log.Debug().Str("event_type", string(ev.EventType)).Str("entity_id", ev.EntityID).Msg("no email for event")
		return nil
	}
	s.log.Info().
		Str("from", s.from).
		Str("to", to).
		Str("subject", subject).
		Str("booking_id", ev.EntityID).
		Str("status", ev.Status).
		Msg("email sent")
	return nil
}
