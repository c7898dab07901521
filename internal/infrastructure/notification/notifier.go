package notification

import (
	"context"
	"encoding/json"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// Handler processes one consumed lifecycle event. A returned error leaves
// the message unacknowledged.
type Handler func(ctx context.Context, ev entities.LifecycleEvent) error

// LogNotifier writes events to the logger instead of a broker.
type LogNotifier struct {
	log zerolog.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Str("transport", "log").Logger()}
}

func (n *LogNotifier) Publish(_ context.Context, ev entities.LifecycleEvent) error {
	n.log.Info().
		Str("event_type", string(ev.EventType)).
		Str("entity_id", ev.EntityID).
		Str("status", ev.Status).
		Time("occurred_at", ev.OccurredAt).
		Msg("lifecycle event")
	return nil
}

func decodeEvent(body []byte) (entities.LifecycleEvent, error) {
	var ev entities.LifecycleEvent
	err := json.Unmarshal(body, &ev)
	return ev, err
}
