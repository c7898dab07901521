package usecase

import (
	"context"
	"errors"
	"fmt"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("event_marketplace/internal/usecase")

func bookingLockKey(id string) string { return "booking:" + id }

func quoteLockKey(id string) string { return "quote:" + id }

// withLock runs fn while holding key. A nil locker runs fn unguarded.
func withLock(ctx context.Context, locker interfaces.ILocker, key string, fn func() error) error {
	if locker == nil {
		return fn()
	}
	unlock, err := locker.Lock(ctx, key)
	if err != nil {
		if errors.Is(err, interfaces.ErrLockTimeout) {
			return fmt.Errorf("%w: %s", ErrBusy, key)
		}
		return err
	}
	defer unlock()
	return fn()
}

// publish hands committed events to the notifier. Failures are logged only.
func publish(ctx context.Context, notifier interfaces.INotifier, log zerolog.Logger, events ...entities.LifecycleEvent) {
	if notifier == nil {
		return
	}
	for _, ev := range events {
		if err := notifier.Publish(ctx, ev); err != nil {
			log.Warn().Err(err).
				Str("event_type", string(ev.EventType)).
				Str("entity_id", ev.EntityID).
				Msg("notifier publish failed")
		}
	}
}

func conflictErr(err error) error {
	if errors.Is(err, interfaces.ErrVersionConflict) {
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	return err
}
