package interfaces

import (
	"context"

	"event_marketplace/internal/domain/entities"
)

// INotifier publishes lifecycle events after the change is committed.
// Publish errors are logged by callers and never undo the change.
type INotifier interface {
	Publish(ctx context.Context, ev entities.LifecycleEvent) error
}
