package providers

import (
	"context"

	"github.com/swasthya/operations-backend/internal/domain/entities"
)

// EventBus publishes workflow lifecycle events to interested dashboards
// and downstream consumers. Publishing is best-effort from the
// supervisor's point of view.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.WorkflowEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.WorkflowEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channels.
const (
	// EventChannelWorkflow carries daily-pipeline lifecycle events.
	EventChannelWorkflow = "workflow:events"

	// EventChannelER carries arrival and queueing events.
	EventChannelER = "er:events"
)
