// Package messaging adapts the domain event publisher port to the
// Watermill-backed EventBus.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	pkgevents "github.com/ghuser/salesapi/pkg/events"
	"github.com/ghuser/salesapi/services/sales/domain/events"
)

// EventPublisher publishes domain events to the EventBus. Each event is
// serialized as JSON and routed to the topic the event itself declares.
type EventPublisher struct {
	bus *pkgevents.EventBus
}

// NewEventPublisher returns an EventPublisher backed by the given bus.
func NewEventPublisher(bus *pkgevents.EventBus) *EventPublisher {
	return &EventPublisher{bus: bus}
}

// Publish serializes event and sends it to its topic. The message carries an
// event_version metadata key for consumers that route on schema version.
func (p *EventPublisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Topic(), err)
	}

	msg := pkgevents.NewMessage(payload)
	msg.Metadata.Set("event_version", "1")

	return p.bus.Publish(ctx, event.Topic(), msg)
}
