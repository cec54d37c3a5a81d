package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/archivo/archivo/internal/database"
	"github.com/archivo/archivo/internal/logger"
	"github.com/archivo/archivo/internal/model"
)

// EventPublisher delivers catalog events to subscribers.
// *database.Redis satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// publishEvent sends evt as JSON. Failures are logged and never surface to the caller.
func publishEvent(ctx context.Context, pub EventPublisher, channel string, evt model.CatalogEvent, log *logger.Logger) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Str("event", evt.Type).Msg("failed to encode catalog event")
		return
	}

	if err := pub.Publish(ctx, channel, payload); err != nil {
		log.Warn().Err(err).
			Str("event", evt.Type).
			Str("resource_id", evt.ResourceID).
			Msg("failed to publish catalog event")
	}
}

// SubscribeEvents streams catalog events published on channel.
// The returned channel closes after cleanup is called.
func SubscribeEvents(ctx context.Context, rdb *database.Redis, channel string, log *logger.Logger) (<-chan model.CatalogEvent, func(), error) {
	pubsub := rdb.Subscribe(ctx, channel)
	// wait for the subscription confirmation so callers see connection errors
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	eventCh := make(chan model.CatalogEvent, 100)

	go func() {
		defer close(eventCh)
		for msg := range pubsub.Channel() {
			evt, err := DecodeEvent(msg.Payload)
			if err != nil {
				log.Error().Err(err).Msg("failed to decode catalog event")
				continue
			}
			select {
			case eventCh <- evt:
			default:
				log.Warn().Str("event", evt.Type).Msg("catalog event channel full, dropping event")
			}
		}
	}()

	cleanup := func() {
		pubsub.Close()
	}

	return eventCh, cleanup, nil
}

// DecodeEvent parses a published catalog event payload
func DecodeEvent(payload string) (model.CatalogEvent, error) {
	var evt model.CatalogEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		return model.CatalogEvent{}, fmt.Errorf("invalid catalog event: %w", err)
	}
	if evt.Type == "" {
		return model.CatalogEvent{}, errors.New("invalid catalog event: missing type")
	}
	return evt, nil
}
