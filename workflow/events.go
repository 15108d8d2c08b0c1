package workflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/sirupsen/logrus"
)

const (
	EventOrderCreated       = "order.created"
	EventTransactionCreated = "transaction.created"

	publishTimeout = 10 * time.Second
)

type Event struct {
	Type        string
	ReferenceId int
	Payload     any
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// PubSubPublisher publishes events to one Pub/Sub topic.
type PubSubPublisher struct {
	Topic string
}

func (p PubSubPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	msg := config.EventMessage{
		ID:          uuid.NewString(),
		Type:        event.Type,
		ReferenceId: event.ReferenceId,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
	if cid, ok := utils.GetCorrelationIdFromContext(ctx); ok {
		msg.CorrelationId = cid
	}
	_, err = config.PublishEvent(ctx, p.Topic, msg)
	return err
}

// NewEventPublisherFromEnv returns nil unless EVENTS_ENABLED and EVENTS_TOPIC are set.
func NewEventPublisherFromEnv() EventPublisher {
	if !config.EventsEnabled() {
		return nil
	}
	return PubSubPublisher{Topic: config.StringFromEnv("EVENTS_TOPIC", "")}
}

// publishCommitted runs after the database commit; failures are logged only.
func publishCommitted(ctx context.Context, logger *logrus.Logger, publisher EventPublisher, event Event) {
	if publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := publisher.Publish(ctx, event); err != nil {
		config.LogError(logger, "events.go", "publishCommitted", event.Type, event.ReferenceId, err)
	}
}
