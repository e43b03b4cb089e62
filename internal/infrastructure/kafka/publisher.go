package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/event"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
	pkgkafka "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/kafka"
)

// MessageProducer is the subset of pkg/kafka.Producer used here.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka.
type EventPublisher struct {
	producer MessageProducer
	logger   *slog.Logger
	topic    string
}

// NewEventPublisher creates a publisher targeting topic.
func NewEventPublisher(producer MessageProducer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish serialises and sends domain events, keyed by aggregate ID.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":   evt.EventType(),
				"event_id":     evt.EventID(),
				"content_type": "application/json",
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}
	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}

// AdvisoryNotifier implements port.Notifier by publishing an AdvisoryRaised
// event per notice.
type AdvisoryNotifier struct {
	events *EventPublisher
}

// NewAdvisoryNotifier publishes advisories to topic.
func NewAdvisoryNotifier(producer MessageProducer, topic string, logger *slog.Logger) *AdvisoryNotifier {
	return &AdvisoryNotifier{events: NewEventPublisher(producer, topic, logger)}
}

// Notify implements port.Notifier. Notices raised outside an evaluation get
// a fresh aggregate ID.
func (n *AdvisoryNotifier) Notify(ctx context.Context, advisories ...model.Advisory) error {
	evaluationID, ok := port.EvaluationIDFromContext(ctx)
	if !ok {
		evaluationID = uuid.NewString()
	}

	evts := make([]event.DomainEvent, 0, len(advisories))
	for _, a := range advisories {
		evts = append(evts, event.NewAdvisoryRaised(evaluationID, string(a.Code), a.Message))
	}
	return n.events.Publish(ctx, evts...)
}
