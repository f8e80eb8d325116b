package events

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/kafka"
)

// eventWriter is the subset of kafka.Producer the publisher needs.
type eventWriter interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// KafkaTransitionPublisher writes transition events as CloudEvents.
type KafkaTransitionPublisher struct {
	writer eventWriter
	topic  string
}

// NewKafkaTransitionPublisher creates a publisher writing to topic, or to
// DefaultTopic when topic is empty.
func NewKafkaTransitionPublisher(producer *kafka.Producer, topic string) *KafkaTransitionPublisher {
	return newPublisher(producer, topic)
}

func newPublisher(w eventWriter, topic string) *KafkaTransitionPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaTransitionPublisher{writer: w, topic: topic}
}

// PublishTransition keys the event by entity ID so transitions of one entity
// stay ordered.
func (p *KafkaTransitionPublisher) PublishTransition(ctx context.Context, evt application.TransitionEvent) error {
	ce, err := kafka.NewCloudEvent(Source, eventType(evt.Entity), evt)
	if err != nil {
		return err
	}
	ce.Subject = evt.ID.String()
	return p.writer.PublishEvent(ctx, p.topic, ce)
}

func eventType(entity string) string {
	if entity == application.EntityPet {
		return PetStatusChanged
	}
	return RequestStatusChanged
}
