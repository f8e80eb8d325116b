package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/kafka"
)

// TransitionHandler receives decoded transition events.
type TransitionHandler func(ctx context.Context, evt application.TransitionEvent) error

// TransitionConsumer reads the adoption topic and decodes transition events
// for downstream collaborators.
type TransitionConsumer struct {
	consumer *kafka.Consumer
	handler  TransitionHandler
	logger   *zap.Logger
}

// NewTransitionConsumer creates a new TransitionConsumer.
func NewTransitionConsumer(
	brokers []string,
	groupID, topic string,
	handler TransitionHandler,
	logger *zap.Logger,
) *TransitionConsumer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &TransitionConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, topic, logger),
		handler:  handler,
		logger:   logger,
	}
}

// Start consumes until ctx is cancelled.
func (c *TransitionConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

func (c *TransitionConsumer) Close() error {
	return c.consumer.Close()
}

func (c *TransitionConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	ce, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from adoption topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // malformed messages are not retried
	}

	switch ce.Type {
	case PetStatusChanged, RequestStatusChanged:
	default:
		c.logger.Debug("ignoring unhandled adoption event type", zap.String("type", ce.Type))
		return nil
	}

	var evt application.TransitionEvent
	if err := ce.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse transition event data", zap.Error(err))
		return nil
	}
	return c.handler(ctx, evt)
}
