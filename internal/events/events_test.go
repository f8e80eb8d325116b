package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/metrics"
)

type capturedWrite struct {
	topic string
	event kafka.CloudEvent
}

type fakeWriter struct {
	writes []capturedWrite
}

func (w *fakeWriter) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	w.writes = append(w.writes, capturedWrite{topic: topic, event: event})
	return nil
}

func TestKafkaTransitionPublisher_PublishTransition(t *testing.T) {
	w := &fakeWriter{}
	pub := newPublisher(w, "")
	evt := application.TransitionEvent{
		Entity: application.EntityPet,
		ID:     uuid.New(),
		From:   "available",
		To:     "pending",
		At:     time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, pub.PublishTransition(context.Background(), evt))
	require.Len(t, w.writes, 1)

	got := w.writes[0]
	assert.Equal(t, DefaultTopic, got.topic)
	assert.Equal(t, PetStatusChanged, got.event.Type)
	assert.Equal(t, Source, got.event.Source)
	assert.Equal(t, evt.ID.String(), got.event.Subject)

	var decoded application.TransitionEvent
	require.NoError(t, got.event.ParseData(&decoded))
	assert.Equal(t, evt, decoded)
}

func TestKafkaTransitionPublisher_RequestEventType(t *testing.T) {
	w := &fakeWriter{}
	pub := newPublisher(w, "custom.topic")

	require.NoError(t, pub.PublishTransition(context.Background(), application.TransitionEvent{
		Entity: application.EntityAdoptionRequest,
		ID:     uuid.New(),
		To:     "pending",
	}))
	assert.Equal(t, "custom.topic", w.writes[0].topic)
	assert.Equal(t, RequestStatusChanged, w.writes[0].event.Type)
}

func TestTransitionConsumer_HandleMessage(t *testing.T) {
	var received []application.TransitionEvent
	c := &TransitionConsumer{
		handler: func(_ context.Context, evt application.TransitionEvent) error {
			received = append(received, evt)
			return nil
		},
		logger: zap.NewNop(),
	}
	ctx := context.Background()

	evt := application.TransitionEvent{Entity: application.EntityPet, ID: uuid.New(), From: "pending", To: "adopted"}
	ce, err := kafka.NewCloudEvent(Source, PetStatusChanged, evt)
	require.NoError(t, err)
	value, err := json.Marshal(ce)
	require.NoError(t, err)

	require.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: value}))
	require.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: []byte("not json")}))

	other, err := kafka.NewCloudEvent(Source, "something.else", evt)
	require.NoError(t, err)
	otherValue, err := json.Marshal(other)
	require.NoError(t, err)
	require.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: otherValue}))

	require.Len(t, received, 1)
	assert.Equal(t, evt.ID, received[0].ID)
	assert.Equal(t, "adopted", received[0].To)
}

func TestAuditHandler_CountsDecodedTransitions(t *testing.T) {
	m := metrics.NewNop()
	c := &TransitionConsumer{handler: NewAuditHandler(m, zap.NewNop()), logger: zap.NewNop()}
	ctx := context.Background()

	for _, to := range []string{"pending", "adopted"} {
		ce, err := kafka.NewCloudEvent(Source, PetStatusChanged, application.TransitionEvent{
			Entity: application.EntityPet, ID: uuid.New(), To: to,
		})
		require.NoError(t, err)
		value, err := json.Marshal(ce)
		require.NoError(t, err)
		require.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: value}))
	}
	require.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: []byte("{broken")}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionsAuditedTotal.WithLabelValues(application.EntityPet, "pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionsAuditedTotal.WithLabelValues(application.EntityPet, "adopted")))
}
