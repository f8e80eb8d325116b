package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/metrics"
)

// Entity names carried by transition events.
const (
	EntityPet             = "pet"
	EntityAdoptionRequest = "adoption_request"
)

// TransitionEvent records one status change applied by the workflow.
// From is empty when the entity was created in To.
type TransitionEvent struct {
	Entity string    `json:"entity"`
	ID     uuid.UUID `json:"id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	At     time.Time `json:"at"`
}

// TransitionPublisher delivers transition events to an external collaborator.
type TransitionPublisher interface {
	PublishTransition(ctx context.Context, event TransitionEvent) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) PublishTransition(context.Context, TransitionEvent) error { return nil }

// transitionRecorder logs, counts and publishes committed transitions.
type transitionRecorder struct {
	publisher TransitionPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func (r transitionRecorder) emit(ctx context.Context, events ...TransitionEvent) {
	for _, evt := range events {
		r.logger.Info("status transition",
			zap.String("entity", evt.Entity),
			zap.String("id", evt.ID.String()),
			zap.String("from", evt.From),
			zap.String("to", evt.To),
			zap.Time("at", evt.At),
		)
		r.metrics.TransitionsTotal.WithLabelValues(evt.Entity, evt.From, evt.To).Inc()

		if err := r.publisher.PublishTransition(ctx, evt); err != nil {
			r.metrics.PublishFailuresTotal.WithLabelValues(evt.Entity).Inc()
			r.logger.Error("failed to publish transition event",
				zap.String("entity", evt.Entity),
				zap.String("id", evt.ID.String()),
				zap.Error(err),
			)
		}
	}
}

func (r transitionRecorder) failed(operation string, err error) {
	kind := string(apperr.KindOf(err))
	if kind == "" {
		kind = "storage"
	}
	r.metrics.WorkflowFailuresTotal.WithLabelValues(operation, kind).Inc()
}
