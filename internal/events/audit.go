package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/metrics"
)

// NewAuditHandler returns a TransitionHandler that records every transition
// read from the topic in the log and in the audited counter.
func NewAuditHandler(m *metrics.Metrics, logger *zap.Logger) TransitionHandler {
	return func(_ context.Context, evt application.TransitionEvent) error {
		m.TransitionsAuditedTotal.WithLabelValues(evt.Entity, evt.To).Inc()
		logger.Info("transition audited",
			zap.String("entity", evt.Entity),
			zap.String("id", evt.ID.String()),
			zap.String("from", evt.From),
			zap.String("to", evt.To),
			zap.Time("at", evt.At),
		)
		return nil
	}
}
