package event

import (
	"context"

	"github.com/menudash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggingHandler writes an audit line for every catalog event it receives.
type LoggingHandler struct {
	logger *zap.Logger
	types  []string
}

// NewLoggingHandler creates an audit handler for the given event types
// (all events when empty).
func NewLoggingHandler(logger *zap.Logger, eventTypes ...string) *LoggingHandler {
	return &LoggingHandler{logger: logger.Named("audit"), types: eventTypes}
}

// Handle implements shared.EventHandler
func (h *LoggingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	h.logger.Info("catalog event",
		zap.String("event_type", ev.EventType()),
		zap.String("aggregate_type", ev.AggregateType()),
		zap.String("aggregate_id", ev.AggregateID().String()),
		zap.String("company_id", ev.CompanyID().String()),
		zap.Time("occurred_at", ev.OccurredAt()),
	)
	return nil
}

// EventTypes implements shared.EventHandler
func (h *LoggingHandler) EventTypes() []string {
	return h.types
}
