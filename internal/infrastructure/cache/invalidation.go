package cache

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ComplementInvalidationHandler drops cached complements when an event changes
// what a complement read returns
type ComplementInvalidationHandler struct {
	cache  catalogapp.ComplementCache
	logger *zap.Logger
}

// NewComplementInvalidationHandler creates the handler
func NewComplementInvalidationHandler(cache catalogapp.ComplementCache, logger *zap.Logger) *ComplementInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplementInvalidationHandler{cache: cache, logger: logger}
}

// Handle implements shared.EventHandler
func (h *ComplementInvalidationHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	ids := affectedComplements(ev)
	if len(ids) == 0 {
		return nil
	}
	h.cache.Delete(ctx, ids...)
	h.logger.Debug("Complement cache invalidated",
		zap.String("event_type", ev.EventType()),
		zap.Int("count", len(ids)))
	return nil
}

// EventTypes implements shared.EventHandler
func (h *ComplementInvalidationHandler) EventTypes() []string {
	return catalog.ComplementEventTypes
}

// affectedComplements returns the complements whose cached read is stale after ev
func affectedComplements(ev shared.DomainEvent) []uuid.UUID {
	if e, ok := ev.(*catalog.ProductEvent); ok {
		switch e.EventType() {
		case catalog.EventTypeProductComplementsAttached, catalog.EventTypeProductDeleted:
			return e.ComplementIDs
		}
		return nil
	}
	if ev.AggregateType() == catalog.AggregateTypeComplement {
		return []uuid.UUID{ev.AggregateID()}
	}
	return nil
}
