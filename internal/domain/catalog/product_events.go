package catalog

import (
	"slices"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
)

const AggregateTypeProduct = "Product"

const (
	EventTypeProductCreated             = "ProductCreated"
	EventTypeProductUpdated             = "ProductUpdated"
	EventTypeProductComplementsAttached = "ProductComplementsAttached"
	EventTypeProductDeleted             = "ProductDeleted"
)

// ProductEvent snapshots a product after a change. ComplementIDs holds the
// newly linked complements on attach and every linked complement on delete;
// other event types leave it empty.
type ProductEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID     `json:"product_id"`
	Name          string        `json:"name"`
	Price         string        `json:"price"`
	Status        ProductStatus `json:"status"`
	CategoryID    *uuid.UUID    `json:"category_id,omitempty"`
	ComplementIDs []uuid.UUID   `json:"complement_ids,omitempty"`
}

func newProductEvent(eventType string, p *Product, complementIDs []uuid.UUID) *ProductEvent {
	return &ProductEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProduct, p.ID, p.CompanyID),
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price.String(),
		Status:          p.Status,
		CategoryID:      p.CategoryID,
		ComplementIDs:   complementIDs,
	}
}

// NewProductUpdatedEvent snapshots p as updated.
func NewProductUpdatedEvent(p *Product) *ProductEvent {
	return newProductEvent(EventTypeProductUpdated, p, nil)
}

// NewProductComplementsAttachedEvent records the complements just linked to p.
func NewProductComplementsAttachedEvent(p *Product, added []uuid.UUID) *ProductEvent {
	return newProductEvent(EventTypeProductComplementsAttached, p, added)
}

// NewProductDeletedEvent records p's removal along with its complement links.
func NewProductDeletedEvent(p *Product) *ProductEvent {
	return newProductEvent(EventTypeProductDeleted, p, slices.Clone(p.ComplementIDs))
}
