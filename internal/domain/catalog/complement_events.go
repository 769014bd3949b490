package catalog

import (
	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
)

// AggregateTypeComplement is the aggregate type for complement and item events
const AggregateTypeComplement = "Complement"

// Event type constants
const (
	EventTypeComplementCreated      = "ComplementCreated"
	EventTypeComplementUpdated      = "ComplementUpdated"
	EventTypeComplementDeleted      = "ComplementDeleted"
	EventTypeComplementItemsCreated = "ComplementItemsCreated"
	EventTypeComplementItemUpdated  = "ComplementItemUpdated"
	EventTypeComplementItemDeleted  = "ComplementItemDeleted"
)

// ComplementEventTypes lists every event that changes what a complement read returns
var ComplementEventTypes = []string{
	EventTypeComplementCreated,
	EventTypeComplementUpdated,
	EventTypeComplementDeleted,
	EventTypeComplementItemsCreated,
	EventTypeComplementItemUpdated,
	EventTypeComplementItemDeleted,
	EventTypeProductComplementsAttached,
	EventTypeProductDeleted,
}

// ComplementCreatedEvent is published when a complement is created
type ComplementCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	MaxAmount int    `json:"max_amount"`
}

// NewComplementCreatedEvent creates a new ComplementCreatedEvent
func NewComplementCreatedEvent(c *Complement) *ComplementCreatedEvent {
	return &ComplementCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplementCreated, AggregateTypeComplement, c.ID, c.CompanyID),
		Name:            c.Name,
		Required:        c.Required,
		MaxAmount:       c.MaxAmount,
	}
}

// ComplementUpdatedEvent is published when complement scalars change
type ComplementUpdatedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	MaxAmount int    `json:"max_amount"`
}

// NewComplementUpdatedEvent creates a new ComplementUpdatedEvent
func NewComplementUpdatedEvent(c *Complement) *ComplementUpdatedEvent {
	return &ComplementUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplementUpdated, AggregateTypeComplement, c.ID, c.CompanyID),
		Name:            c.Name,
		Required:        c.Required,
		MaxAmount:       c.MaxAmount,
	}
}

// ComplementDeletedEvent is published when a complement is deleted
type ComplementDeletedEvent struct {
	shared.BaseDomainEvent
	ItemIDs []uuid.UUID `json:"item_ids"`
}

// NewComplementDeletedEvent creates a new ComplementDeletedEvent
func NewComplementDeletedEvent(c *Complement) *ComplementDeletedEvent {
	return &ComplementDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplementDeleted, AggregateTypeComplement, c.ID, c.CompanyID),
		ItemIDs:         c.ItemIDs(),
	}
}

// ComplementItemsCreatedEvent is published when items are added to a complement in one batch
type ComplementItemsCreatedEvent struct {
	shared.BaseDomainEvent
	ItemIDs []uuid.UUID `json:"item_ids"`
}

// NewComplementItemsCreatedEvent creates a new ComplementItemsCreatedEvent
func NewComplementItemsCreatedEvent(c *Complement, items []*ComplementItem) *ComplementItemsCreatedEvent {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return &ComplementItemsCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplementItemsCreated, AggregateTypeComplement, c.ID, c.CompanyID),
		ItemIDs:         ids,
	}
}

// ComplementItemUpdatedEvent is published when an item's name or price changes
type ComplementItemUpdatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name"`
	Price  string    `json:"price"`
}

// NewComplementItemUpdatedEvent creates a new ComplementItemUpdatedEvent
func NewComplementItemUpdatedEvent(c *Complement, item *ComplementItem) *ComplementItemUpdatedEvent {
	return &ComplementItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplementItemUpdated, AggregateTypeComplement, c.ID, c.CompanyID),
		ItemID:          item.ID,
		Name:            item.Name,
		Price:           item.Price.String(),
	}
}

// ComplementItemDeletedEvent is published when an item is removed
type ComplementItemDeletedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
}

// NewComplementItemDeletedEvent creates a new ComplementItemDeletedEvent
func NewComplementItemDeletedEvent(c *Complement, itemID uuid.UUID) *ComplementItemDeletedEvent {
	return &ComplementItemDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplementItemDeleted, AggregateTypeComplement, c.ID, c.CompanyID),
		ItemID:          itemID,
	}
}
