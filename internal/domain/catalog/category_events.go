package catalog

import (
	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
)

const AggregateTypeCategory = "Category"

const (
	EventTypeCategoryCreated = "CategoryCreated"
	EventTypeCategoryUpdated = "CategoryUpdated"
	EventTypeCategoryDeleted = "CategoryDeleted"
)

// CategoryEvent is raised on every change to a category. PreviousName is
// set only on renames.
type CategoryEvent struct {
	shared.BaseDomainEvent
	CategoryID   uuid.UUID `json:"category_id"`
	Name         string    `json:"name"`
	PreviousName string    `json:"previous_name,omitempty"`
}

func newCategoryEvent(eventType string, c *Category) *CategoryEvent {
	return &CategoryEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeCategory, c.ID, c.CompanyID),
		CategoryID:      c.ID,
		Name:            c.Name,
	}
}
