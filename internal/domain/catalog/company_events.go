package catalog

import (
	"github.com/menudash/backend/internal/domain/shared"
)

// AggregateTypeCompany is the aggregate type for company events
const AggregateTypeCompany = "Company"

// Event type constants
const (
	EventTypeCompanyCreated       = "CompanyCreated"
	EventTypeCompanyUpdated       = "CompanyUpdated"
	EventTypeCompanyStatusChanged = "CompanyStatusChanged"
)

// CompanyCreatedEvent is published when a company is registered
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(c *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, c.ID, c.ID),
		OwnerID:         c.OwnerID,
		Name:            c.Name,
		Slug:            c.Slug,
	}
}

// CompanyUpdatedEvent is published when company data changes
type CompanyUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewCompanyUpdatedEvent creates a new CompanyUpdatedEvent
func NewCompanyUpdatedEvent(c *Company) *CompanyUpdatedEvent {
	return &CompanyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyUpdated, AggregateTypeCompany, c.ID, c.ID),
		Name:            c.Name,
		Slug:            c.Slug,
	}
}

// CompanyStatusChangedEvent is published when a company is opened or closed
type CompanyStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus CompanyStatus `json:"old_status"`
	NewStatus CompanyStatus `json:"new_status"`
}

// NewCompanyStatusChangedEvent creates a new CompanyStatusChangedEvent
func NewCompanyStatusChangedEvent(c *Company, oldStatus, newStatus CompanyStatus) *CompanyStatusChangedEvent {
	return &CompanyStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyStatusChanged, AggregateTypeCompany, c.ID, c.ID),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

