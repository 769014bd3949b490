// Package models holds the gorm row types of the catalog tables and their
// conversions to and from the domain aggregates.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
)

// BaseModel is the id and timestamp columns every table has.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Entity returns the row identity as a domain entity.
func (m BaseModel) Entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// SetEntity copies e onto the row.
func (m *BaseModel) SetEntity(e shared.BaseEntity) {
	*m = BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// AggregateModel adds the optimistic-lock version of aggregate roots.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// Root returns the stored aggregate root state. Pending events are never
// persisted, so the result has none.
func (m AggregateModel) Root() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.Entity(), Version: m.Version}
}

// SetRoot copies a's identity and version onto the row.
func (m *AggregateModel) SetRoot(a shared.BaseAggregateRoot) {
	m.SetEntity(a.BaseEntity)
	m.Version = a.Version
}

// CompanyAggregateModel is an aggregate row owned by a company.
type CompanyAggregateModel struct {
	AggregateModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// CompanyRoot returns the stored company-scoped root state.
func (m CompanyAggregateModel) CompanyRoot() shared.CompanyAggregateRoot {
	return shared.CompanyAggregateRoot{BaseAggregateRoot: m.Root(), CompanyID: m.CompanyID}
}

// SetCompanyRoot copies c onto the row.
func (m *CompanyAggregateModel) SetCompanyRoot(c shared.CompanyAggregateRoot) {
	m.SetRoot(c.BaseAggregateRoot)
	m.CompanyID = c.CompanyID
}
