package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is an item sold by a company, optionally in a category and
// offered with any number of complements
type Product struct {
	shared.CompanyAggregateRoot
	CategoryID    *uuid.UUID
	Name          string
	Description   string
	Price         valueobject.Price
	ImageKey      string
	Status        ProductStatus
	ComplementIDs []uuid.UUID
}

// NewProduct creates a new active product
func NewProduct(companyID uuid.UUID, name string, price valueobject.Price) (*Product, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company is required")
	}
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Price:                price,
		Status:               ProductStatusActive,
		ComplementIDs:        make([]uuid.UUID, 0),
	}
	product.AddDomainEvent(newProductEvent(EventTypeProductCreated, product, nil))

	return product, nil
}

// Update replaces the product's descriptive fields and price
func (p *Product) Update(name, description string, price valueobject.Price) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	if utf8.RuneCountInString(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Product description cannot exceed 2000 characters")
	}

	p.Name = name
	p.Description = strings.TrimSpace(description)
	p.Price = price
	p.touch()
	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory moves the product to a category (nil removes it from any category)
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.touch()
}

// AttachComplements links complements to the product. Links that already
// exist are kept. Returns the IDs that were newly attached.
func (p *Product) AttachComplements(complementIDs ...uuid.UUID) []uuid.UUID {
	existing := make(map[uuid.UUID]struct{}, len(p.ComplementIDs))
	for _, id := range p.ComplementIDs {
		existing[id] = struct{}{}
	}

	added := make([]uuid.UUID, 0, len(complementIDs))
	for _, id := range complementIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := existing[id]; ok {
			continue
		}
		existing[id] = struct{}{}
		p.ComplementIDs = append(p.ComplementIDs, id)
		added = append(added, id)
	}

	if len(added) > 0 {
		p.touch()
		p.AddDomainEvent(NewProductComplementsAttachedEvent(p, added))
	}
	return added
}

// HasComplement reports whether the complement is attached
func (p *Product) HasComplement(complementID uuid.UUID) bool {
	for _, id := range p.ComplementIDs {
		if id == complementID {
			return true
		}
	}
	return false
}

// SetImage records the object storage key of the product image
func (p *Product) SetImage(key string) {
	p.ImageKey = key
	p.touch()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// Activate makes the product visible in the catalog
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.touch()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// Deactivate hides the product from the catalog
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.touch()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// MarkDeleted records the deletion event
func (p *Product) MarkDeleted() {
	p.AddDomainEvent(NewProductDeletedEvent(p))
}

func (p *Product) touch() {
	p.Touch()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
