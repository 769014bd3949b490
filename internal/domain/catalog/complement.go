package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
)

// MaxComplementNameLength is the maximum length of complement and item names
const MaxComplementNameLength = 100

// Complement is a group of optional add-ons offered with products
// (e.g. "Extra toppings", up to MaxAmount picks). Items keep creation order.
type Complement struct {
	shared.CompanyAggregateRoot
	Name       string
	Required   bool
	MaxAmount  int
	Items      []ComplementItem
	ProductIDs []uuid.UUID
}

// NewComplement creates a new complement without items
func NewComplement(companyID uuid.UUID, name string, required bool, maxAmount int) (*Complement, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company is required")
	}
	name = strings.TrimSpace(name)
	if err := validateComplementName(name); err != nil {
		return nil, err
	}
	if err := validateMaxAmount(maxAmount); err != nil {
		return nil, err
	}

	complement := &Complement{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Required:             required,
		MaxAmount:            maxAmount,
		Items:                make([]ComplementItem, 0),
	}
	complement.AddDomainEvent(NewComplementCreatedEvent(complement))

	return complement, nil
}

// Update replaces the complement's scalar fields. Items are not touched.
func (c *Complement) Update(name string, required bool, maxAmount int) error {
	name = strings.TrimSpace(name)
	if err := validateComplementName(name); err != nil {
		return err
	}
	if err := validateMaxAmount(maxAmount); err != nil {
		return err
	}

	c.Name = name
	c.Required = required
	c.MaxAmount = maxAmount
	c.Touch()
	c.IncrementVersion()
	c.AddDomainEvent(NewComplementUpdatedEvent(c))

	return nil
}

// AddItem appends a new item to the complement. Its creation time is
// truncated to microseconds (the storage precision) and kept strictly after
// the previous item's, so creation order is stable once persisted.
func (c *Complement) AddItem(name string, price valueobject.Price) (*ComplementItem, error) {
	item, err := NewComplementItem(c.ID, name, price)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = item.CreatedAt.Truncate(time.Microsecond)
	if n := len(c.Items); n > 0 {
		if min := c.Items[n-1].CreatedAt.Add(time.Microsecond); item.CreatedAt.Before(min) {
			item.CreatedAt = min
		}
	}
	item.UpdatedAt = item.CreatedAt
	c.Items = append(c.Items, *item)
	return item, nil
}

// ItemCount returns the number of items
func (c *Complement) ItemCount() int {
	return len(c.Items)
}

// ItemIDs returns item IDs in order
func (c *Complement) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for i := range c.Items {
		ids = append(ids, c.Items[i].ID)
	}
	return ids
}

// IsAttachedTo reports whether the complement is offered with the product
func (c *Complement) IsAttachedTo(productID uuid.UUID) bool {
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// MarkDeleted records the deletion event
func (c *Complement) MarkDeleted() {
	c.AddDomainEvent(NewComplementDeletedEvent(c))
}

// ComplementItem is a single option of a complement (e.g. "Bacon", 3.50)
type ComplementItem struct {
	shared.BaseEntity
	ComplementID uuid.UUID
	Name         string
	Price        valueobject.Price
}

// NewComplementItem creates a new item for a complement
func NewComplementItem(complementID uuid.UUID, name string, price valueobject.Price) (*ComplementItem, error) {
	if complementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPLEMENT", "Complement is required")
	}
	name = strings.TrimSpace(name)
	if err := validateItemName(name); err != nil {
		return nil, err
	}

	return &ComplementItem{
		BaseEntity:   shared.NewBaseEntity(),
		ComplementID: complementID,
		Name:         name,
		Price:        price,
	}, nil
}

// Update replaces the item's name and price
func (i *ComplementItem) Update(name string, price valueobject.Price) error {
	name = strings.TrimSpace(name)
	if err := validateItemName(name); err != nil {
		return err
	}

	i.Name = name
	i.Price = price
	i.Touch()
	return nil
}

func validateComplementName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Complement name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxComplementNameLength {
		return shared.NewDomainError("INVALID_NAME", "Complement name cannot exceed 100 characters")
	}
	return nil
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxComplementNameLength {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 100 characters")
	}
	return nil
}

func validateMaxAmount(maxAmount int) error {
	if maxAmount < 0 {
		return shared.NewDomainError("INVALID_MAX_AMOUNT", "Max amount cannot be negative")
	}
	return nil
}
