package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
)

// MaxCategoryNameLength bounds category names, in bytes
const MaxCategoryNameLength = 100

// Category groups products in a company catalog, e.g. "Burgers" or "Drinks".
// Names are unique within a company; the repository enforces that.
type Category struct {
	shared.CompanyAggregateRoot
	Name string
}

// NewCategory creates a new category for a company
func NewCategory(companyID uuid.UUID, name string) (*Category, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company is required")
	}
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
	}
	category.AddDomainEvent(newCategoryEvent(EventTypeCategoryCreated, category))
	return category, nil
}

// Rename changes the category name. Renaming to the current name is a no-op.
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if name == c.Name {
		return nil
	}

	event := newCategoryEvent(EventTypeCategoryUpdated, c)
	event.PreviousName = c.Name
	c.Name = name
	event.Name = name
	c.Touch()
	c.IncrementVersion()
	c.AddDomainEvent(event)
	return nil
}

// MarkDeleted raises the deletion event; the repository removes the row
func (c *Category) MarkDeleted() {
	c.AddDomainEvent(newCategoryEvent(EventTypeCategoryDeleted, c))
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
