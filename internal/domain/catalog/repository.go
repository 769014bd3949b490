package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
)

// Lookups return shared.ErrNotFound when the row does not exist. List
// methods take a shared.Filter whose Filters keys are repository specific.

// CompanyRepository stores companies. Companies are never deleted.
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindBySlug(ctx context.Context, slug string) (*Company, error)
	// FindAllByOwner lists the companies of an auth provider user.
	// Filters: "status".
	FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]Company, error)
	CountByOwner(ctx context.Context, ownerID string, filter shared.Filter) (int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, company *Company) error
}

// CategoryRepository stores product categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// FindByName matches the exact name within one company.
	FindByName(ctx context.Context, companyID uuid.UUID, name string) (*Category, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Category, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ComplementRepository stores complements together with their items.
type ComplementRepository interface {
	// FindByID loads items in creation order and the attached product ids.
	FindByID(ctx context.Context, id uuid.UUID) (*Complement, error)
	// FindAllForCompany lists complements with items. Filters: "required".
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Complement, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	// Create inserts a new complement and its items in one transaction.
	Create(ctx context.Context, complement *Complement) error
	// Save updates the complement's own columns. Items and product links
	// are written through their own repositories.
	Save(ctx context.Context, complement *Complement) error
	// Delete also removes the items and the product links.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ComplementItemRepository stores single complement items, for the item
// endpoints that work outside the complement aggregate.
type ComplementItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ComplementItem, error)
	FindByComplement(ctx context.Context, complementID uuid.UUID) ([]ComplementItem, error)
	// CreateBatch inserts all items in one statement.
	CreateBatch(ctx context.Context, items []*ComplementItem) error
	Save(ctx context.Context, item *ComplementItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository stores products and their complement links.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Product, error)
	// FindAllByOwner lists products across every company of an auth user.
	// Filters: "status", "category_id", "company_id".
	FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]Product, error)
	CountByOwner(ctx context.Context, ownerID string, filter shared.Filter) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// Save inserts missing complement links. It never removes links.
	Save(ctx context.Context, product *Product) error
	// Delete also removes the product's complement links.
	Delete(ctx context.Context, id uuid.UUID) error
}
