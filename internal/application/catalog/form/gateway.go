package form

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
)

// Gateway is the set of catalog endpoints the complement form drives.
// Each method is one request; the form never batches across methods.
type Gateway interface {
	// GetComplementByID is getComplementsById: the complement with its items and product IDs
	GetComplementByID(ctx context.Context, id uuid.UUID) (*catalogapp.ComplementResponse, error)
	CreateComplement(ctx context.Context, req catalogapp.CreateComplementRequest) (*catalogapp.ComplementResponse, error)
	EditComplement(ctx context.Context, id uuid.UUID, req catalogapp.EditComplementRequest) (*catalogapp.ComplementResponse, error)
	EditProduct(ctx context.Context, id uuid.UUID, req catalogapp.EditProductRequest) (*catalogapp.ProductResponse, error)
	CreateItems(ctx context.Context, req catalogapp.CreateItemsRequest) ([]catalogapp.ComplementItemResponse, error)
	EditItem(ctx context.Context, id uuid.UUID, req catalogapp.EditItemRequest) (*catalogapp.ComplementItemResponse, error)
}

// LocalGateway serves the form from the in-process catalog services
type LocalGateway struct {
	complements *catalogapp.ComplementService
	items       *catalogapp.ItemService
	products    *catalogapp.ProductService
}

// NewLocalGateway creates a gateway over the catalog services
func NewLocalGateway(
	complements *catalogapp.ComplementService,
	items *catalogapp.ItemService,
	products *catalogapp.ProductService,
) *LocalGateway {
	return &LocalGateway{
		complements: complements,
		items:       items,
		products:    products,
	}
}

func (g *LocalGateway) GetComplementByID(ctx context.Context, id uuid.UUID) (*catalogapp.ComplementResponse, error) {
	return g.complements.GetByID(ctx, id)
}

func (g *LocalGateway) CreateComplement(ctx context.Context, req catalogapp.CreateComplementRequest) (*catalogapp.ComplementResponse, error) {
	return g.complements.Create(ctx, req)
}

func (g *LocalGateway) EditComplement(ctx context.Context, id uuid.UUID, req catalogapp.EditComplementRequest) (*catalogapp.ComplementResponse, error) {
	return g.complements.Edit(ctx, id, req)
}

func (g *LocalGateway) EditProduct(ctx context.Context, id uuid.UUID, req catalogapp.EditProductRequest) (*catalogapp.ProductResponse, error) {
	return g.products.Edit(ctx, id, req)
}

func (g *LocalGateway) CreateItems(ctx context.Context, req catalogapp.CreateItemsRequest) ([]catalogapp.ComplementItemResponse, error) {
	return g.items.CreateItems(ctx, req)
}

func (g *LocalGateway) EditItem(ctx context.Context, id uuid.UUID, req catalogapp.EditItemRequest) (*catalogapp.ComplementItemResponse, error) {
	return g.items.EditItem(ctx, id, req)
}

var _ Gateway = (*LocalGateway)(nil)
