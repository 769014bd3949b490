package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
)

// ComplementService handles complement-related business operations
type ComplementService struct {
	complementRepo catalog.ComplementRepository
	productRepo    catalog.ProductRepository
	cache          ComplementCache
	eventPublisher shared.EventPublisher
}

// NewComplementService creates a new ComplementService
func NewComplementService(
	complementRepo catalog.ComplementRepository,
	productRepo catalog.ProductRepository,
) *ComplementService {
	return &ComplementService{
		complementRepo: complementRepo,
		productRepo:    productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ComplementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetCache enables the complement read cache
func (s *ComplementService) SetCache(cache ComplementCache) {
	s.cache = cache
}

// Create creates a complement together with its items in one transaction,
// then attaches it to the given products.
func (s *ComplementService) Create(ctx context.Context, req CreateComplementRequest) (*ComplementResponse, error) {
	complement, err := catalog.NewComplement(req.CompanyID, req.Name, req.Required, req.MaxAmount)
	if err != nil {
		return nil, err
	}
	for _, in := range req.Items {
		if _, err := complement.AddItem(in.Name, priceOf(in.Price)); err != nil {
			return nil, err
		}
	}

	if err := s.complementRepo.Create(ctx, complement); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, complement)

	for _, productID := range uniqueIDs(req.ProductIDs) {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		product.AttachComplements(complement.ID)
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, shared.RewrapRequestError(err)
		}
		publishDomainEvents(ctx, s.eventPublisher, product)
		complement.ProductIDs = append(complement.ProductIDs, productID)
	}

	response := ToComplementResponse(complement)
	return &response, nil
}

// GetByID retrieves a complement with its items (creation order) and attached product IDs
func (s *ComplementService) GetByID(ctx context.Context, id uuid.UUID) (*ComplementResponse, error) {
	complement, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToComplementResponse(complement)
	return &response, nil
}

// load returns the domain complement, going through the read cache when enabled.
// A fill is not ordered against invalidation: if an edit commits and drops the
// entry between the repository read and Set, the older copy is served until
// cache.ttl expires.
func (s *ComplementService) load(ctx context.Context, id uuid.UUID) (*catalog.Complement, error) {
	if s.cache != nil {
		if complement, ok := s.cache.Get(ctx, id); ok {
			return complement, nil
		}
	}

	complement, err := s.complementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, complement)
	}
	return complement, nil
}

// List retrieves the complements of a company
func (s *ComplementService) List(ctx context.Context, companyID uuid.UUID, filter ListFilter, required *bool) ([]ComplementResponse, int64, error) {
	domainFilter := filter.toDomain("name", "asc")
	if required != nil {
		domainFilter = domainFilter.Where("required", *required)
	}

	complements, err := s.complementRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.complementRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToComplementResponses(complements), total, nil
}

// Edit updates the complement's scalar fields (editComplement). Items and
// product links are not touched.
func (s *ComplementService) Edit(ctx context.Context, id uuid.UUID, req EditComplementRequest) (*ComplementResponse, error) {
	complement, err := s.complementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, required, maxAmount := complement.Name, complement.Required, complement.MaxAmount
	if req.Name != nil {
		name = *req.Name
	}
	if req.Required != nil {
		required = *req.Required
	}
	if req.MaxAmount != nil {
		maxAmount = *req.MaxAmount
	}
	if err := complement.Update(name, required, maxAmount); err != nil {
		return nil, err
	}

	if err := s.complementRepo.Save(ctx, complement); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, complement)

	response := ToComplementResponse(complement)
	return &response, nil
}

// Delete deletes a complement with its items and product links
func (s *ComplementService) Delete(ctx context.Context, id uuid.UUID) error {
	complement, err := s.complementRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.complementRepo.Delete(ctx, id); err != nil {
		return shared.RewrapRequestError(err)
	}

	complement.MarkDeleted()
	publishDomainEvents(ctx, s.eventPublisher, complement)
	return nil
}

func priceOf(p *valueobject.Price) valueobject.Price {
	if p == nil {
		return valueobject.ZeroPrice()
	}
	return *p
}

// uniqueIDs drops nil and repeated IDs, keeping order
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
