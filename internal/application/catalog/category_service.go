package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo   catalog.CategoryRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CategoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new category in a company catalog.
//
// A category with the same name in the catalog yields ALREADY_EXISTS. The
// check and the insert are not atomic; a concurrent insert that loses on the
// unique index surfaces as a REQUEST_FAILED error carrying the store message.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := s.categoryRepo.FindByName(ctx, req.CompanyID, name)
	if err != nil && !isNotFound(err) {
		return nil, shared.RewrapRequestError(err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category already exists")
	}

	category, err := catalog.NewCategory(req.CompanyID, name)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, category)

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID, with the number of products in it
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	response.ProductCount = &count
	return &response, nil
}

// List retrieves the categories of a company
func (s *CategoryService) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := filter.toDomain("name", "asc")

	categories, err := s.categoryRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCategoryResponses(categories), total, nil
}

// Edit renames a category. The new name must not be taken by another category of the catalog.
func (s *CategoryService) Edit(ctx context.Context, id uuid.UUID, req EditCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name != category.Name {
		existing, err := s.categoryRepo.FindByName(ctx, category.CompanyID, name)
		if err != nil && !isNotFound(err) {
			return nil, shared.RewrapRequestError(err)
		}
		if existing != nil && existing.ID != category.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category already exists")
		}
	}

	if err := category.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, category)

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete deletes a category. Its products stay in the catalog without a category.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return shared.RewrapRequestError(err)
	}

	category.MarkDeleted()
	publishDomainEvents(ctx, s.eventPublisher, category)
	return nil
}
