package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
)

// ProductImageConfig holds product image settings
type ProductImageConfig struct {
	// UploadURLExpiry is how long an upload URL stays valid
	UploadURLExpiry time.Duration
	// DownloadURLExpiry is how long a read URL stays valid
	DownloadURLExpiry time.Duration
}

// DefaultProductImageConfig returns the default image settings
func DefaultProductImageConfig() ProductImageConfig {
	return ProductImageConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	storage        ObjectStorageService
	imageConfig    ProductImageConfig
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	storage ObjectStorageService,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		imageConfig:  DefaultProductImageConfig(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetImageConfig overrides the image URL expiries
func (s *ProductService) SetImageConfig(cfg ProductImageConfig) {
	s.imageConfig = cfg
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.CompanyID, req.Name, priceOf(req.Price))
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := product.Update(product.Name, req.Description, product.Price); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, product.CompanyID, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	product.AttachComplements(req.ComplementsID...)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product with its complement IDs
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	s.attachImageURL(ctx, &response)
	return &response, nil
}

// ListForUser lists the products of every company owned by the current auth user
func (s *ProductService) ListForUser(ctx context.Context, userID string, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if userID == "" {
		return nil, 0, shared.ErrUnauthorized
	}

	domainFilter := filter.toDomain("name", "asc")
	if filter.Status != "" {
		domainFilter = domainFilter.Where("status", filter.Status)
	}
	if filter.CategoryID != nil {
		domainFilter = domainFilter.Where("category_id", *filter.CategoryID)
	}
	if filter.CompanyID != nil {
		domainFilter = domainFilter.Where("company_id", *filter.CompanyID)
	}

	products, err := s.productRepo.FindAllByOwner(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountByOwner(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Edit applies an editProduct payload. Complements in ComplementsID are
// attached; links the product already has are kept.
func (s *ProductService) Edit(ctx context.Context, id uuid.UUID, req EditProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.Price != nil {
		name, description, price := product.Name, product.Description, product.Price
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Price != nil {
			price = *req.Price
		}
		if err := product.Update(name, description, price); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if *req.CategoryID == uuid.Nil {
			product.SetCategory(nil)
		} else {
			if err := s.ensureCategory(ctx, product.CompanyID, *req.CategoryID); err != nil {
				return nil, err
			}
			product.SetCategory(req.CategoryID)
		}
	}

	if req.Status != nil {
		if err := s.applyStatus(product, catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	product.AttachComplements(req.ComplementsID...)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product, its complement links and its image
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return shared.RewrapRequestError(err)
	}

	if product.ImageKey != "" && s.storage != nil {
		// best effort
		_ = s.storage.DeleteObject(ctx, product.ImageKey)
	}

	product.MarkDeleted()
	publishDomainEvents(ctx, s.eventPublisher, product)
	return nil
}

// RequestImageUpload returns a presigned upload URL for the product image and
// records the object key on the product
func (s *ProductService) RequestImageUpload(ctx context.Context, id uuid.UUID, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Image uploads are not enabled")
	}
	ext, ok := imageExtensions[req.ContentType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Image must be JPEG, PNG or WebP")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := productImageKey(product, ext)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, s.imageConfig.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	product.SetImage(key)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, product)

	return &ImageUploadResponse{
		UploadURL: uploadURL,
		Method:    "PUT",
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *ProductService) attachImageURL(ctx context.Context, response *ProductResponse) {
	if response.ImageKey == "" || s.storage == nil {
		return
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, response.ImageKey, s.imageConfig.DownloadURLExpiry)
	if err == nil {
		response.ImageURL = url
	}
}

func (s *ProductService) ensureCategory(ctx context.Context, companyID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if isNotFound(err) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	if category.CompanyID != companyID {
		return shared.NewDomainError("INVALID_CATEGORY", "Category belongs to another company")
	}
	return nil
}

func (s *ProductService) applyStatus(product *catalog.Product, status catalog.ProductStatus) error {
	if product.Status == status {
		return nil
	}
	if status == catalog.ProductStatusActive {
		return product.Activate()
	}
	return product.Deactivate()
}

// productImageKey builds companies/<company>/products/<product>/<random><ext>
func productImageKey(product *catalog.Product, ext string) string {
	return path.Join(
		"companies", product.CompanyID.String(),
		"products", product.ID.String(),
		strings.ReplaceAll(uuid.NewString(), "-", "")+ext,
	)
}
