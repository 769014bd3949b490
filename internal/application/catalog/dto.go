package catalog

import (
	"cmp"
	"time"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
)

// ---------------------------------------------------------------------------
// Company
// ---------------------------------------------------------------------------

// CompanyInfoInput carries registration and contact data
type CompanyInfoInput struct {
	CNPJ                string `json:"cnpj" binding:"omitempty,cnpj"`
	Email               string `json:"email" binding:"omitempty,email,max=200"`
	PhoneNumber         string `json:"phoneNumber" binding:"omitempty,max=20"`
	DeliveryPhoneNumber string `json:"deliveryPhoneNumber" binding:"omitempty,max=20"`
}

// CompanyAddressInput carries the company address
type CompanyAddressInput struct {
	ZipCode string `json:"zipCode" binding:"omitempty,max=10"`
	Address string `json:"address" binding:"omitempty,max=300"`
}

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	Name           string               `json:"name" binding:"required,min=1,max=100"`
	Slug           string               `json:"slug" binding:"omitempty,slug"`
	CompanyInfo    *CompanyInfoInput    `json:"companyInfo"`
	CompanyAddress *CompanyAddressInput `json:"companyAddress"`
}

// CompanyProfileInput is the editable top-level block of a company
type CompanyProfileInput struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug   *string `json:"slug" binding:"omitempty,slug"`
	Status *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// EditCompanyRequest represents a request to edit a company. Each block is optional.
type EditCompanyRequest struct {
	Company        *CompanyProfileInput `json:"company"`
	CompanyInfo    *CompanyInfoInput    `json:"companyInfo"`
	CompanyAddress *CompanyAddressInput `json:"companyAddress"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	Status              string    `json:"status"`
	CNPJ                string    `json:"cnpj"`
	Email               string    `json:"email"`
	PhoneNumber         string    `json:"phoneNumber"`
	DeliveryPhoneNumber string    `json:"deliveryPhoneNumber"`
	ZipCode             string    `json:"zipCode"`
	Address             string    `json:"address"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	Version             int       `json:"version"`
}

// ToCompanyResponse converts a domain Company to CompanyResponse
func ToCompanyResponse(c *catalog.Company) CompanyResponse {
	return CompanyResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Slug:                c.Slug,
		Status:              string(c.Status),
		CNPJ:                c.Info.CNPJ,
		Email:               c.Info.Email,
		PhoneNumber:         c.Info.PhoneNumber,
		DeliveryPhoneNumber: c.Info.DeliveryPhoneNumber,
		ZipCode:             c.Address.ZipCode,
		Address:             c.Address.Address,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
		Version:             c.Version,
	}
}

// ToCompanyResponses converts a slice of companies
func ToCompanyResponses(companies []catalog.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}

// ---------------------------------------------------------------------------
// Category
// ---------------------------------------------------------------------------

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	CompanyID uuid.UUID `json:"companyId" binding:"required"`
	Name      string    `json:"name" binding:"required,min=1,max=100"`
}

// EditCategoryRequest represents a request to rename a category
type EditCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"companyId"`
	Name         string    `json:"name"`
	ProductCount *int64    `json:"productCount,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// ---------------------------------------------------------------------------
// Complement and items
// ---------------------------------------------------------------------------

// ItemInput is a complement item as submitted by clients
type ItemInput struct {
	Name  string             `json:"name" binding:"required,min=1,max=100"`
	Price *valueobject.Price `json:"price" binding:"required"`
}

// CreateComplementRequest represents a request to create a complement, optionally with items
type CreateComplementRequest struct {
	CompanyID  uuid.UUID   `json:"companyId" binding:"required"`
	Name       string      `json:"name" binding:"required,min=1,max=100"`
	Required   bool        `json:"required"`
	MaxAmount  int         `json:"maxAmount" binding:"min=0"`
	Items      []ItemInput `json:"items" binding:"omitempty,dive"`
	ProductIDs []uuid.UUID `json:"productsIds"`
}

// EditComplementRequest is the editComplement payload. Nil fields are left unchanged.
type EditComplementRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	MaxAmount *int    `json:"maxAmount" binding:"omitempty,min=0"`
	Required  *bool   `json:"required"`
}

// CreateItemsRequest is the createItem payload: several items appended to one complement
type CreateItemsRequest struct {
	ComplementID uuid.UUID   `json:"complementId" binding:"required"`
	Items        []ItemInput `json:"items" binding:"required,min=1,dive"`
}

// EditItemRequest is the editItem payload. Nil fields are left unchanged.
type EditItemRequest struct {
	Name  *string            `json:"name" binding:"omitempty,min=1,max=100"`
	Price *valueobject.Price `json:"price"`
}

// ComplementItemResponse represents a complement item in API responses
type ComplementItemResponse struct {
	ID           uuid.UUID         `json:"id"`
	ComplementID uuid.UUID         `json:"complementId"`
	Name         string            `json:"name"`
	Price        valueobject.Price `json:"price"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ComplementResponse represents a complement with its items in creation order
type ComplementResponse struct {
	ID         uuid.UUID                `json:"id"`
	CompanyID  uuid.UUID                `json:"companyId"`
	Name       string                   `json:"name"`
	Required   bool                     `json:"required"`
	MaxAmount  int                      `json:"maxAmount"`
	Items      []ComplementItemResponse `json:"items"`
	ProductIDs []uuid.UUID              `json:"productsIds"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
	Version    int                      `json:"version"`
}

// ToComplementItemResponse converts a domain ComplementItem
func ToComplementItemResponse(i *catalog.ComplementItem) ComplementItemResponse {
	return ComplementItemResponse{
		ID:           i.ID,
		ComplementID: i.ComplementID,
		Name:         i.Name,
		Price:        i.Price,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ToComplementResponse converts a domain Complement to ComplementResponse
func ToComplementResponse(c *catalog.Complement) ComplementResponse {
	items := make([]ComplementItemResponse, len(c.Items))
	for i := range c.Items {
		items[i] = ToComplementItemResponse(&c.Items[i])
	}
	productIDs := c.ProductIDs
	if productIDs == nil {
		productIDs = []uuid.UUID{}
	}
	return ComplementResponse{
		ID:         c.ID,
		CompanyID:  c.CompanyID,
		Name:       c.Name,
		Required:   c.Required,
		MaxAmount:  c.MaxAmount,
		Items:      items,
		ProductIDs: productIDs,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Version:    c.Version,
	}
}

// ToComplementResponses converts a slice of complements
func ToComplementResponses(complements []catalog.Complement) []ComplementResponse {
	responses := make([]ComplementResponse, len(complements))
	for i := range complements {
		responses[i] = ToComplementResponse(&complements[i])
	}
	return responses
}

// ---------------------------------------------------------------------------
// Product
// ---------------------------------------------------------------------------

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	CompanyID     uuid.UUID          `json:"companyId" binding:"required"`
	CategoryID    *uuid.UUID         `json:"categoryId"`
	Name          string             `json:"name" binding:"required,min=1,max=200"`
	Description   string             `json:"description" binding:"max=2000"`
	Price         *valueobject.Price `json:"price" binding:"required"`
	ComplementsID []uuid.UUID        `json:"complementsId"`
}

// EditProductRequest is the editProduct payload. Nil fields are left unchanged.
// ComplementsID attaches complements; existing links are kept.
type EditProductRequest struct {
	Name          *string            `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string            `json:"description" binding:"omitempty,max=2000"`
	Price         *valueobject.Price `json:"price"`
	CategoryID    *uuid.UUID         `json:"categoryId"`
	Status        *string            `json:"status" binding:"omitempty,oneof=active inactive"`
	ComplementsID []uuid.UUID        `json:"complementsId"`
}

// ImageUploadRequest asks for a presigned product image upload
type ImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp"`
}

// ImageUploadResponse carries a presigned upload URL
type ImageUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID         `json:"id"`
	CompanyID     uuid.UUID         `json:"companyId"`
	CategoryID    *uuid.UUID        `json:"categoryId"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         valueobject.Price `json:"price"`
	ImageKey      string            `json:"imageKey,omitempty"`
	ImageURL      string            `json:"imageUrl,omitempty"`
	Status        string            `json:"status"`
	ComplementsID []uuid.UUID       `json:"complementsId"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Version       int               `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	complementIDs := p.ComplementIDs
	if complementIDs == nil {
		complementIDs = []uuid.UUID{}
	}
	return ProductResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ImageKey:      p.ImageKey,
		Status:        string(p.Status),
		ComplementsID: complementIDs,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

// ListFilter represents the common list query options
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductListFilter adds product specific filters
type ProductListFilter struct {
	ListFilter
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive"`
	CategoryID *uuid.UUID `form:"category_id"`
	CompanyID  *uuid.UUID `form:"company_id"`
}

// toDomain builds a shared.Filter, filling defaults
func (f ListFilter) toDomain(defaultOrderBy, defaultOrderDir string) shared.Filter {
	out := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  cmp.Or(f.OrderBy, defaultOrderBy),
		OrderDir: cmp.Or(f.OrderDir, defaultOrderDir),
		Search:   f.Search,
		Filters:  map[string]any{},
	}
	return out.Normalized()
}
