package models

import (
	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
)

// CompanyModel is the persistence model for the Company aggregate.
type CompanyModel struct {
	AggregateModel
	OwnerID             string                `gorm:"type:varchar(255);not null;index"`
	Name                string                `gorm:"type:varchar(120);not null"`
	Slug                string                `gorm:"type:varchar(80);not null;uniqueIndex"`
	Status              catalog.CompanyStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CNPJ                string                `gorm:"column:cnpj;type:varchar(14)"`
	Email               string                `gorm:"type:varchar(255)"`
	PhoneNumber         string                `gorm:"type:varchar(20)"`
	DeliveryPhoneNumber string                `gorm:"type:varchar(20)"`
	ZipCode             string                `gorm:"type:varchar(8)"`
	Address             string                `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *catalog.Company {
	c := &catalog.Company{
		OwnerID: m.OwnerID,
		Name:    m.Name,
		Slug:    m.Slug,
		Status:  m.Status,
		Info: catalog.CompanyInfo{
			CNPJ:                m.CNPJ,
			Email:               m.Email,
			PhoneNumber:         m.PhoneNumber,
			DeliveryPhoneNumber: m.DeliveryPhoneNumber,
		},
		Address: catalog.CompanyAddress{
			ZipCode: m.ZipCode,
			Address: m.Address,
		},
	}
	c.BaseAggregateRoot = m.Root()
	return c
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *catalog.Company) {
	m.SetRoot(c.BaseAggregateRoot)
	m.OwnerID = c.OwnerID
	m.Name = c.Name
	m.Slug = c.Slug
	m.Status = c.Status
	m.CNPJ = c.Info.CNPJ
	m.Email = c.Info.Email
	m.PhoneNumber = c.Info.PhoneNumber
	m.DeliveryPhoneNumber = c.Info.DeliveryPhoneNumber
	m.ZipCode = c.Address.ZipCode
	m.Address = c.Address.Address
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *catalog.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// CategoryModel is the persistence model for the product category aggregate.
type CategoryModel struct {
	CompanyAggregateModel
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "product_categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	c := &catalog.Category{Name: m.Name}
	c.CompanyAggregateRoot = m.CompanyRoot()
	return c
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.SetCompanyRoot(c.CompanyAggregateRoot)
	m.Name = c.Name
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ComplementModel is the persistence model for the Complement aggregate.
// Items and product links live in their own tables.
type ComplementModel struct {
	CompanyAggregateModel
	Name      string `gorm:"type:varchar(100);not null"`
	Required  bool   `gorm:"not null;default:false"`
	MaxAmount int    `gorm:"not null;default:0;check:max_amount >= 0"`
}

// TableName returns the table name for GORM
func (ComplementModel) TableName() string {
	return "complements"
}

// ToDomain converts the model, together with its loaded items and product
// links, to a domain Complement.
func (m *ComplementModel) ToDomain(items []ComplementItemModel, productIDs []uuid.UUID) *catalog.Complement {
	c := &catalog.Complement{
		Name:       m.Name,
		Required:   m.Required,
		MaxAmount:  m.MaxAmount,
		Items:      make([]catalog.ComplementItem, 0, len(items)),
		ProductIDs: productIDs,
	}
	if c.ProductIDs == nil {
		c.ProductIDs = []uuid.UUID{}
	}
	c.CompanyAggregateRoot = m.CompanyRoot()
	for i := range items {
		c.Items = append(c.Items, *items[i].ToDomain())
	}
	return c
}

// FromDomain populates the persistence model from a domain Complement.
func (m *ComplementModel) FromDomain(c *catalog.Complement) {
	m.SetCompanyRoot(c.CompanyAggregateRoot)
	m.Name = c.Name
	m.Required = c.Required
	m.MaxAmount = c.MaxAmount
}

// ComplementModelFromDomain creates a new persistence model from a domain Complement.
func ComplementModelFromDomain(c *catalog.Complement) *ComplementModel {
	m := &ComplementModel{}
	m.FromDomain(c)
	return m
}

// ComplementItemModel is the persistence model for complement items.
type ComplementItemModel struct {
	BaseModel
	ComplementID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Name         string            `gorm:"type:varchar(100);not null"`
	Price        valueobject.Price `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ComplementItemModel) TableName() string {
	return "complement_items"
}

// ToDomain converts the persistence model to a domain ComplementItem.
func (m *ComplementItemModel) ToDomain() *catalog.ComplementItem {
	return &catalog.ComplementItem{
		BaseEntity:   m.Entity(),
		ComplementID: m.ComplementID,
		Name:         m.Name,
		Price:        m.Price,
	}
}

// FromDomain populates the persistence model from a domain ComplementItem.
func (m *ComplementItemModel) FromDomain(i *catalog.ComplementItem) {
	m.SetEntity(i.BaseEntity)
	m.ComplementID = i.ComplementID
	m.Name = i.Name
	m.Price = i.Price
}

// ComplementItemModelFromDomain creates a new persistence model from a domain ComplementItem.
func ComplementItemModelFromDomain(i *catalog.ComplementItem) *ComplementItemModel {
	m := &ComplementItemModel{}
	m.FromDomain(i)
	return m
}

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	CompanyAggregateModel
	CategoryID  *uuid.UUID            `gorm:"type:uuid;index"`
	Name        string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Price       valueobject.Price     `gorm:"type:decimal(12,2);not null;default:0"`
	ImageKey    string                `gorm:"type:varchar(500)"`
	Status      catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model and its complement links to a domain Product.
func (m *ProductModel) ToDomain(complementIDs []uuid.UUID) *catalog.Product {
	p := &catalog.Product{
		CategoryID:    m.CategoryID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		ImageKey:      m.ImageKey,
		Status:        m.Status,
		ComplementIDs: complementIDs,
	}
	if p.ComplementIDs == nil {
		p.ComplementIDs = []uuid.UUID{}
	}
	p.CompanyAggregateRoot = m.CompanyRoot()
	return p
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.SetCompanyRoot(p.CompanyAggregateRoot)
	m.CategoryID = p.CategoryID
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.ImageKey = p.ImageKey
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductComplementModel links a product to a complement offered with it.
type ProductComplementModel struct {
	ProductID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ComplementID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name for GORM
func (ProductComplementModel) TableName() string {
	return "products_complements"
}

// AllModels returns every catalog model, in dependency order, for AutoMigrate in tests.
func AllModels() []any {
	return []any{
		&CompanyModel{},
		&CategoryModel{},
		&ComplementModel{},
		&ComplementItemModel{},
		&ProductModel{},
		&ProductComplementModel{},
	}
}
