package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product with its attached complement IDs
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	links, err := r.complementLinks(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(links[id]), nil
}

// FindAllForCompany finds all products of a company
func (r *GormProductRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	query := r.filtered(r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("products.company_id = ?", companyID), filter)
	return r.find(ctx, applyPage(query, productSort, filter))
}

// FindAllByOwner finds the products of every company owned by an auth provider user
func (r *GormProductRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]catalog.Product, error) {
	query := applyPage(r.ownerQuery(ctx, ownerID, filter), productSort, filter)
	return r.find(ctx, query.Select("products.*"))
}

// CountByOwner counts the products of every company owned by an auth provider user
func (r *GormProductRepository) CountByOwner(ctx context.Context, ownerID string, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.ownerQuery(ctx, ownerID, filter).Count(&count).Error; err != nil {
		return 0, translateError(r.db, err)
	}
	return count, nil
}

// CountByCategory counts the products in a category
func (r *GormProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, translateError(r.db, err)
	}
	return count, nil
}

// Save creates or updates the product and inserts any missing complement links.
// Existing links are never removed.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.ProductModelFromDomain(product)).Error; err != nil {
			return translateError(tx, err)
		}
		if len(product.ComplementIDs) == 0 {
			return nil
		}
		links := make([]models.ProductComplementModel, len(product.ComplementIDs))
		for i, complementID := range product.ComplementIDs {
			links[i] = models.ProductComplementModel{ProductID: product.ID, ComplementID: complementID}
		}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
		return translateError(tx, err)
	})
}

// Delete deletes a product and its complement links
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductComplementModel{}, "product_id = ?", id).Error; err != nil {
			return translateError(tx, err)
		}
		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return translateError(tx, result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormProductRepository) find(ctx context.Context, query *gorm.DB) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	if len(rows) == 0 {
		return []catalog.Product{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	links, err := r.complementLinks(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain(links[rows[i].ID])
	}
	return products, nil
}

func (r *GormProductRepository) complementLinks(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	var links []models.ProductComplementModel
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("complement_id").
		Find(&links).Error
	if err != nil {
		return nil, translateError(r.db, err)
	}
	result := make(map[uuid.UUID][]uuid.UUID, len(productIDs))
	for _, link := range links {
		result[link.ProductID] = append(result[link.ProductID], link.ComplementID)
	}
	return result, nil
}

func (r *GormProductRepository) ownerQuery(ctx context.Context, ownerID string, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Joins("JOIN companies ON companies.id = products.company_id").
		Where("companies.owner_id = ?", ownerID)
	return r.filtered(query, filter)
}

func (r *GormProductRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "products.name", "products.description")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("products.status = ?", value)
		case "category_id":
			if value == nil {
				query = query.Where("products.category_id IS NULL")
			} else {
				query = query.Where("products.category_id = ?", value)
			}
		case "company_id":
			query = query.Where("products.company_id = ?", value)
		}
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
