package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	return model.ToDomain(), nil
}

// FindByName finds the first category with the given name in a company catalog
func (r *GormCategoryRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*catalog.Category, error) {
	var model models.CategoryModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ?", companyID, name).
		First(&model).Error
	if err != nil {
		return nil, translateError(r.db, err)
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all categories of a company
func (r *GormCategoryRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	query := r.companyQuery(ctx, companyID, filter)
	query = applyPage(query, categorySort, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(r.db, err)
	}

	categories := make([]catalog.Category, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories, nil
}

// CountForCompany counts categories of a company
func (r *GormCategoryRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.companyQuery(ctx, companyID, filter).Count(&count).Error; err != nil {
		return 0, translateError(r.db, err)
	}
	return count, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	model := models.CategoryModelFromDomain(category)
	return translateError(r.db, r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a category. Products in it keep existing without a category.
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductModel{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return translateError(tx, err)
		}
		result := tx.Delete(&models.CategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return translateError(tx, result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormCategoryRepository) companyQuery(ctx context.Context, companyID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Where("company_id = ?", companyID)
	return applySearch(query, filter.Search, "name")
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
