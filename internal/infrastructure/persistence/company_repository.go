package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a company by its public slug
func (r *GormCompanyRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	return model.ToDomain(), nil
}

// FindAllByOwner finds the companies owned by an auth provider user
func (r *GormCompanyRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]catalog.Company, error) {
	var rows []models.CompanyModel
	query := r.ownerQuery(ctx, ownerID, filter)
	query = applyPage(query, companySort, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(r.db, err)
	}

	companies := make([]catalog.Company, len(rows))
	for i := range rows {
		companies[i] = *rows[i].ToDomain()
	}
	return companies, nil
}

// CountByOwner counts the companies owned by an auth provider user
func (r *GormCompanyRepository) CountByOwner(ctx context.Context, ownerID string, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.ownerQuery(ctx, ownerID, filter).Count(&count).Error; err != nil {
		return 0, translateError(r.db, err)
	}
	return count, nil
}

// ExistsBySlug checks whether a slug is taken
func (r *GormCompanyRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, translateError(r.db, err)
	}
	return count > 0, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *catalog.Company) error {
	model := models.CompanyModelFromDomain(company)
	return translateError(r.db, r.db.WithContext(ctx).Save(model).Error)
}

func (r *GormCompanyRepository) ownerQuery(ctx context.Context, ownerID string, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.CompanyModel{}).Where("owner_id = ?", ownerID)
	query = applySearch(query, filter.Search, "name", "slug")
	if status, ok := filter.Condition("status"); ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ catalog.CompanyRepository = (*GormCompanyRepository)(nil)
