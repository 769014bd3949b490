package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// itemOrder is the canonical item order: creation time, then id
const itemOrder = "created_at ASC, id ASC"

// GormComplementRepository implements ComplementRepository using GORM
type GormComplementRepository struct {
	db *gorm.DB
}

// NewGormComplementRepository creates a new GormComplementRepository
func NewGormComplementRepository(db *gorm.DB) *GormComplementRepository {
	return &GormComplementRepository{db: db}
}

// FindByID finds a complement with its items and attached product IDs
func (r *GormComplementRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Complement, error) {
	db := r.db.WithContext(ctx)

	var model models.ComplementModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(r.db, err)
	}

	var items []models.ComplementItemModel
	if err := db.Where("complement_id = ?", id).Order(itemOrder).Find(&items).Error; err != nil {
		return nil, translateError(r.db, err)
	}

	var productIDs []uuid.UUID
	if err := db.Model(&models.ProductComplementModel{}).
		Where("complement_id = ?", id).
		Order("product_id").
		Pluck("product_id", &productIDs).Error; err != nil {
		return nil, translateError(r.db, err)
	}

	return model.ToDomain(items, productIDs), nil
}

// FindAllForCompany finds the complements of a company with their items.
// Product links are not loaded.
func (r *GormComplementRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Complement, error) {
	db := r.db.WithContext(ctx)

	var rows []models.ComplementModel
	query := applyPage(r.companyQuery(ctx, companyID, filter), complementSort, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	if len(rows) == 0 {
		return []catalog.Complement{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	var items []models.ComplementItemModel
	if err := db.Where("complement_id IN ?", ids).Order(itemOrder).Find(&items).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	byComplement := make(map[uuid.UUID][]models.ComplementItemModel, len(rows))
	for _, item := range items {
		byComplement[item.ComplementID] = append(byComplement[item.ComplementID], item)
	}

	complements := make([]catalog.Complement, len(rows))
	for i := range rows {
		complements[i] = *rows[i].ToDomain(byComplement[rows[i].ID], nil)
	}
	return complements, nil
}

// CountForCompany counts complements of a company
func (r *GormComplementRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.companyQuery(ctx, companyID, filter).Count(&count).Error; err != nil {
		return 0, translateError(r.db, err)
	}
	return count, nil
}

// Create inserts the complement and the items it holds, in one transaction
func (r *GormComplementRepository) Create(ctx context.Context, complement *catalog.Complement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.ComplementModelFromDomain(complement)).Error; err != nil {
			return translateError(tx, err)
		}
		if len(complement.Items) == 0 {
			return nil
		}
		items := make([]*models.ComplementItemModel, len(complement.Items))
		for i := range complement.Items {
			items[i] = models.ComplementItemModelFromDomain(&complement.Items[i])
		}
		if err := tx.Create(&items).Error; err != nil {
			return translateError(tx, err)
		}
		return nil
	})
}

// complementColumns are the columns Save writes
var complementColumns = []string{"name", "required", "max_amount", "updated_at", "version"}

// Save updates the complement row only. Items it was loaded with are left
// as they are in the database.
func (r *GormComplementRepository) Save(ctx context.Context, complement *catalog.Complement) error {
	model := models.ComplementModelFromDomain(complement)
	result := r.db.WithContext(ctx).Model(model).Select(complementColumns).Updates(model)
	if result.Error != nil {
		return translateError(r.db, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a complement, its items and its product links
func (r *GormComplementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductComplementModel{}, "complement_id = ?", id).Error; err != nil {
			return translateError(tx, err)
		}
		if err := tx.Delete(&models.ComplementItemModel{}, "complement_id = ?", id).Error; err != nil {
			return translateError(tx, err)
		}
		result := tx.Delete(&models.ComplementModel{}, "id = ?", id)
		if result.Error != nil {
			return translateError(tx, result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormComplementRepository) companyQuery(ctx context.Context, companyID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ComplementModel{}).Where("company_id = ?", companyID)
	query = applySearch(query, filter.Search, "name")
	if required, ok := filter.Condition("required"); ok {
		query = query.Where("required = ?", required)
	}
	return query
}

// GormComplementItemRepository implements ComplementItemRepository using GORM
type GormComplementItemRepository struct {
	db *gorm.DB
}

// NewGormComplementItemRepository creates a new GormComplementItemRepository
func NewGormComplementItemRepository(db *gorm.DB) *GormComplementItemRepository {
	return &GormComplementItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormComplementItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ComplementItem, error) {
	var model models.ComplementItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	return model.ToDomain(), nil
}

// FindByComplement finds the items of a complement in creation order
func (r *GormComplementItemRepository) FindByComplement(ctx context.Context, complementID uuid.UUID) ([]catalog.ComplementItem, error) {
	var rows []models.ComplementItemModel
	if err := r.db.WithContext(ctx).Where("complement_id = ?", complementID).Order(itemOrder).Find(&rows).Error; err != nil {
		return nil, translateError(r.db, err)
	}
	items := make([]catalog.ComplementItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// CreateBatch inserts several items in a single statement
func (r *GormComplementItemRepository) CreateBatch(ctx context.Context, items []*catalog.ComplementItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]*models.ComplementItemModel, len(items))
	for i, item := range items {
		rows[i] = models.ComplementItemModelFromDomain(item)
	}
	return translateError(r.db, r.db.WithContext(ctx).Create(&rows).Error)
}

// Save updates an item's name and price. A deleted item stays deleted.
func (r *GormComplementItemRepository) Save(ctx context.Context, item *catalog.ComplementItem) error {
	model := models.ComplementItemModelFromDomain(item)
	result := r.db.WithContext(ctx).Model(model).Select("name", "price", "updated_at").Updates(model)
	if result.Error != nil {
		return translateError(r.db, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an item
func (r *GormComplementItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ComplementItemModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(r.db, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ catalog.ComplementRepository     = (*GormComplementRepository)(nil)
	_ catalog.ComplementItemRepository = (*GormComplementItemRepository)(nil)
)
