package persistence

import (
	"testing"

	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSortSpec_Column(t *testing.T) {
	tests := map[string]string{
		"name":                       "name",
		" max_amount ":               "max_amount",
		"":                           "created_at",
		"company_id":                 "created_at",
		"name; DELETE FROM products": "created_at",
		"required":                   "required",
	}
	for in, want := range tests {
		assert.Equal(t, want, complementSort.column(in), in)
	}
	assert.Equal(t, "name", categorySort.column("position"))
}

func TestDescending(t *testing.T) {
	for in, want := range map[string]bool{
		"asc":                         false,
		" ASC ":                       false,
		"desc":                        true,
		"":                            true,
		"asc; DROP TABLE complements": true,
	} {
		assert.Equal(t, want, descending(in), in)
	}
}

func TestApplyPage(t *testing.T) {
	db := setupTestDB(t)

	filter := shared.DefaultFilter()
	filter.Page = 3
	filter.PageSize = 10
	filter.OrderBy = "price"
	filter.OrderDir = "asc"

	stmt := applyPage(db.Session(&gorm.Session{DryRun: true}).Model(&models.ProductModel{}), productSort, filter).
		Find(&[]models.ProductModel{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "ORDER BY `products`.`price`")
	assert.Contains(t, sql, "`products`.`id`")
	assert.NotContains(t, sql, "DESC")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
}
