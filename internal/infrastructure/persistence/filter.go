package persistence

import (
	"slices"
	"strings"

	"github.com/menudash/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortSpec whitelists the columns a list endpoint may be ordered by. Any
// other OrderBy, including injected SQL, falls back to the default column.
type sortSpec struct {
	table    string
	columns  []string
	fallback string
}

var (
	companySort    = sortSpec{"companies", []string{"created_at", "updated_at", "name", "slug", "status"}, "created_at"}
	categorySort   = sortSpec{"product_categories", []string{"created_at", "updated_at", "name"}, "name"}
	complementSort = sortSpec{"complements", []string{"created_at", "updated_at", "name", "max_amount", "required"}, "created_at"}
	productSort    = sortSpec{"products", []string{"created_at", "updated_at", "name", "price", "status"}, "created_at"}
)

// column returns the whitelisted column for orderBy
func (s sortSpec) column(orderBy string) string {
	orderBy = strings.TrimSpace(orderBy)
	if slices.Contains(s.columns, orderBy) {
		return orderBy
	}
	return s.fallback
}

// descending defaults to true; only "asc" in any case sorts ascending
func descending(orderDir string) bool {
	return !strings.EqualFold(strings.TrimSpace(orderDir), "asc")
}

// orderBy returns the ORDER BY columns for filter. The id tie breaker keeps paging stable.
func (s sortSpec) orderBy(filter shared.Filter) []clause.OrderByColumn {
	desc := descending(filter.OrderDir)
	return []clause.OrderByColumn{
		{Column: clause.Column{Table: s.table, Name: s.column(filter.OrderBy)}, Desc: desc},
		{Column: clause.Column{Table: s.table, Name: "id"}, Desc: desc},
	}
}

// applySearch matches filter.Search case-insensitively against the given
// columns. LOWER/LIKE is used so the query also runs on SQLite.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return query.Where(strings.Join(conds, " OR "), args...)
}

// applyPage orders by the whitelisted column and applies pagination
func applyPage(query *gorm.DB, spec sortSpec, filter shared.Filter) *gorm.DB {
	for _, col := range spec.orderBy(filter) {
		query = query.Order(col)
	}
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
