package shared

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Filter is the list query handed to repositories. Filters carries
// column conditions keyed by column name; each repository decides which
// keys it understands.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter is the first page of 20, newest first.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: defaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]any{},
	}
}

// Where sets a column condition and returns the filter.
func (f Filter) Where(column string, value any) Filter {
	if f.Filters == nil {
		f.Filters = map[string]any{}
	}
	f.Filters[column] = value
	return f
}

// Condition reports the value set for column.
func (f Filter) Condition(column string) (any, bool) {
	v, ok := f.Filters[column]
	return v, ok
}

// Normalized clamps the page to 1.. and the page size to 1..100.
func (f Filter) Normalized() Filter {
	f.Page = max(f.Page, 1)
	switch {
	case f.PageSize <= 0:
		f.PageSize = defaultPageSize
	case f.PageSize > maxPageSize:
		f.PageSize = maxPageSize
	}
	return f
}

// Offset is the number of rows before the filter's page.
func (f Filter) Offset() int {
	if f.Page < 2 || f.PageSize < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
