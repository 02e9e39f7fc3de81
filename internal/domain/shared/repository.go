package shared

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter carries the paging, ordering and free-text options shared by list operations
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter returns the first page, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// PageFilter returns DefaultFilter with the requested page applied.
// Non-positive values keep the defaults and page sizes are capped at MaxPageSize.
func PageFilter(page, pageSize int) Filter {
	f := DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = min(pageSize, MaxPageSize)
	}
	return f
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	if f.Page < 1 || f.PageSize < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
