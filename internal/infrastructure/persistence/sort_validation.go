package persistence

import (
	"strings"

	"github.com/erp/feeengine/internal/domain/shared"
	"gorm.io/gorm"
)

// sortColumns whitelists the columns a list endpoint may order by.
// Anything else, including injection attempts, falls back to the default column.
type sortColumns struct {
	fallback string
	allowed  map[string]struct{}
}

func newSortColumns(fallback string, columns ...string) sortColumns {
	allowed := make(map[string]struct{}, len(columns)+3)
	for _, c := range append(columns, "id", "created_at", "updated_at") {
		allowed[c] = struct{}{}
	}
	return sortColumns{fallback: fallback, allowed: allowed}
}

// orderBy renders the ORDER BY clause. id is appended as a tiebreaker so equal
// amounts or dates page deterministically.
func (s sortColumns) orderBy(filter shared.Filter) string {
	column := s.fallback
	if requested := strings.TrimSpace(filter.OrderBy); requested != "" {
		if _, ok := s.allowed[requested]; ok {
			column = requested
		}
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(filter.OrderDir), "asc") {
		dir = "ASC"
	}
	if column == "id" {
		return "id " + dir
	}
	return column + " " + dir + ", id " + dir
}

// applyPage orders and paginates a list query
func applyPage(query *gorm.DB, filter shared.Filter, sort sortColumns) *gorm.DB {
	query = query.Order(sort.orderBy(filter))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

var (
	feePlanSort      = newSortColumns("created_at", "name", "revision", "status")
	feeEventSort     = newSortColumns("event_date", "computed_amount", "status")
	subscriptionSort = newSortColumns("created_at", "effective_date", "commitment_amount", "status")
	invoiceSort      = newSortColumns("issue_date", "invoice_number", "due_date", "total", "status")
	commissionSort   = newSortColumns("accrued_at", "accrual_amount", "status", "paid_at")
	approvalSort     = newSortColumns("created_at", "status", "decided_at")
)
