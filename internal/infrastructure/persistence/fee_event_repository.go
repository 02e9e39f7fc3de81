package persistence

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFeeEventRepository implements fee.FeeEventRepository using GORM
type GormFeeEventRepository struct {
	db *gorm.DB
}

// NewGormFeeEventRepository creates a new GormFeeEventRepository
func NewGormFeeEventRepository(db *gorm.DB) *GormFeeEventRepository {
	return &GormFeeEventRepository{db: db}
}

// FindByIDForTenant finds a fee event by ID
func (r *GormFeeEventRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fee.FeeEvent, error) {
	var model models.FeeEventModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs loads the given fee events; missing IDs are simply absent from the result
func (r *GormFeeEventRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]fee.FeeEvent, error) {
	if len(ids) == 0 {
		return []fee.FeeEvent{}, nil
	}

	var rows []models.FeeEventModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("event_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return feeEventsToDomain(rows), nil
}

// FindAllForTenant lists fee events matching the filter
func (r *GormFeeEventRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter fee.FeeEventFilter) ([]fee.FeeEvent, error) {
	var rows []models.FeeEventModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FeeEventModel{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPage(query, filter.Filter, feeEventSort)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return feeEventsToDomain(rows), nil
}

// CountForTenant counts fee events matching the filter
func (r *GormFeeEventRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter fee.FeeEventFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FeeEventModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForComponent reports whether a fee event exists for the (allocation, component) pair
func (r *GormFeeEventRepository) ExistsForComponent(ctx context.Context, tenantID, allocationID, componentID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FeeEventModel{}).
		Where("tenant_id = ? AND allocation_id = ? AND fee_component_id = ?", tenantID, allocationID, componentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAccrued stamps the plan's locked_at, checks the referenced components are still
// part of the plan and inserts the events, all in one transaction. Conflicting
// (allocation, component) pairs are skipped.
func (r *GormFeeEventRepository) CreateAccrued(ctx context.Context, plan *fee.FeePlan, events []*fee.FeeEvent, at time.Time) ([]*fee.FeeEvent, error) {
	if len(events) == 0 {
		return []*fee.FeeEvent{}, nil
	}

	inserted := make([]*fee.FeeEvent, 0, len(events))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPlan(tx, plan.TenantID, plan.ID, at); err != nil {
			return err
		}
		if err := requireComponents(tx, plan.ID, events); err != nil {
			return err
		}
		for _, event := range events {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(models.FeeEventModelFromDomain(event))
			if result.Error != nil {
				return translateError(result.Error)
			}
			if result.RowsAffected > 0 {
				inserted = append(inserted, event)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// lockPlan stamps locked_at once and bumps the version so stale copies of the plan fail
// their optimistic check. The update also holds the plan row for the rest of the transaction.
func lockPlan(tx *gorm.DB, tenantID, planID uuid.UUID, at time.Time) error {
	return tx.Model(&models.FeePlanModel{}).
		Where("tenant_id = ? AND id = ? AND locked_at IS NULL", tenantID, planID).
		Updates(map[string]any{
			"locked_at":  at,
			"version":    gorm.Expr("version + 1"),
			"updated_at": at,
		}).Error
}

func requireComponents(tx *gorm.DB, planID uuid.UUID, events []*fee.FeeEvent) error {
	ids := make([]uuid.UUID, 0, len(events))
	seen := make(map[uuid.UUID]struct{}, len(events))
	for _, e := range events {
		if _, ok := seen[e.FeeComponentID]; ok {
			continue
		}
		seen[e.FeeComponentID] = struct{}{}
		ids = append(ids, e.FeeComponentID)
	}

	var count int64
	if err := tx.Model(&models.FeeComponentModel{}).
		Where("fee_plan_id = ? AND id IN ?", planID, ids).
		Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return shared.ErrConcurrencyConflict.WithMessage("Fee plan components changed while fee events were generated")
	}
	return nil
}

// MarkInvoiced moves accrued events to invoiced, all or nothing
func (r *GormFeeEventRepository) MarkInvoiced(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, invoiceID uuid.UUID, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var matched int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.FeeEventModel{}).
			Where("tenant_id = ? AND id IN ? AND status = ?", tenantID, ids, fee.EventStatusAccrued).
			Updates(map[string]any{
				"status":      fee.EventStatusInvoiced,
				"invoice_id":  invoiceID,
				"invoiced_at": at,
				"version":     gorm.Expr("version + 1"),
				"updated_at":  at,
			})
		if result.Error != nil {
			return result.Error
		}
		matched = result.RowsAffected
		if matched != int64(len(ids)) {
			return shared.ErrConcurrencyConflict.WithMessage("Some fee events are no longer accrued")
		}
		return nil
	})
	return matched, err
}

func (r *GormFeeEventRepository) applyFilter(query *gorm.DB, filter fee.FeeEventFilter) *gorm.DB {
	if filter.AllocationID != nil {
		query = query.Where("allocation_id = ?", *filter.AllocationID)
	}
	if filter.InvestorID != nil {
		query = query.Where("investor_id = ?", *filter.InvestorID)
	}
	if filter.DealID != nil {
		query = query.Where("deal_id = ?", *filter.DealID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *filter.InvoiceID)
	}
	return query
}

func feeEventsToDomain(rows []models.FeeEventModel) []fee.FeeEvent {
	events := make([]fee.FeeEvent, len(rows))
	for i := range rows {
		events[i] = *rows[i].ToDomain()
	}
	return events
}

var _ fee.FeeEventRepository = (*GormFeeEventRepository)(nil)
