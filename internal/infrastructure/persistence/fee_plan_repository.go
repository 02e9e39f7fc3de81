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

// GormFeePlanRepository implements fee.FeePlanRepository using GORM
type GormFeePlanRepository struct {
	db *gorm.DB
}

// NewGormFeePlanRepository creates a new GormFeePlanRepository
func NewGormFeePlanRepository(db *gorm.DB) *GormFeePlanRepository {
	return &GormFeePlanRepository{db: db}
}

func preloadComponents(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

// FindByIDForTenant finds a plan with its components
func (r *GormFeePlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fee.FeePlan, error) {
	var model models.FeePlanModel
	if err := r.db.WithContext(ctx).
		Preload("Components", preloadComponents).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindDefaultForDeal finds the active default plan for a deal
func (r *GormFeePlanRepository) FindDefaultForDeal(ctx context.Context, tenantID, dealID uuid.UUID) (*fee.FeePlan, error) {
	var model models.FeePlanModel
	if err := r.db.WithContext(ctx).
		Preload("Components", preloadComponents).
		Where("tenant_id = ? AND deal_id = ? AND is_default = ? AND status = ?",
			tenantID, dealID, true, fee.PlanStatusActive).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists plans matching the filter
func (r *GormFeePlanRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter fee.FeePlanFilter) ([]fee.FeePlan, error) {
	var rows []models.FeePlanModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FeePlanModel{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPage(query, filter.Filter, feePlanSort)

	if err := query.Preload("Components", preloadComponents).Find(&rows).Error; err != nil {
		return nil, err
	}
	plans := make([]fee.FeePlan, len(rows))
	for i := range rows {
		plans[i] = *rows[i].ToDomain()
	}
	return plans, nil
}

// CountForTenant counts plans matching the filter
func (r *GormFeePlanRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter fee.FeePlanFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FeePlanModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a plan and replaces its components
func (r *GormFeePlanRepository) Save(ctx context.Context, plan *fee.FeePlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertPlan(tx, plan)
	})
}

// SaveAsDefault clears the deal's current default and saves the flagged plan in one transaction
func (r *GormFeePlanRepository) SaveAsDefault(ctx context.Context, plan *fee.FeePlan) error {
	if !plan.IsDefault {
		return shared.ErrInvalidState.WithMessage("Fee plan is not flagged as default")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefault(tx, plan.TenantID, plan.DealID, plan.ID, plan.UpdatedAt); err != nil {
			return err
		}
		return upsertPlan(tx, plan)
	})
}

func upsertPlan(tx *gorm.DB, plan *fee.FeePlan) error {
	model := models.FeePlanModelFromDomain(plan)
	if err := tx.Omit("Components").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(model).Error; err != nil {
		return translateError(err)
	}
	return replaceComponents(tx, plan.ID, model.Components)
}

func clearDefault(tx *gorm.DB, tenantID, dealID, keepID uuid.UUID, at time.Time) error {
	return tx.Model(&models.FeePlanModel{}).
		Where("tenant_id = ? AND deal_id = ? AND is_default = ? AND id <> ?", tenantID, dealID, true, keepID).
		Updates(map[string]any{
			"is_default": false,
			"version":    gorm.Expr("version + 1"),
			"updated_at": at,
		}).Error
}

// SaveWithLock saves with optimistic locking (version check). locked_at is only ever
// written by fee event generation, and a plan locked there keeps its components.
func (r *GormFeePlanRepository) SaveWithLock(ctx context.Context, plan *fee.FeePlan) error {
	model := models.FeePlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateWithVersion(tx, &models.FeePlanModel{}, plan.TenantID, plan.ID, plan.Version, map[string]any{
			"name":              model.Name,
			"status":            model.Status,
			"is_default":        model.IsDefault,
			"counterparty_type": model.CounterpartyType,
			"termsheet_id":      model.TermsheetID,
			"vehicle_id":        model.VehicleID,
			"updated_at":        model.UpdatedAt,
		}); err != nil {
			return err
		}
		if plan.IsLocked() {
			return nil
		}

		var locked int64
		if err := tx.Model(&models.FeePlanModel{}).
			Where("id = ? AND locked_at IS NOT NULL", plan.ID).
			Count(&locked).Error; err != nil {
			return err
		}
		if locked > 0 {
			return fee.ErrPlanLocked
		}
		return replaceComponents(tx, plan.ID, model.Components)
	})
}

func replaceComponents(tx *gorm.DB, planID uuid.UUID, components []models.FeeComponentModel) error {
	if err := tx.Where("fee_plan_id = ?", planID).Delete(&models.FeeComponentModel{}).Error; err != nil {
		return err
	}
	if len(components) == 0 {
		return nil
	}
	return tx.Create(&components).Error
}

// SetDefault clears the deal's current default and flags planID in one transaction, bumping both versions
func (r *GormFeePlanRepository) SetDefault(ctx context.Context, tenantID, dealID, planID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefault(tx, tenantID, dealID, planID, now); err != nil {
			return err
		}

		result := tx.Model(&models.FeePlanModel{}).
			Where("tenant_id = ? AND deal_id = ? AND id = ? AND status = ?", tenantID, dealID, planID, fee.PlanStatusActive).
			Updates(map[string]any{
				"is_default": true,
				"version":    gorm.Expr("version + 1"),
				"updated_at": now,
			})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return fee.ErrPlanNotActive
		}
		return nil
	})
}

func (r *GormFeePlanRepository) applyFilter(query *gorm.DB, filter fee.FeePlanFilter) *gorm.DB {
	if filter.DealID != nil {
		query = query.Where("deal_id = ?", *filter.DealID)
	}
	if filter.TermsheetID != nil {
		query = query.Where("termsheet_id = ?", *filter.TermsheetID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CounterpartyType != nil {
		query = query.Where("counterparty_type = ?", *filter.CounterpartyType)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ fee.FeePlanRepository = (*GormFeePlanRepository)(nil)
