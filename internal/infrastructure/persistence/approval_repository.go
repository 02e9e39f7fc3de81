package persistence

import (
	"context"

	"github.com/erp/feeengine/internal/domain/approval"
	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormApprovalRepository implements approval.Repository using GORM
type GormApprovalRepository struct {
	db *gorm.DB
}

// NewGormApprovalRepository creates a new GormApprovalRepository
func NewGormApprovalRepository(db *gorm.DB) *GormApprovalRepository {
	return &GormApprovalRepository{db: db}
}

// FindByIDForTenant finds an approval by ID
func (r *GormApprovalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*approval.Approval, error) {
	var model models.ApprovalModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindForEntity returns the most recent approval for the entity in any of the statuses
func (r *GormApprovalRepository) FindForEntity(ctx context.Context, tenantID uuid.UUID, entityType approval.EntityType, entityID uuid.UUID, statuses []approval.Status) (*approval.Approval, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ?", tenantID, entityType, entityID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var model models.ApprovalModel
	if err := query.Order("created_at DESC").First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAllForTenant lists approvals matching the filter
func (r *GormApprovalRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter approval.Filter) ([]approval.Approval, error) {
	var rows []models.ApprovalModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ApprovalModel{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPage(query, filter.Filter, approvalSort)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	approvals := make([]approval.Approval, 0, len(rows))
	for i := range rows {
		a, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		approvals = append(approvals, *a)
	}
	return approvals, nil
}

// CountForTenant counts approvals matching the filter
func (r *GormApprovalRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter approval.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ApprovalModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts an approval. The pending-per-entity unique index turns a
// concurrent second request into shared.ErrAlreadyExists.
func (r *GormApprovalRepository) Create(ctx context.Context, a *approval.Approval) error {
	model, err := models.ApprovalModelFromDomain(a)
	if err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormApprovalRepository) SaveWithLock(ctx context.Context, a *approval.Approval) error {
	model, err := models.ApprovalModelFromDomain(a)
	if err != nil {
		return err
	}
	return updateWithVersion(r.db.WithContext(ctx), &models.ApprovalModel{}, a.TenantID, a.ID, a.Version, map[string]any{
		"status":        model.Status,
		"assigned_to":   model.AssignedTo,
		"snapshot":      model.Snapshot,
		"decided_by":    model.DecidedBy,
		"decided_at":    model.DecidedAt,
		"decision_note": model.DecisionNote,
		"updated_at":    model.UpdatedAt,
	})
}

func (r *GormApprovalRepository) applyFilter(query *gorm.DB, filter approval.Filter) *gorm.DB {
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	return query
}

// GormSnapshotReader implements approval.SnapshotReader with aggregate queries
type GormSnapshotReader struct {
	db *gorm.DB
}

// NewGormSnapshotReader creates a new GormSnapshotReader
func NewGormSnapshotReader(db *gorm.DB) *GormSnapshotReader {
	return &GormSnapshotReader{db: db}
}

// FundedSubscriptions returns the count and summed funded amount of funded subscriptions under the termsheet
func (r *GormSnapshotReader) FundedSubscriptions(ctx context.Context, tenantID, termsheetID uuid.UUID) (int64, decimal.Decimal, error) {
	var result struct {
		Count int64
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(funded_amount), 0) AS total").
		Where("tenant_id = ? AND termsheet_id = ? AND status = ?", tenantID, termsheetID, subscription.StatusFunded).
		Scan(&result).Error; err != nil {
		return 0, decimal.Zero, err
	}
	return result.Count, result.Total, nil
}

// FeePlanCounts groups the termsheet's fee plans by status and by counterparty type
func (r *GormSnapshotReader) FeePlanCounts(ctx context.Context, tenantID, termsheetID uuid.UUID) (map[string]int64, map[string]int64, error) {
	byStatus, err := r.countPlansBy(ctx, tenantID, termsheetID, "status")
	if err != nil {
		return nil, nil, err
	}
	byCounterparty, err := r.countPlansBy(ctx, tenantID, termsheetID, "counterparty_type")
	if err != nil {
		return nil, nil, err
	}
	return byStatus, byCounterparty, nil
}

// countPlansBy groups on a fixed column name; column is never user input
func (r *GormSnapshotReader) countPlansBy(ctx context.Context, tenantID, termsheetID uuid.UUID, column string) (map[string]int64, error) {
	var groups []struct {
		GroupKey string
		Count    int64
	}
	if err := r.db.WithContext(ctx).Model(&models.FeePlanModel{}).
		Select(column+" AS group_key, COUNT(*) AS count").
		Where("tenant_id = ? AND termsheet_id = ?", tenantID, termsheetID).
		Group(column).
		Scan(&groups).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(groups))
	for _, g := range groups {
		counts[g.GroupKey] = g.Count
	}
	return counts, nil
}

var (
	_ approval.Repository     = (*GormApprovalRepository)(nil)
	_ approval.SnapshotReader = (*GormSnapshotReader)(nil)
)
