package persistence

import (
	"context"

	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements subscription.Repository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByIDForTenant finds a subscription by ID
func (r *GormSubscriptionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByFingerprint finds the subscription holding a fingerprint
func (r *GormSubscriptionRepository) FindByFingerprint(ctx context.Context, tenantID uuid.UUID, fingerprint string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND fingerprint = ?", tenantID, fingerprint).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists subscriptions matching the filter
func (r *GormSubscriptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter subscription.Filter) ([]subscription.Subscription, error) {
	var rows []models.SubscriptionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPage(query, filter.Filter, subscriptionSort)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	subs := make([]subscription.Subscription, len(rows))
	for i := range rows {
		subs[i] = *rows[i].ToDomain()
	}
	return subs, nil
}

// CountForTenant counts subscriptions matching the filter
func (r *GormSubscriptionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter subscription.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new subscription. A fingerprint collision returns shared.ErrAlreadyExists.
func (r *GormSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	return translateError(r.db.WithContext(ctx).Create(models.SubscriptionModelFromDomain(s)).Error)
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormSubscriptionRepository) SaveWithLock(ctx context.Context, s *subscription.Subscription) error {
	m := models.SubscriptionModelFromDomain(s)
	return updateWithVersion(r.db.WithContext(ctx), &models.SubscriptionModel{}, s.TenantID, s.ID, s.Version, map[string]any{
		"termsheet_id":      m.TermsheetID,
		"fee_plan_id":       m.FeePlanID,
		"commitment_amount": m.CommitmentAmount,
		"funded_amount":     m.FundedAmount,
		"unit_count":        m.UnitCount,
		"effective_date":    m.EffectiveDate,
		"status":            m.Status,
		"fingerprint":       m.Fingerprint,
		"committed_at":      m.CommittedAt,
		"funded_at":         m.FundedAt,
		"cancelled_at":      m.CancelledAt,
		"updated_at":        m.UpdatedAt,
	})
}

func (r *GormSubscriptionRepository) applyFilter(query *gorm.DB, filter subscription.Filter) *gorm.DB {
	if filter.InvestorID != nil {
		query = query.Where("investor_id = ?", *filter.InvestorID)
	}
	if filter.DealID != nil {
		query = query.Where("deal_id = ?", *filter.DealID)
	}
	if filter.TermsheetID != nil {
		query = query.Where("termsheet_id = ?", *filter.TermsheetID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

var _ subscription.Repository = (*GormSubscriptionRepository)(nil)
