package persistence

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDealRepository implements deal.Repository using GORM
type GormDealRepository struct {
	db *gorm.DB
}

// NewGormDealRepository creates a new GormDealRepository
func NewGormDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// FindByIDForTenant finds a deal by ID
func (r *GormDealRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*deal.Deal, error) {
	var model models.DealModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs loads several deals at once
func (r *GormDealRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]deal.Deal, error) {
	if len(ids) == 0 {
		return []deal.Deal{}, nil
	}
	var rows []models.DealModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	deals := make([]deal.Deal, len(rows))
	for i := range rows {
		deals[i] = *rows[i].ToDomain()
	}
	return deals, nil
}

// Save creates or updates a deal
func (r *GormDealRepository) Save(ctx context.Context, d *deal.Deal) error {
	return upsertByID(r.db.WithContext(ctx), models.DealModelFromDomain(d))
}

// GormTermsheetRepository implements deal.TermsheetRepository using GORM
type GormTermsheetRepository struct {
	db *gorm.DB
}

// NewGormTermsheetRepository creates a new GormTermsheetRepository
func NewGormTermsheetRepository(db *gorm.DB) *GormTermsheetRepository {
	return &GormTermsheetRepository{db: db}
}

// FindByIDForTenant finds a termsheet by ID
func (r *GormTermsheetRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*deal.Termsheet, error) {
	var model models.TermsheetModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindMatured lists published termsheets whose completion date has passed and
// that the close sweep has not handled yet
func (r *GormTermsheetRepository) FindMatured(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]deal.Termsheet, error) {
	var rows []models.TermsheetModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, deal.TermsheetStatusPublished).
		Where("completion_date IS NOT NULL AND completion_date <= ? AND closed_processed_at IS NULL", now).
		Order("completion_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	termsheets := make([]deal.Termsheet, len(rows))
	for i := range rows {
		termsheets[i] = *rows[i].ToDomain()
	}
	return termsheets, nil
}

// Save creates or updates a termsheet
func (r *GormTermsheetRepository) Save(ctx context.Context, t *deal.Termsheet) error {
	return upsertByID(r.db.WithContext(ctx), models.TermsheetModelFromDomain(t))
}

// GormAssignmentRepository implements deal.AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// IsAssigned reports whether the user holds the role on the deal
func (r *GormAssignmentRepository) IsAssigned(ctx context.Context, tenantID, dealID, userID uuid.UUID, role deal.AssignmentRole) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DealAssignmentModel{}).
		Where("tenant_id = ? AND deal_id = ? AND user_id = ? AND role = ?", tenantID, dealID, userID, role).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Assign records an assignment; repeating it is a no-op
func (r *GormAssignmentRepository) Assign(ctx context.Context, a deal.Assignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.DealAssignmentModel{
			TenantID:  a.TenantID,
			DealID:    a.DealID,
			UserID:    a.UserID,
			Role:      a.Role,
			CreatedAt: time.Now(),
		}).Error
}

func upsertByID(db *gorm.DB, model any) error {
	return translateError(db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(model).Error)
}

var (
	_ deal.Repository           = (*GormDealRepository)(nil)
	_ deal.TermsheetRepository  = (*GormTermsheetRepository)(nil)
	_ deal.AssignmentRepository = (*GormAssignmentRepository)(nil)
)
