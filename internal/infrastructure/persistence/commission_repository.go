package persistence

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const reconciliationColumns = `pc.id AS commission_id, pc.party_kind, pc.party_id,
COALESCE(p.name, '') AS party_name, pc.deal_id, COALESCE(d.name, '') AS deal_name,
pc.investor_id, pc.basis_type, pc.rate_bps, pc.base_amount, pc.accrual_amount, pc.currency,
pc.status, pc.accrued_at, pc.invoiced_at, pc.paid_at, pc.payment_reference`

// GormCommissionRepository implements commission.Repository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// FindByIDForTenant finds a commission by ID
func (r *GormCommissionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*commission.PartyCommission, error) {
	var model models.PartyCommissionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists commissions matching the filter
func (r *GormCommissionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter commission.Filter) ([]commission.PartyCommission, error) {
	var rows []models.PartyCommissionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PartyCommissionModel{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPage(query, filter.Filter, commissionSort)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	commissions := make([]commission.PartyCommission, len(rows))
	for i := range rows {
		commissions[i] = *rows[i].ToDomain()
	}
	return commissions, nil
}

// CountForTenant counts commissions matching the filter
func (r *GormCommissionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter commission.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PartyCommissionModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a commission. A second accrual for the same (agreement, source)
// returns shared.ErrAlreadyExists.
func (r *GormCommissionRepository) Create(ctx context.Context, c *commission.PartyCommission) error {
	return translateError(r.db.WithContext(ctx).Create(models.PartyCommissionModelFromDomain(c)).Error)
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormCommissionRepository) SaveWithLock(ctx context.Context, c *commission.PartyCommission) error {
	m := models.PartyCommissionModelFromDomain(c)
	return updateWithVersion(r.db.WithContext(ctx), &models.PartyCommissionModel{}, c.TenantID, c.ID, c.Version, map[string]any{
		"status":               m.Status,
		"base_amount":          m.BaseAmount,
		"accrual_amount":       m.AccrualAmount,
		"invoice_requested_at": m.InvoiceRequestedAt,
		"invoiced_at":          m.InvoicedAt,
		"invoice_reference":    m.InvoiceReference,
		"paid_at":              m.PaidAt,
		"payment_reference":    m.PaymentReference,
		"paid_by":              m.PaidBy,
		"cancelled_at":         m.CancelledAt,
		"rejected_at":          m.RejectedAt,
		"status_reason":        m.StatusReason,
		"notes":                m.Notes,
		"updated_at":           m.UpdatedAt,
	})
}

type reconciliationRecord struct {
	CommissionID     uuid.UUID
	PartyKind        commission.PartyKind
	PartyID          uuid.UUID
	PartyName        string
	DealID           uuid.UUID
	DealName         string
	InvestorID       *uuid.UUID
	BasisType        commission.BasisType
	RateBps          *int
	BaseAmount       decimal.Decimal
	AccrualAmount    decimal.Decimal
	Currency         string
	Status           commission.Status
	AccruedAt        time.Time
	InvoicedAt       *time.Time
	PaidAt           *time.Time
	PaymentReference string
}

// Reconciliation returns commissions joined with party and deal names, oldest accrual first
func (r *GormCommissionRepository) Reconciliation(ctx context.Context, tenantID uuid.UUID, filter commission.ReconciliationFilter) ([]commission.ReconciliationRow, error) {
	query := r.reconciliationScope(r.db.WithContext(ctx), tenantID, filter).
		Select(reconciliationColumns).
		Order("pc.accrued_at ASC, pc.id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var records []reconciliationRecord
	if err := query.Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]commission.ReconciliationRow, len(records))
	for i, rec := range records {
		rows[i] = commission.ReconciliationRow(rec)
	}
	return rows, nil
}

// Summarize totals the whole filtered set per status
func (r *GormCommissionRepository) Summarize(ctx context.Context, tenantID uuid.UUID, filter commission.ReconciliationFilter) (*commission.ReconciliationSummary, error) {
	var totals []struct {
		Status commission.Status
		Count  int64
		Amount decimal.Decimal
	}
	if err := r.reconciliationScope(r.db.WithContext(ctx), tenantID, filter.Unpaged()).
		Select("pc.status AS status, COUNT(*) AS count, COALESCE(SUM(pc.accrual_amount), 0) AS amount").
		Group("pc.status").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	byStatus := make(map[commission.Status]commission.StatusTotal, len(totals))
	for _, t := range totals {
		byStatus[t.Status] = commission.StatusTotal{Count: t.Count, Amount: t.Amount}
	}
	return commission.NewReconciliationSummary(byStatus), nil
}

func (r *GormCommissionRepository) reconciliationScope(db *gorm.DB, tenantID uuid.UUID, filter commission.ReconciliationFilter) *gorm.DB {
	query := db.Table("party_commissions AS pc").
		Joins("LEFT JOIN parties AS p ON p.id = pc.party_id AND p.tenant_id = pc.tenant_id").
		Joins("LEFT JOIN deals AS d ON d.id = pc.deal_id AND d.tenant_id = pc.tenant_id").
		Where("pc.tenant_id = ?", tenantID)

	if filter.FromDate != nil {
		query = query.Where("pc.accrued_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("pc.accrued_at <= ?", *filter.ToDate)
	}
	if filter.PartyKind != nil {
		query = query.Where("pc.party_kind = ?", *filter.PartyKind)
	}
	if filter.PartyID != nil {
		query = query.Where("pc.party_id = ?", *filter.PartyID)
	}
	if filter.DealID != nil {
		query = query.Where("pc.deal_id = ?", *filter.DealID)
	}
	if filter.Status != nil {
		query = query.Where("pc.status = ?", *filter.Status)
	}
	if filter.ArrangerID != nil {
		query = query.Where("(pc.arranger_id = ? OR d.arranger_id = ?)", *filter.ArrangerID, *filter.ArrangerID)
	}
	return query
}

func (r *GormCommissionRepository) applyFilter(query *gorm.DB, filter commission.Filter) *gorm.DB {
	if filter.PartyKind != nil {
		query = query.Where("party_kind = ?", *filter.PartyKind)
	}
	if filter.PartyID != nil {
		query = query.Where("party_id = ?", *filter.PartyID)
	}
	if filter.DealID != nil {
		query = query.Where("deal_id = ?", *filter.DealID)
	}
	if filter.ArrangerID != nil {
		query = query.Where("arranger_id = ?", *filter.ArrangerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// GormAgreementRepository implements commission.AgreementRepository using GORM
type GormAgreementRepository struct {
	db *gorm.DB
}

// NewGormAgreementRepository creates a new GormAgreementRepository
func NewGormAgreementRepository(db *gorm.DB) *GormAgreementRepository {
	return &GormAgreementRepository{db: db}
}

// FindByIDForTenant finds an agreement by ID
func (r *GormAgreementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*commission.Agreement, error) {
	var model models.CommissionAgreementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindActiveForDeal lists agreements of the deal in force at the given time
func (r *GormAgreementRepository) FindActiveForDeal(ctx context.Context, tenantID, dealID uuid.UUID, at time.Time) ([]commission.Agreement, error) {
	var rows []models.CommissionAgreementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND deal_id = ? AND active = ?", tenantID, dealID, true).
		Where("effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", at, at).
		Order("effective_from ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return agreementsToDomain(rows), nil
}

// FindAllForDeal lists every agreement of the deal
func (r *GormAgreementRepository) FindAllForDeal(ctx context.Context, tenantID, dealID uuid.UUID) ([]commission.Agreement, error) {
	var rows []models.CommissionAgreementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND deal_id = ?", tenantID, dealID).
		Order("effective_from ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return agreementsToDomain(rows), nil
}

// Save creates or updates an agreement
func (r *GormAgreementRepository) Save(ctx context.Context, a *commission.Agreement) error {
	return translateError(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(models.CommissionAgreementModelFromDomain(a)).Error)
}

func agreementsToDomain(rows []models.CommissionAgreementModel) []commission.Agreement {
	agreements := make([]commission.Agreement, len(rows))
	for i := range rows {
		agreements[i] = *rows[i].ToDomain()
	}
	return agreements
}

var (
	_ commission.Repository          = (*GormCommissionRepository)(nil)
	_ commission.AgreementRepository = (*GormAgreementRepository)(nil)
)
