package persistence

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nextSequenceSQL bumps the yearly counter and returns the new value in one statement.
// The ON CONFLICT ... RETURNING form runs on PostgreSQL and SQLite 3.35+.
const nextSequenceSQL = `INSERT INTO invoice_sequences (tenant_id, year, last_value, updated_at)
VALUES (?, ?, 1, ?)
ON CONFLICT (tenant_id, year) DO UPDATE
SET last_value = invoice_sequences.last_value + 1, updated_at = excluded.updated_at
RETURNING last_value`

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC") })
}

// FindByIDForTenant finds an invoice with lines and payments
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByID finds an invoice without tenant scoping
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists invoices matching the filter. Payments are loaded so the
// balance due can be derived; lines are not.
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var rows []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPage(query, filter.Filter, invoiceSort)

	if err := query.Preload("Payments").Find(&rows).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices, nil
}

// CountForTenant counts invoices matching the filter
func (r *GormInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSequence atomically allocates the next invoice sequence for the tenant and year
func (r *GormInvoiceRepository) NextSequence(ctx context.Context, tenantID uuid.UUID, year int) (int, error) {
	var next int
	if err := r.db.WithContext(ctx).Raw(nextSequenceSQL, tenantID, year, time.Now()).Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// Create inserts the invoice header
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return translateError(r.db.WithContext(ctx).Omit("Lines", "Payments").Create(model).Error)
}

// CreateLines inserts all lines of the invoice in one transaction
func (r *GormInvoiceRepository) CreateLines(ctx context.Context, invoice *billing.Invoice) error {
	if len(invoice.Lines) == 0 {
		return nil
	}
	lines := make([]models.InvoiceLineModel, len(invoice.Lines))
	for i := range invoice.Lines {
		lines[i] = models.InvoiceLineModelFromDomain(&invoice.Lines[i])
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&lines).Error
	})
}

// Delete removes an invoice and any lines
func (r *GormInvoiceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}
		return tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.InvoiceModel{}).Error
	})
}

// SaveCancelled saves the cancelled header and returns its fee events to accrued in one transaction
func (r *GormInvoiceRepository) SaveCancelled(ctx context.Context, invoice *billing.Invoice) (int64, error) {
	var released int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateWithVersion(tx, &models.InvoiceModel{}, invoice.TenantID, invoice.ID, invoice.Version, headerColumns(invoice)); err != nil {
			return err
		}
		result := tx.Model(&models.FeeEventModel{}).
			Where("tenant_id = ? AND invoice_id = ? AND status = ?", invoice.TenantID, invoice.ID, fee.EventStatusInvoiced).
			Updates(map[string]any{
				"status":      fee.EventStatusAccrued,
				"invoice_id":  nil,
				"invoiced_at": nil,
				"version":     gorm.Expr("version + 1"),
				"updated_at":  invoice.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		released = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// SaveGeneration persists the document generation fields only if the stored
// generation status still equals expected
func (r *GormInvoiceRepository) SaveGeneration(ctx context.Context, invoice *billing.Invoice, expected billing.GenerationStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ? AND generation_status = ?", invoice.ID, expected).
		Updates(map[string]any{
			"document_url":      invoice.DocumentURL,
			"generation_status": invoice.GenerationStatus,
			"generation_error":  invoice.GenerationError,
			"status":            invoice.Status,
			"sent_at":           invoice.SentAt,
			"version":           gorm.Expr("version + 1"),
			"updated_at":        invoice.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddPayment inserts a payment and saves the header with optimistic locking
func (r *GormInvoiceRepository) AddPayment(ctx context.Context, invoice *billing.Invoice, payment *billing.InvoicePayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateWithVersion(tx, &models.InvoiceModel{}, invoice.TenantID, invoice.ID, invoice.Version, headerColumns(invoice)); err != nil {
			return err
		}
		return translateError(tx.Create(models.InvoicePaymentModelFromDomain(payment)).Error)
	})
}

func headerColumns(invoice *billing.Invoice) map[string]any {
	return map[string]any{
		"status":       invoice.Status,
		"notes":        invoice.Notes,
		"due_date":     invoice.DueDate,
		"subtotal":     invoice.Subtotal,
		"total":        invoice.Total,
		"paid_at":      invoice.PaidAt,
		"cancelled_at": invoice.CancelledAt,
		"sent_at":      invoice.SentAt,
		"updated_at":   invoice.UpdatedAt,
	}
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	if filter.InvestorID != nil {
		query = query.Where("investor_id = ?", *filter.InvestorID)
	}
	if filter.DealID != nil {
		query = query.Where("deal_id = ?", *filter.DealID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("issue_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("issue_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		query = query.Where("invoice_number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
