package commission

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/shared"
	"go.uber.org/zap"
)

// Export formats
const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

// ExportArchiver stores rendered exports in object storage
type ExportArchiver interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// ReconciliationServiceConfig holds the dependencies of ReconciliationService
type ReconciliationServiceConfig struct {
	Repo     commission.Repository
	Archiver ExportArchiver
	// ArchiveURLTTL is how long the presigned archive link stays valid
	ArchiveURLTTL time.Duration
	Logger        *zap.Logger
	Now           func() time.Time
}

// ReconciliationService projects the commission ledger for reconciliation
type ReconciliationService struct {
	repo          commission.Repository
	archiver      ExportArchiver
	archiveURLTTL time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(cfg ReconciliationServiceConfig) *ReconciliationService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = shared.Now
	}
	ttl := cfg.ArchiveURLTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ReconciliationService{
		repo:          cfg.Repo,
		archiver:      cfg.Archiver,
		archiveURLTTL: ttl,
		logger:        logger,
		now:           now,
	}
}

// Report returns one page of rows with the summary of the entire filtered set
func (s *ReconciliationService) Report(ctx context.Context, actor shared.Actor, query ReconciliationQuery) (*ReconciliationReport, error) {
	filter, err := s.scopedFilter(actor, query)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Reconciliation(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, err
	}
	summary, err := s.repo.Summarize(ctx, actor.TenantID, filter.Unpaged())
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []commission.ReconciliationRow{}
	}
	return &ReconciliationReport{
		Rows:    rows,
		Summary: summary,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// Export renders the full filtered set, ignoring limit and offset
func (s *ReconciliationService) Export(ctx context.Context, actor shared.Actor, query ReconciliationQuery, archive bool) (*ReconciliationExport, error) {
	filter, err := s.scopedFilter(actor, query)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Reconciliation(ctx, actor.TenantID, filter.Unpaged())
	if err != nil {
		return nil, err
	}

	format := query.Format
	if format == "" {
		format = ExportFormatCSV
	}
	stamp := s.now().UTC().Format("20060102-150405")
	export := &ReconciliationExport{RowCount: len(rows)}
	switch format {
	case ExportFormatCSV:
		export.Body, err = RenderCSV(rows)
		export.ContentType = "text/csv; charset=utf-8"
		export.Filename = fmt.Sprintf("commission-reconciliation-%s.csv", stamp)
	case ExportFormatJSON:
		export.Body, err = RenderJSON(rows)
		export.ContentType = "application/json"
		export.Filename = fmt.Sprintf("commission-reconciliation-%s.json", stamp)
	default:
		return nil, shared.ErrInvalidInput.WithMessage("format must be csv or json")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render reconciliation export: %w", err)
	}

	if archive && s.archiver != nil {
		s.archive(ctx, actor, export)
	}

	s.logger.Info("reconciliation exported",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("format", format),
		zap.Int("rows", export.RowCount),
	)
	return export, nil
}

// archive is best-effort: the caller still receives the export if storage is down
func (s *ReconciliationService) archive(ctx context.Context, actor shared.Actor, export *ReconciliationExport) {
	key := fmt.Sprintf("exports/%s/commissions/%s", actor.TenantID, export.Filename)
	if err := s.archiver.Upload(ctx, key, export.Body, export.ContentType); err != nil {
		s.logger.Warn("failed to archive reconciliation export", zap.String("key", key), zap.Error(err))
		return
	}
	url, _, err := s.archiver.GenerateDownloadURL(ctx, key, s.archiveURLTTL)
	if err != nil {
		s.logger.Warn("failed to presign archived export", zap.String("key", key), zap.Error(err))
		return
	}
	export.ArchiveURL = url
}

// scopedFilter applies the caller's visibility: arranger users only see their own deals
func (s *ReconciliationService) scopedFilter(actor shared.Actor, query ReconciliationQuery) (commission.ReconciliationFilter, error) {
	filter := query.ToFilter()
	if filter.Status != nil && !filter.Status.IsValid() {
		return filter, shared.ErrInvalidInput.WithMessage("Unknown commission status: " + filter.Status.String())
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return filter, shared.ErrInvalidInput.WithMessage("to_date cannot be before from_date")
	}
	if actor.IsStaffAdmin() || actor.IsSystem() {
		return filter, nil
	}
	if actor.HasRole(shared.RoleArranger) && actor.OrganizationID != nil {
		filter.ArrangerID = actor.OrganizationID
		return filter, nil
	}
	return filter, shared.ErrForbidden.WithMessage("Reconciliation is limited to staff admins and arrangers")
}

// CSVHeader is the column order of reconciliation CSV exports
var CSVHeader = []string{
	"commission_id", "party_kind", "party_id", "party_name", "deal_id", "deal_name",
	"investor_id", "basis_type", "rate_bps", "base_amount", "accrual_amount", "currency",
	"status", "status_label", "accrued_at", "invoiced_at", "paid_at", "payment_reference",
}

// RenderCSV writes rows as RFC 4180 CSV (CRLF line endings) with a header line
func RenderCSV(rows []commission.ReconciliationRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(csvRecord(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvRecord(r commission.ReconciliationRow) []string {
	investorID := ""
	if r.InvestorID != nil {
		investorID = r.InvestorID.String()
	}
	rate := ""
	if r.RateBps != nil {
		rate = strconv.Itoa(*r.RateBps)
	}
	return []string{
		r.CommissionID.String(),
		r.PartyKind.String(),
		r.PartyID.String(),
		r.PartyName,
		r.DealID.String(),
		r.DealName,
		investorID,
		r.BasisType.String(),
		rate,
		r.BaseAmount.String(),
		r.AccrualAmount.String(),
		r.Currency,
		r.Status.String(),
		r.Status.Label(),
		formatTime(&r.AccruedAt),
		formatTime(r.InvoicedAt),
		formatTime(r.PaidAt),
		r.PaymentReference,
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// RenderJSON writes rows and their summary as a JSON document
func RenderJSON(rows []commission.ReconciliationRow) ([]byte, error) {
	if rows == nil {
		rows = []commission.ReconciliationRow{}
	}
	return json.Marshal(struct {
		Rows    []commission.ReconciliationRow    `json:"rows"`
		Summary *commission.ReconciliationSummary `json:"summary"`
	}{
		Rows:    rows,
		Summary: commission.SummarizeRows(rows),
	})
}
