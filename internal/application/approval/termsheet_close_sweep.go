package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	appnotification "github.com/erp/feeengine/internal/application/notification"
	"github.com/erp/feeengine/internal/domain/approval"
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditActionCloseSweep is recorded once per sweep run
const AuditActionCloseSweep = "termsheet_close.sweep"

// Skip reasons reported by the sweep
const (
	SkipReasonNotMatured       = "not_matured"
	SkipReasonDealNotEligible  = "deal_status_not_eligible"
	SkipReasonApprovalExists   = "approval_exists"
	SkipReasonDealNotFound     = "deal_not_found"
	SkipReasonSignerUnresolved = "no_signer"
)

// Dispatcher sends a message to audience groups
type Dispatcher interface {
	Dispatch(ctx context.Context, tenantID uuid.UUID, msg appnotification.Message, groups ...appnotification.Group) appnotification.DispatchResult
}

// SweepSkip explains why a matured termsheet did not get an approval
type SweepSkip struct {
	TermsheetID uuid.UUID  `json:"termsheet_id"`
	Reason      string     `json:"reason"`
	ApprovalID  *uuid.UUID `json:"approval_id,omitempty"`
}

// SweepFailure records a termsheet the sweep could not process
type SweepFailure struct {
	TermsheetID uuid.UUID `json:"termsheet_id"`
	Error       string    `json:"error"`
}

// SweepResult summarizes one sweep run
type SweepResult struct {
	RunAt     time.Time      `json:"run_at"`
	Scanned   int            `json:"scanned"`
	Created   int            `json:"created"`
	Approvals []uuid.UUID    `json:"approvals"`
	Skipped   []SweepSkip    `json:"skipped"`
	Failed    []SweepFailure `json:"failed"`
}

// TermsheetCloseSweepConfig holds the dependencies of TermsheetCloseSweep
type TermsheetCloseSweepConfig struct {
	TermsheetRepo  deal.TermsheetRepository
	DealRepo       deal.Repository
	ApprovalRepo   approval.Repository
	SnapshotReader approval.SnapshotReader
	Directory      directory.Repository
	Dispatcher     Dispatcher
	EventPublisher shared.EventPublisher
	AuditSink      shared.AuditSink
	Logger         *zap.Logger
	Now            func() time.Time
}

// TermsheetCloseSweep raises one pending close approval per matured termsheet.
// It never performs the close itself; that follows the signer's decision.
type TermsheetCloseSweep struct {
	termsheetRepo  deal.TermsheetRepository
	dealRepo       deal.Repository
	approvalRepo   approval.Repository
	snapshotReader approval.SnapshotReader
	directory      directory.Repository
	dispatcher     Dispatcher
	eventPublisher shared.EventPublisher
	auditSink      shared.AuditSink
	logger         *zap.Logger
	now            func() time.Time
}

// NewTermsheetCloseSweep creates a new TermsheetCloseSweep
func NewTermsheetCloseSweep(cfg TermsheetCloseSweepConfig) *TermsheetCloseSweep {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = shared.Now
	}
	return &TermsheetCloseSweep{
		termsheetRepo:  cfg.TermsheetRepo,
		dealRepo:       cfg.DealRepo,
		approvalRepo:   cfg.ApprovalRepo,
		snapshotReader: cfg.SnapshotReader,
		directory:      cfg.Directory,
		dispatcher:     cfg.Dispatcher,
		eventPublisher: cfg.EventPublisher,
		auditSink:      cfg.AuditSink,
		logger:         logger,
		now:            now,
	}
}

// Run sweeps the actor's tenant. Running it again over unchanged data creates nothing.
func (s *TermsheetCloseSweep) Run(ctx context.Context, actor shared.Actor) (*SweepResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "termsheet_close", "sweep", telemetry.SpanAttrTenantID, actor.TenantID)
	defer span.End()

	result, err := s.run(ctx, actor)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		"scanned", result.Scanned,
		"created", result.Created,
		"failed", len(result.Failed),
	)
	return result, nil
}

func (s *TermsheetCloseSweep) run(ctx context.Context, actor shared.Actor) (*SweepResult, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	result := &SweepResult{
		RunAt:     now,
		Approvals: []uuid.UUID{},
		Skipped:   []SweepSkip{},
		Failed:    []SweepFailure{},
	}

	termsheets, err := s.termsheetRepo.FindMatured(ctx, actor.TenantID, now)
	if err != nil {
		s.logger.Error("failed to find matured termsheets", zap.Error(err))
		return nil, err
	}
	result.Scanned = len(termsheets)

	signer := &signerResolver{repo: s.directory, tenantID: actor.TenantID}
	for i := range termsheets {
		ts := &termsheets[i]
		skip, err := s.process(ctx, actor, ts, signer, now, result)
		switch {
		case err != nil:
			s.logger.Error("termsheet close sweep failed",
				zap.String("termsheet_id", ts.ID.String()),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, SweepFailure{TermsheetID: ts.ID, Error: err.Error()})
		case skip != nil:
			s.logger.Info("termsheet close skipped",
				zap.String("termsheet_id", ts.ID.String()),
				zap.String("reason", skip.Reason),
			)
			result.Skipped = append(result.Skipped, *skip)
		}
	}

	s.logger.Info("termsheet close sweep completed",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.Int("scanned", result.Scanned),
		zap.Int("created", result.Created),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)),
	)
	s.audit(ctx, actor, result)
	return result, nil
}

func (s *TermsheetCloseSweep) process(ctx context.Context, actor shared.Actor, ts *deal.Termsheet, signer *signerResolver, now time.Time, result *SweepResult) (*SweepSkip, error) {
	if !ts.IsMatured(now) {
		return &SweepSkip{TermsheetID: ts.ID, Reason: SkipReasonNotMatured}, nil
	}

	d, err := s.dealRepo.FindByIDForTenant(ctx, actor.TenantID, ts.DealID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &SweepSkip{TermsheetID: ts.ID, Reason: SkipReasonDealNotFound}, nil
		}
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}
	if !d.Status.IsCloseEligible() {
		return &SweepSkip{TermsheetID: ts.ID, Reason: SkipReasonDealNotEligible}, nil
	}

	existing, err := s.approvalRepo.FindForEntity(ctx, actor.TenantID, approval.EntityTermsheetClose, ts.ID,
		[]approval.Status{approval.StatusPending, approval.StatusApproved, approval.StatusRejected})
	if err == nil && existing != nil {
		id := existing.ID
		return &SweepSkip{TermsheetID: ts.ID, Reason: SkipReasonApprovalExists, ApprovalID: &id}, nil
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing approvals: %w", err)
	}

	snapshot, err := s.snapshot(ctx, actor.TenantID, ts, now)
	if err != nil {
		return nil, err
	}

	profile, err := signer.resolve(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &SweepSkip{TermsheetID: ts.ID, Reason: SkipReasonSignerUnresolved}, nil
		}
		return nil, fmt.Errorf("failed to resolve signer: %w", err)
	}

	a, err := approval.NewTermsheetCloseApproval(actor, profile.UserID, *snapshot)
	if err != nil {
		return nil, err
	}
	if err := s.approvalRepo.Create(ctx, a); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost a race with a concurrent sweep
			return &SweepSkip{TermsheetID: ts.ID, Reason: SkipReasonApprovalExists}, nil
		}
		return nil, fmt.Errorf("failed to create approval: %w", err)
	}

	result.Created++
	result.Approvals = append(result.Approvals, a.ID)
	s.publish(ctx, a)
	s.notifySigner(ctx, a, ts, d)
	return nil, nil
}

func (s *TermsheetCloseSweep) snapshot(ctx context.Context, tenantID uuid.UUID, ts *deal.Termsheet, now time.Time) (*approval.CloseSnapshot, error) {
	count, total, err := s.snapshotReader.FundedSubscriptions(ctx, tenantID, ts.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read funded subscriptions: %w", err)
	}
	byStatus, byCounterparty, err := s.snapshotReader.FeePlanCounts(ctx, tenantID, ts.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read fee plan counts: %w", err)
	}
	if byStatus == nil {
		byStatus = map[string]int64{}
	}
	if byCounterparty == nil {
		byCounterparty = map[string]int64{}
	}
	return &approval.CloseSnapshot{
		TermsheetID:            ts.ID,
		DealID:                 ts.DealID,
		TermsVersion:           ts.TermsVersion,
		CompletionDate:         ts.CompletionDate,
		FundedCount:            count,
		FundedTotal:            total,
		FeePlansByStatus:       byStatus,
		FeePlansByCounterparty: byCounterparty,
		ComputedAt:             now,
	}, nil
}

func (s *TermsheetCloseSweep) notifySigner(ctx context.Context, a *approval.Approval, ts *deal.Termsheet, d *deal.Deal) {
	if s.dispatcher == nil {
		return
	}
	msg := appnotification.Message{
		Subject: fmt.Sprintf("Termsheet ready to close: %s", d.Name),
		Body: fmt.Sprintf("Termsheet %q (v%d) reached its completion date. %d funded subscriptions totalling %s await your close decision.",
			ts.Title, ts.TermsVersion, a.Snapshot.FundedCount, a.Snapshot.FundedTotal.StringFixed(2)),
		EntityType: "approval",
		EntityID:   a.ID,
	}
	s.dispatcher.Dispatch(ctx, a.TenantID, msg, appnotification.Group{
		Audience:   notification.AudienceSigner,
		Recipients: []uuid.UUID{a.AssignedTo},
	})
}

func (s *TermsheetCloseSweep) publish(ctx context.Context, a *approval.Approval) {
	events := a.GetDomainEvents()
	a.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish approval events",
			zap.String("approval_id", a.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *TermsheetCloseSweep) audit(ctx context.Context, actor shared.Actor, result *SweepResult) {
	if s.auditSink == nil {
		return
	}
	entry := shared.NewAuditEntry(actor, AuditActionCloseSweep, "termsheet", "sweep", map[string]any{
		"scanned": result.Scanned,
		"created": result.Created,
		"skipped": len(result.Skipped),
		"failed":  len(result.Failed),
		"run_at":  result.RunAt.Format(time.RFC3339),
	})
	if err := s.auditSink.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record sweep audit entry", zap.Error(err))
	}
}

// signerResolver looks the signer up at most once per sweep
type signerResolver struct {
	repo     directory.Repository
	tenantID uuid.UUID
	profile  *directory.Profile
	err      error
	done     bool
}

func (r *signerResolver) resolve(ctx context.Context) (*directory.Profile, error) {
	if !r.done {
		r.profile, r.err = directory.ResolveSigner(ctx, r.repo, r.tenantID)
		r.done = true
	}
	return r.profile, r.err
}
