package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	appnotification "github.com/erp/feeengine/internal/application/notification"
	"github.com/erp/feeengine/internal/domain/approval"
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var closeStatuses = []approval.Status{approval.StatusPending, approval.StatusApproved, approval.StatusRejected}

type sweepFixture struct {
	tenantID   uuid.UUID
	now        time.Time
	deal       *deal.Deal
	termsheets *MockTermsheetRepository
	deals      *MockDealRepository
	approvals  *MockApprovalRepository
	snapshots  *MockSnapshotReader
	directory  *MockDirectoryRepository
	dispatcher *MockDispatcher
	audit      *MockAuditSink
	sweep      *TermsheetCloseSweep
	ceo        directory.Profile
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()
	tenantID := uuid.New()
	d, err := deal.NewDeal(shared.Actor{TenantID: tenantID}, "Harbor Fund II", nil, "")
	require.NoError(t, err)
	require.NoError(t, d.SetStatus(deal.StatusOpen))

	f := &sweepFixture{
		tenantID:   tenantID,
		now:        time.Date(2025, 9, 30, 6, 0, 0, 0, time.UTC),
		deal:       d,
		termsheets: new(MockTermsheetRepository),
		deals:      new(MockDealRepository),
		approvals:  new(MockApprovalRepository),
		snapshots:  new(MockSnapshotReader),
		directory:  new(MockDirectoryRepository),
		dispatcher: new(MockDispatcher),
		audit:      new(MockAuditSink),
		ceo:        directory.Profile{UserID: uuid.New(), Roles: []string{shared.RoleCEO}},
	}
	f.sweep = NewTermsheetCloseSweep(TermsheetCloseSweepConfig{
		TermsheetRepo:  f.termsheets,
		DealRepo:       f.deals,
		ApprovalRepo:   f.approvals,
		SnapshotReader: f.snapshots,
		Directory:      f.directory,
		Dispatcher:     f.dispatcher,
		AuditSink:      f.audit,
		Now:            func() time.Time { return f.now },
	})
	f.audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(appnotification.DispatchResult{Sent: 1}).Maybe()
	return f
}

func (f *sweepFixture) maturedTermsheet(dealID uuid.UUID) deal.Termsheet {
	completion := f.now.AddDate(0, 0, -1)
	published := f.now.AddDate(0, -3, 0)
	return deal.Termsheet{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(f.tenantID),
		DealID:              dealID,
		TermsVersion:        2,
		Title:               "Harbor Fund II terms",
		Status:              deal.TermsheetStatusPublished,
		CompletionDate:      &completion,
		PublishedAt:         &published,
	}
}

func (f *sweepFixture) system() shared.Actor {
	return shared.SystemActor(f.tenantID)
}

func (f *sweepFixture) expectSnapshot(ctx context.Context, termsheetID uuid.UUID) {
	f.snapshots.On("FundedSubscriptions", ctx, f.tenantID, termsheetID).Return(int64(4), decimal.NewFromInt(1250000), nil)
	f.snapshots.On("FeePlanCounts", ctx, f.tenantID, termsheetID).
		Return(map[string]int64{"active": 2, "draft": 1}, map[string]int64{"investor": 2, "introducer": 1}, nil)
}

// One matured, eligible termsheet yields one pending approval; a second run the
// same day creates nothing and logs why.
func TestTermsheetCloseSweep_CreatesOnceAndIsReentrant(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	ts := f.maturedTermsheet(f.deal.ID)

	f.termsheets.On("FindMatured", ctx, f.tenantID, f.now).Return([]deal.Termsheet{ts}, nil)
	f.deals.On("FindByIDForTenant", ctx, f.tenantID, f.deal.ID).Return(f.deal, nil)
	f.approvals.On("FindForEntity", ctx, f.tenantID, approval.EntityTermsheetClose, ts.ID, closeStatuses).
		Return(nil, shared.ErrNotFound).Once()
	f.expectSnapshot(ctx, ts.ID)
	f.directory.On("FindByRole", ctx, f.tenantID, shared.RoleCEO).Return([]directory.Profile{f.ceo}, nil)
	f.approvals.On("Create", ctx, mock.AnythingOfType("*approval.Approval")).Return(nil).Once()

	first, err := f.sweep.Run(ctx, f.system())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Scanned)
	assert.Equal(t, 1, first.Created)
	require.Len(t, first.Approvals, 1)
	assert.Empty(t, first.Skipped)
	assert.Empty(t, first.Failed)

	created := f.approvals.Calls[len(f.approvals.Calls)-1].Arguments.Get(1).(*approval.Approval)
	assert.Equal(t, approval.StatusPending, created.Status)
	assert.Equal(t, f.ceo.UserID, created.AssignedTo)
	assert.Equal(t, ts.ID, created.EntityID)
	assert.Equal(t, int64(4), created.Snapshot.FundedCount)
	assert.Equal(t, "1250000", created.Snapshot.FundedTotal.String())
	assert.Equal(t, int64(2), created.Snapshot.FeePlansByStatus["active"])
	assert.Equal(t, int64(1), created.Snapshot.FeePlansByCounterparty["introducer"])
	assert.Equal(t, 2, created.Snapshot.TermsVersion)

	f.dispatcher.AssertCalled(t, "Dispatch", ctx, f.tenantID, mock.Anything, mock.MatchedBy(func(groups []appnotification.Group) bool {
		return len(groups) == 1 && groups[0].Audience == notification.AudienceSigner &&
			len(groups[0].Recipients) == 1 && groups[0].Recipients[0] == f.ceo.UserID
	}))

	f.approvals.On("FindForEntity", ctx, f.tenantID, approval.EntityTermsheetClose, ts.ID, closeStatuses).Return(created, nil)

	second, err := f.sweep.Run(ctx, f.system())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Scanned)
	assert.Equal(t, 0, second.Created)
	require.Len(t, second.Skipped, 1)
	assert.Equal(t, SkipReasonApprovalExists, second.Skipped[0].Reason)
	assert.Equal(t, created.ID, *second.Skipped[0].ApprovalID)
	f.approvals.AssertNumberOfCalls(t, "Create", 1)

	f.audit.AssertNumberOfCalls(t, "Record", 2)
	f.audit.AssertCalled(t, "Record", ctx, mock.MatchedBy(func(e shared.AuditEntry) bool {
		return e.Action == AuditActionCloseSweep && e.Metadata["created"] == 0 && e.Metadata["skipped"] == 1
	}))
}

func TestTermsheetCloseSweep_SkipsIneligibleDeals(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	draftDeal, err := deal.NewDeal(shared.Actor{TenantID: f.tenantID}, "Draft deal", nil, "")
	require.NoError(t, err)
	ts := f.maturedTermsheet(draftDeal.ID)

	f.termsheets.On("FindMatured", ctx, f.tenantID, f.now).Return([]deal.Termsheet{ts}, nil)
	f.deals.On("FindByIDForTenant", ctx, f.tenantID, draftDeal.ID).Return(draftDeal, nil)

	result, err := f.sweep.Run(ctx, f.system())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkipReasonDealNotEligible, result.Skipped[0].Reason)
	f.approvals.AssertNotCalled(t, "FindForEntity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTermsheetCloseSweep_ResolvedApprovalBlocksNewOne(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	ts := f.maturedTermsheet(f.deal.ID)
	rejected, err := approval.NewTermsheetCloseApproval(f.system(), f.ceo.UserID, approval.CloseSnapshot{TermsheetID: ts.ID})
	require.NoError(t, err)
	require.NoError(t, rejected.Reject(shared.Actor{TenantID: f.tenantID, UserID: f.ceo.UserID}, "not yet"))

	f.termsheets.On("FindMatured", ctx, f.tenantID, f.now).Return([]deal.Termsheet{ts}, nil)
	f.deals.On("FindByIDForTenant", ctx, f.tenantID, f.deal.ID).Return(f.deal, nil)
	f.approvals.On("FindForEntity", ctx, f.tenantID, approval.EntityTermsheetClose, ts.ID, closeStatuses).Return(rejected, nil)

	result, err := f.sweep.Run(ctx, f.system())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, SkipReasonApprovalExists, result.Skipped[0].Reason)
	f.snapshots.AssertNotCalled(t, "FundedSubscriptions", mock.Anything, mock.Anything, mock.Anything)
}

func TestTermsheetCloseSweep_SignerFallbackAndIsolation(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	okSheet := f.maturedTermsheet(f.deal.ID)
	brokenDealID := uuid.New()
	brokenSheet := f.maturedTermsheet(brokenDealID)
	staff := directory.Profile{UserID: uuid.New(), IsStaff: true}

	f.termsheets.On("FindMatured", ctx, f.tenantID, f.now).Return([]deal.Termsheet{brokenSheet, okSheet}, nil)
	f.deals.On("FindByIDForTenant", ctx, f.tenantID, brokenDealID).Return(nil, errors.New("connection reset"))
	f.deals.On("FindByIDForTenant", ctx, f.tenantID, f.deal.ID).Return(f.deal, nil)
	f.approvals.On("FindForEntity", ctx, f.tenantID, approval.EntityTermsheetClose, okSheet.ID, closeStatuses).Return(nil, shared.ErrNotFound)
	f.expectSnapshot(ctx, okSheet.ID)
	f.directory.On("FindByRole", ctx, f.tenantID, shared.RoleCEO).Return([]directory.Profile{}, nil)
	f.directory.On("FindStaff", ctx, f.tenantID).Return([]directory.Profile{staff}, nil)
	f.approvals.On("Create", ctx, mock.MatchedBy(func(a *approval.Approval) bool {
		return a.AssignedTo == staff.UserID
	})).Return(nil)

	result, err := f.sweep.Run(ctx, f.system())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, brokenSheet.ID, result.Failed[0].TermsheetID)
}

func TestTermsheetCloseSweep_ConcurrentCreateIsSkipped(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()
	ts := f.maturedTermsheet(f.deal.ID)

	f.termsheets.On("FindMatured", ctx, f.tenantID, f.now).Return([]deal.Termsheet{ts}, nil)
	f.deals.On("FindByIDForTenant", ctx, f.tenantID, f.deal.ID).Return(f.deal, nil)
	f.approvals.On("FindForEntity", ctx, f.tenantID, approval.EntityTermsheetClose, ts.ID, closeStatuses).Return(nil, shared.ErrNotFound)
	f.expectSnapshot(ctx, ts.ID)
	f.directory.On("FindByRole", ctx, f.tenantID, shared.RoleCEO).Return([]directory.Profile{f.ceo}, nil)
	f.approvals.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

	result, err := f.sweep.Run(ctx, f.system())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, SkipReasonApprovalExists, result.Skipped[0].Reason)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTermsheetCloseSweep_RequiresTenant(t *testing.T) {
	f := newSweepFixture(t)
	_, err := f.sweep.Run(context.Background(), shared.Actor{})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
