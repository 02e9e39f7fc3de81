package commission

import (
	"context"
	"errors"
	"testing"
	"time"

	appnotification "github.com/erp/feeengine/internal/application/notification"
	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	tenantID    uuid.UUID
	arrangerOrg uuid.UUID
	deal        *deal.Deal
	repo        *MockRepository
	dealRepo    *MockDealRepository
	assignments *MockAssignmentRepository
	notifier    *MockNotifier
	publisher   *MockEventPublisher
	audit       *MockAuditSink
	service     *Service
	now         time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	tenantID := uuid.New()
	arrangerOrg := uuid.New()
	d, err := deal.NewDeal(shared.Actor{TenantID: tenantID}, "Series B Co-invest", &arrangerOrg, valueobject.EUR)
	require.NoError(t, err)

	f := &serviceFixture{
		tenantID:    tenantID,
		arrangerOrg: arrangerOrg,
		deal:        d,
		repo:        new(MockRepository),
		dealRepo:    new(MockDealRepository),
		assignments: new(MockAssignmentRepository),
		notifier:    new(MockNotifier),
		publisher:   new(MockEventPublisher),
		audit:       new(MockAuditSink),
		now:         time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
	}
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.service = NewService(ServiceConfig{
		Repo:           f.repo,
		DealRepo:       f.dealRepo,
		AssignmentRepo: f.assignments,
		Notifier:       f.notifier,
		EventPublisher: f.publisher,
		AuditSink:      f.audit,
		Now:            func() time.Time { return f.now },
	})
	return f
}

func (f *serviceFixture) staffAdmin() shared.Actor {
	return shared.Actor{TenantID: f.tenantID, UserID: uuid.New(), Roles: []string{shared.RoleStaffAdmin}}
}

func (f *serviceFixture) lawyer() shared.Actor {
	return shared.Actor{TenantID: f.tenantID, UserID: uuid.New(), Roles: []string{shared.RoleLawyer}}
}

func (f *serviceFixture) newCommission(t *testing.T, kind commission.PartyKind, status commission.Status) *commission.PartyCommission {
	t.Helper()
	rate := 150
	c, err := commission.NewPartyCommission(shared.Actor{TenantID: f.tenantID}, commission.NewCommissionInput{
		PartyKind:  kind,
		PartyID:    uuid.New(),
		ArrangerID: &f.arrangerOrg,
		DealID:     f.deal.ID,
		BasisType:  commission.BasisInvestedAmount,
		RateBps:    &rate,
		BaseAmount: decimal.NewFromInt(200000),
		Currency:   valueobject.EUR,
	})
	require.NoError(t, err)
	if status == commission.StatusInvoiceRequested || status == commission.StatusInvoiced {
		require.NoError(t, c.RequestInvoice())
	}
	if status == commission.StatusInvoiced {
		require.NoError(t, c.MarkInvoiced("PI-77"))
	}
	c.ClearDomainEvents()
	return c
}

func TestService_Record(t *testing.T) {
	t.Run("arranger records on own deal", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		actor := shared.Actor{TenantID: f.tenantID, UserID: uuid.New(), Roles: []string{shared.RoleArranger}, OrganizationID: &f.arrangerOrg}
		rate := 500
		f.dealRepo.On("FindByIDForTenant", ctx, f.tenantID, f.deal.ID).Return(f.deal, nil)
		f.repo.On("Create", ctx, mock.AnythingOfType("*commission.PartyCommission")).Return(nil)

		resp, err := f.service.Record(ctx, actor, RecordCommissionRequest{
			PartyKind:  "partner",
			PartyID:    uuid.New(),
			DealID:     f.deal.ID,
			BasisType:  "invested_amount",
			RateBps:    &rate,
			BaseAmount: decimal.NewFromInt(100000),
		})
		require.NoError(t, err)
		assert.Equal(t, "5000", resp.AccrualAmount.String())
		assert.Equal(t, "EUR", resp.Currency)
		assert.Equal(t, "accrued", resp.Status)
		assert.Equal(t, &f.arrangerOrg, resp.ArrangerID)
		f.publisher.AssertCalled(t, "Publish", ctx, mock.Anything)
		f.audit.AssertCalled(t, "Record", ctx, mock.MatchedBy(func(e shared.AuditEntry) bool {
			return e.Action == AuditActionCommissionRecorded
		}))
	})

	t.Run("another arranger is forbidden", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		other := uuid.New()
		actor := shared.Actor{TenantID: f.tenantID, UserID: uuid.New(), Roles: []string{shared.RoleArranger}, OrganizationID: &other}
		flat := decimal.NewFromInt(1000)
		f.dealRepo.On("FindByIDForTenant", ctx, f.tenantID, f.deal.ID).Return(f.deal, nil)

		_, err := f.service.Record(ctx, actor, RecordCommissionRequest{
			PartyKind:  "introducer",
			PartyID:    uuid.New(),
			DealID:     f.deal.ID,
			BasisType:  "invested_amount",
			FlatAmount: &flat,
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rate out of range is rejected before any write", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		rate := 10001
		f.dealRepo.On("FindByIDForTenant", ctx, f.tenantID, f.deal.ID).Return(f.deal, nil)

		_, err := f.service.Record(ctx, f.staffAdmin(), RecordCommissionRequest{
			PartyKind:  "partner",
			PartyID:    uuid.New(),
			DealID:     f.deal.ID,
			BasisType:  "invested_amount",
			RateBps:    &rate,
			BaseAmount: decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, commission.ErrInvalidCommissionTerms)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown deal", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		id := uuid.New()
		f.dealRepo.On("FindByIDForTenant", ctx, f.tenantID, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.Record(ctx, f.staffAdmin(), RecordCommissionRequest{DealID: id})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_ConfirmPayment(t *testing.T) {
	t.Run("assigned lawyer confirms and notifications go out", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		c := f.newCommission(t, commission.PartyPartner, commission.StatusInvoiced)
		actor := f.lawyer()

		f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)
		f.assignments.On("IsAssigned", ctx, f.tenantID, f.deal.ID, actor.UserID, deal.AssignmentLawyer).Return(true, nil)
		f.repo.On("SaveWithLock", ctx, c).Return(nil)
		f.notifier.On("NotifyPaid", ctx, c).Return(DispatchResult{Sent: 4})

		result, err := f.service.ConfirmPayment(ctx, actor, c.ID, ConfirmPaymentRequest{Reference: "WIRE-123"})
		require.NoError(t, err)
		assert.Equal(t, "paid", result.Commission.Status)
		require.NotNil(t, result.Commission.PaidAt)
		assert.Equal(t, f.now, *result.Commission.PaidAt)
		assert.Equal(t, "WIRE-123", result.Commission.PaymentReference)
		assert.Equal(t, &actor.UserID, result.Commission.PaidBy)
		assert.Equal(t, 4, result.Notifications.Sent)
	})

	t.Run("unassigned lawyer is forbidden", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		c := f.newCommission(t, commission.PartyPartner, commission.StatusInvoiced)
		actor := f.lawyer()

		f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)
		f.assignments.On("IsAssigned", ctx, f.tenantID, f.deal.ID, actor.UserID, deal.AssignmentLawyer).Return(false, nil)

		_, err := f.service.ConfirmPayment(ctx, actor, c.ID, ConfirmPaymentRequest{})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Equal(t, commission.StatusInvoiced, c.Status)
		f.repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("arranger cannot confirm", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		c := f.newCommission(t, commission.PartyPartner, commission.StatusInvoiced)
		actor := shared.Actor{TenantID: f.tenantID, UserID: uuid.New(), Roles: []string{shared.RoleArranger}, OrganizationID: &f.arrangerOrg}
		f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)

		_, err := f.service.ConfirmPayment(ctx, actor, c.ID, ConfirmPaymentRequest{})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.assignments.AssertNotCalled(t, "IsAssigned", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("accrued commission cannot jump to paid", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		c := f.newCommission(t, commission.PartyPartner, commission.StatusAccrued)
		f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)

		_, err := f.service.ConfirmPayment(ctx, f.staffAdmin(), c.ID, ConfirmPaymentRequest{})
		assert.ErrorIs(t, err, commission.ErrInvalidTransition)
		assert.Equal(t, commission.StatusAccrued, c.Status)
		f.repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("concurrent update surfaces the lock conflict", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		c := f.newCommission(t, commission.PartyPartner, commission.StatusInvoiced)
		f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)
		f.repo.On("SaveWithLock", ctx, c).Return(shared.ErrConcurrencyConflict)

		_, err := f.service.ConfirmPayment(ctx, f.staffAdmin(), c.ID, ConfirmPaymentRequest{})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		f.notifier.AssertNotCalled(t, "NotifyPaid", mock.Anything, mock.Anything)
	})
}

// Lawyer confirms payment; the party channel fails but the payment stands
// and the other two audiences are still notified.
func TestService_ConfirmPayment_NotificationFanOut(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	c := f.newCommission(t, commission.PartyIntroducer, commission.StatusInvoiced)
	actor := f.lawyer()

	dir := new(MockDirectoryRepository)
	arrangerUser := directory.Profile{UserID: uuid.New()}
	partyUser := directory.Profile{UserID: uuid.New()}
	ceo := directory.Profile{UserID: uuid.New(), Roles: []string{shared.RoleCEO, shared.RoleStaffAdmin}}
	admin := directory.Profile{UserID: uuid.New(), Roles: []string{shared.RoleStaffAdmin}}
	dir.On("FindByOrganization", ctx, f.tenantID, f.arrangerOrg).Return([]directory.Profile{arrangerUser}, nil)
	dir.On("FindByOrganization", ctx, f.tenantID, c.PartyID).Return([]directory.Profile{partyUser}, nil)
	dir.On("FindByRole", ctx, f.tenantID, shared.RoleCEO).Return([]directory.Profile{ceo}, nil)
	dir.On("FindByRole", ctx, f.tenantID, shared.RoleStaffAdmin).Return([]directory.Profile{ceo, admin}, nil)

	arrangerPortal := newMockSender(notification.ChannelArrangerPortal)
	partyPortal := newMockSender(notification.ChannelPartyPortal)
	staffInbox := newMockSender(notification.ChannelStaffInbox)
	arrangerPortal.On("Send", ctx, mock.Anything).Return(nil)
	partyPortal.On("Send", ctx, mock.Anything).Return(errors.New("portal unavailable"))
	staffInbox.On("Send", ctx, mock.Anything).Return(nil)

	dispatcher := appnotification.NewDispatcher(nil, arrangerPortal, partyPortal, staffInbox)
	f.service.notifier = NewPaymentNotifier(dir, dispatcher)

	f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)
	f.assignments.On("IsAssigned", ctx, f.tenantID, f.deal.ID, actor.UserID, deal.AssignmentLawyer).Return(true, nil)
	f.repo.On("SaveWithLock", ctx, c).Return(nil).Once()

	result, err := f.service.ConfirmPayment(ctx, actor, c.ID, ConfirmPaymentRequest{Reference: "SWIFT-9"})
	require.NoError(t, err)

	assert.Equal(t, commission.StatusPaid, c.Status)
	assert.NotNil(t, c.PaidAt)
	assert.Equal(t, "paid", result.Commission.Status)
	f.repo.AssertNumberOfCalls(t, "SaveWithLock", 1)

	arrangerPortal.AssertNumberOfCalls(t, "Send", 1)
	partyPortal.AssertNumberOfCalls(t, "Send", 1)
	staffInbox.AssertNumberOfCalls(t, "Send", 1)

	sentToArranger := arrangerPortal.Calls[0].Arguments.Get(1).([]*notification.Notification)
	require.Len(t, sentToArranger, 1)
	assert.Equal(t, arrangerUser.UserID, sentToArranger[0].RecipientID)
	assert.Equal(t, notification.AudienceArranger, sentToArranger[0].Audience)

	sentToExecutives := staffInbox.Calls[0].Arguments.Get(1).([]*notification.Notification)
	require.Len(t, sentToExecutives, 2, "ceo holding both roles is notified once")
	assert.Equal(t, notification.AudienceExecutive, sentToExecutives[0].Audience)

	assert.Equal(t, 3, result.Notifications.Sent)
	require.Len(t, result.Notifications.Failures, 1)
	assert.Equal(t, string(notification.AudienceParty), result.Notifications.Failures[0].Audience)
}

func TestService_Transitions(t *testing.T) {
	t.Run("request invoice then mark invoiced", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		c := f.newCommission(t, commission.PartyCommercialPartner, commission.StatusAccrued)
		admin := f.staffAdmin()
		f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)
		f.repo.On("SaveWithLock", ctx, c).Return(nil)

		resp, err := f.service.RequestInvoice(ctx, admin, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "invoice_requested", resp.Status)
		assert.Equal(t, "Invoice Requested", resp.StatusLabel)

		resp, err = f.service.MarkInvoiced(ctx, admin, c.ID, MarkInvoicedRequest{Reference: "CP-2025-14"})
		require.NoError(t, err)
		assert.Equal(t, "invoiced", resp.Status)
		assert.Equal(t, "CP-2025-14", resp.InvoiceReference)
		f.dealRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("only introducer commissions can be rejected", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		partner := f.newCommission(t, commission.PartyPartner, commission.StatusInvoiced)
		introducer := f.newCommission(t, commission.PartyIntroducer, commission.StatusInvoiced)
		f.repo.On("FindByIDForTenant", ctx, f.tenantID, partner.ID).Return(partner, nil)
		f.repo.On("FindByIDForTenant", ctx, f.tenantID, introducer.ID).Return(introducer, nil)
		f.repo.On("SaveWithLock", ctx, introducer).Return(nil)

		_, err := f.service.Reject(ctx, f.staffAdmin(), partner.ID, ReasonRequest{Reason: "duplicate"})
		assert.ErrorIs(t, err, commission.ErrInvalidTransition)

		resp, err := f.service.Reject(ctx, f.staffAdmin(), introducer.ID, ReasonRequest{Reason: "not introduced"})
		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
		assert.Equal(t, "not introduced", resp.StatusReason)
	})

	t.Run("nothing leaves paid", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		c := f.newCommission(t, commission.PartyPartner, commission.StatusInvoiced)
		require.NoError(t, c.MarkPaid(uuid.New(), "", f.now))
		c.ClearDomainEvents()
		f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)

		_, err := f.service.Cancel(ctx, f.staffAdmin(), c.ID, ReasonRequest{Reason: "late"})
		assert.ErrorIs(t, err, commission.ErrInvalidTransition)
		assert.Equal(t, commission.StatusPaid, c.Status)
	})

	t.Run("arranger of another deal cannot cancel", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx := context.Background()
		c := f.newCommission(t, commission.PartyPartner, commission.StatusAccrued)
		other := uuid.New()
		actor := shared.Actor{TenantID: f.tenantID, UserID: uuid.New(), Roles: []string{shared.RoleArranger}, OrganizationID: &other}
		f.repo.On("FindByIDForTenant", ctx, f.tenantID, c.ID).Return(c, nil)
		f.dealRepo.On("FindByIDForTenant", ctx, f.tenantID, f.deal.ID).Return(f.deal, nil)

		_, err := f.service.Cancel(ctx, actor, c.ID, ReasonRequest{})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Equal(t, commission.StatusAccrued, c.Status)
	})
}

func TestService_List_ScopesArrangers(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	actor := shared.Actor{TenantID: f.tenantID, UserID: uuid.New(), Roles: []string{shared.RoleArranger}, OrganizationID: &f.arrangerOrg}
	c := f.newCommission(t, commission.PartyPartner, commission.StatusAccrued)

	scoped := mock.MatchedBy(func(filter commission.Filter) bool {
		return filter.ArrangerID != nil && *filter.ArrangerID == f.arrangerOrg &&
			filter.Status != nil && *filter.Status == commission.StatusAccrued
	})
	f.repo.On("FindAllForTenant", ctx, f.tenantID, scoped).Return([]commission.PartyCommission{*c}, nil)
	f.repo.On("CountForTenant", ctx, f.tenantID, scoped).Return(int64(1), nil)

	items, total, err := f.service.List(ctx, actor, CommissionListFilter{Status: "accrued"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, c.ID, items[0].ID)
}
