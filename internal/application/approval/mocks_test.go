package approval

import (
	"context"
	"time"

	appnotification "github.com/erp/feeengine/internal/application/notification"
	"github.com/erp/feeengine/internal/domain/approval"
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockApprovalRepository is a mock implementation of approval.Repository
type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*approval.Approval, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Approval), args.Error(1)
}

func (m *MockApprovalRepository) FindForEntity(ctx context.Context, tenantID uuid.UUID, entityType approval.EntityType, entityID uuid.UUID, statuses []approval.Status) (*approval.Approval, error) {
	args := m.Called(ctx, tenantID, entityType, entityID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approval.Approval), args.Error(1)
}

func (m *MockApprovalRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter approval.Filter) ([]approval.Approval, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]approval.Approval), args.Error(1)
}

func (m *MockApprovalRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter approval.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApprovalRepository) Create(ctx context.Context, a *approval.Approval) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApprovalRepository) SaveWithLock(ctx context.Context, a *approval.Approval) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockSnapshotReader is a mock implementation of approval.SnapshotReader
type MockSnapshotReader struct {
	mock.Mock
}

func (m *MockSnapshotReader) FundedSubscriptions(ctx context.Context, tenantID, termsheetID uuid.UUID) (int64, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, termsheetID)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockSnapshotReader) FeePlanCounts(ctx context.Context, tenantID, termsheetID uuid.UUID) (map[string]int64, map[string]int64, error) {
	args := m.Called(ctx, tenantID, termsheetID)
	var byStatus, byCounterparty map[string]int64
	if v := args.Get(0); v != nil {
		byStatus = v.(map[string]int64)
	}
	if v := args.Get(1); v != nil {
		byCounterparty = v.(map[string]int64)
	}
	return byStatus, byCounterparty, args.Error(2)
}

// MockTermsheetRepository is a mock implementation of deal.TermsheetRepository
type MockTermsheetRepository struct {
	mock.Mock
}

func (m *MockTermsheetRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*deal.Termsheet, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deal.Termsheet), args.Error(1)
}

func (m *MockTermsheetRepository) FindMatured(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]deal.Termsheet, error) {
	args := m.Called(ctx, tenantID, now)
	return args.Get(0).([]deal.Termsheet), args.Error(1)
}

func (m *MockTermsheetRepository) Save(ctx context.Context, t *deal.Termsheet) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockDealRepository is a mock implementation of deal.Repository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*deal.Deal, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deal.Deal), args.Error(1)
}

func (m *MockDealRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]deal.Deal, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]deal.Deal), args.Error(1)
}

func (m *MockDealRepository) Save(ctx context.Context, d *deal.Deal) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockDirectoryRepository is a mock implementation of directory.Repository
type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) FindByRole(ctx context.Context, tenantID uuid.UUID, role string) ([]directory.Profile, error) {
	args := m.Called(ctx, tenantID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Profile), args.Error(1)
}

func (m *MockDirectoryRepository) FindStaff(ctx context.Context, tenantID uuid.UUID) ([]directory.Profile, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Profile), args.Error(1)
}

func (m *MockDirectoryRepository) FindByOrganization(ctx context.Context, tenantID, orgID uuid.UUID) ([]directory.Profile, error) {
	args := m.Called(ctx, tenantID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Profile), args.Error(1)
}

func (m *MockDirectoryRepository) Save(ctx context.Context, p *directory.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockDispatcher is a mock implementation of Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, tenantID uuid.UUID, msg appnotification.Message, groups ...appnotification.Group) appnotification.DispatchResult {
	args := m.Called(ctx, tenantID, msg, groups)
	return args.Get(0).(appnotification.DispatchResult)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockAuditSink is a mock implementation of shared.AuditSink
type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Record(ctx context.Context, entry shared.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
