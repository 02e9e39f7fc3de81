package commission

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of commission.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*commission.PartyCommission, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.PartyCommission), args.Error(1)
}

func (m *MockRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter commission.Filter) ([]commission.PartyCommission, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]commission.PartyCommission), args.Error(1)
}

func (m *MockRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter commission.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c *commission.PartyCommission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) SaveWithLock(ctx context.Context, c *commission.PartyCommission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Reconciliation(ctx context.Context, tenantID uuid.UUID, filter commission.ReconciliationFilter) ([]commission.ReconciliationRow, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commission.ReconciliationRow), args.Error(1)
}

func (m *MockRepository) Summarize(ctx context.Context, tenantID uuid.UUID, filter commission.ReconciliationFilter) (*commission.ReconciliationSummary, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.ReconciliationSummary), args.Error(1)
}

// MockAgreementRepository is a mock implementation of commission.AgreementRepository
type MockAgreementRepository struct {
	mock.Mock
}

func (m *MockAgreementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*commission.Agreement, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Agreement), args.Error(1)
}

func (m *MockAgreementRepository) FindActiveForDeal(ctx context.Context, tenantID, dealID uuid.UUID, at time.Time) ([]commission.Agreement, error) {
	args := m.Called(ctx, tenantID, dealID, at)
	return args.Get(0).([]commission.Agreement), args.Error(1)
}

func (m *MockAgreementRepository) FindAllForDeal(ctx context.Context, tenantID, dealID uuid.UUID) ([]commission.Agreement, error) {
	args := m.Called(ctx, tenantID, dealID)
	return args.Get(0).([]commission.Agreement), args.Error(1)
}

func (m *MockAgreementRepository) Save(ctx context.Context, a *commission.Agreement) error {
	args := m.Called(ctx, a)
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

// MockAssignmentRepository is a mock implementation of deal.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) IsAssigned(ctx context.Context, tenantID, dealID, userID uuid.UUID, role deal.AssignmentRole) (bool, error) {
	args := m.Called(ctx, tenantID, dealID, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) Assign(ctx context.Context, a deal.Assignment) error {
	args := m.Called(ctx, a)
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

// MockSender is a mock implementation of notification.Sender
type MockSender struct {
	mock.Mock
	channel notification.Channel
}

func newMockSender(channel notification.Channel) *MockSender {
	return &MockSender{channel: channel}
}

func (m *MockSender) Channel() notification.Channel {
	return m.channel
}

func (m *MockSender) Send(ctx context.Context, notifications []*notification.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyPaid(ctx context.Context, c *commission.PartyCommission) DispatchResult {
	args := m.Called(ctx, c)
	return args.Get(0).(DispatchResult)
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

// MockArchiver is a mock implementation of ExportArchiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockArchiver) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
