package billing

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) NextSequence(ctx context.Context, tenantID uuid.UUID, year int) (int, error) {
	args := m.Called(ctx, tenantID, year)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CreateLines(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveCancelled(ctx context.Context, invoice *billing.Invoice) (int64, error) {
	args := m.Called(ctx, invoice)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SaveGeneration(ctx context.Context, invoice *billing.Invoice, expected billing.GenerationStatus) (bool, error) {
	args := m.Called(ctx, invoice, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) AddPayment(ctx context.Context, invoice *billing.Invoice, payment *billing.InvoicePayment) error {
	args := m.Called(ctx, invoice, payment)
	return args.Error(0)
}

// MockFeeEventRepository is a mock implementation of fee.FeeEventRepository
type MockFeeEventRepository struct {
	mock.Mock
}

func (m *MockFeeEventRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fee.FeeEvent, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.FeeEvent), args.Error(1)
}

func (m *MockFeeEventRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]fee.FeeEvent, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]fee.FeeEvent), args.Error(1)
}

func (m *MockFeeEventRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter fee.FeeEventFilter) ([]fee.FeeEvent, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fee.FeeEvent), args.Error(1)
}

func (m *MockFeeEventRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter fee.FeeEventFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeeEventRepository) ExistsForComponent(ctx context.Context, tenantID, allocationID, componentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, allocationID, componentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeeEventRepository) CreateAccrued(ctx context.Context, plan *fee.FeePlan, events []*fee.FeeEvent, at time.Time) ([]*fee.FeeEvent, error) {
	args := m.Called(ctx, plan, events, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fee.FeeEvent), args.Error(1)
}

func (m *MockFeeEventRepository) MarkInvoiced(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, invoiceID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, ids, invoiceID, at)
	return args.Get(0).(int64), args.Error(1)
}

// MockDocumentGenerator is a mock implementation of billing.DocumentGenerator
type MockDocumentGenerator struct {
	mock.Mock
}

func (m *MockDocumentGenerator) RequestDocument(ctx context.Context, req *billing.DocumentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
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

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

// MockSignatureVerifier is a mock implementation of SignatureVerifier
type MockSignatureVerifier struct {
	mock.Mock
}

func (m *MockSignatureVerifier) Verify(payload []byte, signature string) error {
	args := m.Called(payload, signature)
	return args.Error(0)
}
