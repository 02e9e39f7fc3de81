package fee

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFeePlanRepository is a mock implementation of fee.FeePlanRepository
type MockFeePlanRepository struct {
	mock.Mock
}

func (m *MockFeePlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fee.FeePlan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.FeePlan), args.Error(1)
}

func (m *MockFeePlanRepository) FindDefaultForDeal(ctx context.Context, tenantID, dealID uuid.UUID) (*fee.FeePlan, error) {
	args := m.Called(ctx, tenantID, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.FeePlan), args.Error(1)
}

func (m *MockFeePlanRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter fee.FeePlanFilter) ([]fee.FeePlan, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fee.FeePlan), args.Error(1)
}

func (m *MockFeePlanRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter fee.FeePlanFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeePlanRepository) Save(ctx context.Context, plan *fee.FeePlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockFeePlanRepository) SaveWithLock(ctx context.Context, plan *fee.FeePlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockFeePlanRepository) SetDefault(ctx context.Context, tenantID, dealID, planID uuid.UUID) error {
	args := m.Called(ctx, tenantID, dealID, planID)
	return args.Error(0)
}

func (m *MockFeePlanRepository) SaveAsDefault(ctx context.Context, plan *fee.FeePlan) error {
	args := m.Called(ctx, plan)
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
	if insert, ok := args.Get(0).(func([]*fee.FeeEvent) []*fee.FeeEvent); ok {
		return insert(events), args.Error(1)
	}
	return args.Get(0).([]*fee.FeeEvent), args.Error(1)
}

func (m *MockFeeEventRepository) MarkInvoiced(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, invoiceID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, ids, invoiceID, at)
	return args.Get(0).(int64), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByFingerprint(ctx context.Context, tenantID uuid.UUID, fingerprint string) (*subscription.Subscription, error) {
	args := m.Called(ctx, tenantID, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter subscription.Filter) ([]subscription.Subscription, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter subscription.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) SaveWithLock(ctx context.Context, s *subscription.Subscription) error {
	args := m.Called(ctx, s)
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
