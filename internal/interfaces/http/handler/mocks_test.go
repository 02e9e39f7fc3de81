package handler

import (
	"context"

	approvalapp "github.com/erp/feeengine/internal/application/approval"
	billingapp "github.com/erp/feeengine/internal/application/billing"
	commissionapp "github.com/erp/feeengine/internal/application/commission"
	feeapp "github.com/erp/feeengine/internal/application/fee"
	notificationapp "github.com/erp/feeengine/internal/application/notification"
	subscriptionapp "github.com/erp/feeengine/internal/application/subscription"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFeePlanService is a mock implementation of FeePlanService
type MockFeePlanService struct {
	mock.Mock
}

func (m *MockFeePlanService) planResult(args mock.Arguments) (*feeapp.FeePlanResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feeapp.FeePlanResponse), args.Error(1)
}

func (m *MockFeePlanService) Create(ctx context.Context, actor shared.Actor, req feeapp.CreateFeePlanRequest) (*feeapp.FeePlanResponse, error) {
	return m.planResult(m.Called(ctx, actor, req))
}

func (m *MockFeePlanService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*feeapp.FeePlanResponse, error) {
	return m.planResult(m.Called(ctx, tenantID, id))
}

func (m *MockFeePlanService) List(ctx context.Context, tenantID uuid.UUID, filter feeapp.FeePlanListFilter) ([]feeapp.FeePlanResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]feeapp.FeePlanResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeePlanService) AddComponent(ctx context.Context, tenantID, planID uuid.UUID, req feeapp.AddComponentRequest) (*feeapp.FeePlanResponse, error) {
	return m.planResult(m.Called(ctx, tenantID, planID, req))
}

func (m *MockFeePlanService) RemoveComponent(ctx context.Context, tenantID, planID, componentID uuid.UUID) (*feeapp.FeePlanResponse, error) {
	return m.planResult(m.Called(ctx, tenantID, planID, componentID))
}

func (m *MockFeePlanService) Activate(ctx context.Context, tenantID, planID uuid.UUID) (*feeapp.FeePlanResponse, error) {
	return m.planResult(m.Called(ctx, tenantID, planID))
}

func (m *MockFeePlanService) SetDefault(ctx context.Context, tenantID, planID uuid.UUID) (*feeapp.FeePlanResponse, error) {
	return m.planResult(m.Called(ctx, tenantID, planID))
}

func (m *MockFeePlanService) Archive(ctx context.Context, tenantID, planID uuid.UUID) (*feeapp.FeePlanResponse, error) {
	return m.planResult(m.Called(ctx, tenantID, planID))
}

func (m *MockFeePlanService) Amend(ctx context.Context, actor shared.Actor, planID uuid.UUID) (*feeapp.FeePlanResponse, error) {
	return m.planResult(m.Called(ctx, actor, planID))
}

func (m *MockFeePlanService) ListEvents(ctx context.Context, tenantID uuid.UUID, filter feeapp.FeeEventListFilter) ([]feeapp.FeeEventResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]feeapp.FeeEventResponse), args.Get(1).(int64), args.Error(2)
}

// MockFeeGenerator is a mock implementation of FeeGenerator
type MockFeeGenerator struct {
	mock.Mock
}

func (m *MockFeeGenerator) GenerateForAllocation(ctx context.Context, tenantID, allocationID uuid.UUID, opts feeapp.GenerateOptions) (*feeapp.GenerationResult, error) {
	args := m.Called(ctx, tenantID, allocationID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feeapp.GenerationResult), args.Error(1)
}

// MockSubscriptionService is a mock implementation of SubscriptionService
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Create(ctx context.Context, actor shared.Actor, req subscriptionapp.CreateSubscriptionRequest) (*subscriptionapp.SubscriptionResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionapp.SubscriptionResponse), args.Error(1)
}

func (m *MockSubscriptionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*subscriptionapp.SubscriptionResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionapp.SubscriptionResponse), args.Error(1)
}

func (m *MockSubscriptionService) List(ctx context.Context, tenantID uuid.UUID, filter subscriptionapp.SubscriptionListFilter) ([]subscriptionapp.SubscriptionResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]subscriptionapp.SubscriptionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionService) UpdateStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, req subscriptionapp.UpdateStatusRequest) (*subscriptionapp.StatusUpdateResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionapp.StatusUpdateResponse), args.Error(1)
}

func (m *MockSubscriptionService) BulkUpdateStatus(ctx context.Context, actor shared.Actor, req subscriptionapp.BulkUpdateStatusRequest) (*subscriptionapp.BulkUpdateResult, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionapp.BulkUpdateResult), args.Error(1)
}

// MockInvoiceService is a mock implementation of InvoiceService
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoiceResult(args mock.Arguments) (*billingapp.InvoiceResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.InvoiceResponse), args.Error(1)
}

func (m *MockInvoiceService) Create(ctx context.Context, actor shared.Actor, req billingapp.CreateInvoiceRequest) (*billingapp.CreateInvoiceResult, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.CreateInvoiceResult), args.Error(1)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*billingapp.InvoiceResponse, error) {
	return m.invoiceResult(m.Called(ctx, tenantID, id))
}

func (m *MockInvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter billingapp.InvoiceListFilter) ([]billingapp.InvoiceResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]billingapp.InvoiceResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceService) RecordPayment(ctx context.Context, actor shared.Actor, invoiceID uuid.UUID, req billingapp.RecordPaymentRequest) (*billingapp.InvoiceResponse, error) {
	return m.invoiceResult(m.Called(ctx, actor, invoiceID, req))
}

func (m *MockInvoiceService) Cancel(ctx context.Context, actor shared.Actor, invoiceID uuid.UUID) (*billingapp.InvoiceResponse, error) {
	return m.invoiceResult(m.Called(ctx, actor, invoiceID))
}

// MockCallbackService is a mock implementation of DocumentCallbackService
type MockCallbackService struct {
	mock.Mock
}

func (m *MockCallbackService) HandleCallback(ctx context.Context, payload []byte, signature string) (*billingapp.CallbackResult, error) {
	args := m.Called(ctx, payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.CallbackResult), args.Error(1)
}

// MockCommissionService is a mock implementation of CommissionService
type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) commissionResult(args mock.Arguments) (*commissionapp.CommissionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commissionapp.CommissionResponse), args.Error(1)
}

func (m *MockCommissionService) Record(ctx context.Context, actor shared.Actor, req commissionapp.RecordCommissionRequest) (*commissionapp.CommissionResponse, error) {
	return m.commissionResult(m.Called(ctx, actor, req))
}

func (m *MockCommissionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*commissionapp.CommissionResponse, error) {
	return m.commissionResult(m.Called(ctx, tenantID, id))
}

func (m *MockCommissionService) List(ctx context.Context, actor shared.Actor, filter commissionapp.CommissionListFilter) ([]commissionapp.CommissionResponse, int64, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]commissionapp.CommissionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommissionService) RequestInvoice(ctx context.Context, actor shared.Actor, id uuid.UUID) (*commissionapp.CommissionResponse, error) {
	return m.commissionResult(m.Called(ctx, actor, id))
}

func (m *MockCommissionService) MarkInvoiced(ctx context.Context, actor shared.Actor, id uuid.UUID, req commissionapp.MarkInvoicedRequest) (*commissionapp.CommissionResponse, error) {
	return m.commissionResult(m.Called(ctx, actor, id, req))
}

func (m *MockCommissionService) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req commissionapp.ReasonRequest) (*commissionapp.CommissionResponse, error) {
	return m.commissionResult(m.Called(ctx, actor, id, req))
}

func (m *MockCommissionService) Reject(ctx context.Context, actor shared.Actor, id uuid.UUID, req commissionapp.ReasonRequest) (*commissionapp.CommissionResponse, error) {
	return m.commissionResult(m.Called(ctx, actor, id, req))
}

func (m *MockCommissionService) ConfirmPayment(ctx context.Context, actor shared.Actor, id uuid.UUID, req commissionapp.ConfirmPaymentRequest) (*commissionapp.PaymentConfirmation, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commissionapp.PaymentConfirmation), args.Error(1)
}

// MockAgreementService is a mock implementation of AgreementService
type MockAgreementService struct {
	mock.Mock
}

func (m *MockAgreementService) Create(ctx context.Context, actor shared.Actor, req commissionapp.CreateAgreementRequest) (*commissionapp.AgreementResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commissionapp.AgreementResponse), args.Error(1)
}

func (m *MockAgreementService) ListForDeal(ctx context.Context, tenantID, dealID uuid.UUID) ([]commissionapp.AgreementResponse, error) {
	args := m.Called(ctx, tenantID, dealID)
	return args.Get(0).([]commissionapp.AgreementResponse), args.Error(1)
}

func (m *MockAgreementService) Deactivate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*commissionapp.AgreementResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commissionapp.AgreementResponse), args.Error(1)
}

// MockReconciliationService is a mock implementation of ReconciliationService
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Report(ctx context.Context, actor shared.Actor, query commissionapp.ReconciliationQuery) (*commissionapp.ReconciliationReport, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commissionapp.ReconciliationReport), args.Error(1)
}

func (m *MockReconciliationService) Export(ctx context.Context, actor shared.Actor, query commissionapp.ReconciliationQuery, archive bool) (*commissionapp.ReconciliationExport, error) {
	args := m.Called(ctx, actor, query, archive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commissionapp.ReconciliationExport), args.Error(1)
}

// MockApprovalService is a mock implementation of ApprovalService
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*approvalapp.ApprovalResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approvalapp.ApprovalResponse), args.Error(1)
}

func (m *MockApprovalService) List(ctx context.Context, actor shared.Actor, filter approvalapp.ListFilter) ([]approvalapp.ApprovalResponse, int64, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]approvalapp.ApprovalResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockApprovalService) Approve(ctx context.Context, actor shared.Actor, id uuid.UUID, req approvalapp.DecisionRequest) (*approvalapp.ApprovalResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approvalapp.ApprovalResponse), args.Error(1)
}

func (m *MockApprovalService) Reject(ctx context.Context, actor shared.Actor, id uuid.UUID, req approvalapp.DecisionRequest) (*approvalapp.ApprovalResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approvalapp.ApprovalResponse), args.Error(1)
}

// MockSweepRunner is a mock implementation of SweepRunner
type MockSweepRunner struct {
	mock.Mock
}

func (m *MockSweepRunner) Run(ctx context.Context, actor shared.Actor) (*approvalapp.SweepResult, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approvalapp.SweepResult), args.Error(1)
}

// MockInboxService is a mock implementation of InboxService
type MockInboxService struct {
	mock.Mock
}

func (m *MockInboxService) List(ctx context.Context, actor shared.Actor, page, pageSize int) ([]notificationapp.NotificationResponse, error) {
	args := m.Called(ctx, actor, page, pageSize)
	return args.Get(0).([]notificationapp.NotificationResponse), args.Error(1)
}

func (m *MockInboxService) MarkRead(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}
