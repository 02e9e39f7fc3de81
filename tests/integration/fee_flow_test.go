package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	billingapp "github.com/erp/feeengine/internal/application/billing"
	commissionapp "github.com/erp/feeengine/internal/application/commission"
	feeapp "github.com/erp/feeengine/internal/application/fee"
	subscriptionapp "github.com/erp/feeengine/internal/application/subscription"
	"github.com/erp/feeengine/internal/bootstrap"
	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/erp/feeengine/internal/infrastructure/webhook"
	"github.com/erp/feeengine/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const flowWebhookSecret = "0123456789abcdef0123456789abcdef"

// documentService records signed document requests the way the external renderer receives them
type documentService struct {
	mu       sync.Mutex
	requests []billing.DocumentRequest
	signer   *webhook.HMACSigner
	t        *testing.T
}

func (d *documentService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	require.NoError(d.t, err)
	if err := d.signer.Verify(body, r.Header.Get(webhook.SignatureHeader)); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	var req billing.DocumentRequest
	require.NoError(d.t, json.Unmarshal(body, &req))

	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()
	w.WriteHeader(http.StatusAccepted)
}

func (d *documentService) received() []billing.DocumentRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]billing.DocumentRequest(nil), d.requests...)
}

func buildContainer(t *testing.T, testDB *TestDB, documentURL string) *bootstrap.Container {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Name: "fee-engine-test", Env: "test"},
		Webhook: config.WebhookConfig{
			DocumentURL:     documentURL,
			Secret:          flowWebhookSecret,
			CallbackBaseURL: "https://fees.test",
			Timeout:         5 * time.Second,
			IdempotencyTTL:  time.Hour,
		},
	}
	log := zap.NewNop()
	app, err := bootstrap.Build(context.Background(), cfg, testDB.Database(), noop.NewMeterProvider().Meter("test"), log)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(log) })
	return app
}

// TestFeeFlow_Integration drives one allocation from plan to paid commission on PostgreSQL
func TestFeeFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	signer, err := webhook.NewHMACSigner(flowWebhookSecret)
	require.NoError(t, err)
	docs := &documentService{signer: signer, t: t}
	renderer := httptest.NewServer(docs)
	defer renderer.Close()

	app := buildContainer(t, testDB, renderer.URL)
	recorder := testutil.NewEventRecorder()
	app.Bus.Subscribe(recorder)
	ctx := testutil.ContextWithTimeout(t, 2*time.Minute)

	tenantID := uuid.New()
	admin := testutil.StaffAdmin(tenantID)
	arrangerOrg := uuid.New()
	dealID := testDB.CreateTestDeal(tenantID, &arrangerOrg)
	introducerID := testDB.CreateTestParty(tenantID, "introducer", "Northgate Advisors")
	investorID := uuid.New()

	rate := 200
	plan, err := app.Plans.Create(ctx, admin, feeapp.CreateFeePlanRequest{
		DealID:           dealID,
		Name:             "Investor terms",
		CounterpartyType: "investor",
		Currency:         "USD",
		Components: []feeapp.ComponentInput{{
			Kind:       "subscription",
			CalcMethod: "percent_of_investment",
			RateBps:    &rate,
			Frequency:  "one_time",
		}},
		Activate:    true,
		MakeDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, plan.IsDefault)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	agreement, err := app.Agreements.Create(ctx, admin, commissionapp.CreateAgreementRequest{
		DealID:        dealID,
		PartyKind:     "introducer",
		PartyID:       introducerID,
		BasisType:     "invested_amount",
		RateBps:       100,
		EffectiveFrom: &from,
	})
	require.NoError(t, err)

	sub, err := app.Subscriptions.Create(ctx, admin, subscriptionapp.CreateSubscriptionRequest{
		InvestorID:       investorID,
		DealID:           dealID,
		VehicleID:        uuid.New(),
		FeePlanID:        &plan.ID,
		CommitmentAmount: decimal.NewFromInt(1_000_000),
		Currency:         "USD",
		EffectiveDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var feeEventIDs []uuid.UUID
	t.Run("committing generates fee events once", func(t *testing.T) {
		resp, err := app.Subscriptions.UpdateStatus(ctx, admin, sub.ID, subscriptionapp.UpdateStatusRequest{Status: "committed"})
		require.NoError(t, err)
		require.NotNil(t, resp.FeeGeneration, resp.Warning)
		assert.Equal(t, 1, resp.FeeGeneration.Created)
		feeEventIDs = resp.FeeGeneration.FeeEventIDs

		again, err := app.Generator.GenerateForAllocation(ctx, tenantID, sub.ID, feeapp.GenerateOptions{})
		require.NoError(t, err)
		assert.Zero(t, again.Created)
		assert.Equal(t, 1, again.Skipped)

		events, total, err := app.Plans.ListEvents(ctx, tenantID, feeapp.FeeEventListFilter{AllocationID: &sub.ID})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		testutil.AssertDecimal(t, "20000", events[0].ComputedAmount)
		assert.Equal(t, "accrued", events[0].Status)
	})
	require.Len(t, feeEventIDs, 1)

	t.Run("commit accrues the introducer commission", func(t *testing.T) {
		items, total, err := app.Commissions.List(ctx, admin, commissionapp.CommissionListFilter{DealID: &dealID})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		c := items[0]
		assert.Equal(t, introducerID, c.PartyID)
		require.NotNil(t, c.AgreementID)
		assert.Equal(t, agreement.ID, *c.AgreementID)
		testutil.AssertDecimal(t, "10000", c.AccrualAmount)
		assert.Equal(t, "accrued", c.Status)

		assert.Equal(t, 1, recorder.Count(subscription.EventTypeSubscriptionCommitted))
		assert.Equal(t, 1, recorder.Count(fee.EventTypeFeeEventAccrued))
		assert.Equal(t, 1, recorder.Count(commission.EventTypeCommissionAccrued))
	})

	t.Run("arrangers only see their own deals", func(t *testing.T) {
		own, total, err := app.Commissions.List(ctx, testutil.Arranger(tenantID, arrangerOrg), commissionapp.CommissionListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, own, 1)

		other, total, err := app.Commissions.List(ctx, testutil.Arranger(tenantID, uuid.New()), commissionapp.CommissionListFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, other)
	})

	var invoiceID uuid.UUID
	t.Run("invoicing bills the events and requests a document", func(t *testing.T) {
		result, err := app.Invoices.Create(ctx, admin, billingapp.CreateInvoiceRequest{
			InvestorID:  investorID,
			DealID:      &dealID,
			FeeEventIDs: feeEventIDs,
			DueDate:     time.Now().AddDate(0, 0, 30),
			Currency:    "USD",
		})
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)
		invoiceID = result.Invoice.ID
		assert.True(t, strings.HasPrefix(result.Invoice.InvoiceNumber, "INV-"), result.Invoice.InvoiceNumber)
		testutil.AssertDecimal(t, "20000", result.Invoice.Total)
		assert.Equal(t, "requested", result.Invoice.GenerationStatus)

		requests := docs.received()
		require.Len(t, requests, 1)
		assert.Equal(t, invoiceID, requests[0].InvoiceID)
		assert.Equal(t, "https://fees.test/api/v1/billing/invoices/document-callback", requests[0].CallbackURL)

		events, _, err := app.Plans.ListEvents(ctx, tenantID, feeapp.FeeEventListFilter{AllocationID: &sub.ID})
		require.NoError(t, err)
		assert.Equal(t, "invoiced", events[0].Status)
		require.NotNil(t, events[0].InvoiceID)
		assert.Equal(t, invoiceID, *events[0].InvoiceID)
	})

	t.Run("billed events cannot be invoiced twice", func(t *testing.T) {
		_, err := app.Invoices.Create(ctx, admin, billingapp.CreateInvoiceRequest{
			InvestorID:  investorID,
			FeeEventIDs: feeEventIDs,
			DueDate:     time.Now().AddDate(0, 0, 30),
		})
		assert.Error(t, err)
	})

	t.Run("signed callback completes the document once", func(t *testing.T) {
		payload, err := json.Marshal(billing.DocumentCallback{
			InvoiceID:   invoiceID,
			Status:      "completed",
			DocumentURL: "https://docs.test/" + invoiceID.String() + ".pdf",
			CompletedAt: time.Now().UTC(),
		})
		require.NoError(t, err)

		_, err = app.Callbacks.HandleCallback(ctx, payload, "deadbeef")
		assert.ErrorIs(t, err, billingapp.ErrCallbackVerificationFailed)

		first, err := app.Callbacks.HandleCallback(ctx, payload, signer.Sign(payload))
		require.NoError(t, err)
		assert.True(t, first.Processed)

		second, err := app.Callbacks.HandleCallback(ctx, payload, signer.Sign(payload))
		require.NoError(t, err)
		assert.False(t, second.Processed)

		inv, err := app.Invoices.GetByID(ctx, tenantID, invoiceID)
		require.NoError(t, err)
		assert.Equal(t, "completed", inv.GenerationStatus)
		assert.Contains(t, inv.DocumentURL, invoiceID.String())
	})

	t.Run("commission moves through to paid", func(t *testing.T) {
		items, _, err := app.Commissions.List(ctx, admin, commissionapp.CommissionListFilter{DealID: &dealID})
		require.NoError(t, err)
		require.Len(t, items, 1)
		id := items[0].ID

		_, err = app.Commissions.RequestInvoice(ctx, admin, id)
		require.NoError(t, err)
		_, err = app.Commissions.MarkInvoiced(ctx, admin, id, commissionapp.MarkInvoicedRequest{Reference: "NG-2025-014"})
		require.NoError(t, err)
		paid, err := app.Commissions.ConfirmPayment(ctx, admin, id, commissionapp.ConfirmPaymentRequest{Reference: "WIRE-88812"})
		require.NoError(t, err)
		assert.Equal(t, "paid", paid.Commission.Status)
		assert.Equal(t, "WIRE-88812", paid.Commission.PaymentReference)

		_, err = app.Commissions.Cancel(ctx, admin, id, commissionapp.ReasonRequest{Reason: "too late"})
		assert.Error(t, err)
		assert.Equal(t, 1, recorder.Count(commission.EventTypeCommissionPaid))
	})
}
