package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newStoredInvoice(t *testing.T, repo *GormInvoiceRepository, actor shared.Actor, number string) *billing.Invoice {
	t.Helper()
	setup, err := billing.NewCustomLine("Structuring fee", decimal.NewFromInt(1), decimal.NewFromInt(1500))
	require.NoError(t, err)
	legal, err := billing.NewCustomLine("Legal review", decimal.NewFromInt(2), decimal.NewFromInt(250))
	require.NoError(t, err)

	issue := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	inv, err := billing.NewInvoice(actor, billing.NewInvoiceInput{
		InvoiceNumber: number,
		InvestorID:    uuid.New(),
		Currency:      "USD",
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 0, 30),
		Lines:         []billing.InvoiceLine{setup, legal},
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, inv))
	require.NoError(t, repo.CreateLines(ctx, inv))
	return inv
}

func TestGormInvoiceRepository_NextSequence(t *testing.T) {
	db := newFeeEngineTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	for want := 1; want <= 3; want++ {
		got, err := repo.NextSequence(ctx, tenantID, 2025)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	t.Run("new year restarts", func(t *testing.T) {
		got, err := repo.NextSequence(ctx, tenantID, 2026)
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("tenants are independent", func(t *testing.T) {
		got, err := repo.NextSequence(ctx, uuid.New(), 2025)
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("concurrent callers never share a number", func(t *testing.T) {
		other := uuid.New()
		const callers = 20
		results := make(chan int, callers)
		var wg sync.WaitGroup
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := repo.NextSequence(ctx, other, 2025)
				if assert.NoError(t, err) {
					results <- n
				}
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[int]bool, callers)
		for n := range results {
			assert.False(t, seen[n], "sequence %d allocated twice", n)
			seen[n] = true
		}
		assert.Len(t, seen, callers)
	})
}

func TestGormInvoiceRepository_CreateAndFind(t *testing.T) {
	db := newFeeEngineTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	actor := staffActor(uuid.New())

	inv := newStoredInvoice(t, repo, actor, billing.FormatInvoiceNumber(2025, 1))

	found, err := repo.FindByIDForTenant(ctx, actor.TenantID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0001", found.InvoiceNumber)
	require.Len(t, found.Lines, 2)
	assert.Equal(t, "Structuring fee", found.Lines[0].Description)
	assert.True(t, found.Total.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, billing.GenerationStatusRequested, found.GenerationStatus)

	t.Run("invoice numbers are unique", func(t *testing.T) {
		line, err := billing.NewCustomLine("Other", decimal.NewFromInt(1), decimal.NewFromInt(10))
		require.NoError(t, err)
		dup, err := billing.NewInvoice(actor, billing.NewInvoiceInput{
			InvoiceNumber: inv.InvoiceNumber,
			InvestorID:    uuid.New(),
			IssueDate:     inv.IssueDate,
			DueDate:       inv.DueDate,
			Lines:         []billing.InvoiceLine{line},
		})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("delete removes header and lines", func(t *testing.T) {
		doomed := newStoredInvoice(t, repo, actor, billing.FormatInvoiceNumber(2025, 2))
		require.NoError(t, repo.Delete(ctx, actor.TenantID, doomed.ID))

		_, err := repo.FindByIDForTenant(ctx, actor.TenantID, doomed.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var lines int64
		require.NoError(t, db.Table("invoice_lines").Where("invoice_id = ?", doomed.ID).Count(&lines).Error)
		assert.Zero(t, lines)
	})

	t.Run("list filters by issue date", func(t *testing.T) {
		from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
		invoices, err := repo.FindAllForTenant(ctx, actor.TenantID, billing.InvoiceFilter{FromDate: &from, ToDate: &to})
		require.NoError(t, err)
		assert.Len(t, invoices, 1)

		later := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		total, err := repo.CountForTenant(ctx, actor.TenantID, billing.InvoiceFilter{FromDate: &later})
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestGormInvoiceRepository_SaveGenerationIsConditional(t *testing.T) {
	db := newFeeEngineTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	actor := staffActor(uuid.New())
	inv := newStoredInvoice(t, repo, actor, billing.FormatInvoiceNumber(2025, 7))

	at := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	first, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)

	changed, err := first.MarkDocumentGenerated("https://docs.example.com/INV-2025-0007.pdf", at)
	require.NoError(t, err)
	require.True(t, changed)
	won, err := repo.SaveGeneration(ctx, first, billing.GenerationStatusRequested)
	require.NoError(t, err)
	assert.True(t, won)

	changed, err = second.MarkDocumentGenerated("https://docs.example.com/other.pdf", at)
	require.NoError(t, err)
	require.True(t, changed)
	won, err = repo.SaveGeneration(ctx, second, billing.GenerationStatusRequested)
	require.NoError(t, err)
	assert.False(t, won, "the late writer must lose")

	stored, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.GenerationStatusCompleted, stored.GenerationStatus)
	assert.Equal(t, "https://docs.example.com/INV-2025-0007.pdf", stored.DocumentURL)
	assert.Equal(t, billing.InvoiceStatusSent, stored.Status)
	assert.Equal(t, inv.Version+1, stored.Version)
}

func TestGormInvoiceRepository_AddPayment(t *testing.T) {
	db := newFeeEngineTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	actor := staffActor(uuid.New())
	inv := newStoredInvoice(t, repo, actor, billing.FormatInvoiceNumber(2025, 9))

	_, err := inv.MarkDocumentGenerated("https://docs.example.com/INV-2025-0009.pdf", time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	won, err := repo.SaveGeneration(ctx, inv, billing.GenerationStatusRequested)
	require.NoError(t, err)
	require.True(t, won)

	paidAt := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	loaded, err := repo.FindByIDForTenant(ctx, actor.TenantID, inv.ID)
	require.NoError(t, err)
	stale, err := repo.FindByIDForTenant(ctx, actor.TenantID, inv.ID)
	require.NoError(t, err)

	payment, err := loaded.RecordPayment(decimal.NewFromInt(500), paidAt, "WIRE-1")
	require.NoError(t, err)
	require.NoError(t, repo.AddPayment(ctx, loaded, payment))

	reloaded, err := repo.FindByIDForTenant(ctx, actor.TenantID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPartiallyPaid, reloaded.Status)
	require.Len(t, reloaded.Payments, 1)
	assert.True(t, reloaded.BalanceDue().Equal(decimal.NewFromInt(1500)))

	t.Run("stale payment is rejected and not stored", func(t *testing.T) {
		dup, err := stale.RecordPayment(decimal.NewFromInt(500), paidAt, "WIRE-1")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.AddPayment(ctx, stale, dup), shared.ErrConcurrencyConflict)

		again, err := repo.FindByIDForTenant(ctx, actor.TenantID, inv.ID)
		require.NoError(t, err)
		assert.Len(t, again.Payments, 1)
	})
}

func TestGormInvoiceRepository_SaveCancelledReleasesFeeEvents(t *testing.T) {
	db := newFeeEngineTestDB(t)
	repo := NewGormInvoiceRepository(db)
	events := NewGormFeeEventRepository(db)
	ctx := context.Background()
	actor := staffActor(uuid.New())

	plan := newActivePlan(t, actor, uuid.New())
	require.NoError(t, NewGormFeePlanRepository(db).Save(ctx, plan))
	billed := newAccruedEvent(t, actor.TenantID, plan, 0, uuid.New())
	other := newAccruedEvent(t, actor.TenantID, plan, 1, uuid.New())
	_, err := events.CreateAccrued(ctx, plan, []*fee.FeeEvent{billed, other}, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	inv := newStoredInvoice(t, repo, actor, billing.FormatInvoiceNumber(2025, 11))
	at := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	_, err = events.MarkInvoiced(ctx, actor.TenantID, []uuid.UUID{billed.ID}, inv.ID, at)
	require.NoError(t, err)
	_, err = events.MarkInvoiced(ctx, actor.TenantID, []uuid.UUID{other.ID}, uuid.New(), at)
	require.NoError(t, err)

	stale, err := repo.FindByIDForTenant(ctx, actor.TenantID, inv.ID)
	require.NoError(t, err)

	require.NoError(t, inv.Cancel())
	released, err := repo.SaveCancelled(ctx, inv)
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	stored, err := repo.FindByIDForTenant(ctx, actor.TenantID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusCancelled, stored.Status)

	e, err := events.FindByIDForTenant(ctx, actor.TenantID, billed.ID)
	require.NoError(t, err)
	assert.Equal(t, fee.EventStatusAccrued, e.Status)
	assert.Nil(t, e.InvoiceID)

	untouched, err := events.FindByIDForTenant(ctx, actor.TenantID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, fee.EventStatusInvoiced, untouched.Status)

	t.Run("stale cancel releases nothing", func(t *testing.T) {
		require.NoError(t, stale.Cancel())
		released, err := repo.SaveCancelled(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Zero(t, released)
	})
}

func TestGormInvoiceRepository_SaveCancelledRollsBackOnReleaseFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	repo := NewGormInvoiceRepository(gormDB)

	line, err := billing.NewCustomLine("Structuring fee", decimal.NewFromInt(1), decimal.NewFromInt(1500))
	require.NoError(t, err)
	inv, err := billing.NewInvoice(staffActor(uuid.New()), billing.NewInvoiceInput{
		InvoiceNumber: billing.FormatInvoiceNumber(2025, 12),
		InvestorID:    uuid.New(),
		IssueDate:     time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Lines:         []billing.InvoiceLine{line},
	})
	require.NoError(t, err)
	require.NoError(t, inv.Cancel())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invoices" SET .*`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "fee_events" SET .*`).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	released, err := repo.SaveCancelled(context.Background(), inv)
	require.Error(t, err)
	assert.Zero(t, released)
	assert.NoError(t, mock.ExpectationsWereMet())
}
