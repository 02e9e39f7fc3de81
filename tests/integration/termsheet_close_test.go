package integration

import (
	"context"
	"testing"
	"time"

	approvalapp "github.com/erp/feeengine/internal/application/approval"
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermsheetCloseSweep_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	app := buildContainer(t, testDB, "")
	ctx := context.Background()
	tenantID := uuid.New()

	ceo := directory.Profile{
		ID:          uuid.New(),
		TenantID:    tenantID,
		UserID:      uuid.New(),
		DisplayName: "Dana Whitfield",
		Email:       "ceo@fees.test",
		Roles:       []string{shared.RoleCEO},
		IsStaff:     true,
		Active:      true,
	}
	require.NoError(t, persistence.NewGormDirectoryRepository(testDB.DB).Save(ctx, &ceo))

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	openDeal := testDB.CreateTestDeal(tenantID, nil)
	matured := testDB.CreateTestTermsheet(tenantID, openDeal, yesterday)
	testDB.CreateTestTermsheet(tenantID, openDeal, time.Now().UTC().AddDate(0, 1, 0))

	draftDeal := testDB.CreateTestDeal(tenantID, nil)
	require.NoError(t, testDB.DB.Exec(`UPDATE deals SET status = ? WHERE id = ?`, deal.StatusDraft, draftDeal).Error)
	ineligible := testDB.CreateTestTermsheet(tenantID, draftDeal, yesterday)

	system := shared.SystemActor(tenantID)

	t.Run("first run opens one approval for the matured termsheet", func(t *testing.T) {
		result, err := app.Sweep.Run(ctx, system)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		require.Len(t, result.Approvals, 1)
		assert.Empty(t, result.Failed)

		reasons := make(map[uuid.UUID]string, len(result.Skipped))
		for _, s := range result.Skipped {
			reasons[s.TermsheetID] = s.Reason
		}
		assert.Equal(t, approvalapp.SkipReasonDealNotEligible, reasons[ineligible])
		assert.NotContains(t, reasons, matured)
	})

	t.Run("second run skips the termsheet with an approval", func(t *testing.T) {
		result, err := app.Sweep.Run(ctx, system)
		require.NoError(t, err)
		assert.Zero(t, result.Created)

		var found bool
		for _, s := range result.Skipped {
			if s.TermsheetID == matured {
				found = true
				assert.Equal(t, approvalapp.SkipReasonApprovalExists, s.Reason)
				assert.NotNil(t, s.ApprovalID)
			}
		}
		assert.True(t, found, "matured termsheet should be reported as skipped")
	})

	t.Run("the signer is notified in the inbox", func(t *testing.T) {
		signer := shared.Actor{TenantID: tenantID, UserID: ceo.UserID, Roles: []string{shared.RoleCEO}}
		items, err := app.Inbox.List(ctx, signer, 1, 20)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("other tenants see nothing", func(t *testing.T) {
		result, err := app.Sweep.Run(ctx, shared.SystemActor(uuid.New()))
		require.NoError(t, err)
		assert.Zero(t, result.Scanned)
	})
}
