// Package testutil holds helpers shared by the fee engine's cross-package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTestUUID derives a reproducible UUID from seed
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// StaffAdmin returns a staff admin actor in tenantID
func StaffAdmin(tenantID uuid.UUID) shared.Actor {
	return ActorWithRoles(tenantID, shared.RoleStaffAdmin)
}

// Arranger returns an arranger actor belonging to organization orgID
func Arranger(tenantID, orgID uuid.UUID) shared.Actor {
	a := ActorWithRoles(tenantID, shared.RoleArranger)
	a.OrganizationID = &orgID
	return a
}

// ActorWithRoles returns a user actor with a fresh user ID
func ActorWithRoles(tenantID uuid.UUID, roles ...string) shared.Actor {
	return shared.Actor{
		TenantID: tenantID,
		UserID:   uuid.New(),
		Username: "test-" + roles[0],
		Roles:    roles,
	}
}

// AssertDecimal compares decimals by value so 20000 and 20000.0000 are equal
func AssertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) bool {
	t.Helper()
	expected := decimal.RequireFromString(want)
	if got.Equal(expected) {
		return true
	}
	return assert.Fail(t, "decimal mismatch: want "+expected.String()+", got "+got.String(), msgAndArgs...)
}

// ContextWithTimeout returns a context cancelled when the test ends or timeout elapses
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// RequireEventually polls condition until it holds or fails the test at timeout
func RequireEventually(t *testing.T, condition func() bool, timeout, interval time.Duration, msgAndArgs ...any) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(interval)
	}
	require.Fail(t, "Condition not met within timeout", msgAndArgs...)
}
