package subscription

import (
	"testing"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSubscription(t *testing.T) *Subscription {
	t.Helper()
	s, err := NewSubscription(shared.Actor{TenantID: uuid.New(), UserID: uuid.New()}, NewSubscriptionInput{
		InvestorID:       uuid.New(),
		DealID:           uuid.New(),
		VehicleID:        uuid.New(),
		CommitmentAmount: decimal.NewFromInt(50000),
		UnitCount:        decimal.NewFromInt(500),
		EffectiveDate:    time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return s
}

func TestFingerprint(t *testing.T) {
	investor, vehicle := uuid.New(), uuid.New()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	a := Fingerprint(investor, vehicle, decimal.RequireFromString("50000"), date)
	b := Fingerprint(investor, vehicle, decimal.RequireFromString("50000.00"), date.Add(10*time.Hour))
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	c := Fingerprint(investor, vehicle, decimal.RequireFromString("50000.01"), date)
	assert.NotEqual(t, a, c)
}

func TestNewSubscription(t *testing.T) {
	s := createTestSubscription(t)
	assert.Equal(t, StatusPending, s.Status)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), s.EffectiveDate)
	assert.Equal(t, Fingerprint(s.InvestorID, s.VehicleID, s.CommitmentAmount, s.EffectiveDate), s.Fingerprint)

	_, err := NewSubscription(shared.Actor{TenantID: uuid.New()}, NewSubscriptionInput{
		InvestorID: uuid.New(), DealID: uuid.New(), VehicleID: uuid.New(),
		CommitmentAmount: decimal.Zero, EffectiveDate: time.Now(),
	})
	assert.Error(t, err)
}

func TestSubscription_TransitionTo(t *testing.T) {
	t.Run("pending to committed raises committed event", func(t *testing.T) {
		s := createTestSubscription(t)
		committed, err := s.TransitionTo(StatusCommitted, nil)
		require.NoError(t, err)
		assert.True(t, committed)
		assert.NotNil(t, s.CommittedAt)
		require.Len(t, s.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeSubscriptionCommitted, s.GetDomainEvents()[0].EventType())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		s := createTestSubscription(t)
		_, err := s.TransitionTo(StatusCommitted, nil)
		require.NoError(t, err)
		committed, err := s.TransitionTo(StatusCommitted, nil)
		require.NoError(t, err)
		assert.False(t, committed)
	})

	t.Run("pending straight to funded counts as committing", func(t *testing.T) {
		s := createTestSubscription(t)
		amount := decimal.NewFromInt(45000)
		committed, err := s.TransitionTo(StatusFunded, &amount)
		require.NoError(t, err)
		assert.True(t, committed)
		assert.True(t, s.FundedAmount.Equal(amount))
		assert.Len(t, s.GetDomainEvents(), 2)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		s := createTestSubscription(t)
		_, err := s.TransitionTo(StatusCancelled, nil)
		require.NoError(t, err)
		_, err = s.TransitionTo(StatusCommitted, nil)
		assert.Error(t, err)
	})
}
