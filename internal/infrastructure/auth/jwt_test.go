package auth

import (
	"testing"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "fee-engine-test",
	})
}

func newTestInput() GenerateTokenInput {
	org := uuid.New()
	return GenerateTokenInput{
		TenantID:       uuid.New(),
		UserID:         uuid.New(),
		Username:       "arranger@example.com",
		Roles:          []string{shared.RoleArranger},
		OrganizationID: &org,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, expiresAt, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, input.TenantID.String(), claims.TenantID)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Roles, claims.Roles)
	assert.Positive(t, claims.GetRemainingTTL())
}

func TestClaims_Actor(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, _, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	actor, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, input.TenantID, actor.TenantID)
	assert.Equal(t, input.UserID, actor.UserID)
	assert.Equal(t, "arranger@example.com", actor.Username)
	assert.True(t, actor.HasRole(shared.RoleArranger))
	require.NotNil(t, actor.OrganizationID)
	assert.Equal(t, *input.OrganizationID, *actor.OrganizationID)

	t.Run("without organization", func(t *testing.T) {
		c := &Claims{TenantID: uuid.NewString(), UserID: uuid.NewString()}
		actor, err := c.Actor()
		require.NoError(t, err)
		assert.Nil(t, actor.OrganizationID)
	})

	t.Run("malformed ids", func(t *testing.T) {
		_, err := (&Claims{TenantID: "tenant", UserID: uuid.NewString()}).Actor()
		assert.ErrorIs(t, err, ErrInvalidClaims)

		_, err = (&Claims{TenantID: uuid.NewString(), UserID: uuid.NewString(), OrganizationID: "acme"}).Actor()
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestValidateAccessToken_Errors(t *testing.T) {
	svc := newTestJWTService()

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-at-least-32-chars",
			AccessTokenExpiration: -time.Hour,
			Issuer:                "fee-engine-test",
		})
		token, _, err := expired.GenerateAccessToken(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-of-32-chars!!",
			AccessTokenExpiration: time.Minute,
			Issuer:                "fee-engine-test",
		})
		token, _, err := other.GenerateAccessToken(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("different issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-at-least-32-chars",
			AccessTokenExpiration: time.Minute,
			Issuer:                "someone-else",
		})
		token, _, err := other.GenerateAccessToken(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing tenant", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "fee-engine-test",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
			UserID: uuid.NewString(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrMissingTenantID)
	})

	t.Run("rejects none algorithm", func(t *testing.T) {
		claims := &Claims{TenantID: uuid.NewString(), UserID: uuid.NewString()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
