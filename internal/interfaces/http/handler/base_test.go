package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseHandler_HandleError(t *testing.T) {
	existing := uuid.New()
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantRef    string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND", ""},
		{"wrapped forbidden", fmt.Errorf("checking access: %w", shared.ErrForbidden), http.StatusForbidden, "FORBIDDEN", ""},
		{"conflict with ref", shared.NewConflictError("DUPLICATE_SUBSCRIPTION", "duplicate", existing.String()), http.StatusConflict, "DUPLICATE_SUBSCRIPTION", existing.String()},
		{"business rule", shared.NewDomainError("FEE_PLAN_LOCKED", "locked"), http.StatusUnprocessableEntity, "FEE_PLAN_LOCKED", ""},
		{"dependency", shared.ErrDependency, http.StatusBadGateway, "DEPENDENCY_ERROR", ""},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, dto.ErrCodeTimeout, ""},
		{"opaque", errors.New("pq: connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			router := newTestRouter(nil)
			router.GET("/x", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doJSON(router, http.MethodGet, "/x", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantRef, env.Error.Ref)
			assert.Equal(t, "req-test", env.Error.RequestID)
			if tt.wantCode == dto.ErrCodeInternal {
				assert.NotContains(t, env.Error.Message, "pq:")
			}
		})
	}
}

func TestBaseHandler_RequiresActor(t *testing.T) {
	h := NewNotificationHandler(&MockInboxService{})
	router := newTestRouter(nil)
	router.GET("/notifications", h.List)

	w := doJSON(router, http.MethodGet, "/notifications", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
}

func TestBindQueryValues(t *testing.T) {
	type query struct {
		DealID   *uuid.UUID `form:"deal_id"`
		Owner    uuid.UUID  `form:"owner"`
		Status   string     `form:"status" binding:"omitempty,oneof=open closed"`
		PageSize int        `form:"page_size" binding:"omitempty,max=100"`
	}
	deal, owner := uuid.New(), uuid.New()

	t.Run("parses uuids and plain fields", func(t *testing.T) {
		var q query
		err := bindQueryValues(map[string][]string{
			"deal_id":   {deal.String()},
			"owner":     {owner.String()},
			"status":    {"open"},
			"page_size": {"50"},
		}, &q)
		require.NoError(t, err)
		require.NotNil(t, q.DealID)
		assert.Equal(t, deal, *q.DealID)
		assert.Equal(t, owner, q.Owner)
		assert.Equal(t, "open", q.Status)
		assert.Equal(t, 50, q.PageSize)
	})

	t.Run("absent uuid stays nil", func(t *testing.T) {
		var q query
		require.NoError(t, bindQueryValues(map[string][]string{}, &q))
		assert.Nil(t, q.DealID)
	})

	t.Run("malformed uuid", func(t *testing.T) {
		var q query
		err := bindQueryValues(map[string][]string{"deal_id": {"abc"}}, &q)
		var invalid *invalidUUIDParamError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, err.Error(), "deal_id")
	})

	t.Run("validation still applies", func(t *testing.T) {
		var q query
		err := bindQueryValues(map[string][]string{"status": {"pending"}}, &q)
		require.Error(t, err)
	})
}
