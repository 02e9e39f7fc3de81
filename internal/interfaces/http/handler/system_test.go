package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Health(t *testing.T) {
	healthy := HealthCheckFunc(func(context.Context) error { return nil })
	down := HealthCheckFunc(func(context.Context) error { return errors.New("dial tcp: connection refused") })

	tests := []struct {
		name       string
		checks     map[string]HealthChecker
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "all dependencies up",
			checks:     map[string]HealthChecker{"database": healthy, "redis": healthy},
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "ok", Checks: map[string]string{"database": "ok", "redis": "ok"}},
		},
		{
			name:       "one dependency down",
			checks:     map[string]HealthChecker{"database": healthy, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: "degraded", Checks: map[string]string{"database": "ok", "redis": "dial tcp: connection refused"}},
		},
		{
			name:       "no checks configured",
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "ok"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler("fee-engine", "test", tt.checks)
			router := newTestRouter(nil)
			router.GET("/health", h.Health)

			w := doJSON(router, http.MethodGet, "/health", nil)

			require.Equal(t, tt.wantStatus, w.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody.Status, got.Status)
			if len(tt.wantBody.Checks) > 0 {
				assert.Equal(t, tt.wantBody.Checks, got.Checks)
			} else {
				assert.Empty(t, got.Checks)
			}
		})
	}
}

func TestSystemHandler_Health_CheckHonoursDeadline(t *testing.T) {
	var sawDeadline bool
	h := NewSystemHandler("fee-engine", "test", map[string]HealthChecker{
		"database": HealthCheckFunc(func(ctx context.Context) error {
			_, sawDeadline = ctx.Deadline()
			return nil
		}),
	})
	router := newTestRouter(nil)
	router.GET("/health", h.Health)

	w := doJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sawDeadline)
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("fee-engine", "1.4.0", nil)
	router := newTestRouter(nil)
	router.GET("/system/info", h.GetSystemInfo)

	w := doJSON(router, http.MethodGet, "/system/info", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp APIResponse[SystemInfoResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "fee-engine", resp.Data.Name)
	assert.Equal(t, "1.4.0", resp.Data.Version)
	assert.NotEmpty(t, resp.Data.GoVersion)
}
