package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/erp/feeengine/docs"
	billingapp "github.com/erp/feeengine/internal/application/billing"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/auth"
	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/erp/feeengine/internal/interfaces/http/handler"
	"github.com/erp/feeengine/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMountAPI(t *testing.T) {
	engine := gin.New()
	mountAPI(engine, NewDomainGroup("/ping").GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}))

	w := serve(engine, http.MethodGet, "/api/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = serve(engine, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		reply := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		NewDomainGroup("/items").
			GET("", reply).
			POST("", reply).
			PUT("/:id", reply).
			DELETE("/:id", reply).
			RegisterRoutes(engine.Group(APIPrefix))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/v1/items"},
			{http.MethodPost, "/api/v1/items"},
			{http.MethodPut, "/api/v1/items/1"},
			{http.MethodDelete, "/api/v1/items/1"},
		} {
			w := serve(engine, tc.method, tc.path, "", nil)
			assert.Equal(t, http.StatusOK, w.Code, tc.method)
			assert.Equal(t, tc.method, w.Body.String())
		}
	})

	t.Run("group middleware reaches subgroups", func(t *testing.T) {
		engine := gin.New()
		var hits int
		g := NewDomainGroup("/billing").Use(func(c *gin.Context) {
			hits++
			c.Next()
		})
		g.Group("/invoices").GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group(APIPrefix))

		w := serve(engine, http.MethodGet, "/api/v1/billing/invoices", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, hits)
	})

	t.Run("routes lists absolute paths depth first", func(t *testing.T) {
		noop := func(*gin.Context) {}
		g := NewDomainGroup("/billing")
		g.GET("/summary", noop)
		g.Group("/invoices").GET("", noop).POST("/:id/cancel", noop)

		assert.Equal(t, []Route{
			{http.MethodGet, "/api/v1/billing/summary"},
			{http.MethodGet, "/api/v1/billing/invoices"},
			{http.MethodPost, "/api/v1/billing/invoices/:id/cancel"},
		}, g.Routes(APIPrefix))
	})
}

func TestAPIRoutes_Table(t *testing.T) {
	var got []Route
	for _, r := range apiRoutes(testHandlers(&countingCallbacks{}), nil) {
		got = append(got, r.(*DomainGroup).Routes(APIPrefix)...)
	}
	for _, want := range []Route{
		{http.MethodPost, "/api/v1/fee-plans"},
		{http.MethodPost, "/api/v1/fee-plans/:id/amend"},
		{http.MethodGet, "/api/v1/fee-events"},
		{http.MethodPut, "/api/v1/subscriptions/:id/status"},
		{http.MethodPost, "/api/v1/subscriptions/:id/fee-events"},
		{http.MethodPost, "/api/v1/billing/invoices"},
		{http.MethodPost, "/api/v1/billing/invoices/document-callback"},
		{http.MethodPost, "/api/v1/billing/invoices/:id/payments"},
		{http.MethodGet, "/api/v1/commissions/reconciliation/export"},
		{http.MethodPost, "/api/v1/commissions/:id/confirm-payment"},
		{http.MethodGet, "/api/v1/deals/:id/commission-agreements"},
		{http.MethodPost, "/api/v1/approvals/termsheet-close/sweep"},
		{http.MethodPost, "/api/v1/notifications/:id/read"},
		{http.MethodGet, "/api/v1/health"},
	} {
		assert.Contains(t, got, want)
	}

	seen := make(map[Route]bool, len(got))
	for _, r := range got {
		assert.False(t, seen[r], "duplicate route %s %s", r.Method, r.Path)
		seen[r] = true
	}
}

type countingCallbacks struct {
	calls atomic.Int32
}

func (c *countingCallbacks) HandleCallback(_ context.Context, _ []byte, _ string) (*billingapp.CallbackResult, error) {
	c.calls.Add(1)
	return &billingapp.CallbackResult{InvoiceID: uuid.New(), Status: "completed", Processed: true}, nil
}

func testHandlers(callbacks handler.DocumentCallbackService) Handlers {
	return Handlers{
		System:        handler.NewSystemHandler("fee-engine", "test", nil),
		FeePlans:      handler.NewFeePlanHandler(nil, nil),
		Subscriptions: handler.NewSubscriptionHandler(nil),
		Invoices:      handler.NewInvoiceHandler(nil, callbacks),
		Commissions:   handler.NewCommissionHandler(nil, nil, nil),
		Approvals:     handler.NewApprovalHandler(nil, nil),
		Notifications: handler.NewNotificationHandler(nil),
	}
}

func newTestEngine(t *testing.T, callbacks handler.DocumentCallbackService, opts ...func(*EngineConfig)) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-at-least-32-chars",
		AccessTokenExpiration: time.Minute,
	})
	handlers := testHandlers(callbacks)
	cfg := EngineConfig{
		ServiceName:               "fee-engine",
		RequestTimeout:            5 * time.Second,
		MaxBodySize:               1 << 20,
		CallbackRequestsPerSecond: 0.001,
		CallbackBurst:             1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	engine, err := NewEngine(cfg, Dependencies{TokenValidator: jwtSvc, Handlers: handlers})
	require.NoError(t, err)
	return engine, jwtSvc
}

func bearer(t *testing.T, svc *auth.JWTService, roles ...string) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(auth.GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Username: "ops@example.com",
		Roles:    roles,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(engine http.Handler, method, path, authorization string, body *strings.Reader) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewEngine(t *testing.T) {
	t.Run("health is public", func(t *testing.T) {
		engine, _ := newTestEngine(t, &countingCallbacks{})
		for _, path := range []string{"/health", "/api/v1/health"} {
			w := serve(engine, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		}
	})

	t.Run("api routes need a token", func(t *testing.T) {
		engine, _ := newTestEngine(t, &countingCallbacks{})
		for _, path := range []string{"/api/v1/fee-plans", "/api/v1/commissions", "/api/v1/billing/invoices", "/api/v1/approvals"} {
			w := serve(engine, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		}
	})

	t.Run("sweep is limited to executives", func(t *testing.T) {
		engine, jwtSvc := newTestEngine(t, &countingCallbacks{})

		w := serve(engine, http.MethodPost, "/api/v1/approvals/termsheet-close/sweep", bearer(t, jwtSvc, shared.RoleLawyer), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = serve(engine, http.MethodPost, "/api/v1/subscriptions/"+uuid.NewString()+"/fee-events", bearer(t, jwtSvc, shared.RoleArranger), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("malformed ids are rejected before any service call", func(t *testing.T) {
		engine, jwtSvc := newTestEngine(t, &countingCallbacks{})

		w := serve(engine, http.MethodGet, "/api/v1/commissions/not-a-uuid", bearer(t, jwtSvc, shared.RoleStaffAdmin), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("document callback is public and rate limited", func(t *testing.T) {
		callbacks := &countingCallbacks{}
		engine, _ := newTestEngine(t, callbacks)

		w := serve(engine, http.MethodPost, "/api/v1/billing/invoices/document-callback", "", strings.NewReader(`{"status":"completed"}`))
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = serve(engine, http.MethodPost, "/api/v1/billing/invoices/document-callback", "", strings.NewReader(`{"status":"completed"}`))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
		assert.Equal(t, int32(1), callbacks.calls.Load())
	})

	t.Run("api docs are hidden unless enabled", func(t *testing.T) {
		engine, _ := newTestEngine(t, &countingCallbacks{})

		w := serve(engine, http.MethodGet, "/swagger/doc.json", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("api docs describe every route", func(t *testing.T) {
		engine, jwtSvc := newTestEngine(t, &countingCallbacks{}, func(cfg *EngineConfig) {
			cfg.Swagger = middleware.SwaggerConfig{Enabled: true, RequireAuth: true}
			cfg.ProfilingEnabled = true
		})

		w := serve(engine, http.MethodGet, "/swagger/doc.json", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = serve(engine, http.MethodGet, "/swagger/doc.json", bearer(t, jwtSvc, shared.RoleStaffAdmin), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var doc struct {
			BasePath string                    `json:"basePath"`
			Paths    map[string]map[string]any `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, APIPrefix, doc.BasePath)

		var routes []Route
		for _, r := range apiRoutes(testHandlers(&countingCallbacks{}), nil) {
			routes = append(routes, r.(*DomainGroup).Routes("")...)
		}
		for _, r := range routes {
			path := ginPathToSwagger(r.Path)
			require.Contains(t, doc.Paths, path)
			assert.Contains(t, doc.Paths[path], strings.ToLower(r.Method), "%s %s", r.Method, path)
		}
	})

	t.Run("oversized bodies are refused", func(t *testing.T) {
		engine, jwtSvc := newTestEngine(t, &countingCallbacks{})

		big := strings.NewReader(`{"notes":"` + strings.Repeat("x", 2<<20) + `"}`)
		w := serve(engine, http.MethodPost, "/api/v1/commissions", bearer(t, jwtSvc, shared.RoleStaffAdmin), big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

// ginPathToSwagger turns /fee-plans/:id into /fee-plans/{id}
func ginPathToSwagger(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = "{" + p[1:] + "}"
		}
	}
	return strings.Join(parts, "/")
}
