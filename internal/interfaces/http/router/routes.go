package router

import (
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/interfaces/http/handler"
	"github.com/erp/feeengine/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers mounted by the engine
type Handlers struct {
	System        *handler.SystemHandler
	FeePlans      *handler.FeePlanHandler
	Subscriptions *handler.SubscriptionHandler
	Invoices      *handler.InvoiceHandler
	Commissions   *handler.CommissionHandler
	Approvals     *handler.ApprovalHandler
	Notifications *handler.NotificationHandler
}

// apiRoutes lists every resource group mounted under APIPrefix
func apiRoutes(h Handlers, callbackLimiter *middleware.RateLimiter) []RouteRegistrar {
	var all []RouteRegistrar
	all = append(all, feeRoutes(h)...)
	all = append(all, billingRoutes(h, callbackLimiter)...)
	all = append(all, commissionRoutes(h)...)
	all = append(all, workflowRoutes(h)...)
	return all
}

// executives may trigger fee generation and the close sweep by hand
var executives = []string{shared.RoleStaffAdmin, shared.RoleCEO}

// feeRoutes covers fee plans, generated fee events and subscriptions
func feeRoutes(h Handlers) []RouteRegistrar {
	plans := NewDomainGroup("/fee-plans").
		POST("", h.FeePlans.Create).
		GET("", h.FeePlans.List).
		GET("/:id", h.FeePlans.GetByID).
		POST("/:id/components", h.FeePlans.AddComponent).
		DELETE("/:id/components/:component_id", h.FeePlans.RemoveComponent).
		POST("/:id/activate", h.FeePlans.Activate).
		POST("/:id/set-default", h.FeePlans.SetDefault).
		POST("/:id/archive", h.FeePlans.Archive).
		POST("/:id/amend", h.FeePlans.Amend)

	events := NewDomainGroup("/fee-events").
		GET("", h.FeePlans.ListEvents)

	subscriptions := NewDomainGroup("/subscriptions").
		POST("", h.Subscriptions.Create).
		GET("", h.Subscriptions.List).
		POST("/bulk-status", h.Subscriptions.BulkUpdateStatus).
		GET("/:id", h.Subscriptions.GetByID).
		PUT("/:id/status", h.Subscriptions.UpdateStatus).
		POST("/:id/fee-events", middleware.RequireRole(executives...), h.FeePlans.Generate)

	return []RouteRegistrar{plans, events, subscriptions}
}

// billingRoutes covers investor invoices. The document callback is public and
// authenticated by its signature, so it gets a rate limiter instead of a token.
func billingRoutes(h Handlers, callbackLimiter *middleware.RateLimiter) []RouteRegistrar {
	callback := []gin.HandlerFunc{h.Invoices.DocumentCallback}
	if callbackLimiter != nil {
		callback = append([]gin.HandlerFunc{middleware.RateLimit(callbackLimiter)}, callback...)
	}

	billing := NewDomainGroup("/billing")
	billing.Group("/invoices").
		POST("", h.Invoices.Create).
		GET("", h.Invoices.List).
		POST("/document-callback", callback...).
		GET("/:id", h.Invoices.GetByID).
		POST("/:id/payments", h.Invoices.RecordPayment).
		POST("/:id/cancel", h.Invoices.Cancel)

	return []RouteRegistrar{billing}
}

// commissionRoutes covers the commission ledger, agreements and reconciliation
func commissionRoutes(h Handlers) []RouteRegistrar {
	commissions := NewDomainGroup("/commissions").
		POST("", h.Commissions.Record).
		GET("", h.Commissions.List).
		GET("/reconciliation", h.Commissions.Reconciliation).
		GET("/reconciliation/export", h.Commissions.ExportReconciliation).
		GET("/:id", h.Commissions.GetByID).
		POST("/:id/request-invoice", h.Commissions.RequestInvoice).
		POST("/:id/mark-invoiced", h.Commissions.MarkInvoiced).
		POST("/:id/cancel", h.Commissions.Cancel).
		POST("/:id/reject", h.Commissions.Reject).
		POST("/:id/confirm-payment", h.Commissions.ConfirmPayment)

	agreements := NewDomainGroup("/commission-agreements").
		POST("", h.Commissions.CreateAgreement).
		POST("/:id/deactivate", h.Commissions.DeactivateAgreement)

	deals := NewDomainGroup("/deals").
		GET("/:id/commission-agreements", h.Commissions.ListAgreements)

	return []RouteRegistrar{commissions, agreements, deals}
}

// workflowRoutes covers approvals and the notification inbox
func workflowRoutes(h Handlers) []RouteRegistrar {
	approvals := NewDomainGroup("/approvals").
		GET("", h.Approvals.List).
		POST("/termsheet-close/sweep", middleware.RequireRole(executives...), h.Approvals.RunSweep).
		GET("/:id", h.Approvals.GetByID).
		POST("/:id/approve", h.Approvals.Approve).
		POST("/:id/reject", h.Approvals.Reject)

	notifications := NewDomainGroup("/notifications").
		GET("", h.Notifications.List).
		POST("/:id/read", h.Notifications.MarkRead)

	system := NewDomainGroup("").
		GET("/health", h.System.Health).
		GET("/system/info", h.System.GetSystemInfo)

	return []RouteRegistrar{approvals, notifications, system}
}
