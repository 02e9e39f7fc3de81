// Package bootstrap wires repositories, services and handlers into one container
// shared by the HTTP server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	approvalapp "github.com/erp/feeengine/internal/application/approval"
	billingapp "github.com/erp/feeengine/internal/application/billing"
	commissionapp "github.com/erp/feeengine/internal/application/commission"
	feeapp "github.com/erp/feeengine/internal/application/fee"
	notificationapp "github.com/erp/feeengine/internal/application/notification"
	subscriptionapp "github.com/erp/feeengine/internal/application/subscription"
	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/cache"
	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/erp/feeengine/internal/infrastructure/event"
	"github.com/erp/feeengine/internal/infrastructure/persistence"
	"github.com/erp/feeengine/internal/infrastructure/storage"
	"github.com/erp/feeengine/internal/infrastructure/telemetry"
	"github.com/erp/feeengine/internal/infrastructure/webhook"
	"github.com/erp/feeengine/internal/interfaces/http/handler"
	"github.com/erp/feeengine/internal/interfaces/http/router"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Container holds the wired application services
type Container struct {
	Bus            *event.InMemoryEventBus
	Metrics        *telemetry.FeeMetrics
	Plans          *feeapp.PlanService
	Generator      *feeapp.FeeEventGenerator
	Subscriptions  *subscriptionapp.Service
	Invoices       *billingapp.InvoiceService
	Callbacks      *billingapp.DocumentCallbackService
	Commissions    *commissionapp.Service
	Agreements     *commissionapp.AgreementService
	Reconciliation *commissionapp.ReconciliationService
	Approvals      *approvalapp.Service
	Sweep          *approvalapp.TermsheetCloseSweep
	Inbox          *notificationapp.InboxService

	checks  map[string]handler.HealthChecker
	closers []io.Closer
}

// Build wires every service against db. meter may be a no-op meter.
func Build(ctx context.Context, cfg *config.Config, db *persistence.Database, meter metric.Meter, log *zap.Logger) (*Container, error) {
	c := &Container{checks: map[string]handler.HealthChecker{"database": db}}

	planRepo := persistence.NewGormFeePlanRepository(db.DB)
	feeEventRepo := persistence.NewGormFeeEventRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	agreementRepo := persistence.NewGormAgreementRepository(db.DB)
	dealRepo := persistence.NewGormDealRepository(db.DB)
	termsheetRepo := persistence.NewGormTermsheetRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	directoryRepo := persistence.NewGormDirectoryRepository(db.DB)
	approvalRepo := persistence.NewGormApprovalRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	auditSink := persistence.NewGormAuditSink(db.DB)

	idempotency, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateStore(ctx)
	if err != nil {
		return nil, err
	}
	if closer, ok := idempotency.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	if pinger, ok := idempotency.(handler.HealthChecker); ok {
		c.checks["redis"] = pinger
	}

	c.Bus = event.NewInMemoryEventBus(log)
	c.Metrics, err = telemetry.NewFeeMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("fee metrics: %w", err)
	}

	dispatcher := notificationapp.NewDispatcher(log, persistence.NewInboxSenders(notificationRepo)...)

	c.Plans = feeapp.NewPlanService(planRepo, feeEventRepo, log)
	c.Generator = feeapp.NewFeeEventGenerator(feeapp.GeneratorConfig{
		PlanRepo:         planRepo,
		EventRepo:        feeEventRepo,
		SubscriptionRepo: subscriptionRepo,
		EventPublisher:   c.Bus,
		Logger:           log,
	})
	c.Subscriptions = subscriptionapp.NewService(subscriptionapp.ServiceConfig{
		Repo:           subscriptionRepo,
		FeeGenerator:   c.Generator,
		EventPublisher: c.Bus,
		Logger:         log,
	})

	var documents billing.DocumentGenerator
	var verifier billingapp.SignatureVerifier
	if cfg.Webhook.Secret != "" {
		signer, err := webhook.NewHMACSigner(cfg.Webhook.Secret)
		if err != nil {
			return nil, err
		}
		verifier = signer
	}
	if cfg.Webhook.DocumentURL != "" {
		docDispatcher, err := webhook.NewDocumentDispatcher(&webhook.Config{
			DocumentURL:       cfg.Webhook.DocumentURL,
			Secret:            cfg.Webhook.Secret,
			Timeout:           cfg.Webhook.Timeout,
			RequestsPerSecond: cfg.Webhook.RequestsPerSecond,
			Burst:             cfg.Webhook.Burst,
		}, webhook.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("document webhook: %w", err)
		}
		documents = docDispatcher
	} else {
		log.Warn("webhook.document_url not set, invoices will not request documents")
	}

	c.Invoices = billingapp.NewInvoiceService(billingapp.InvoiceServiceConfig{
		InvoiceRepo:       invoiceRepo,
		FeeEventRepo:      feeEventRepo,
		DocumentGenerator: documents,
		EventPublisher:    c.Bus,
		AuditSink:         auditSink,
		CallbackURL:       cfg.Webhook.DocumentCallbackURL(),
		Logger:            log,
	})
	c.Callbacks = billingapp.NewDocumentCallbackService(billingapp.DocumentCallbackServiceConfig{
		InvoiceRepo:      invoiceRepo,
		Verifier:         verifier,
		IdempotencyStore: idempotency,
		IdempotencyTTL:   cfg.Webhook.IdempotencyTTL,
		EventPublisher:   c.Bus,
		Logger:           log,
	})

	c.Commissions = commissionapp.NewService(commissionapp.ServiceConfig{
		Repo:           commissionRepo,
		DealRepo:       dealRepo,
		AssignmentRepo: assignmentRepo,
		Notifier:       commissionapp.NewPaymentNotifier(directoryRepo, dispatcher),
		EventPublisher: c.Bus,
		AuditSink:      auditSink,
		Logger:         log,
	})
	c.Agreements = commissionapp.NewAgreementService(agreementRepo, dealRepo, log)

	var archiver commissionapp.ExportArchiver
	if cfg.Storage.Enabled {
		archive, err := storage.NewS3Archive(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("export archive: %w", err)
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("export archive: %w", err)
		}
		archiver = archive
		c.checks["storage"] = archive
	}
	c.Reconciliation = commissionapp.NewReconciliationService(commissionapp.ReconciliationServiceConfig{
		Repo:          commissionRepo,
		Archiver:      archiver,
		ArchiveURLTTL: cfg.Storage.PresignExpiration,
		Logger:        log,
	})

	c.Approvals = approvalapp.NewService(approvalRepo, c.Bus, auditSink, log)
	c.Sweep = approvalapp.NewTermsheetCloseSweep(approvalapp.TermsheetCloseSweepConfig{
		TermsheetRepo:  termsheetRepo,
		DealRepo:       dealRepo,
		ApprovalRepo:   approvalRepo,
		SnapshotReader: persistence.NewGormSnapshotReader(db.DB),
		Directory:      directoryRepo,
		Dispatcher:     dispatcher,
		EventPublisher: c.Bus,
		AuditSink:      auditSink,
		Logger:         log,
	})
	c.Inbox = notificationapp.NewInboxService(notificationRepo)

	// accrual must not double count when an event is redelivered
	accrual := commissionapp.NewAccrualHandler(agreementRepo, commissionRepo, c.Bus, log)
	c.Bus.Subscribe(event.NewIdempotentHandler(accrual, idempotency, log,
		event.WithHandlerName("commission_accrual"),
		event.WithIdempotencyConfig(shared.IdempotencyConfig{TTL: cfg.Webhook.IdempotencyTTL, Enabled: true}),
	))
	c.Bus.Subscribe(c.Metrics)

	if err := c.Bus.Start(ctx); err != nil {
		return nil, fmt.Errorf("event bus: %w", err)
	}
	return c, nil
}

// Handlers builds the HTTP handlers over the container's services
func (c *Container) Handlers(name, version string) router.Handlers {
	return router.Handlers{
		System:        handler.NewSystemHandler(name, version, c.checks),
		FeePlans:      handler.NewFeePlanHandler(c.Plans, c.Generator),
		Subscriptions: handler.NewSubscriptionHandler(c.Subscriptions),
		Invoices:      handler.NewInvoiceHandler(c.Invoices, c.Callbacks),
		Commissions:   handler.NewCommissionHandler(c.Commissions, c.Agreements, c.Reconciliation),
		Approvals:     handler.NewApprovalHandler(c.Approvals, c.Sweep),
		Notifications: handler.NewNotificationHandler(c.Inbox),
	}
}

// Close stops the bus and releases external clients
func (c *Container) Close(log *zap.Logger) {
	if err := c.Bus.Stop(context.Background()); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			log.Warn("Error closing client", zap.Error(err))
		}
	}
}
