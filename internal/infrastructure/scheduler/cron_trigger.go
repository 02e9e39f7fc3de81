package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantProvider lists the tenants the daily jobs run for
type TenantProvider interface {
	GetAllActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StaticTenants is a TenantProvider over a fixed list
type StaticTenants []uuid.UUID

// GetAllActiveTenantIDs implements TenantProvider
func (t StaticTenants) GetAllActiveTenantIDs(context.Context) ([]uuid.UUID, error) {
	return t, nil
}

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// Hour and Minute of the daily run, in UTC
	Hour   int
	Minute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
}

// JobSubmitter queues tenant jobs
type JobSubmitter interface {
	Submit(tenantID uuid.UUID, kind JobKind) (*Job, error)
}

// CronTrigger submits one job per tenant once a day
type CronTrigger struct {
	config         CronTriggerConfig
	kind           JobKind
	submitter      JobSubmitter
	tenantProvider TenantProvider
	logger         *zap.Logger
	now            func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a trigger submitting jobs of kind
func NewCronTrigger(config CronTriggerConfig, kind JobKind, submitter JobSubmitter, tenantProvider TenantProvider, logger *zap.Logger) *CronTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &CronTrigger{
		config:         config,
		kind:           kind,
		submitter:      submitter,
		tenantProvider: tenantProvider,
		logger:         logger.Named("cron"),
		now:            time.Now,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.String("kind", string(c.kind)),
		zap.Int("hour_utc", c.config.Hour),
		zap.Int("minute", c.config.Minute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)
	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger fires once per UTC date, on the first check at or after the configured time.
// A check interval longer than a minute therefore cannot skip a day.
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now().UTC()
	currentDate := now.Format("2006-01-02")
	due := time.Date(now.Year(), now.Month(), now.Day(), c.config.Hour, c.config.Minute, 0, 0, time.UTC)

	c.mu.Lock()
	if c.lastRunDate == currentDate || now.Before(due) {
		c.mu.Unlock()
		return false
	}
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.TriggerNow(ctx)
	return true
}

// TriggerNow submits a job for every tenant immediately and returns the number queued
func (c *CronTrigger) TriggerNow(ctx context.Context) int {
	tenantIDs, err := c.tenantProvider.GetAllActiveTenantIDs(ctx)
	if err != nil {
		c.logger.Error("Failed to list tenants", zap.Error(err))
		return 0
	}

	queued := 0
	for _, tenantID := range tenantIDs {
		if _, err := c.submitter.Submit(tenantID, c.kind); err != nil {
			c.logger.Error("Failed to submit job",
				zap.String("tenant_id", tenantID.String()),
				zap.String("kind", string(c.kind)),
				zap.Error(err),
			)
			continue
		}
		queued++
	}
	c.logger.Info("Daily jobs submitted",
		zap.String("kind", string(c.kind)),
		zap.Int("tenants", len(tenantIDs)),
		zap.Int("queued", queued),
	)
	return queued
}
