package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"go.uber.org/zap"
)

// SweepFunc runs the termsheet close sweep on behalf of actor
type SweepFunc func(ctx context.Context, actor shared.Actor) error

// SweepObserver receives the outcome of every sweep run
type SweepObserver interface {
	RecordSweep(ctx context.Context, elapsed time.Duration, err error)
}

// SweepExecutor runs termsheet close sweep jobs as the system actor of the job's tenant
type SweepExecutor struct {
	sweep    SweepFunc
	observer SweepObserver
	logger   *zap.Logger
}

// NewSweepExecutor creates a SweepExecutor. observer may be nil.
func NewSweepExecutor(sweep SweepFunc, observer SweepObserver, logger *zap.Logger) *SweepExecutor {
	return &SweepExecutor{sweep: sweep, observer: observer, logger: logger}
}

// Execute implements JobExecutor
func (e *SweepExecutor) Execute(ctx context.Context, job *Job) error {
	if job.Kind != JobKindTermsheetCloseSweep {
		return fmt.Errorf("%w: %s", ErrUnknownJobKind, job.Kind)
	}

	start := time.Now()
	err := e.sweep(ctx, shared.SystemActor(job.TenantID))
	if e.observer != nil {
		e.observer.RecordSweep(ctx, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("termsheet close sweep: %w", err)
	}
	e.logger.Debug("termsheet close sweep finished",
		zap.String("tenant_id", job.TenantID.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

var _ JobExecutor = (*SweepExecutor)(nil)
