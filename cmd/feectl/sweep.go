package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/erp/feeengine/internal/bootstrap"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/erp/feeengine/internal/infrastructure/logger"
	"github.com/erp/feeengine/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Termsheet close sweep",
	}
	cmd.AddCommand(sweepRunCmd())
	return cmd
}

// sweepRunCmd runs the sweep once for each tenant, outside the server's schedule
func sweepRunCmd() *cobra.Command {
	var (
		tenants []string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open close approvals for matured termsheets now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ids, err := tenantIDs(tenants, cfg)
			if err != nil {
				return err
			}

			log, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stderr"})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := persistence.NewDatabase(&cfg.Database,
				persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel("warn"), cfg.Telemetry.DBSlowQueryThresh)))
			if err != nil {
				return err
			}
			defer db.Close()

			app, err := bootstrap.Build(ctx, cfg, db, noop.NewMeterProvider().Meter("feectl"), log)
			if err != nil {
				return err
			}
			defer app.Close(log)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			var failed int
			for _, tenantID := range ids {
				result, err := app.Sweep.Run(ctx, shared.SystemActor(tenantID))
				if err != nil {
					failed++
					log.Error("sweep failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
					continue
				}
				if err := enc.Encode(struct {
					TenantID uuid.UUID `json:"tenant_id"`
					Result   any       `json:"result"`
				}{tenantID, result}); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("sweep failed for %d of %d tenants", failed, len(ids))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tenants, "tenant", nil, "Tenant id to sweep (repeatable); defaults to scheduler.tenants")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Overall deadline")
	return cmd
}

func tenantIDs(flags []string, cfg *config.Config) ([]uuid.UUID, error) {
	if len(flags) == 0 {
		ids, err := cfg.Scheduler.TenantIDs()
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no tenants: pass --tenant or set FEE_SCHEDULER_TENANTS")
		}
		return ids, nil
	}
	return (&config.SchedulerConfig{Tenants: flags}).TenantIDs()
}
