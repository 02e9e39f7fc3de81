package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/erp/feeengine/docs"
	"github.com/erp/feeengine/internal/bootstrap"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/auth"
	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/erp/feeengine/internal/infrastructure/logger"
	"github.com/erp/feeengine/internal/infrastructure/persistence"
	"github.com/erp/feeengine/internal/infrastructure/scheduler"
	"github.com/erp/feeengine/internal/infrastructure/telemetry"
	"github.com/erp/feeengine/internal/interfaces/http/middleware"
	"github.com/erp/feeengine/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Fee Engine API
//	@version		1.0
//	@description	Fee plans, fee events, investor invoicing, party commissions and the termsheet-close sweep.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			bootLog.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	log, err := logger.New(logCfg, providers.LogCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	profiling := cfg.Telemetry.Profiling
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           profiling.Enabled,
		ServerAddress:     profiling.ServerAddress,
		ApplicationName:   profiling.ApplicationName,
		BasicAuthUser:     profiling.BasicAuthUser,
		BasicAuthPassword: profiling.BasicAuthPassword,
		ProfileCPU:        profiling.ProfileCPU,
		ProfileAlloc:      profiling.ProfileAlloc,
		ProfileInuse:      profiling.ProfileInuse,
		ProfileGoroutines: profiling.ProfileGoroutines,
		ProfileMutex:      profiling.ProfileMutex,
		ProfileBlock:      profiling.ProfileBlock,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Warn("Profiler shutdown failed", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && profiling.SpanProfiles {
		providers.EnableSpanProfiles(log)
	}

	log.Info("Starting fee engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	meter := providers.Meter()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	sqlDB, err := db.SQLDB()
	if err != nil {
		log.Fatal("Failed to access connection pool", zap.Error(err))
	}
	poolMetrics, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB)
	if err != nil {
		log.Fatal("Failed to register pool metrics", zap.Error(err))
	}
	// runs before db.Close
	defer func() {
		_ = poolMetrics.Unregister()
	}()

	app, err := bootstrap.Build(ctx, cfg, db, meter, log)
	if err != nil {
		log.Fatal("Failed to wire application", zap.Error(err))
	}
	defer app.Close(log)

	sweepScheduler, trigger := startSweepScheduler(ctx, cfg, app, log)
	if sweepScheduler != nil {
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := trigger.Stop(stopCtx); err != nil {
				log.Error("Error stopping sweep trigger", zap.Error(err))
			}
			if err := sweepScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping sweep scheduler", zap.Error(err))
			}
		}()
	}

	mode := gin.DebugMode
	if cfg.App.Env == "production" {
		mode = gin.ReleaseMode
	}
	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName:               cfg.Telemetry.ServiceName,
		Mode:                      mode,
		RequestTimeout:            cfg.HTTP.RequestTimeout,
		MaxBodySize:               cfg.HTTP.MaxBodySize,
		TrustedProxies:            cfg.HTTP.TrustedProxies,
		TracingEnabled:            providers.TracingEnabled(),
		CallbackRequestsPerSecond: cfg.Webhook.RequestsPerSecond,
		CallbackBurst:             cfg.Webhook.Burst,
		ProfilingEnabled:          profiler.IsEnabled(),
		Swagger: middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		},
	}, router.Dependencies{
		Logger:         log,
		Meter:          meter,
		TokenValidator: auth.NewJWTService(cfg.JWT),
		Handlers:       app.Handlers(cfg.App.Name, version),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

// startSweepScheduler starts the worker pool and the daily trigger when the scheduler is enabled
func startSweepScheduler(ctx context.Context, cfg *config.Config, app *bootstrap.Container, log *zap.Logger) (*scheduler.Scheduler, *scheduler.CronTrigger) {
	if !cfg.Scheduler.Enabled {
		log.Info("Termsheet close scheduler disabled")
		return nil, nil
	}
	tenants, err := cfg.Scheduler.TenantIDs()
	if err != nil {
		log.Fatal("Invalid scheduler tenants", zap.Error(err))
	}

	executor := scheduler.NewSweepExecutor(func(ctx context.Context, actor shared.Actor) error {
		_, err := app.Sweep.Run(ctx, actor)
		return err
	}, app.Metrics, log)

	pool := scheduler.NewScheduler(scheduler.Config{
		Workers:       cfg.Scheduler.Workers,
		JobTimeout:    cfg.Scheduler.JobTimeout,
		RetryAttempts: cfg.Scheduler.RetryAttempts,
		RetryDelay:    cfg.Scheduler.RetryDelay,
		QueueSize:     scheduler.DefaultConfig().QueueSize,
	}, executor, log)
	if err := pool.Start(ctx); err != nil {
		log.Fatal("Failed to start sweep scheduler", zap.Error(err))
	}

	trigger := scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
		Hour:          cfg.Scheduler.SweepHour,
		Minute:        cfg.Scheduler.SweepMinute,
		CheckInterval: cfg.Scheduler.CheckInterval,
	}, scheduler.JobKindTermsheetCloseSweep, pool, scheduler.StaticTenants(tenants), log)
	if err := trigger.Start(ctx); err != nil {
		log.Fatal("Failed to start sweep trigger", zap.Error(err))
	}

	log.Info("Termsheet close scheduler started",
		zap.Int("tenants", len(tenants)),
		zap.Int("sweep_hour_utc", cfg.Scheduler.SweepHour),
		zap.Int("workers", cfg.Scheduler.Workers),
	)
	return pool, trigger
}
