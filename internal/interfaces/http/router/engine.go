package router

import (
	"fmt"
	"time"

	"github.com/erp/feeengine/internal/infrastructure/logger"
	"github.com/erp/feeengine/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

// EngineConfig holds the HTTP surface settings
type EngineConfig struct {
	ServiceName    string
	Mode           string // gin mode: debug, release, test
	RequestTimeout time.Duration
	MaxBodySize    int64
	TrustedProxies []string
	TracingEnabled bool
	// CallbackRequestsPerSecond limits the public document callback per client IP; 0 disables it
	CallbackRequestsPerSecond float64
	CallbackBurst             int
	// ProfilingEnabled labels request CPU samples for Pyroscope
	ProfilingEnabled bool
	Swagger          middleware.SwaggerConfig
}

// Dependencies are the collaborators the engine wires into middleware
type Dependencies struct {
	Logger         *zap.Logger
	Meter          metric.Meter
	TokenValidator middleware.TokenValidator
	Handlers       Handlers
}

// NewEngine builds the gin engine with the middleware chain and every route.
// Order matters: tracing opens the span, the request id feeds the logger,
// and auth runs before SpanAttributes reads the actor.
func NewEngine(cfg EngineConfig, deps Dependencies) (*gin.Engine, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if err := middleware.SetupValidator(); err != nil {
		return nil, fmt.Errorf("router: register validators: %w", err)
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	meter := deps.Meter
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(cfg.ServiceName)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("router: trusted proxies: %w", err)
	}

	jwtCfg := middleware.DefaultJWTConfig(deps.TokenValidator)
	jwtCfg.Logger = log

	engine.Use(
		middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.HTTPMetrics(meter, log),
		middleware.Timeout(cfg.RequestTimeout),
		middleware.BodyLimit(cfg.MaxBodySize),
		middleware.JWTAuth(jwtCfg),
		middleware.SpanAttributes(),
		middleware.Profiling(profilingConfig(cfg.ProfilingEnabled)),
	)

	engine.GET("/health", deps.Handlers.System.Health)

	docsAuth := middleware.JWTAuth(middleware.JWTMiddlewareConfig{Validator: deps.TokenValidator, Logger: log})
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, docsAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	var callbackLimiter *middleware.RateLimiter
	if cfg.CallbackRequestsPerSecond > 0 {
		burst := cfg.CallbackBurst
		if burst < 1 {
			burst = 1
		}
		callbackLimiter = middleware.NewRateLimiter(cfg.CallbackRequestsPerSecond, burst)
	}

	mountAPI(engine, apiRoutes(deps.Handlers, callbackLimiter)...)

	return engine, nil
}

func profilingConfig(enabled bool) middleware.ProfilingConfig {
	cfg := middleware.DefaultProfilingConfig()
	cfg.Enabled = enabled
	return cfg
}
