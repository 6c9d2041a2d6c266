package config

import (
	"context"
	"time"

	"github.com/akeren/friendlyfonts/config/router"
	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/pkg/constants"
	"github.com/akeren/friendlyfonts/pkg/utils"
)

type ApplicationConfig struct {
	RouterService       *router.RouterService
	Logger              *log.Logger
	Cache               Cache
	Config              *AppConfig
	Sheets              *SheetsConfig
	StartedAt           time.Time
	TracingShutdown     func(context.Context) error
	ErrorReportingFlush func()
}

type AppConfig struct {
	Environment       string
	Production        bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

func NewAppConfig() *AppConfig {
	env := GetAppEnv()

	return &AppConfig{
		Environment:       env,
		Production:        IsProductionEnv(env),
		RateLimitRequests: utils.GetEnvPositiveInt("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:   utils.GetEnvPositiveDuration("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		RequestTimeout:    utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.ErrorReportingFlush != nil {
		ac.ErrorReportingFlush()
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

// LoadApplicationConfiguration builds everything the HTTP server needs. Only
// SHEETS_REQUIRED=true makes bad spreadsheet credentials fatal.
func LoadApplicationConfiguration(logger *log.Logger) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	return BuildApplicationConfiguration(logger, NewSheetsConfig())
}

// BuildApplicationConfiguration assumes the environment is already loaded.
func BuildApplicationConfiguration(logger *log.Logger, sheets *SheetsConfig) (*ApplicationConfig, error) {
	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	flush, err := SetupErrorReporting(logger)
	if err != nil {
		return nil, err
	}

	if err := sheets.Init(context.Background(), logger); err != nil {
		return nil, err
	}

	appConfig := NewAppConfig()
	cache := NewCacheConfig().NewCacheOrNil(logger)

	routerService := router.CreateRouterService(logger, cache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully", "environment", appConfig.Environment)

	return &ApplicationConfig{
		RouterService:       routerService,
		Logger:              logger,
		Cache:               cache,
		Config:              appConfig,
		Sheets:              sheets,
		StartedAt:           time.Now(),
		TracingShutdown:     tracingShutdown,
		ErrorReportingFlush: flush,
	}, nil
}
