package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/friendlyfonts/config/router"
	"github.com/akeren/friendlyfonts/internal/log"
)

const monitoringRequestsPerMinute = 10

type Cache interface {
	Ping(ctx context.Context) error
}

// Spreadsheet reports whether the waitlist spreadsheet client was built at
// startup. It never calls the remote service.
type Spreadsheet interface {
	Configured() bool
}

type HealthStatus struct {
	Cache       int `json:"cache"`       // 1 = healthy, 0 = unhealthy/not configured
	Spreadsheet int `json:"spreadsheet"` // 1 = credentials valid and client built
	Uptime      int `json:"uptime"`      // uptime in seconds
}

type MonitoringController struct {
	logger    *log.Logger
	cache     Cache
	sheets    Spreadsheet
	startTime time.Time
}

func NewMonitoringController(logger *log.Logger, cache Cache, sheets Spreadsheet, startedAt time.Time) *router.RESTController {
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	ctrl := &MonitoringController{
		logger:    logger,
		cache:     cache,
		sheets:    sheets,
		startTime: startedAt,
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			limiter := routerService.NewRateLimiter(monitoringRequestsPerMinute, time.Minute)

			routerService.AddGetHandler(controller, limiter, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)
	logger.Debug("Health check endpoint called")

	return &router.ServiceResult{
		StatusCode: http.StatusOK,
		Data:       ctrl.performHealthChecks(c.Request.Context(), logger),
		Message:    "friendlyfonts health check completed",
	}
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	checkCacheConnectivity(ctx, ctrl, &status, logger)
	checkSpreadsheetConfiguration(ctrl, &status, logger)

	return status
}

func checkCacheConnectivity(ctx context.Context, ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.cache == nil {
		logger.Debug("Cache not configured, cache health check skipped")
		return
	}

	if ctrl.cache.Ping(ctx) == nil {
		status.Cache = 1
		return
	}

	logger.Error("Cache health check failed")
}

func checkSpreadsheetConfiguration(ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.sheets != nil && ctrl.sheets.Configured() {
		status.Spreadsheet = 1
		return
	}

	logger.Warn("Spreadsheet client not configured")
}
