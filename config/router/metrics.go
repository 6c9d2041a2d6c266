package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akeren/friendlyfonts/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// MetricsNamespace prefixes every series the site exports, domain
	// collectors included.
	MetricsNamespace = "friendlyfonts"
	metricsPath      = "/metrics"

	unmatchedRoute      = "unmatched"
	unmatchedController = "none"
)

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func metricsEnabled() bool {
	v := utils.GetEnvTrimmed("METRICS_ENABLED")
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return b
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Requests by owning controller, route template and status.",
			},
			[]string{"controller", "method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency by owning controller and route template.",
				// Pages render from memory; the waitlist waits on Google.
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"controller", "route"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served.",
		}),
	}

	reg.MustRegister(m.requests, m.duration, m.inFlight)
	return m
}

// routeLabels names the controller that owns the matched route. Unmatched
// paths share one label so scanners cannot blow up the series count.
func (routerService *RouterService) routeLabels(c *gin.Context) (controller, route string) {
	route = c.FullPath()
	if route == "" {
		return unmatchedController, unmatchedRoute
	}

	owner, ok := routerService.handlerToControllerMap[routerService.keyForPathAndMethod(route, c.Request.Method)]
	if !ok || owner == nil {
		return unmatchedController, route
	}
	return owner.name, route
}

func (routerService *RouterService) mountMetrics() {
	if !metricsEnabled() {
		routerService.logger.Info("Metrics disabled (METRICS_ENABLED=false)")
		return
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{Namespace: MetricsNamespace}))
	routerService.registry = reg

	m := newHTTPMetrics(reg)

	routerService.engine.Use(func(c *gin.Context) {
		if c.Request.URL.Path == metricsPath {
			c.Next()
			return
		}

		m.inFlight.Inc()
		start := time.Now()
		c.Next()
		m.inFlight.Dec()

		controller, route := routerService.routeLabels(c)
		status := strconv.Itoa(c.Writer.Status())

		m.requests.WithLabelValues(controller, c.Request.Method, route, status).Inc()
		m.duration.WithLabelValues(controller, route).Observe(time.Since(start).Seconds())
	})

	h := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	routerService.engine.GET(metricsPath, gin.WrapH(h))

	// Avoid exposing metrics to cross-origin browser clients by default.
	routerService.engine.OPTIONS(metricsPath, func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNoContent)
	})

	routerService.logger.Info("Metrics endpoint mounted", "path", metricsPath, "namespace", MetricsNamespace)
}
