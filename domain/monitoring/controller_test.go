package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/friendlyfonts/config/router"
	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCache struct{ err error }

func (s stubCache) Ping(context.Context) error { return s.err }

type stubSheets bool

func (s stubSheets) Configured() bool { return bool(s) }

func health(t *testing.T, cache Cache, sheets Spreadsheet, startedAt time.Time) HealthStatus {
	t.Helper()

	rs := router.CreateRouterService(log.NewDiscardLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewMonitoringController(log.NewDiscardLogger(), cache, sheets, startedAt))

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data HealthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestHealth_AllHealthy(t *testing.T) {
	status := health(t, stubCache{}, stubSheets(true), time.Now().Add(-90*time.Second))

	assert.Equal(t, 1, status.Cache)
	assert.Equal(t, 1, status.Spreadsheet)
	assert.GreaterOrEqual(t, status.Uptime, 90)
}

func TestHealth_Degraded(t *testing.T) {
	status := health(t, stubCache{err: errors.New("connection refused")}, stubSheets(false), time.Time{})

	assert.Equal(t, 0, status.Cache)
	assert.Equal(t, 0, status.Spreadsheet)
	assert.Equal(t, 0, status.Uptime)
}

func TestHealth_NothingConfigured(t *testing.T) {
	status := health(t, nil, nil, time.Now())

	assert.Equal(t, HealthStatus{}, status)
}

func TestHealth_RateLimited(t *testing.T) {
	rs := router.CreateRouterService(log.NewDiscardLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewMonitoringController(log.NewDiscardLogger(), nil, nil, time.Now()))

	var last int
	for i := 0; i <= monitoringRequestsPerMinute; i++ {
		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		last = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
