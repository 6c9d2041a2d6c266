package main

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	assert.Equal(t, defaultShutdownTimeout, shutdownTimeout())

	t.Setenv("SHUTDOWN_TIMEOUT", "45s")
	assert.Equal(t, 45*time.Second, shutdownTimeout())

	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	assert.Equal(t, defaultShutdownTimeout, shutdownTimeout())
}

func TestBuildInfo_DefaultsReleaseToDev(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, prometheus.WrapRegistererWithPrefix("friendlyfonts_", reg).Register(buildInfo("", "staging")))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "friendlyfonts_build_info", families[0].GetName())

	metric := families[0].GetMetric()[0]
	labels := map[string]string{}
	for _, l := range metric.GetLabel() {
		labels[l.GetName()] = l.GetValue()
	}
	assert.Equal(t, map[string]string{"environment": "staging", "release": "dev"}, labels)
	assert.Equal(t, 1.0, metric.GetGauge().GetValue())
}
