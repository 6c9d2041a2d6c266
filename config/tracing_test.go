package config

import (
	"testing"

	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOTLPEndpoint(t *testing.T) {
	cases := []struct {
		raw      string
		hostport string
		path     string
		insecure bool
	}{
		{"http://collector:4318", "collector:4318", "/v1/traces", true},
		{"https://otel.example.com/custom/traces", "otel.example.com", "/custom/traces", false},
		{"collector:4318", "collector:4318", "/v1/traces", true},
		{" http://localhost:4318/ ", "localhost:4318", "/v1/traces", true},
	}

	for _, tc := range cases {
		hostport, path, insecure, err := parseOTLPEndpoint(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.hostport, hostport, tc.raw)
		assert.Equal(t, tc.path, path, tc.raw)
		assert.Equal(t, tc.insecure, insecure, tc.raw)
	}
}

func TestParseOTLPEndpoint_Rejects(t *testing.T) {
	for _, raw := range []string{"", "grpc://collector:4317", "collector:4318/v1/traces", "http://"} {
		_, _, _, err := parseOTLPEndpoint(raw)
		assert.Error(t, err, raw)
	}
}

func TestSamplerRatio(t *testing.T) {
	ratio, err := samplerRatio("")
	require.NoError(t, err)
	assert.Equal(t, 1.0, ratio)

	ratio, err = samplerRatio("0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, ratio)

	_, err = samplerRatio("2")
	assert.Error(t, err)
	_, err = samplerRatio("half")
	assert.Error(t, err)
}

func TestResourceAttributes(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("APP_RELEASE", "1.4.0")

	attrs := map[string]string{}
	for _, kv := range resourceAttributes("friendlyfonts") {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}

	assert.Equal(t, "friendlyfonts", attrs["service.name"])
	assert.Equal(t, "staging", attrs["deployment.environment"])
	assert.Equal(t, "1.4.0", attrs["service.version"])
}

func TestSetupTracing_DisabledByDefault(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "")

	shutdown, err := SetupTracing(log.NewDiscardLogger())

	require.NoError(t, err)
	assert.Nil(t, shutdown)
}
