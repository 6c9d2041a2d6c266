package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FF_FLAG", " true ")
	assert.True(t, GetEnvBool("FF_FLAG", false))

	t.Setenv("FF_FLAG", "maybe")
	assert.True(t, GetEnvBool("FF_FLAG", true))

	t.Setenv("FF_FLAG", "")
	assert.False(t, GetEnvBool("FF_FLAG", false))
}

func TestGetEnvPositiveInt(t *testing.T) {
	t.Setenv("FF_INT", "42")
	assert.Equal(t, 42, GetEnvPositiveInt("FF_INT", 7))

	t.Setenv("FF_INT", "-3")
	assert.Equal(t, 7, GetEnvPositiveInt("FF_INT", 7))
}

func TestGetEnvPositiveDuration(t *testing.T) {
	t.Setenv("FF_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetEnvPositiveDuration("FF_DUR", time.Minute))

	t.Setenv("FF_DUR", "soon")
	assert.Equal(t, time.Minute, GetEnvPositiveDuration("FF_DUR", time.Minute))
}

func TestOTelServiceName_Default(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	assert.Equal(t, "friendlyfonts", OTelServiceName())
}
