package config

import (
	"fmt"
	"time"

	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/pkg/utils"
	"github.com/getsentry/sentry-go"
)

// SetupErrorReporting initialises Sentry when SENTRY_DSN is set. The returned
// function flushes buffered events and is nil when reporting is disabled.
func SetupErrorReporting(logger *log.Logger) (func(), error) {
	dsn := utils.GetEnvTrimmed("SENTRY_DSN")
	if dsn == "" {
		logger.Info("Error reporting disabled (SENTRY_DSN not set)")
		return nil, nil
	}

	env := GetAppEnv()
	if env == "" {
		env = "development"
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          utils.GetEnvTrimmed("APP_RELEASE"),
		Environment:      env,
		SampleRate:       1.0,
		AttachStacktrace: true,
	}); err != nil {
		return nil, fmt.Errorf("setup error reporting: %w", err)
	}

	logger.Info("Error reporting enabled", "environment", env)

	return func() {
		sentry.Flush(5 * time.Second)
	}, nil
}
