package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeren/friendlyfonts/config"
	"github.com/akeren/friendlyfonts/domain"
	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultShutdownTimeout = 15 * time.Second

func main() {
	logger := log.NewLoggerFromEnv()

	if err := run(logger); err != nil {
		logger.Error("FriendlyFonts server stopped", "error", err)
		os.Exit(1)
	}
}

// run serves the site until SIGINT or SIGTERM, then drains in-flight
// requests for at most SHUTDOWN_TIMEOUT.
func run(logger *log.Logger) error {
	appConfig, err := config.LoadApplicationConfiguration(logger)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	defer appConfig.Cleanup()

	domain.SetupCoreDomain(appConfig)

	release := utils.GetEnvTrimmed("APP_RELEASE")
	if err := appConfig.RouterService.RegisterCollector(buildInfo(release, appConfig.Config.Environment)); err != nil {
		logger.Warn("Failed to register build info", "error", err)
	}

	logger.Info("FriendlyFonts server starting",
		"environment", appConfig.Config.Environment,
		"release", release,
		"waitlist_ready", appConfig.Sheets != nil && appConfig.Sheets.Configured(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
		return errors.New("http server exited unexpectedly")
	case <-ctx.Done():
	}

	timeout := shutdownTimeout()
	logger.Info("Shutdown signal received, draining requests", "timeout", timeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("Graceful shutdown completed")
	return nil
}

func shutdownTimeout() time.Duration {
	return utils.GetEnvPositiveDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
}

// buildInfo is registered under the site namespace, so it is exported as
// friendlyfonts_build_info.
func buildInfo(release, environment string) prometheus.Collector {
	if release == "" {
		release = "dev"
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "build_info",
		Help:        "Always 1; labels carry the running release and environment.",
		ConstLabels: prometheus.Labels{"release": release, "environment": environment},
	})
	g.Set(1)
	return g
}
