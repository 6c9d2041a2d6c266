package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect runtime configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which configuration keys are set",
	Long: `Show which configuration keys are set. Values are never printed, so the
output is safe to paste into an issue.

Example:
  cli config show
  cli config show --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return showConfiguration(cmd.OutOrStdout(), output, os.LookupEnv)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

type configGroup struct {
	Name string
	Keys []string
}

var configGroups = []configGroup{
	{"app", []string{"APP_ENV", "APP_PORT", "APP_RELEASE", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT"}},
	{"http", []string{"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "REQUEST_TIMEOUT", "MAX_REQUEST_BODY_BYTES", "TRUSTED_PROXIES", "CORS_ALLOWED_ORIGIN"}},
	{"spreadsheet", []string{"GOOGLE_SERVICE_ACCOUNT_EMAIL", "GOOGLE_PRIVATE_KEY", "GOOGLE_PROJECT_ID", "GOOGLE_SPREADSHEET_ID", "GOOGLE_SHEET_NAME", "SHEETS_REQUIRED", "SHEETS_BREAKER_ENABLED"}},
	{"redis", []string{"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB"}},
	{"observability", []string{"OTEL_TRACES_ENABLED", "OTEL_SERVICE_NAME", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_TRACES_SAMPLER_ARG", "SENTRY_DSN"}},
}

func showConfiguration(out io.Writer, output string, lookup func(string) (string, bool)) error {
	presence := map[string]map[string]bool{}
	for _, group := range configGroups {
		presence[group.Name] = map[string]bool{}
		for _, key := range group.Keys {
			v, ok := lookup(key)
			presence[group.Name][key] = ok && strings.TrimSpace(v) != ""
		}
	}

	switch output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(presence)
	case "text", "":
		for _, group := range configGroups {
			fmt.Fprintf(out, "[%s]\n", group.Name)
			for _, key := range group.Keys {
				state := "not set"
				if presence[group.Name][key] {
					state = "set"
				}
				fmt.Fprintf(out, "  %-30s %s\n", key, state)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
