package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akeren/friendlyfonts/config"
	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cli",
	Short: "Operator tooling for the FriendlyFonts site",
	Long: `Operator tooling for the FriendlyFonts site.

Commands read the same environment (and .env file) as the server.

Example:
  cli sheets test
  cli sheets setup --attempts 5
  cli config show --output json`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.InitializeEnvFile(cliLogger)
	},
}

var cliLogger = log.NewLogger(os.Stderr, "text", os.Getenv("LOG_LEVEL"))

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSheets builds the spreadsheet client the way the server does, except
// that invalid credentials are always fatal.
func loadSheets(ctx context.Context) (*config.SheetsConfig, error) {
	sheets := config.NewSheetsConfig()
	sheets.Required = true

	if missing := sheets.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%s", spreadsheet.MissingVariablesMessage(missing))
	}

	if err := sheets.Init(ctx, cliLogger); err != nil {
		return nil, err
	}

	return sheets, nil
}
