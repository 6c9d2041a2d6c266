package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/akeren/friendlyfonts/config"
	"github.com/akeren/friendlyfonts/domain/diagnostics"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"github.com/akeren/friendlyfonts/pkg/retry"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Inspect and prepare the waitlist spreadsheet",
}

var sheetsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Check spreadsheet access and list who it is shared with",
	Long: `Connect with the service account, confirm the waitlist tab exists, write
the header row when it is missing and list the spreadsheet's Drive permissions.

Example:
  cli sheets test
  cli sheets test --timeout 1m`,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		sheets, err := loadSheets(ctx)
		if err != nil {
			return err
		}

		return runSheetsTest(ctx, cmd.OutOrStdout(), sheets)
	},
}

var sheetsSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write the Email/Timestamp header row if it is missing",
	Long: `Write the Email/Timestamp header row if it is missing. Transient remote
failures are retried with exponential backoff.

Example:
  cli sheets setup
  cli sheets setup --attempts 5 --base-delay 500ms`,
	RunE: func(cmd *cobra.Command, args []string) error {
		attempts, _ := cmd.Flags().GetInt("attempts")
		baseDelay, _ := cmd.Flags().GetDuration("base-delay")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		sheets, err := loadSheets(ctx)
		if err != nil {
			return err
		}

		policy := retry.NewExponentialBackoff(&retry.Config{
			MaxAttempts: attempts,
			BaseDelay:   baseDelay,
			MaxDelay:    10 * time.Second,
			Multiplier:  2,
			Retryable:   isRemoteFailure,
		})

		return runSheetsSetup(ctx, cmd.OutOrStdout(), sheets, policy)
	},
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
	sheetsCmd.AddCommand(sheetsTestCmd, sheetsSetupCmd)

	sheetsTestCmd.Flags().Duration("timeout", 30*time.Second, "Overall time limit")

	sheetsSetupCmd.Flags().Int("attempts", 3, "Maximum attempts for transient failures")
	sheetsSetupCmd.Flags().Duration("base-delay", 200*time.Millisecond, "Delay before the first retry")
	sheetsSetupCmd.Flags().Duration("timeout", time.Minute, "Overall time limit")
}

// isRemoteFailure retries only the remote kind. Authentication, sharing and
// missing spreadsheets will not fix themselves.
func isRemoteFailure(err error) bool {
	return apperrors.IsType(err, apperrors.ErrorTypeRemoteService)
}

func runSheetsTest(ctx context.Context, out io.Writer, sheets *config.SheetsConfig) error {
	service := diagnostics.NewDiagnosticsService(diagnostics.Dependencies{
		Logger:      cliLogger,
		Sheets:      sheets.Client,
		SheetsErr:   sheets.ValidationErr,
		Credentials: sheets.Credentials,
		Target:      sheets.Target,
	})

	var (
		mu       sync.Mutex
		report   *diagnostics.Report
		perms    []spreadsheet.Permission
		permsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := service.Check(gctx)
		if err != nil {
			return err
		}
		mu.Lock()
		report = r
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		p, err := sheets.Permissions(gctx)
		mu.Lock()
		perms, permsErr = p, err
		mu.Unlock()
		// Drive access is informational; it must not fail the check.
		return nil
	})

	if err := g.Wait(); err != nil {
		printFailure(out, err, sheets)
		return err
	}

	fmt.Fprintf(out, "Connected to %q (%s)\n", report.Spreadsheet.Title, report.Spreadsheet.ID)
	if !report.Spreadsheet.Sheet.Exists {
		fmt.Fprintf(out, "Tab %q not found; create it before collecting signups\n", report.Spreadsheet.Sheet.Name)
	} else {
		fmt.Fprintf(out, "Tab %q headers: %v", report.Spreadsheet.Sheet.Name, report.Spreadsheet.Sheet.Headers)
		if report.HeaderWritten {
			fmt.Fprint(out, " (written)")
		}
		fmt.Fprintln(out)
	}

	if permsErr != nil {
		fmt.Fprintf(out, "Permissions unavailable: %s\n", apperrors.MessageWithDetail(permsErr, true))
	} else {
		fmt.Fprintln(out, "Shared with:")
		for _, p := range perms {
			fmt.Fprintf(out, "  %-40s %-10s %s\n", p.EmailAddress, p.Role, p.Type)
		}
	}

	return nil
}

func printFailure(out io.Writer, err error, sheets *config.SheetsConfig) {
	fmt.Fprintf(out, "Connection test failed: %s\n", apperrors.MessageWithDetail(err, true))

	switch apperrors.GetErrorType(err) {
	case apperrors.ErrorTypeForbidden:
		fmt.Fprintln(out, "The spreadsheet is not shared with the service account:")
		for _, step := range diagnosticsShareSteps(sheets) {
			fmt.Fprintf(out, "  %s\n", step)
		}
	case apperrors.ErrorTypeNotFound:
		fmt.Fprintf(out, "Check that GOOGLE_SPREADSHEET_ID is correct (currently %s)\n", sheets.Target.SpreadsheetID)
	case apperrors.ErrorTypeUnauthorized:
		fmt.Fprintln(out, "Check GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_PRIVATE_KEY")
	}
}

func diagnosticsShareSteps(sheets *config.SheetsConfig) []string {
	return []string{
		"Open: " + sheets.Target.URL(),
		"Share with: " + sheets.Credentials.ServiceAccountEmail,
		`Set permission to "Editor"`,
	}
}

func runSheetsSetup(ctx context.Context, out io.Writer, sheets *config.SheetsConfig, policy retry.RetryPolicy) error {
	var (
		headers []string
		written bool
	)

	err := policy.Execute(ctx, func(ctx context.Context) error {
		var err error
		headers, written, err = spreadsheet.EnsureHeader(ctx, sheets.Client)
		if err != nil {
			cliLogger.Warn("Header setup attempt failed", "error", err)
		}
		return err
	})
	if err != nil {
		fmt.Fprintf(out, "Setup failed: %s\n", apperrors.MessageWithDetail(err, true))
		return err
	}

	if written {
		fmt.Fprintf(out, "Header row written to %q: %v\n", sheets.Target.SheetName, headers)
	} else {
		fmt.Fprintf(out, "Header row already present in %q: %v\n", sheets.Target.SheetName, headers)
	}

	return nil
}
