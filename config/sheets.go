package config

import (
	"context"
	"fmt"

	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/pkg/circuitbreaker"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet"
	"github.com/akeren/friendlyfonts/pkg/utils"
	"google.golang.org/api/option"
)

// SheetsConfig holds the spreadsheet credentials validated once at start.
// When ValidationErr is set, Client is nil and handlers answer with the
// stored error instead of calling the remote service.
type SheetsConfig struct {
	Credentials    spreadsheet.Credentials
	Target         spreadsheet.Target
	Required       bool
	BreakerEnabled bool
	ValidationErr  error
	Client         spreadsheet.Client

	clientOptions []option.ClientOption
}

func NewSheetsConfig() *SheetsConfig {
	return &SheetsConfig{
		Credentials: spreadsheet.LoadCredentialsFromEnv(),
		Target: spreadsheet.Target{
			SpreadsheetID: utils.GetEnvTrimmedOrDefault("GOOGLE_SPREADSHEET_ID", spreadsheet.DefaultSpreadsheetID),
			SheetName:     utils.GetEnvTrimmedOrDefault("GOOGLE_SHEET_NAME", spreadsheet.DefaultSheetName),
		},
		Required:       utils.GetEnvBool("SHEETS_REQUIRED", false),
		BreakerEnabled: utils.GetEnvBool("SHEETS_BREAKER_ENABLED", false),
	}
}

// WithClientOptions routes the Google clients through opts and skips the
// service account token exchange. Tests point it at a local fake.
func (sc *SheetsConfig) WithClientOptions(opts ...option.ClientOption) *SheetsConfig {
	sc.clientOptions = opts
	return sc
}

func (sc *SheetsConfig) Configured() bool {
	return sc.ValidationErr == nil && sc.Client != nil
}

func (sc *SheetsConfig) Missing() []string {
	return sc.Credentials.Missing()
}

// Init validates the credentials and builds the client. An error is returned
// only when the spreadsheet is required.
func (sc *SheetsConfig) Init(ctx context.Context, logger *log.Logger) error {
	if err := sc.Credentials.Validate(); err != nil {
		sc.ValidationErr = err
		if sc.Required {
			return fmt.Errorf("spreadsheet credentials: %w", err)
		}
		logger.Warn("Spreadsheet credentials invalid; waitlist submissions will be rejected",
			"error", err,
			"missing", sc.Missing(),
		)
		return nil
	}

	client, err := sc.newGoogleClient(ctx)
	if err != nil {
		sc.ValidationErr = err
		if sc.Required {
			return fmt.Errorf("spreadsheet client: %w", err)
		}
		logger.Error("Failed to create spreadsheet client", "error", err)
		return nil
	}

	if sc.BreakerEnabled {
		sc.Client = spreadsheet.NewBreakerClient(client, circuitbreaker.DefaultConfig())
		logger.Info("Spreadsheet circuit breaker enabled")
	} else {
		sc.Client = client
	}

	logger.Info("Spreadsheet client configured",
		"spreadsheet_id", sc.Target.SpreadsheetID,
		"sheet", sc.Target.SheetName,
		"service_account", sc.Credentials.ServiceAccountEmail,
	)

	return nil
}

func (sc *SheetsConfig) newGoogleClient(ctx context.Context) (*spreadsheet.GoogleClient, error) {
	if len(sc.clientOptions) > 0 {
		return spreadsheet.NewGoogleClientWithOptions(ctx, sc.Target, sc.clientOptions...)
	}
	return spreadsheet.NewGoogleClient(ctx, sc.Credentials, sc.Target)
}

// Permissions is available when the underlying client can list sharing.
func (sc *SheetsConfig) Permissions(ctx context.Context) ([]spreadsheet.Permission, error) {
	lister, ok := sc.Client.(spreadsheet.PermissionLister)
	if !ok {
		return nil, fmt.Errorf("spreadsheet client cannot list permissions")
	}
	return lister.Permissions(ctx)
}
