package diagnostics

import (
	"context"

	"github.com/akeren/friendlyfonts/internal/log"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet"
)

type Dependencies struct {
	Logger      *log.Logger
	Sheets      spreadsheet.Client
	SheetsErr   error
	Credentials spreadsheet.Credentials
	Target      spreadsheet.Target
	Production  bool
}

type DiagnosticsService interface {
	// Check connects to the spreadsheet, confirms the waitlist tab exists and
	// writes the header row when it is missing.
	Check(ctx context.Context) (*Report, error)
}

type diagnosticsService struct {
	deps Dependencies
}

func NewDiagnosticsService(deps Dependencies) DiagnosticsService {
	return &diagnosticsService{deps: deps}
}

func (s *diagnosticsService) Check(ctx context.Context) (*Report, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.deps.Logger)

	if s.deps.SheetsErr != nil {
		return nil, s.deps.SheetsErr
	}
	if s.deps.Sheets == nil {
		return nil, apperrors.NewConfigurationError("Spreadsheet client unavailable", nil)
	}

	info, err := s.deps.Sheets.Describe(ctx)
	if err != nil {
		logger.Error("Spreadsheet connection test failed", "error", err, "kind", apperrors.GetErrorType(err))
		return nil, err
	}

	report := &Report{
		Spreadsheet: SpreadsheetStatus{
			ID:    info.ID,
			Title: info.Title,
			Sheet: SheetStatus{Name: info.SheetName, Exists: info.SheetExists},
		},
		ServiceAccount: s.deps.Credentials.ServiceAccountEmail,
		NextSteps:      nextSteps(s.deps.Credentials.ServiceAccountEmail),
	}

	if !info.SheetExists {
		logger.Warn("Waitlist tab not found", "sheet", info.SheetName, "tabs", info.Tabs)
		return report, nil
	}

	headers, written, err := spreadsheet.EnsureHeader(ctx, s.deps.Sheets)
	if err != nil {
		logger.Error("Failed to ensure header row", "error", err)
		return nil, err
	}
	if written {
		logger.Info("Header row written", "sheet", info.SheetName)
	}

	report.Spreadsheet.Sheet.Headers = headers
	report.HeaderWritten = written

	return report, nil
}
