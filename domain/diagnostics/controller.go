package diagnostics

import (
	"net/http"
	"time"

	"github.com/akeren/friendlyfonts/config/router"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
)

const diagnosticRequestsPerMinute = 10

func NewDiagnosticsController(deps Dependencies) *router.RESTController {
	return router.NewRESTController(
		"DiagnosticsController",
		"/api/test-sheets",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewDiagnosticsService(deps)
			limiter := rs.NewRateLimiter(diagnosticRequestsPerMinute, time.Minute)

			rs.AddGetHandler(c, limiter, "", testSheetsHandler(service, deps))
		},
	)
}

func testSheetsHandler(service DiagnosticsService, deps Dependencies) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		if missing := deps.Credentials.Missing(); len(missing) > 0 {
			return router.FailureResult(
				http.StatusInternalServerError,
				"Missing environment variables",
				"",
				MissingConfiguration{Missing: missing},
			)
		}

		report, err := service.Check(ctx.Request.Context())
		if err != nil {
			return checkFailure(err, deps)
		}

		return router.OKResult(report, "Successfully connected to Google Sheets!")
	}
}

func checkFailure(err error, deps Dependencies) *router.ServiceResult {
	switch apperrors.GetErrorType(err) {
	case apperrors.ErrorTypeConfiguration:
		return router.FailureResult(http.StatusInternalServerError, "Server configuration error", apperrors.GetHumanReadableMessage(err), nil)
	case apperrors.ErrorTypeForbidden:
		return router.FailureResult(
			http.StatusForbidden,
			"Permission denied",
			"The spreadsheet is not shared with the service account",
			PermissionDenied{
				ServiceAccount: deps.Credentials.ServiceAccountEmail,
				Instructions:   shareInstructions(deps.Target.URL(), deps.Credentials.ServiceAccountEmail),
			},
		)
	case apperrors.ErrorTypeNotFound:
		return router.FailureResult(
			http.StatusNotFound,
			"Spreadsheet not found",
			"Check that the spreadsheet ID is correct",
			SpreadsheetNotFound{SpreadsheetID: deps.Target.SpreadsheetID},
		)
	}

	return router.FailureResult(
		http.StatusInternalServerError,
		"Connection test failed",
		apperrors.MessageWithDetail(err, !deps.Production),
		nil,
	)
}
