package waitlist

import (
	"net/http"
	"time"

	"github.com/akeren/friendlyfonts/config/router"
	"github.com/akeren/friendlyfonts/internal/log"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet"
)

const (
	waitlistRequestsPerMinute = 30

	msgJoined           = "Successfully added to waitlist"
	errInvalidEmail     = "Valid email is required"
	errConfiguration    = "Server configuration error"
	errPermission       = "Permission denied: the spreadsheet is not shared with the service account"
	errAuthentication   = "Authentication failed: check the service account credentials"
	errNotFound         = "Spreadsheet not found"
	errGenericFailure   = "Failed to add to waitlist. Please try again."
	msgShareSpreadsheet = "Share the spreadsheet with the service account and give it Editor access."
)

// Dependencies are resolved once at startup. Sheets is nil when SheetsErr is
// set.
type Dependencies struct {
	Logger     *log.Logger
	Sheets     spreadsheet.Client
	SheetsErr  error
	Production bool
}

func NewWaitlistController(deps Dependencies) *router.RESTController {
	return router.NewRESTController(
		"WaitlistController",
		"/api/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			var repository WaitlistRepository
			if deps.Sheets != nil {
				repository = NewWaitlistRepository(deps.Sheets)
			}
			service := NewWaitlistService(deps.Logger, repository, deps.SheetsErr)

			metrics := newSubmissionMetrics()
			if err := rs.RegisterCollector(metrics.submissions); err != nil {
				deps.Logger.Error("Failed to register waitlist metrics", "error", err)
			}

			limiter := rs.NewRateLimiter(waitlistRequestsPerMinute, time.Minute)

			rs.AddPostHandler(c, limiter, "", joinWaitlistHandler(service, metrics, deps.Production))
		},
	)
}

func joinWaitlistHandler(service WaitlistService, metrics *submissionMetrics, production bool) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req JoinWaitlistRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind waitlist request", "error", err)
			metrics.observe(outcomeInvalid)

			return router.FailureResult(
				http.StatusBadRequest,
				errInvalidEmail,
				"Invalid request payload",
				apperrors.FormatValidationErrors(err, &req),
			)
		}

		_, err := service.Join(ctx.Request.Context(), &req)
		metrics.observe(outcomeFor(err))

		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeRemoteService) {
				router.ReportError(ctx, err)
			}
			return failureResult(err, production)
		}

		return router.OKResult(nil, msgJoined)
	}
}

// failureResult maps a Join error onto the response. Every spreadsheet
// failure is a 500 for the client; the error label tells them apart.
func failureResult(err error, production bool) *router.ServiceResult {
	switch apperrors.GetErrorType(err) {
	case apperrors.ErrorTypeInvalidRequest:
		return router.FailureResult(http.StatusBadRequest, errInvalidEmail, "", nil)
	case apperrors.ErrorTypeConfiguration:
		return router.FailureResult(http.StatusInternalServerError, errConfiguration, apperrors.GetHumanReadableMessage(err), nil)
	case apperrors.ErrorTypeForbidden:
		return router.FailureResult(http.StatusInternalServerError, errPermission, msgShareSpreadsheet, nil)
	case apperrors.ErrorTypeUnauthorized:
		return router.FailureResult(http.StatusInternalServerError, errAuthentication, "", nil)
	case apperrors.ErrorTypeNotFound:
		return router.FailureResult(http.StatusInternalServerError, errNotFound, "Check that the spreadsheet ID is correct.", nil)
	}

	message := ""
	if !production {
		message = apperrors.MessageWithDetail(err, true)
	}
	return router.FailureResult(http.StatusInternalServerError, errGenericFailure, message, nil)
}
