package fonts

import (
	"errors"
	"net/http"
	"time"

	"github.com/akeren/friendlyfonts/config/router"
	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/pkg/constants"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
)

const (
	uploadRequestsPerMinute = 10
	msgReceived             = "Font generation is coming soon! Your file has been received."
)

func NewFontController(logger *log.Logger, production bool) *router.RESTController {
	return router.NewRESTController(
		"FontController",
		"/api/generate-font",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewFontService(logger)
			limiter := rs.NewRateLimiter(uploadRequestsPerMinute, time.Minute)

			rs.AddPostHandler(c, limiter, "", generateFontHandler(service, production))
			// Oversized PDFs must reach the handler so it can answer with its own message.
			// Bodies past the route limit get the same answer from the router.
			rs.OverrideBodyLimit(c, http.MethodPost, "", constants.UploadRouteBodyLimit,
				router.FailureResult(http.StatusBadRequest, msgTooLarge, "", nil))
		},
	)
}

func generateFontHandler(service FontService, production bool) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		file, err := ctx.FormFile("pdf")
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.Is(err, http.ErrMissingFile):
				return router.FailureResult(http.StatusBadRequest, msgNoFile, "", nil)
			case errors.As(err, &tooLarge):
				return router.FailureResult(http.StatusBadRequest, msgTooLarge, "", nil)
			case errors.Is(err, http.ErrNotMultipart):
				return router.FailureResult(http.StatusBadRequest, msgNoFile, "", nil)
			}

			logger.Error("Failed to read multipart form", "error", err)
			return failedResult(err, production)
		}

		response, err := service.Receive(ctx.Request.Context(), file)
		if err != nil {
			if apperrors.HTTPStatusCode(err) == http.StatusBadRequest {
				return router.FailureResult(http.StatusBadRequest, apperrors.GetHumanReadableMessage(err), "", nil)
			}
			return failedResult(err, production)
		}

		return router.OKResult(response, msgReceived)
	}
}

func failedResult(err error, production bool) *router.ServiceResult {
	message := ""
	if !production {
		message = apperrors.MessageWithDetail(err, true)
	}
	return router.FailureResult(http.StatusInternalServerError, msgFailed, message, nil)
}
