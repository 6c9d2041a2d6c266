package spreadsheet

import (
	"errors"
	"net/http"

	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// classify maps a Google API failure onto the application error kinds.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case http.StatusUnauthorized:
			return apperrors.NewUnauthorizedError(op+": authentication failed", err)
		case http.StatusForbidden:
			return apperrors.NewForbiddenError(op+": permission denied", err)
		case http.StatusNotFound:
			return apperrors.NewNotFoundError(op+": spreadsheet not found", err)
		}
		return apperrors.NewRemoteServiceError(op+": request failed", err)
	}

	var tokenErr *oauth2.RetrieveError
	if errors.As(err, &tokenErr) {
		return apperrors.NewUnauthorizedError(op+": token exchange rejected", err)
	}

	return apperrors.NewRemoteServiceError(op+": request failed", err)
}
