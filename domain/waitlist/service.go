package waitlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/internal/models"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
)

type WaitlistService interface {
	// Join validates the request, stamps it with the server clock and appends
	// it. No remote call is made when the request or configuration is invalid.
	Join(ctx context.Context, req *JoinWaitlistRequest) (*models.WaitlistEntry, error)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	configErr  error
	now        func() time.Time
}

// NewWaitlistService takes the error recorded when spreadsheet credentials
// were validated at startup; a non-nil configErr rejects every submission.
func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, configErr error) WaitlistService {
	return &waitlistService{
		logger:     logger,
		repository: repository,
		configErr:  configErr,
		now:        time.Now,
	}
}

func (s *waitlistService) Join(ctx context.Context, req *JoinWaitlistRequest) (*models.WaitlistEntry, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil || !strings.Contains(req.Email, "@") || strings.TrimSpace(req.Email) == "" {
		logger.Warn("Join received invalid email")
		return nil, apperrors.NewInvalidRequestError("Valid email is required", nil)
	}

	if err := s.configurationError(); err != nil {
		logger.Error("Spreadsheet is not configured; rejecting waitlist submission", "error", err)
		return nil, err
	}

	entry := ToWaitlistEntryModel(req, s.now())

	if err := s.repository.Append(ctx, entry); err != nil {
		logger.Error("Failed to append waitlist entry",
			"error", err,
			"kind", apperrors.GetErrorType(err),
		)
		return nil, err
	}

	logger.Info("Waitlist entry appended")
	return entry, nil
}

func (s *waitlistService) configurationError() error {
	if s.configErr != nil {
		var appErr *apperrors.AppError
		if errors.As(s.configErr, &appErr) && appErr.Type == apperrors.ErrorTypeConfiguration {
			return s.configErr
		}
		return apperrors.NewConfigurationError("Spreadsheet client unavailable", s.configErr)
	}
	if s.repository == nil {
		return apperrors.NewConfigurationError("Spreadsheet client unavailable", nil)
	}
	return nil
}
