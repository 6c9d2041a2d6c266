package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/internal/models"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(repo WaitlistRepository, configErr error, now time.Time) WaitlistService {
	svc := NewWaitlistService(log.NewDiscardLogger(), repo, configErr).(*waitlistService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestWaitlistService_Join(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 10, 17, 9, 30, 0, 123_000_000, time.UTC)

	t.Run("appends trimmed email with server timestamp", func(t *testing.T) {
		mockRepo := NewMockWaitlistRepository(ctrl)
		service := newTestService(mockRepo, nil, now)

		mockRepo.EXPECT().
			Append(gomock.Any(), &models.WaitlistEntry{Email: "user@example.com", Timestamp: now}).
			Return(nil)

		entry, err := service.Join(context.Background(), &JoinWaitlistRequest{Email: "  user@example.com "})

		require.NoError(t, err)
		assert.Equal(t, []string{"user@example.com", "2026-10-17T09:30:00.123Z"}, entry.Row())
	})

	t.Run("rejects email without at sign before any remote call", func(t *testing.T) {
		mockRepo := NewMockWaitlistRepository(ctrl)
		service := newTestService(mockRepo, nil, now)

		for _, email := range []string{"", "not-an-email", "   "} {
			_, err := service.Join(context.Background(), &JoinWaitlistRequest{Email: email})
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest), "email=%q", email)
		}

		_, err := service.Join(context.Background(), nil)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest))
	})

	t.Run("configuration error short-circuits", func(t *testing.T) {
		mockRepo := NewMockWaitlistRepository(ctrl)
		configErr := apperrors.NewConfigurationError("Missing environment variables: GOOGLE_PRIVATE_KEY. Please check your .env file and restart the server.", nil)
		service := newTestService(mockRepo, configErr, now)

		_, err := service.Join(context.Background(), &JoinWaitlistRequest{Email: "user@example.com"})

		assert.Same(t, configErr, err)
	})

	t.Run("client construction failure becomes configuration error", func(t *testing.T) {
		service := newTestService(nil, errors.New("create sheets service: boom"), now)

		_, err := service.Join(context.Background(), &JoinWaitlistRequest{Email: "user@example.com"})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
	})

	t.Run("repository error keeps its kind", func(t *testing.T) {
		mockRepo := NewMockWaitlistRepository(ctrl)
		service := newTestService(mockRepo, nil, now)

		mockRepo.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			Return(apperrors.NewForbiddenError("append row: permission denied", nil))

		entry, err := service.Join(context.Background(), &JoinWaitlistRequest{Email: "user@example.com"})

		assert.Nil(t, entry)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})
}
