package waitlist

import (
	"strings"
	"time"

	"github.com/akeren/friendlyfonts/internal/models"
)

type JoinWaitlistRequest struct {
	Email string `json:"email" binding:"required,contains=@"`
}

func ToWaitlistEntryModel(req *JoinWaitlistRequest, at time.Time) *models.WaitlistEntry {
	if req == nil {
		return nil
	}
	return &models.WaitlistEntry{
		Email:     strings.TrimSpace(req.Email),
		Timestamp: at.UTC(),
	}
}
