package waitlist

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

import (
	"context"

	"github.com/akeren/friendlyfonts/internal/models"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet"
)

type WaitlistRepository interface {
	// Append stores one entry as a new row. Errors carry the spreadsheet
	// failure kind.
	Append(ctx context.Context, entry *models.WaitlistEntry) error
}

type sheetsWaitlistRepository struct {
	client spreadsheet.Client
}

func NewWaitlistRepository(client spreadsheet.Client) WaitlistRepository {
	return &sheetsWaitlistRepository{client: client}
}

func (r *sheetsWaitlistRepository) Append(ctx context.Context, entry *models.WaitlistEntry) error {
	return r.client.Append(ctx, entry.Row())
}
