package models

import (
	"time"

	"github.com/akeren/friendlyfonts/pkg/constants"
)

// WaitlistEntry is one captured signup. It is appended as a spreadsheet row
// and never updated or deleted by the service.
type WaitlistEntry struct {
	Email     string
	Timestamp time.Time
}

// Row is the spreadsheet representation: email, then the UTC timestamp with
// millisecond precision.
func (e *WaitlistEntry) Row() []string {
	return []string{e.Email, e.Timestamp.UTC().Format(constants.ISO8601MillisFormat)}
}
