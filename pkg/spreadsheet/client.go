package spreadsheet

import (
	"context"
	"strings"
)

const (
	DefaultSpreadsheetID = "1P1RqLdPCHU6Pf3b9KnXH4eECbAelZ9208Ximp7E3Tz0"
	DefaultSheetName     = "Sheet1"
)

// HeaderRow is written to A1:B1 of the waitlist tab.
var HeaderRow = []string{"Email", "Timestamp"}

// Target names the spreadsheet and tab every call operates on.
type Target struct {
	SpreadsheetID string
	SheetName     string
}

func (t Target) URL() string {
	return "https://docs.google.com/spreadsheets/d/" + t.SpreadsheetID
}

// Client is the narrow surface the application needs from a spreadsheet.
type Client interface {
	Append(ctx context.Context, row []string) error
	ReadHeader(ctx context.Context) ([]string, error)
	WriteHeader(ctx context.Context, values []string) error
	Describe(ctx context.Context) (*Info, error)
}

// PermissionLister is implemented by clients that can see the sharing list.
type PermissionLister interface {
	Permissions(ctx context.Context) ([]Permission, error)
}

type Info struct {
	ID          string
	Title       string
	SheetName   string
	SheetExists bool
	Tabs        []string
}

type Permission struct {
	EmailAddress string
	Role         string
	Type         string
}

// a1 builds an A1 range for sheet, quoting the name when it is not a bare word.
func a1(sheet, cells string) string {
	bare := sheet != ""
	for _, r := range sheet {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			bare = false
			break
		}
	}
	if bare {
		return sheet + "!" + cells
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}

// EnsureHeader writes HeaderRow when the tab has no header yet. The read and
// the write are separate calls, so concurrent callers may both write; they
// write identical values.
func EnsureHeader(ctx context.Context, c Client) (headers []string, written bool, err error) {
	headers, err = c.ReadHeader(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(headers) > 0 {
		return headers, false, nil
	}

	if err := c.WriteHeader(ctx, HeaderRow); err != nil {
		return nil, false, err
	}

	return append([]string(nil), HeaderRow...), true, nil
}
