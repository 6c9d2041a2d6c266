package spreadsheet

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	tracerName       = "github.com/akeren/friendlyfonts/pkg/spreadsheet"
	valueInputRaw    = "RAW"
	insertRows       = "INSERT_ROWS"
	permissionFields = "permissions(emailAddress,role,type)"
)

// GoogleClient talks to the Sheets and Drive APIs for a single Target.
type GoogleClient struct {
	target Target
	sheets *sheets.Service
	drive  *drive.Service
	tracer trace.Tracer
}

// NewGoogleClient authenticates as the service account with a signed JWT.
func NewGoogleClient(ctx context.Context, creds Credentials, target Target) (*GoogleClient, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	key, err := creds.SigningKey()
	if err != nil {
		return nil, err
	}

	cfg := &jwt.Config{
		Email:      creds.ServiceAccountEmail,
		PrivateKey: key,
		Scopes:     []string{sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope},
		TokenURL:   google.JWTTokenURL,
	}

	return NewGoogleClientWithOptions(ctx, target, option.WithHTTPClient(cfg.Client(context.Background())))
}

// NewGoogleClientWithOptions skips credential handling; callers supply the
// transport through opts.
func NewGoogleClientWithOptions(ctx context.Context, target Target, opts ...option.ClientOption) (*GoogleClient, error) {
	if target.SheetName == "" {
		target.SheetName = DefaultSheetName
	}
	if target.SpreadsheetID == "" {
		target.SpreadsheetID = DefaultSpreadsheetID
	}

	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &GoogleClient{
		target: target,
		sheets: sheetsService,
		drive:  driveService,
		tracer: otel.Tracer(tracerName),
	}, nil
}

func (c *GoogleClient) Target() Target {
	return c.target
}

func (c *GoogleClient) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("spreadsheet.id", c.target.SpreadsheetID),
		attribute.String("spreadsheet.sheet", c.target.SheetName),
	))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *GoogleClient) Append(ctx context.Context, row []string) (err error) {
	ctx, span := c.start(ctx, "spreadsheet.Append")
	defer func() { finish(span, err) }()

	_, err = c.sheets.Spreadsheets.Values.
		Append(c.target.SpreadsheetID, a1(c.target.SheetName, "A:B"), &sheets.ValueRange{
			Values: [][]interface{}{toCells(row)},
		}).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()

	return classify("append row", err)
}

func (c *GoogleClient) ReadHeader(ctx context.Context) (headers []string, err error) {
	ctx, span := c.start(ctx, "spreadsheet.ReadHeader")
	defer func() { finish(span, err) }()

	resp, err := c.sheets.Spreadsheets.Values.
		Get(c.target.SpreadsheetID, a1(c.target.SheetName, "A1:B1")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("read header", err)
	}

	headers = []string{}
	if len(resp.Values) == 0 {
		return headers, nil
	}
	for _, cell := range resp.Values[0] {
		headers = append(headers, fmt.Sprint(cell))
	}

	return headers, nil
}

func (c *GoogleClient) WriteHeader(ctx context.Context, values []string) (err error) {
	ctx, span := c.start(ctx, "spreadsheet.WriteHeader")
	defer func() { finish(span, err) }()

	_, err = c.sheets.Spreadsheets.Values.
		Update(c.target.SpreadsheetID, a1(c.target.SheetName, "A1:B1"), &sheets.ValueRange{
			Values: [][]interface{}{toCells(values)},
		}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()

	return classify("write header", err)
}

func (c *GoogleClient) Describe(ctx context.Context) (info *Info, err error) {
	ctx, span := c.start(ctx, "spreadsheet.Describe")
	defer func() { finish(span, err) }()

	doc, err := c.sheets.Spreadsheets.
		Get(c.target.SpreadsheetID).
		Fields("spreadsheetId,properties.title,sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("describe spreadsheet", err)
	}

	info = &Info{ID: c.target.SpreadsheetID, SheetName: c.target.SheetName}
	if doc.Properties != nil {
		info.Title = doc.Properties.Title
	}
	for _, s := range doc.Sheets {
		if s.Properties == nil {
			continue
		}
		info.Tabs = append(info.Tabs, s.Properties.Title)
		if s.Properties.Title == c.target.SheetName {
			info.SheetExists = true
		}
	}

	return info, nil
}

func (c *GoogleClient) Permissions(ctx context.Context) (perms []Permission, err error) {
	ctx, span := c.start(ctx, "spreadsheet.Permissions")
	defer func() { finish(span, err) }()

	list, err := c.drive.Permissions.
		List(c.target.SpreadsheetID).
		Fields(permissionFields).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("list permissions", err)
	}

	for _, p := range list.Permissions {
		perms = append(perms, Permission{EmailAddress: p.EmailAddress, Role: p.Role, Type: p.Type})
	}

	return perms, nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
