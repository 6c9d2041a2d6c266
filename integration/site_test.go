package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akeren/friendlyfonts/config"
	"github.com/akeren/friendlyfonts/domain"
	"github.com/akeren/friendlyfonts/internal/log"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet/spreadsheettest"
	"github.com/stretchr/testify/suite"
)

var testPrivateKey = spreadsheettest.EscapedPrivateKey()

func setBaseEnv(t *testing.T) {
	t.Setenv("SKIP_DOTENV", "true")
	t.Setenv("APP_ENV", "test")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("OTEL_TRACES_ENABLED", "false")
	t.Setenv("RATE_LIMIT_REQUESTS", "1000")
}

type SiteTestSuite struct {
	suite.Suite
	sheets    *spreadsheettest.Server
	server    *httptest.Server
	baseURL   string
	appConfig *config.ApplicationConfig
}

func (s *SiteTestSuite) SetupSuite() {
	setBaseEnv(s.T())

	s.sheets = spreadsheettest.NewServer()

	sheetsConfig := (&config.SheetsConfig{
		Credentials: spreadsheet.Credentials{
			ServiceAccountEmail: "waitlist@friendlyfonts.iam.gserviceaccount.com",
			PrivateKey:          testPrivateKey,
			ProjectID:           "friendlyfonts",
		},
		Target: spreadsheet.Target{SpreadsheetID: spreadsheettest.SpreadsheetID, SheetName: "Sheet1"},
	}).WithClientOptions(s.sheets.ClientOptions()...)

	var err error
	s.appConfig, err = config.BuildApplicationConfiguration(log.NewDiscardLogger(), sheetsConfig)
	s.Require().NoError(err)

	domain.SetupCoreDomain(s.appConfig)

	s.server = httptest.NewServer(s.appConfig.RouterService.GetEngine())
	s.baseURL = s.server.URL
}

func (s *SiteTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.sheets != nil {
		s.sheets.Close()
	}
}

func (s *SiteTestSuite) SetupTest() {
	s.sheets.FailWith(0)
}

func (s *SiteTestSuite) decode(resp *http.Response) map[string]any {
	defer resp.Body.Close()

	var payload map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func (s *SiteTestSuite) joinWaitlist(body string) (*http.Response, map[string]any) {
	resp, err := http.Post(s.baseURL+"/api/waitlist", "application/json", strings.NewReader(body))
	s.Require().NoError(err)
	return resp, s.decode(resp)
}

func (s *SiteTestSuite) TestHealthReportsSpreadsheet() {
	resp, err := http.Get(s.baseURL + "/health")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	data := s.decode(resp)["data"].(map[string]any)
	s.Equal(float64(1), data["spreadsheet"])
	s.Equal(float64(0), data["cache"])
	s.Contains(data, "uptime")
}

func (s *SiteTestSuite) TestPagesRender() {
	for _, path := range []string{"/", "/pricing", "/generate", "/handwriting-template", "/static/js/waitlist.js"} {
		resp, err := http.Get(s.baseURL + path)
		s.Require().NoError(err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		s.Equal(http.StatusOK, resp.StatusCode, path)
		s.NotEmpty(body, path)
	}
}

func (s *SiteTestSuite) TestJoinWaitlist_AppendsRow() {
	before := len(s.sheets.Rows())
	start := time.Now().UTC().Add(-time.Second)

	resp, payload := s.joinWaitlist(`{"email":"  ada@example.com "}`)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Successfully added to waitlist", payload["message"])
	s.NotContains(payload, "error")

	rows := s.sheets.Rows()
	s.Require().Len(rows, before+1)
	row := rows[len(rows)-1]
	s.Equal("ada@example.com", row[0])

	ts, err := time.Parse("2006-01-02T15:04:05.000Z", row[1])
	s.Require().NoError(err)
	s.True(ts.After(start))
	s.Equal("RAW", s.sheets.ValueInputOption())
}

func (s *SiteTestSuite) TestJoinWaitlist_RejectsInvalidEmail() {
	before := s.sheets.Requests()

	for _, body := range []string{`{"email":"not-an-email"}`, `{"email":""}`, `{}`, `{"email":42}`, `not json`} {
		resp, payload := s.joinWaitlist(body)

		s.Equal(http.StatusBadRequest, resp.StatusCode, body)
		s.Equal("Valid email is required", payload["error"], body)
	}

	s.Equal(before, s.sheets.Requests())
}

func (s *SiteTestSuite) TestJoinWaitlist_RemoteFailures() {
	cases := map[int]string{
		http.StatusForbidden:          "Permission denied",
		http.StatusUnauthorized:       "Authentication failed",
		http.StatusNotFound:           "Spreadsheet not found",
		http.StatusServiceUnavailable: "Failed to add to waitlist",
	}

	for code, wantErr := range cases {
		s.sheets.FailWith(code)

		resp, payload := s.joinWaitlist(`{"email":"grace@example.com"}`)

		s.Equal(http.StatusInternalServerError, resp.StatusCode, code)
		s.Contains(payload["error"], wantErr, code)
	}
}

func (s *SiteTestSuite) TestJoinWaitlist_RemoteDetailOutsideProduction() {
	s.sheets.FailWith(http.StatusServiceUnavailable)

	_, payload := s.joinWaitlist(`{"email":"grace@example.com"}`)

	s.Contains(payload["message"], "(")
}

func (s *SiteTestSuite) TestDiagnostics() {
	resp, err := http.Get(s.baseURL + "/api/test-sheets")
	s.Require().NoError(err)
	payload := s.decode(resp)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Successfully connected to Google Sheets!", payload["message"])
	s.Equal([]string{"Email", "Timestamp"}, s.sheets.Header())
}

func (s *SiteTestSuite) TestGenerateFont() {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="pdf"; filename="template.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	s.Require().NoError(err)
	_, _ = part.Write([]byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"))
	s.Require().NoError(w.Close())

	resp, err := http.Post(s.baseURL+"/api/generate-font", w.FormDataContentType(), &body)
	s.Require().NoError(err)
	payload := s.decode(resp)

	s.Equal(http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]any)
	s.Equal("template.pdf", data["fileName"])
	s.Nil(data["fontUrl"])
	s.Nil(data["fontName"])
}

func TestSiteSuite(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(SiteTestSuite))
}

// Missing credentials must not stop the site from serving, and the waitlist
// must answer without calling the spreadsheet.
func TestSiteWithoutCredentials(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}
	setBaseEnv(t)

	sheets := spreadsheettest.NewServer()
	defer sheets.Close()

	sheetsConfig := (&config.SheetsConfig{
		Credentials: spreadsheet.Credentials{ServiceAccountEmail: "waitlist@friendlyfonts.iam.gserviceaccount.com"},
		Target:      spreadsheet.Target{SpreadsheetID: spreadsheettest.SpreadsheetID, SheetName: "Sheet1"},
	}).WithClientOptions(sheets.ClientOptions()...)

	appConfig, err := config.BuildApplicationConfiguration(log.NewDiscardLogger(), sheetsConfig)
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	domain.SetupCoreDomain(appConfig)

	server := httptest.NewServer(appConfig.RouterService.GetEngine())
	defer server.Close()

	page, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("get landing: %v", err)
	}
	page.Body.Close()
	if page.StatusCode != http.StatusOK {
		t.Fatalf("landing page: expected 200, got %d", page.StatusCode)
	}

	resp, err := http.Post(server.URL+"/api/waitlist", "application/json", strings.NewReader(`{"email":"ada@example.com"}`))
	if err != nil {
		t.Fatalf("post waitlist: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if payload["error"] != "Server configuration error" {
		t.Fatalf("unexpected error %v", payload["error"])
	}
	if msg, _ := payload["message"].(string); !strings.HasPrefix(msg, "Missing environment variables: GOOGLE_PRIVATE_KEY, GOOGLE_PROJECT_ID") {
		t.Fatalf("unexpected message %q", msg)
	}
	if sheets.Requests() != 0 {
		t.Fatalf("spreadsheet was called %d times", sheets.Requests())
	}
}
