package main

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/akeren/friendlyfonts/config"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"github.com/akeren/friendlyfonts/pkg/retry"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet"
	"github.com/akeren/friendlyfonts/pkg/spreadsheet/spreadsheettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSheets(t *testing.T) (*config.SheetsConfig, *spreadsheettest.Server) {
	t.Helper()

	srv := spreadsheettest.NewServer()
	t.Cleanup(srv.Close)

	sheets := (&config.SheetsConfig{
		Credentials: spreadsheet.Credentials{
			ServiceAccountEmail: "svc@proj.iam.gserviceaccount.com",
			PrivateKey:          spreadsheettest.EscapedPrivateKey(),
			ProjectID:           "proj",
		},
		Target:   spreadsheet.Target{SpreadsheetID: spreadsheettest.SpreadsheetID, SheetName: "Sheet1"},
		Required: true,
	}).WithClientOptions(srv.ClientOptions()...)

	require.NoError(t, sheets.Init(context.Background(), cliLogger))
	return sheets, srv
}

func fastPolicy(attempts int) retry.RetryPolicy {
	return retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
		Multiplier:  1,
		Retryable:   isRemoteFailure,
	})
}

func TestSheetsTest_ReportsConnectionAndSharing(t *testing.T) {
	sheets, srv := newSheets(t)
	var out bytes.Buffer

	err := runSheetsTest(context.Background(), &out, sheets)

	require.NoError(t, err)
	assert.Contains(t, out.String(), `Connected to "Waitlist" (test-spreadsheet)`)
	assert.Contains(t, out.String(), "[Email Timestamp] (written)")
	assert.Contains(t, out.String(), "owner@example.com")
	assert.Equal(t, []string{"Email", "Timestamp"}, srv.Header())
}

func TestSheetsTest_ExplainsForbidden(t *testing.T) {
	sheets, srv := newSheets(t)
	srv.FailWith(http.StatusForbidden)
	var out bytes.Buffer

	err := runSheetsTest(context.Background(), &out, sheets)

	require.Error(t, err)
	assert.Contains(t, out.String(), "not shared with the service account")
	assert.Contains(t, out.String(), "svc@proj.iam.gserviceaccount.com")
}

func TestSheetsSetup_RetriesRemoteFailures(t *testing.T) {
	sheets, srv := newSheets(t)
	srv.FailNext(http.StatusServiceUnavailable, 2)
	var out bytes.Buffer

	err := runSheetsSetup(context.Background(), &out, sheets, fastPolicy(3))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Header row written")
	assert.Equal(t, []string{"Email", "Timestamp"}, srv.Header())
}

func TestSheetsSetup_DoesNotRetryPermanentFailures(t *testing.T) {
	sheets, srv := newSheets(t)
	srv.FailWith(http.StatusNotFound)
	var out bytes.Buffer

	err := runSheetsSetup(context.Background(), &out, sheets, fastPolicy(5))

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Equal(t, 1, srv.Requests())
}

func TestSheetsSetup_GivesUpAfterMaxAttempts(t *testing.T) {
	sheets, srv := newSheets(t)
	srv.FailWith(http.StatusBadGateway)

	err := runSheetsSetup(context.Background(), &bytes.Buffer{}, sheets, fastPolicy(3))

	assert.True(t, retry.IsMaxRetriesExceeded(err))
	assert.Equal(t, 3, srv.Requests())
}

func TestSheetsSetup_KeepsExistingHeader(t *testing.T) {
	sheets, srv := newSheets(t)
	srv.SetHeader([]string{"Email", "Timestamp"})
	var out bytes.Buffer

	require.NoError(t, runSheetsSetup(context.Background(), &out, sheets, fastPolicy(1)))
	assert.Contains(t, out.String(), "already present")
}

func TestIsRemoteFailure(t *testing.T) {
	assert.True(t, isRemoteFailure(apperrors.NewRemoteServiceError("down", nil)))
	assert.False(t, isRemoteFailure(apperrors.NewForbiddenError("perm", nil)))
	assert.False(t, isRemoteFailure(nil))
}
