package diagnostics

import "fmt"

type SheetStatus struct {
	Name    string   `json:"name"`
	Exists  bool     `json:"exists"`
	Headers []string `json:"headers,omitempty"`
}

type SpreadsheetStatus struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Sheet SheetStatus `json:"sheet"`
}

// Report is the result of a successful connection check.
type Report struct {
	Spreadsheet    SpreadsheetStatus `json:"spreadsheet"`
	ServiceAccount string            `json:"serviceAccount"`
	HeaderWritten  bool              `json:"headerWritten"`
	NextSteps      []string          `json:"nextSteps"`
}

type MissingConfiguration struct {
	Missing []string `json:"missing"`
}

type PermissionDenied struct {
	ServiceAccount string   `json:"serviceAccount"`
	Instructions   []string `json:"instructions"`
}

type SpreadsheetNotFound struct {
	SpreadsheetID string `json:"spreadsheetId"`
}

func nextSteps(serviceAccount string) []string {
	return []string{
		fmt.Sprintf("Share the spreadsheet with: %s", serviceAccount),
		`Give it "Editor" permissions`,
		"The waitlist is ready to use!",
	}
}

func shareInstructions(url, serviceAccount string) []string {
	return []string{
		fmt.Sprintf("1. Open: %s", url),
		`2. Click "Share" button (top right)`,
		fmt.Sprintf("3. Add: %s", serviceAccount),
		`4. Set permission to "Editor"`,
		`5. Click "Share"`,
	}
}
