// Package spreadsheettest provides an in-process stand-in for the Sheets and
// Drive REST APIs.
package spreadsheettest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"google.golang.org/api/option"
)

const SpreadsheetID = "test-spreadsheet"

type Server struct {
	*httptest.Server

	mu               sync.Mutex
	title            string
	tabs             []string
	header           []string
	rows             [][]string
	permissions      []map[string]string
	failWith         int
	failNext         int
	failNextCode     int
	requests         int
	valueInputOption string
}

// NewServer serves a spreadsheet titled "Waitlist" with one empty tab "Sheet1".
func NewServer() *Server {
	s := &Server{
		title: "Waitlist",
		tabs:  []string{"Sheet1"},
		permissions: []map[string]string{
			{"emailAddress": "owner@example.com", "role": "owner", "type": "user"},
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// ClientOptions route Google API clients at the fake without authentication.
func (s *Server) ClientOptions() []option.ClientOption {
	return []option.ClientOption{
		option.WithHTTPClient(s.Client()),
		option.WithEndpoint(s.URL + "/"),
	}
}

// FailWith makes every subsequent request answer with code. Zero clears it.
func (s *Server) FailWith(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = code
}

// FailNext answers the next n requests with code, then recovers.
func (s *Server) FailNext(code, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextCode, s.failNext = code, n
}

func (s *Server) SetHeader(values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header = append([]string(nil), values...)
}

func (s *Server) SetTabs(tabs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs = tabs
}

func (s *Server) Header() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.header...)
}

func (s *Server) Rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// ValueInputOption returns the option sent with the last write.
func (s *Server) ValueInputOption() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueInputOption
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests++

	if s.failWith != 0 {
		writeError(w, s.failWith)
		return
	}
	if s.failNext > 0 {
		s.failNext--
		writeError(w, s.failNextCode)
		return
	}

	path := r.URL.Path

	if strings.HasPrefix(path, "/files/") && strings.HasSuffix(path, "/permissions") {
		writeJSON(w, map[string]any{"permissions": s.permissions})
		return
	}

	rest, ok := strings.CutPrefix(path, "/v4/spreadsheets/")
	if !ok {
		writeError(w, http.StatusNotFound)
		return
	}

	id, tail, _ := strings.Cut(rest, "/")
	if id != SpreadsheetID {
		writeError(w, http.StatusNotFound)
		return
	}

	if tail == "" {
		s.describe(w)
		return
	}

	rng, ok := strings.CutPrefix(tail, "values/")
	if !ok {
		writeError(w, http.StatusNotFound)
		return
	}

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(rng, ":append"):
		values, err := decodeValues(r)
		if err != nil {
			writeError(w, http.StatusBadRequest)
			return
		}
		s.valueInputOption = r.URL.Query().Get("valueInputOption")
		s.rows = append(s.rows, values...)
		writeJSON(w, map[string]any{"spreadsheetId": id, "updates": map[string]any{"updatedRows": len(values)}})
	case r.Method == http.MethodPut:
		values, err := decodeValues(r)
		if err != nil || len(values) == 0 {
			writeError(w, http.StatusBadRequest)
			return
		}
		s.valueInputOption = r.URL.Query().Get("valueInputOption")
		s.header = values[0]
		writeJSON(w, map[string]any{"spreadsheetId": id, "updatedRange": rng})
	case r.Method == http.MethodGet:
		resp := map[string]any{"range": rng, "majorDimension": "ROWS"}
		if len(s.header) > 0 {
			resp["values"] = [][]string{s.header}
		}
		writeJSON(w, resp)
	default:
		writeError(w, http.StatusMethodNotAllowed)
	}
}

func (s *Server) describe(w http.ResponseWriter) {
	sheets := make([]map[string]any, 0, len(s.tabs))
	for _, tab := range s.tabs {
		sheets = append(sheets, map[string]any{"properties": map[string]any{"title": tab}})
	}

	writeJSON(w, map[string]any{
		"spreadsheetId": SpreadsheetID,
		"properties":    map[string]any{"title": s.title},
		"sheets":        sheets,
	})
}

func decodeValues(r *http.Request) ([][]string, error) {
	var body struct {
		Values [][]any `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(body.Values))
	for _, row := range body.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": http.StatusText(code),
		},
	})
}
