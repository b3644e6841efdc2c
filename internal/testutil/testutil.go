// Package testutil provides test utilities and helpers.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// SheetServer is a fake spreadsheet publisher. It serves whatever body is
// currently set for a path and counts the requests it receives.
type SheetServer struct {
	*httptest.Server

	mu     sync.Mutex
	sheets map[string]response
	hits   atomic.Int64
}

type response struct {
	status      int
	contentType string
	body        []byte
}

// NewSheetServer starts a fake publisher that is closed when the test ends.
func NewSheetServer(t *testing.T) *SheetServer {
	t.Helper()

	s := &SheetServer{sheets: make(map[string]response)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// SetCSV publishes body as CSV at path and returns the absolute URL.
func (s *SheetServer) SetCSV(path, body string) string {
	return s.set(path, response{status: http.StatusOK, contentType: "text/csv; charset=utf-8", body: []byte(body)})
}

// SetBytes publishes raw content with the given content type at path.
func (s *SheetServer) SetBytes(path, contentType string, body []byte) string {
	return s.set(path, response{status: http.StatusOK, contentType: contentType, body: body})
}

// SetStatus makes path answer with an empty body and status.
func (s *SheetServer) SetStatus(path string, status int) string {
	return s.set(path, response{status: status})
}

// Hits returns the number of requests served so far.
func (s *SheetServer) Hits() int64 {
	return s.hits.Load()
}

func (s *SheetServer) set(path string, r response) string {
	s.mu.Lock()
	s.sheets[path] = r
	s.mu.Unlock()
	return s.URL + path
}

func (s *SheetServer) serve(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)

	s.mu.Lock()
	resp, ok := s.sheets[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if resp.contentType != "" {
		w.Header().Set("Content-Type", resp.contentType)
	}
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}

// ProjectsCSV is a small projects sheet spanning two schemes.
const ProjectsCSV = `Scheme,Team No,Project Info,Project Abstract,Innovata Certificates,Innovata Papers,Innovata Pictures,Innovata PPTs,Innovata Reports,Innovata Videos
2023,1,Smart Irrigation,Sensors that water crops on demand.,https://example.com/cert/1,,,,,
2022,2,,   ,,,,,,
2023,3,Campus Navigator,Indoor maps for the campus.,,https://example.com/paper/3,,,,javascript:alert(1)
,4,Orphan Team,,,,,,,
`

// PrizesCSV is a small prizes sheet spanning two years.
const PrizesCSV = `Year,Scheme,Prize Category,Event Name,Prize Name,Winner Name(s) / Team Name,Project Title (if applicable),Prizes
2023,,Best Project,,Gold,Team 1,Smart Irrigation,https://example.com/prizes/2023
2022,,,Hackathon,,,,
,2021,,,,,,https://example.com/prizes/2021
,,,,,,,
`

// AnnouncementsCSV is a small announcements sheet with one PDF link.
const AnnouncementsCSV = `Announcement Title,Announcement Date,Announcement Summary,Innovata Announcements
Final Review,2024-03-15,Schedule for the final review.,https://example.com/review
,,,https://example.com/Circular.PDF
Draft,,,
`

// FormatsCSV is a formats sheet with one guideline row.
const FormatsCSV = "Scheme,Phase-1,Phase-2\n" +
	"2021,\"http://a\nhttp://b\nnot-a-url\",\"https://c\"\n"
