// Package sheet downloads published spreadsheet data and parses it into rows.
package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"innovata/internal/models"
)

// Format selects how a downloaded sheet is parsed.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// maxBodySize caps a downloaded sheet.
const maxBodySize = 16 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ParseFormat maps a configuration value to a Format. Unknown values fall back to auto.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV
	case FormatXLSX:
		return FormatXLSX
	default:
		return FormatAuto
	}
}

// Fetcher retrieves published sheets over HTTP.
type Fetcher struct {
	client  *http.Client
	format  Format
	maxBody int64
}

// NewFetcher creates a fetcher with the given request timeout and format.
func NewFetcher(timeout time.Duration, format Format) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		format:  format,
		maxBody: maxBodySize,
	}
}

// Fetch downloads url and parses it into rows. It returns ErrNotConfigured for
// an empty url, *NetworkError for transport failures and *ParseError when the
// content is malformed. Fetch never retries.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]models.Row, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("invalid URL: %w", err)}
	}
	req.Header.Set("User-Agent", "Innovata-SheetFetcher/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(payload)) > f.maxBody {
		return nil, &ParseError{Message: fmt.Sprintf("sheet too large (over %d bytes)", f.maxBody)}
	}

	body := bytes.NewReader(payload)
	switch detectFormat(f.format, url, resp.Header.Get("Content-Type")) {
	case FormatXLSX:
		return ParseXLSX(body)
	default:
		return ParseCSV(body)
	}
}

func detectFormat(configured Format, url, contentType string) Format {
	if configured == FormatCSV || configured == FormatXLSX {
		return configured
	}
	if strings.HasPrefix(contentType, xlsxContentType) {
		return FormatXLSX
	}
	lower := strings.ToLower(url)
	if strings.Contains(lower, "output=xlsx") || strings.HasSuffix(lower, ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}
