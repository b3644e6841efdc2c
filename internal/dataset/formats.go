package dataset

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"innovata/internal/config"
	"innovata/internal/models"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// FormatsReader extracts guideline links from the formats sheet.
type FormatsReader struct {
	tables config.FormatTables
}

// NewFormatsReader creates a reader for the configured phase columns.
func NewFormatsReader(tables config.FormatTables) FormatsReader {
	return FormatsReader{tables: tables}
}

// Extract finds the first row carrying phase data and splits each phase cell
// into links. Entries not starting with "http" are dropped. A sheet without
// such a row yields a *DomainError.
func (f FormatsReader) Extract(rows []models.Row) (models.Formats, error) {
	columns := f.tables.PhaseColumns()

	var source models.Row
	for _, r := range rows {
		for _, col := range columns {
			if r.Has(col) {
				source = r
				break
			}
		}
		if source != nil {
			break
		}
	}

	if source == nil {
		return models.Formats{}, &DomainError{
			Dataset: Formats,
			Message: fmt.Sprintf("No format data found in the sheet for %s.", strings.Join(columns, " or ")),
		}
	}

	out := models.Formats{
		Scheme:    f.tables.Scheme,
		Phases:    make(map[string][]models.GuidelineLink, len(columns)),
		Available: []string{},
	}
	for _, phase := range f.tables.Phases {
		links := []models.GuidelineLink{}
		for _, u := range SplitLinks(source.Value(phase.Column)) {
			name := fmt.Sprintf("Guideline Link %d", len(links)+1)
			if len(links) < len(phase.Links) {
				name = phase.Links[len(links)]
			}
			links = append(links, models.GuidelineLink{Name: name, URL: u})
		}
		out.Phases[phase.Column] = links
		if len(links) > 0 {
			out.Available = append(out.Available, phase.Column)
		}
	}
	return out, nil
}

// Load fetches url and extracts the formats from it.
func (f FormatsReader) Load(ctx context.Context, fetcher RowFetcher, url string) (models.Formats, error) {
	rows, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return models.Formats{}, err
	}
	return f.Extract(rows)
}

// SplitLinks splits a multi-line cell into trimmed entries starting with "http".
func SplitLinks(cell string) []string {
	links := []string{}
	for _, part := range lineBreak.Split(cell, -1) {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "http") {
			links = append(links, part)
		}
	}
	return links
}
