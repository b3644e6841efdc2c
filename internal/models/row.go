package models

import "strings"

// Column names published by the showcase spreadsheet.
const (
	ColScheme       = "Scheme"
	ColYear         = "Year"
	ColTeamNo       = "Team No"
	ColProjectInfo  = "Project Info"
	ColAbstract     = "Project Abstract"
	ColPrizeLink    = "Prizes"
	ColPrizeCat     = "Prize Category"
	ColEventName    = "Event Name"
	ColPrizeName    = "Prize Name"
	ColWinners      = "Winner Name(s) / Team Name"
	ColPrizeProject = "Project Title (if applicable)"
	ColAnnLink      = "Innovata Announcements"
	ColAnnTitle     = "Announcement Title"
	ColAnnDate      = "Announcement Date"
	ColAnnSummary   = "Announcement Summary"
	ColPhase1       = "Phase-1"
	ColPhase2       = "Phase-2"
)

// Row is one spreadsheet record keyed by header name.
// Rows are produced by the sheet fetcher and never modified afterwards.
type Row map[string]string

// Value returns the raw cell for column, or "" when the column is absent.
func (r Row) Value(column string) string {
	return r[column]
}

// Trimmed returns the cell for column with surrounding whitespace removed.
func (r Row) Trimmed(column string) string {
	return strings.TrimSpace(r[column])
}

// Has reports whether the column holds anything other than whitespace.
func (r Row) Has(column string) bool {
	return r.Trimmed(column) != ""
}

// First returns the first non-blank value among columns, trimmed.
func (r Row) First(columns ...string) string {
	for _, col := range columns {
		if v := r.Trimmed(col); v != "" {
			return v
		}
	}
	return ""
}
