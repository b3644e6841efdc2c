package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"innovata/internal/models"
)

// AnnouncementTable keeps rows with an announcement link.
func AnnouncementTable() Table[models.Announcement] {
	return Table[models.Announcement]{
		Name: Announcements,
		Keep: func(r models.Row) bool {
			return r.Has(models.ColAnnLink)
		},
		Normalize: func(r models.Row, index int) models.Announcement {
			link := r.Trimmed(models.ColAnnLink)
			a := models.Announcement{
				Title:   orDefault(r.Trimmed(models.ColAnnTitle), fmt.Sprintf("Announcement #%d", index+1)),
				Summary: orDefault(r.Trimmed(models.ColAnnSummary), models.SummaryFallback),
				Link:    link,
				IsPDF:   IsPDF(link),
			}
			if !a.IsPDF {
				a.Date = FormatDate(r.Trimmed(models.ColAnnDate))
			}
			return a
		},
	}
}

// IsPDF reports whether link points at a PDF document.
func IsPDF(link string) bool {
	return strings.Contains(strings.ToLower(link), ".pdf")
}

// FormatDate renders a sheet date as "2 January 2006". Unrecognized dates are
// returned unchanged.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}
	// Slashed dates are read month first, as the sheets export them.
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return raw
	}
	return t.Format("2 January 2006")
}

// AnnouncementSelector has no facet and searches title and summary.
var AnnouncementSelector = Selector[models.Announcement]{
	SearchOf: func(a models.Announcement) []string {
		return []string{a.Title, a.Summary}
	},
}
