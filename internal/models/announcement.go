package models

// SummaryFallback is shown for announcements without a summary.
const SummaryFallback = "View the announcement for more details."

// Announcement is a normalized row of the announcements sheet.
type Announcement struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
	IsPDF   bool   `json:"is_pdf"`
	// Date is the display date; empty for PDFs and rows without a date.
	Date string `json:"date,omitempty"`
}
