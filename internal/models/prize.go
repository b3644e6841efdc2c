package models

// Fallbacks for prize display fields.
const (
	PrizeCategoryFallback = "General Awards"
	PrizeNameFallback     = "Award"
	WinnersFallback       = "To Be Announced"
)

// Prize is a normalized row of the prizes sheet.
type Prize struct {
	Year         string `json:"year"`
	Category     string `json:"category"`
	Name         string `json:"name"`
	Winners      string `json:"winners"`
	ProjectTitle string `json:"project_title,omitempty"`
	DetailsURL   string `json:"details_url,omitempty"`
}
