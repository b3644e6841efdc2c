package models

// GuidelineLink is one named document link for a project phase.
type GuidelineLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Formats holds the guideline links per phase found in the formats sheet.
type Formats struct {
	Scheme string                     `json:"scheme"`
	Phases map[string][]GuidelineLink `json:"phases"`
	// Available lists the phases with at least one link, in sheet order.
	Available []string `json:"available"`
}

// Links returns the guideline links for phase, or nil.
func (f Formats) Links(phase string) []GuidelineLink {
	return f.Phases[phase]
}
