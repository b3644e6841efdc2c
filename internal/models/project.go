package models

// AbstractFallback is shown for projects without an abstract.
const AbstractFallback = "Abstract not available."

// Resource is an external link attached to a project, such as its slides or report.
type Resource struct {
	Column string `json:"column"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	URL    string `json:"url"`
}

// Project is a normalized row of the projects sheet.
type Project struct {
	Scheme       string     `json:"scheme"`
	TeamNo       string     `json:"team_no"`
	Title        string     `json:"title"`
	Abstract     string     `json:"abstract"`
	ThumbnailURL string     `json:"thumbnail_url"`
	Resources    []Resource `json:"resources"`
}

// HasResources reports whether any resource link survived normalization.
func (p Project) HasResources() bool {
	return len(p.Resources) > 0
}

// Key identifies a project card within a page.
func (p Project) Key() string {
	return p.Scheme + "-" + p.TeamNo
}
