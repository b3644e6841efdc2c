package dataset

import (
	"fmt"

	"innovata/internal/config"
	"innovata/internal/models"
	"innovata/internal/validation"
)

// ProjectTable keeps rows with both a scheme and a team number.
func ProjectTable(tables config.ProjectTables) Table[models.Project] {
	return Table[models.Project]{
		Name: Projects,
		Keep: func(r models.Row) bool {
			return r.Value(models.ColScheme) != "" && r.Value(models.ColTeamNo) != ""
		},
		Normalize: func(r models.Row, _ int) models.Project {
			return normalizeProject(r, tables)
		},
	}
}

func normalizeProject(r models.Row, tables config.ProjectTables) models.Project {
	teamNo := r.Trimmed(models.ColTeamNo)

	title := r.Trimmed(models.ColProjectInfo)
	if title == "" {
		title = fmt.Sprintf("Team %s's Project", teamNo)
	}

	abstract := r.Trimmed(models.ColAbstract)
	if abstract == "" {
		abstract = models.AbstractFallback
	}

	p := models.Project{
		Scheme:       r.Trimmed(models.ColScheme),
		TeamNo:       teamNo,
		Title:        title,
		Abstract:     abstract,
		ThumbnailURL: tables.ThumbnailBase + teamNo + tables.ThumbnailExt,
		Resources:    []models.Resource{},
	}

	for _, res := range tables.Resources {
		link := r.Trimmed(res.Column)
		if link == "" {
			continue
		}
		// Only http(s) links are rendered as hrefs.
		if ok, _ := validation.ValidateURL(link); !ok {
			continue
		}
		p.Resources = append(p.Resources, models.Resource{
			Column: res.Column,
			Name:   res.Name,
			Icon:   res.Icon,
			URL:    link,
		})
	}

	return p
}

// ProjectSelector filters projects by scheme and searches team number and title.
var ProjectSelector = Selector[models.Project]{
	FacetOf: func(p models.Project) string { return p.Scheme },
	SearchOf: func(p models.Project) []string {
		return []string{p.TeamNo, p.Title}
	},
}
