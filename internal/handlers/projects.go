package handlers

import (
	"github.com/gofiber/fiber/v3"

	"innovata/internal/dataset"
)

// Projects renders the project cards of the selected scheme.
func (h *PageHandler) Projects(c fiber.Ctx) error {
	entry := h.catalog.Projects(c.Context())
	view := dataset.ProjectSelector.Select(entry.Data, viewState(c, dataset.Projects))

	// A search that hides every project of the scheme offers a way back.
	searchHidesAll := view.State.Search != "" && len(view.Items) == 0 && entry.HasData

	return c.Render("project", MergeBranding(fiber.Map{
		"Title":          "Projects",
		"Active":         "project",
		"Dataset":        stateOf(dataset.Projects, entry, view.State),
		"View":           view,
		"SearchHidesAll": searchHidesAll,
		"ClearSearchURL": pageURL(dataset.Projects, dataset.ViewState{Facet: view.State.Facet}),
	}, h.cfg))
}
