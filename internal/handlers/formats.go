package handlers

import (
	"github.com/gofiber/fiber/v3"

	"innovata/internal/dataset"
)

// Formats renders the guideline documents of the selected phase.
func (h *PageHandler) Formats(c fiber.Ctx) error {
	entry := h.catalog.Formats(c.Context())
	state := viewState(c, dataset.Formats)
	view := dataset.SelectFormats(entry.Data, state.Facet)

	return c.Render("formats", MergeBranding(fiber.Map{
		"Title":   "Formats",
		"Active":  "formats",
		"Dataset": stateOf(dataset.Formats, entry, dataset.ViewState{Facet: view.Phase}),
		"View":    view,
	}, h.cfg))
}
