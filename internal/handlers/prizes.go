package handlers

import (
	"github.com/gofiber/fiber/v3"

	"innovata/internal/dataset"
)

// Prizes renders the prizes awarded in the selected year.
func (h *PageHandler) Prizes(c fiber.Ctx) error {
	entry := h.catalog.Prizes(c.Context())
	view := dataset.PrizeSelector.Select(entry.Data, viewState(c, dataset.Prizes))

	return c.Render("prizes", MergeBranding(fiber.Map{
		"Title":   "Prizes",
		"Active":  "prizes",
		"Dataset": stateOf(dataset.Prizes, entry, view.State),
		"View":    view,
		// The year selector is only useful with a choice to make.
		"ShowYears": len(view.Facets) > 1,
	}, h.cfg))
}
