package handlers

import (
	"github.com/gofiber/fiber/v3"

	"innovata/internal/dataset"
)

// Announcements renders all announcements matching the search.
func (h *PageHandler) Announcements(c fiber.Ctx) error {
	entry := h.catalog.Announcements(c.Context())
	view := dataset.AnnouncementSelector.Select(entry.Data, viewState(c, dataset.Announcements))

	return c.Render("announcements", MergeBranding(fiber.Map{
		"Title":   "Announcements",
		"Active":  "announcements",
		"Dataset": stateOf(dataset.Announcements, entry, view.State),
		"View":    view,
	}, h.cfg))
}
