package handlers

import (
	"github.com/gofiber/fiber/v3"

	"innovata/internal/dataset"
)

// latestAnnouncements is how many announcements the home page lists.
const latestAnnouncements = 3

// Home renders the landing page with the most recent announcements.
func (h *PageHandler) Home(c fiber.Ctx) error {
	entry := h.catalog.Announcements(c.Context())

	latest := entry.Data
	if len(latest) > latestAnnouncements {
		latest = latest[:latestAnnouncements]
	}

	state := stateOf(dataset.Announcements, entry, dataset.ViewState{})
	state.From = "home"

	return c.Render("index", MergeBranding(fiber.Map{
		"Title":         "Home",
		"Active":        "home",
		"Dataset":       state,
		"Announcements": latest,
		"MoreCount":     len(entry.Data) - len(latest),
	}, h.cfg))
}
