package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// NotFound renders the catch-all page for unknown routes.
func (h *PageHandler) NotFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("not_found", MergeBranding(fiber.Map{
		"Title":  "Page Not Found",
		"Active": "",
		"Path":   c.Path(),
	}, h.cfg))
}
