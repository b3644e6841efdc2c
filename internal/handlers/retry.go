package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"innovata/internal/catalog"
	"innovata/internal/dataset"
	"innovata/internal/validation"
)

// Retry refetches a dataset from the page's "Try Again" form and sends the
// browser back to the page it came from with its view state intact.
func (h *PageHandler) Retry(c fiber.Ctx) error {
	name := c.Params("dataset")
	if _, err := h.catalog.Retry(c.Context(), name); err != nil {
		if errors.Is(err, catalog.ErrUnknownDataset) {
			return fiber.NewError(fiber.StatusNotFound, "Page not found")
		}
		return err
	}

	if c.FormValue("from") == "home" {
		return c.Redirect().Status(fiber.StatusSeeOther).To("/")
	}

	state := dataset.ViewState{Search: validation.NormalizeQuery(c.FormValue("q"))}
	if param, ok := dataset.FacetParams[name]; ok {
		state.Facet = validation.NormalizeQuery(c.FormValue(param))
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To(pageURL(name, state))
}
