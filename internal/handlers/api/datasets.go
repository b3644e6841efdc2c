package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"innovata/internal/cache"
	"innovata/internal/catalog"
	"innovata/internal/dataset"
	"innovata/internal/validation"
)

// DatasetHandler serves the datasets as JSON.
type DatasetHandler struct {
	catalog *catalog.Catalog
}

// NewDatasetHandler creates a new API dataset handler.
func NewDatasetHandler(cat *catalog.Catalog) *DatasetHandler {
	return &DatasetHandler{catalog: cat}
}

// datasetResponse pairs a dataset's status with the visible view.
type datasetResponse struct {
	Dataset catalog.Status `json:"dataset"`
	View    any            `json:"view"`
}

// revalidateResponse reports whether a refetch is running after a revalidate.
type revalidateResponse struct {
	Fetching bool           `json:"fetching"`
	Dataset  catalog.Status `json:"dataset"`
}

// Get returns the visible subset of a dataset for the facet and search
// query parameters used by the pages.
func (h *DatasetHandler) Get(c fiber.Ctx) error {
	name := c.Params("dataset")
	ctx := c.Context()

	state := dataset.ViewState{Search: validation.NormalizeQuery(c.Query("q"))}
	if param, ok := dataset.FacetParams[name]; ok {
		state.Facet = validation.NormalizeQuery(c.Query(param))
	}

	var view any
	switch name {
	case dataset.Projects:
		view = dataset.ProjectSelector.Select(h.catalog.Projects(ctx).Data, state)
	case dataset.Prizes:
		view = dataset.PrizeSelector.Select(h.catalog.Prizes(ctx).Data, state)
	case dataset.Announcements:
		view = dataset.AnnouncementSelector.Select(h.catalog.Announcements(ctx).Data, state)
	case dataset.Formats:
		view = dataset.SelectFormats(h.catalog.Formats(ctx).Data, state.Facet)
	default:
		return jsonError(c, fiber.StatusNotFound, "unknown dataset")
	}

	st, err := h.catalog.Status(name)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to read dataset status")
	}
	if st.State == cache.StatusError {
		return jsonDatasetError(c, fiber.StatusBadGateway, st.Error, st)
	}

	return jsonSuccess(c, datasetResponse{Dataset: st, View: view})
}

// Status returns a dataset's cache status without fetching anything.
func (h *DatasetHandler) Status(c fiber.Ctx) error {
	st, err := h.catalog.Status(c.Params("dataset"))
	if err != nil {
		return datasetError(c, err)
	}
	return jsonSuccess(c, st)
}

// Revalidate refetches a dataset in the background if its data is stale.
// Pages call it when the browser tab regains focus.
func (h *DatasetHandler) Revalidate(c fiber.Ctx) error {
	name := c.Params("dataset")
	fetching, err := h.catalog.Revalidate(name)
	if err != nil {
		return datasetError(c, err)
	}
	st, _ := h.catalog.Status(name)
	return jsonSuccess(c, revalidateResponse{Fetching: fetching, Dataset: st})
}

// Retry refetches a dataset, joining a fetch in flight, and returns the outcome.
func (h *DatasetHandler) Retry(c fiber.Ctx) error {
	st, err := h.catalog.Retry(c.Context(), c.Params("dataset"))
	if err != nil {
		return datasetError(c, err)
	}
	return jsonSuccess(c, st)
}

// Health reports liveness along with every dataset's status. It never fetches.
func (h *DatasetHandler) Health(c fiber.Ctx) error {
	return jsonSuccess(c, h.catalog.Statuses())
}

func datasetError(c fiber.Ctx, err error) error {
	if errors.Is(err, catalog.ErrUnknownDataset) {
		return jsonError(c, fiber.StatusNotFound, "unknown dataset")
	}
	return jsonError(c, fiber.StatusInternalServerError, err.Error())
}
