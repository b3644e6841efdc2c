package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"

	"innovata/internal/cache"
	"innovata/internal/catalog"
	"innovata/internal/config"
	"innovata/internal/dataset"
	"innovata/internal/validation"
)

// PageHandler renders the showcase pages.
type PageHandler struct {
	catalog *catalog.Catalog
	cfg     *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cat *catalog.Catalog, cfg *config.Config) *PageHandler {
	return &PageHandler{catalog: cat, cfg: cfg}
}

// pagePaths maps each dataset to the page showing it.
var pagePaths = map[string]string{
	dataset.Projects:      "/project",
	dataset.Prizes:        "/prizes",
	dataset.Announcements: "/announcements",
	dataset.Formats:       "/formats",
}

// DatasetState is the status block rendered above a dataset: the loading,
// error and refresh indicators plus the retry form.
type DatasetState struct {
	Name      string
	Status    cache.Status
	HasData   bool
	Fetching  bool
	Error     string
	FetchedAt time.Time

	// Retry form fields carrying the view state back to the page.
	From       string
	FacetParam string
	Facet      string
	Search     string
}

// FetchedAtUnix is the data version the page script compares against.
func (s DatasetState) FetchedAtUnix() int64 {
	if s.FetchedAt.IsZero() {
		return 0
	}
	return s.FetchedAt.Unix()
}

func stateOf[T any](name string, e *cache.Entry[T], view dataset.ViewState) DatasetState {
	return DatasetState{
		Name:       name,
		Status:     e.Status(),
		HasData:    e.HasData,
		Fetching:   e.Fetching,
		Error:      e.ErrorMessage(),
		FetchedAt:  e.FetchedAt,
		FacetParam: dataset.FacetParams[name],
		Facet:      view.Facet,
		Search:     view.Search,
	}
}

// viewState reads the facet and search parameters for name from the query.
func viewState(c fiber.Ctx, name string) dataset.ViewState {
	state := dataset.ViewState{Search: validation.NormalizeQuery(c.Query("q"))}
	if param, ok := dataset.FacetParams[name]; ok {
		state.Facet = validation.NormalizeQuery(c.Query(param))
	}
	return state
}

// pageURL builds the page link for name with the given view state.
func pageURL(name string, state dataset.ViewState) string {
	q := url.Values{}
	if param, ok := dataset.FacetParams[name]; ok && state.Facet != "" {
		q.Set(param, state.Facet)
	}
	if state.Search != "" {
		q.Set("q", state.Search)
	}
	if len(q) == 0 {
		return pagePaths[name]
	}
	return pagePaths[name] + "?" + q.Encode()
}
