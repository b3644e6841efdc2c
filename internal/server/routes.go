package server

import (
	"strings"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"innovata/internal/catalog"
	"innovata/internal/config"
	"innovata/internal/handlers"
	"innovata/internal/handlers/api"
)

// RegisterRoutes registers all application routes. The catch-all not-found
// handler is registered last.
func (s *Server) RegisterRoutes(cat *catalog.Catalog, tables config.Tables, reg prometheus.Gatherer) {
	// Initialize handlers
	pageHandler := handlers.NewPageHandler(cat, s.Cfg)
	datasetHandler := api.NewDatasetHandler(cat)

	// Project thumbnails served from disk when the convention points here
	if base := tables.Projects.ThumbnailBase; strings.HasPrefix(base, "/") && s.Cfg.ThumbnailDir != "" {
		s.App.Get(strings.TrimSuffix(base, "/")+"/*", static.New(s.Cfg.ThumbnailDir))
	}

	// Operational endpoints
	s.App.Get("/healthz", datasetHandler.Health)
	if reg != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// Pages
	s.App.Get("/", pageHandler.Home)
	s.App.Get("/project", pageHandler.Projects)
	s.App.Get("/prizes", pageHandler.Prizes)
	s.App.Get("/announcements", pageHandler.Announcements)
	s.App.Get("/formats", pageHandler.Formats)
	s.App.Post("/retry/:dataset", pageHandler.Retry)

	// JSON API
	s.App.Get("/api/:dataset", datasetHandler.Get)
	s.App.Get("/api/:dataset/status", datasetHandler.Status)
	s.App.Post("/api/:dataset/revalidate", datasetHandler.Revalidate)
	s.App.Post("/api/:dataset/retry", datasetHandler.Retry)

	// Catch-all
	s.App.Use(pageHandler.NotFound)
}
