// Package catalog wires the four showcase datasets to their caches and
// sources, and exposes them by name.
package catalog

import (
	"context"
	"errors"
	"time"

	"innovata/internal/cache"
	"innovata/internal/config"
	"innovata/internal/dataset"
	"innovata/internal/models"
)

// ErrUnknownDataset is returned for dataset names the catalog does not serve.
var ErrUnknownDataset = errors.New("unknown dataset")

// Names lists the datasets in display order.
var Names = []string{dataset.Projects, dataset.Prizes, dataset.Announcements, dataset.Formats}

// Status describes one dataset for health checks, metrics and the check command.
type Status struct {
	Dataset   string       `json:"dataset"`
	State     cache.Status `json:"state"`
	Items     int          `json:"items"`
	FetchedAt *time.Time   `json:"fetched_at,omitempty"`
	Fetching  bool         `json:"fetching"`
	Error     string       `json:"error,omitempty"`
}

// Catalog holds one cache per dataset.
type Catalog struct {
	projects      *cache.Cache[[]models.Project]
	prizes        *cache.Cache[[]models.Prize]
	announcements *cache.Cache[[]models.Announcement]
	formats       *cache.Cache[models.Formats]

	keys    map[string]cache.Key
	sources map[string]source
}

// New builds the catalog. Dataset URLs come from cfg; fetches go through
// fetcher and run under ctx until Close.
func New(ctx context.Context, cfg *config.Config, tables config.Tables, fetcher dataset.RowFetcher, opts cache.Options) *Catalog {
	projects := dataset.ProjectTable(tables.Projects)
	prizes := dataset.PrizeTable()
	announcements := dataset.AnnouncementTable()
	formats := dataset.NewFormatsReader(tables.Formats)

	c := &Catalog{
		projects: cache.New(ctx, func(ctx context.Context, url string) ([]models.Project, error) {
			return projects.Load(ctx, fetcher, url)
		}, opts),
		prizes: cache.New(ctx, func(ctx context.Context, url string) ([]models.Prize, error) {
			return prizes.Load(ctx, fetcher, url)
		}, opts),
		announcements: cache.New(ctx, func(ctx context.Context, url string) ([]models.Announcement, error) {
			return announcements.Load(ctx, fetcher, url)
		}, opts),
		formats: cache.New(ctx, func(ctx context.Context, url string) (models.Formats, error) {
			return formats.Load(ctx, fetcher, url)
		}, opts),
		keys: make(map[string]cache.Key, len(Names)),
	}
	for _, name := range Names {
		c.keys[name] = cache.Key{Dataset: name, URL: cfg.SheetURLFor(name)}
	}

	c.sources = map[string]source{
		dataset.Projects:      typedSource[[]models.Project]{c.keys[dataset.Projects], c.projects, countSlice[models.Project]},
		dataset.Prizes:        typedSource[[]models.Prize]{c.keys[dataset.Prizes], c.prizes, countSlice[models.Prize]},
		dataset.Announcements: typedSource[[]models.Announcement]{c.keys[dataset.Announcements], c.announcements, countSlice[models.Announcement]},
		dataset.Formats:       typedSource[models.Formats]{c.keys[dataset.Formats], c.formats, countLinks},
	}
	return c
}

// Projects returns the projects entry, waiting for the first load.
func (c *Catalog) Projects(ctx context.Context) *cache.Entry[[]models.Project] {
	return c.projects.Get(ctx, c.keys[dataset.Projects])
}

// Prizes returns the prizes entry, waiting for the first load.
func (c *Catalog) Prizes(ctx context.Context) *cache.Entry[[]models.Prize] {
	return c.prizes.Get(ctx, c.keys[dataset.Prizes])
}

// Announcements returns the announcements entry, waiting for the first load.
func (c *Catalog) Announcements(ctx context.Context) *cache.Entry[[]models.Announcement] {
	return c.announcements.Get(ctx, c.keys[dataset.Announcements])
}

// Formats returns the formats entry, waiting for the first load.
func (c *Catalog) Formats(ctx context.Context) *cache.Entry[models.Formats] {
	return c.formats.Get(ctx, c.keys[dataset.Formats])
}

// Configured reports whether name has a data source.
func (c *Catalog) Configured(name string) bool {
	return c.keys[name].Configured()
}

// RefreshAll starts a background refresh of every configured dataset.
func (c *Catalog) RefreshAll() {
	for _, name := range Names {
		c.sources[name].refresh()
	}
}

// Revalidate refreshes name if its data is stale and reports whether a fetch
// is now running.
func (c *Catalog) Revalidate(name string) (bool, error) {
	src, ok := c.sources[name]
	if !ok {
		return false, ErrUnknownDataset
	}
	return src.revalidate(), nil
}

// Retry refetches name, joining a fetch already in flight, and waits for it.
func (c *Catalog) Retry(ctx context.Context, name string) (Status, error) {
	src, ok := c.sources[name]
	if !ok {
		return Status{}, ErrUnknownDataset
	}
	src.retry(ctx)
	return src.status(), nil
}

// Reload forces a fresh fetch of name that supersedes any fetch in flight.
func (c *Catalog) Reload(ctx context.Context, name string) (Status, error) {
	src, ok := c.sources[name]
	if !ok {
		return Status{}, ErrUnknownDataset
	}
	src.reload(ctx)
	return src.status(), nil
}

// Status returns the current status of name without triggering a fetch.
func (c *Catalog) Status(name string) (Status, error) {
	src, ok := c.sources[name]
	if !ok {
		return Status{}, ErrUnknownDataset
	}
	return src.status(), nil
}

// Statuses returns the status of every dataset in display order.
func (c *Catalog) Statuses() []Status {
	out := make([]Status, 0, len(Names))
	for _, name := range Names {
		out = append(out, c.sources[name].status())
	}
	return out
}

// Close stops background fetches and waits for them to return.
func (c *Catalog) Close() {
	c.projects.Close()
	c.prizes.Close()
	c.announcements.Close()
	c.formats.Close()
}
