// Package dataset turns raw sheet rows into display items and derives the
// visible subset of a dataset from the current view state.
package dataset

import (
	"context"

	"innovata/internal/config"
	"innovata/internal/models"
)

// Dataset identifiers, also used as cache keys and route names.
const (
	Projects      = config.DatasetProjects
	Prizes        = config.DatasetPrizes
	Announcements = config.DatasetAnnouncements
	Formats       = config.DatasetFormats
)

// RowFetcher retrieves the rows published at a URL.
type RowFetcher interface {
	Fetch(ctx context.Context, url string) ([]models.Row, error)
}

// DomainError reports a well-formed sheet that lacks required content.
type DomainError struct {
	Dataset string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Table is a tabular dataset: rows failing Keep are dropped and the rest are
// turned into items by Normalize, which receives the index among kept rows.
type Table[T any] struct {
	Name      string
	Keep      func(models.Row) bool
	Normalize func(row models.Row, index int) T
}

// Apply filters and normalizes rows. The result is never nil.
func (t Table[T]) Apply(rows []models.Row) []T {
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		if t.Keep != nil && !t.Keep(row) {
			continue
		}
		items = append(items, t.Normalize(row, len(items)))
	}
	return items
}

// Load fetches url and applies the table to the result.
func (t Table[T]) Load(ctx context.Context, f RowFetcher, url string) ([]T, error) {
	rows, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return t.Apply(rows), nil
}
