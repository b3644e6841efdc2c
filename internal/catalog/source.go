package catalog

import (
	"context"

	"innovata/internal/cache"
	"innovata/internal/models"
)

// source erases the item type of a dataset cache.
type source interface {
	refresh()
	revalidate() bool
	retry(ctx context.Context)
	reload(ctx context.Context)
	status() Status
}

type typedSource[T any] struct {
	key   cache.Key
	cache *cache.Cache[T]
	count func(T) int
}

func (s typedSource[T]) refresh() {
	s.cache.Refresh(s.key)
}

func (s typedSource[T]) revalidate() bool {
	return s.cache.Revalidate(s.key)
}

func (s typedSource[T]) retry(ctx context.Context) {
	s.cache.Retry(ctx, s.key)
}

func (s typedSource[T]) reload(ctx context.Context) {
	s.cache.Reload(ctx, s.key)
}

func (s typedSource[T]) status() Status {
	st := Status{Dataset: s.key.Dataset, State: cache.StatusLoading}
	if !s.key.Configured() {
		st.State = cache.StatusDisabled
		return st
	}

	e := s.cache.Peek(s.key)
	if e == nil {
		return st
	}
	st.State = e.Status()
	st.Fetching = e.Fetching
	st.Error = e.ErrorMessage()
	if e.HasData {
		fetchedAt := e.FetchedAt
		st.FetchedAt = &fetchedAt
		st.Items = s.count(e.Data)
	}
	return st
}

func countSlice[T any](items []T) int {
	return len(items)
}

func countLinks(f models.Formats) int {
	n := 0
	for _, links := range f.Phases {
		n += len(links)
	}
	return n
}
