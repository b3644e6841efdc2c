package cache

import "time"

// Key identifies one cached dataset: a fixed dataset name plus its source URL.
type Key struct {
	Dataset string
	URL     string
}

func (k Key) String() string {
	return k.Dataset + "|" + k.URL
}

// Configured reports whether the key has a source to fetch from.
func (k Key) Configured() bool {
	return k.URL != ""
}

// Status summarizes an entry for rendering.
type Status string

const (
	StatusDisabled Status = "disabled"
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusError    Status = "error"
)

// Entry is an immutable snapshot of one cache slot. Every change to the slot
// installs a new Entry; callers may hold on to the one they got.
type Entry[T any] struct {
	Key Key

	Data      T
	HasData   bool
	FetchedAt time.Time
	// FetchID correlates the data with the fetch that produced it in logs.
	FetchID string

	// Err is the most recent failure. It is cleared by the next successful fetch.
	Err      error
	FailedAt time.Time

	// Fetching is true while a fetch for the key is in flight.
	Fetching bool
}

// Status reports the rendering state of the entry.
func (e *Entry[T]) Status() Status {
	switch {
	case e == nil:
		return StatusLoading
	case !e.Key.Configured():
		return StatusDisabled
	case e.HasData:
		return StatusReady
	case e.Err != nil:
		return StatusError
	default:
		return StatusLoading
	}
}

// Stale reports whether the entry is older than staleTime at now. Entries
// that never loaded are judged by their last failure.
func (e *Entry[T]) Stale(now time.Time, staleTime time.Duration) bool {
	if e == nil {
		return true
	}
	switch {
	case e.HasData && (e.Err == nil || e.FailedAt.Before(e.FetchedAt)):
		return now.Sub(e.FetchedAt) >= staleTime
	case e.Err != nil:
		return now.Sub(e.FailedAt) >= staleTime
	default:
		return true
	}
}

// ErrorMessage returns the failure text, or "" when the last fetch succeeded.
func (e *Entry[T]) ErrorMessage() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *Entry[T]) clone() *Entry[T] {
	next := *e
	return &next
}
