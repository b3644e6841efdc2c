// Package cache keeps fetched datasets fresh with stale-while-revalidate
// semantics: readers always get the last good data immediately while
// refetches run in the background.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long fetched data counts as fresh.
const DefaultStaleTime = 5 * time.Minute

// Loader fetches and normalizes the dataset published at url.
type Loader[T any] func(ctx context.Context, url string) (T, error)

// Options tune a Cache. Zero values select the defaults.
type Options struct {
	StaleTime time.Duration
	// Store, when set, receives a snapshot of every successful fetch and
	// seeds slots that have never been fetched by this process.
	Store       SnapshotStore
	SnapshotTTL time.Duration
	Logger      *slog.Logger
	// OnFetch is called after every completed fetch, superseded ones included.
	OnFetch func(key Key, took time.Duration, err error)
	Now     func() time.Time
}

// Cache holds one slot per Key. At most one fetch per key is live at a time;
// concurrent triggers share it.
type Cache[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc
	load   Loader[T]
	opts   Options
	log    *slog.Logger

	group singleflight.Group
	wg    sync.WaitGroup

	mu    sync.Mutex
	slots map[Key]*slot[T]
}

type slot[T any] struct {
	entry *Entry[T]
	// gen is bumped by Reload; fetches started under an older generation
	// are discarded when they complete.
	gen    uint64
	seeded bool
	// running is set while a fetch of the current generation executes. The
	// entry's Fetching flag never outlives it.
	running bool
}

// New creates a cache whose background fetches run under ctx.
func New[T any](ctx context.Context, load Loader[T], opts Options) *Cache[T] {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Cache[T]{
		ctx:    ctx,
		cancel: cancel,
		load:   load,
		opts:   opts,
		log:    logger.With("component", "cache"),
		slots:  make(map[Key]*slot[T]),
	}
}

// Peek returns the current entry for key without triggering anything.
// It returns nil for keys that were never requested.
func (c *Cache[T]) Peek(key Key) *Entry[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[key]; ok {
		return s.entry
	}
	return nil
}

// Get returns the entry for key. The first request for a key waits for the
// initial fetch (or until ctx is done); later requests return immediately and
// start a background refetch when the entry is stale. Unconfigured keys are
// never fetched.
func (c *Cache[T]) Get(ctx context.Context, key Key) *Entry[T] {
	if !key.Configured() {
		return &Entry[T]{Key: key}
	}

	c.seed(key)

	entry := c.Peek(key)
	if entry == nil || (!entry.HasData && entry.Err == nil) {
		done := c.trigger(key, false)
		select {
		case <-done:
		case <-ctx.Done():
		}
		return c.Peek(key)
	}

	if !entry.Fetching && entry.Stale(c.opts.Now(), c.opts.StaleTime) {
		c.trigger(key, false)
		return c.Peek(key)
	}
	return entry
}

// Refresh starts a background fetch for key, or joins the one in flight.
func (c *Cache[T]) Refresh(key Key) {
	if !key.Configured() {
		return
	}
	c.trigger(key, false)
}

// Revalidate refreshes key only when its entry is stale. It reports whether a
// fetch was started or joined.
func (c *Cache[T]) Revalidate(key Key) bool {
	if !key.Configured() {
		return false
	}
	entry := c.Peek(key)
	if entry != nil && (entry.Fetching || !entry.Stale(c.opts.Now(), c.opts.StaleTime)) {
		return entry.Fetching
	}
	c.trigger(key, false)
	return true
}

// Retry fetches key again and waits for the outcome or ctx. A fetch already
// in flight is joined rather than repeated.
func (c *Cache[T]) Retry(ctx context.Context, key Key) *Entry[T] {
	if !key.Configured() {
		return &Entry[T]{Key: key}
	}
	return c.wait(ctx, key, c.trigger(key, false))
}

// Reload starts a new fetch for key that supersedes any fetch in flight, and
// waits for it. The superseded fetch's result is discarded.
func (c *Cache[T]) Reload(ctx context.Context, key Key) *Entry[T] {
	if !key.Configured() {
		return &Entry[T]{Key: key}
	}
	return c.wait(ctx, key, c.trigger(key, true))
}

// Close cancels background fetches and waits for them to return.
func (c *Cache[T]) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Cache[T]) wait(ctx context.Context, key Key, done <-chan struct{}) *Entry[T] {
	select {
	case <-done:
	case <-ctx.Done():
	}
	return c.Peek(key)
}

// slotLocked returns the slot for key, creating an empty one.
func (c *Cache[T]) slotLocked(key Key) *slot[T] {
	s, ok := c.slots[key]
	if !ok {
		s = &slot[T]{entry: &Entry[T]{Key: key}}
		c.slots[key] = s
	}
	return s
}

// trigger marks key as fetching and runs the fetch, sharing an in-flight one
// unless force is set. The returned channel is closed when the fetch that
// serves this trigger has completed.
func (c *Cache[T]) trigger(key Key, force bool) <-chan struct{} {
	c.mu.Lock()
	s := c.slotLocked(key)
	if force {
		s.gen++
		c.group.Forget(key.String())
	}
	gen := s.gen
	if !s.entry.Fetching {
		next := s.entry.clone()
		next.Fetching = true
		s.entry = next
	}
	c.mu.Unlock()

	// DoChan registers the call before returning, so a trigger issued while a
	// fetch is in flight always joins it.
	results := c.group.DoChan(key.String(), func() (any, error) {
		c.fetch(key, gen)
		return nil, nil
	})

	done := make(chan struct{})
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-results
		// A trigger that joined a call on its way out marked the entry as
		// fetching after that call had already settled it.
		c.mu.Lock()
		if s, ok := c.slots[key]; ok && s.gen == gen && !s.running {
			s.clearFetchingLocked()
		}
		c.mu.Unlock()
		close(done)
	}()
	return done
}

func (s *slot[T]) clearFetchingLocked() {
	if s.entry.Fetching {
		next := s.entry.clone()
		next.Fetching = false
		s.entry = next
	}
}

// settle ends the running fetch of generation gen.
func (c *Cache[T]) settle(key Key, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[key]; ok && s.gen == gen {
		s.running = false
		s.clearFetchingLocked()
	}
}

func (c *Cache[T]) fetch(key Key, gen uint64) {
	c.mu.Lock()
	if s := c.slotLocked(key); s.gen == gen {
		s.running = true
		if !s.entry.Fetching {
			next := s.entry.clone()
			next.Fetching = true
			s.entry = next
		}
	}
	c.mu.Unlock()
	defer c.settle(key, gen)

	id := uuid.NewString()
	start := c.opts.Now()
	data, err := c.load(c.ctx, key.URL)
	took := c.opts.Now().Sub(start)

	if c.opts.OnFetch != nil {
		c.opts.OnFetch(key, took, err)
	}

	c.mu.Lock()
	s := c.slotLocked(key)
	if s.gen != gen {
		c.mu.Unlock()
		c.log.Debug("discarding superseded fetch", "dataset", key.Dataset, "fetch_id", id)
		return
	}

	next := s.entry.clone()
	now := c.opts.Now()
	if err != nil {
		next.Err = err
		next.FailedAt = now
	} else {
		next.Data = data
		next.HasData = true
		next.FetchedAt = now
		next.FetchID = id
		next.Err = nil
		next.FailedAt = time.Time{}
	}
	s.entry = next
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("dataset fetch failed", "dataset", key.Dataset, "fetch_id", id, "took", took, "error", err)
		return
	}
	c.log.Info("dataset fetched", "dataset", key.Dataset, "fetch_id", id, "took", took)
	c.saveSnapshot(next)
}
