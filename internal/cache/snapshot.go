package cache

import (
	"encoding/json"
	"time"
)

// DefaultSnapshotTTL bounds how long a stored snapshot may seed a cold cache.
const DefaultSnapshotTTL = 24 * time.Hour

// SnapshotStore persists the last good data per key, so a restarted process
// can serve stale data while it revalidates. It matches the Get/Set subset of
// the fiber storage interface; a missing key yields nil data and no error.
type SnapshotStore interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

type snapshot[T any] struct {
	Data      T         `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
	FetchID   string    `json:"fetch_id"`
}

func storeKey(key Key) string {
	return "innovata:dataset:" + key.String()
}

func (c *Cache[T]) saveSnapshot(e *Entry[T]) {
	if c.opts.Store == nil {
		return
	}

	payload, err := json.Marshal(snapshot[T]{Data: e.Data, FetchedAt: e.FetchedAt, FetchID: e.FetchID})
	if err != nil {
		c.log.Error("failed to encode snapshot", "dataset", e.Key.Dataset, "error", err)
		return
	}

	ttl := c.opts.SnapshotTTL
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	if err := c.opts.Store.Set(storeKey(e.Key), payload, ttl); err != nil {
		c.log.Error("failed to store snapshot", "dataset", e.Key.Dataset, "error", err)
	}
}

// seed installs the stored snapshot for key the first time the key is seen.
// Seeded data keeps its original fetch time, so it is usually already stale
// and gets revalidated right away.
func (c *Cache[T]) seed(key Key) {
	if c.opts.Store == nil {
		return
	}

	c.mu.Lock()
	s := c.slotLocked(key)
	if s.seeded {
		c.mu.Unlock()
		return
	}
	s.seeded = true
	c.mu.Unlock()

	payload, err := c.opts.Store.Get(storeKey(key))
	if err != nil {
		c.log.Error("failed to read snapshot", "dataset", key.Dataset, "error", err)
		return
	}
	if len(payload) == 0 {
		return
	}

	var snap snapshot[T]
	if err := json.Unmarshal(payload, &snap); err != nil {
		c.log.Error("failed to decode snapshot", "dataset", key.Dataset, "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s.entry.HasData {
		return
	}
	next := s.entry.clone()
	next.Data = snap.Data
	next.HasData = true
	next.FetchedAt = snap.FetchedAt
	next.FetchID = snap.FetchID
	s.entry = next
	c.log.Info("seeded dataset from snapshot", "dataset", key.Dataset, "fetched_at", snap.FetchedAt)
}
