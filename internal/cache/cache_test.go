package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testKey = Key{Dataset: "projects", URL: "https://sheets.example.com/pub?output=csv"}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// sequence returns a loader yielding results in order; the last one repeats.
func sequence(calls *atomic.Int32, results ...result) Loader[string] {
	return func(ctx context.Context, url string) (string, error) {
		n := int(calls.Add(1)) - 1
		if n >= len(results) {
			n = len(results) - 1
		}
		return results[n].data, results[n].err
	}
}

type result struct {
	data string
	err  error
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestGet_FirstLoadWaitsForData(t *testing.T) {
	var calls atomic.Int32
	c := New(context.Background(), sequence(&calls, result{data: "v1"}), Options{})
	defer c.Close()

	e := c.Get(context.Background(), testKey)
	if e.Status() != StatusReady {
		t.Fatalf("Status() = %q, want ready", e.Status())
	}
	if e.Data != "v1" || e.Fetching || e.FetchID == "" {
		t.Errorf("entry = %+v", e)
	}

	// Fresh data is served without another fetch.
	c.Get(context.Background(), testKey)
	if got := calls.Load(); got != 1 {
		t.Errorf("loader calls = %d, want 1", got)
	}
}

func TestGet_StaleServesOldDataWhileRefetching(t *testing.T) {
	clk := newClock()
	var calls atomic.Int32
	gate := make(chan struct{})
	load := func(ctx context.Context, url string) (string, error) {
		if calls.Add(1) == 1 {
			return "v1", nil
		}
		<-gate
		return "v2", nil
	}
	c := New(context.Background(), load, Options{Now: clk.Now})
	defer c.Close()

	c.Get(context.Background(), testKey)

	clk.Advance(4 * time.Minute)
	if e := c.Get(context.Background(), testKey); e.Fetching {
		t.Fatal("entry younger than the stale time should not refetch")
	}

	clk.Advance(time.Minute)
	e := c.Get(context.Background(), testKey)
	if e.Data != "v1" {
		t.Errorf("stale read Data = %q, want the previous data", e.Data)
	}
	if !e.Fetching {
		t.Error("stale read should report a background fetch")
	}

	close(gate)
	waitFor(t, "background refetch", func() bool {
		p := c.Peek(testKey)
		return p.Data == "v2" && !p.Fetching
	})
	if got := calls.Load(); got != 2 {
		t.Errorf("loader calls = %d, want 2", got)
	}
}

func TestRetry_FailureKeepsPreviousData(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("connection reset")
	c := New(context.Background(), sequence(&calls, result{data: "v1"}, result{err: boom}), Options{})
	defer c.Close()

	c.Get(context.Background(), testKey)
	e := c.Retry(context.Background(), testKey)

	if e.Data != "v1" || !e.HasData {
		t.Errorf("Data = %q, want previous data kept", e.Data)
	}
	if !errors.Is(e.Err, boom) {
		t.Errorf("Err = %v, want %v", e.Err, boom)
	}
	if e.Status() != StatusReady {
		t.Errorf("Status() = %q, want ready while old data is shown", e.Status())
	}
	if e.ErrorMessage() != "connection reset" {
		t.Errorf("ErrorMessage() = %q", e.ErrorMessage())
	}
}

func TestRetry_SuccessClearsError(t *testing.T) {
	var calls atomic.Int32
	c := New(context.Background(), sequence(&calls, result{err: errors.New("CSV parsing failed")}, result{data: "v1"}), Options{})
	defer c.Close()

	e := c.Get(context.Background(), testKey)
	if e.Status() != StatusError {
		t.Fatalf("Status() = %q, want error", e.Status())
	}

	e = c.Retry(context.Background(), testKey)
	if e.Status() != StatusReady || e.Err != nil || e.Data != "v1" {
		t.Errorf("after retry entry = %+v", e)
	}
	if !e.FailedAt.IsZero() {
		t.Error("FailedAt should be cleared by a successful fetch")
	}
}

func TestConcurrentTriggersCollapse(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})
	load := func(ctx context.Context, url string) (string, error) {
		calls.Add(1)
		<-gate
		return "v1", nil
	}
	c := New(context.Background(), load, Options{})
	defer c.Close()

	c.Refresh(testKey)
	waitFor(t, "fetch start", func() bool { return calls.Load() == 1 })

	var dones []<-chan struct{}
	for i := 0; i < 10; i++ {
		dones = append(dones, c.trigger(testKey, false))
	}
	c.Refresh(testKey)
	if !c.Peek(testKey).Fetching {
		t.Error("entry should report the in-flight fetch")
	}

	close(gate)
	for _, done := range dones {
		<-done
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("loader calls = %d, want 1", got)
	}
	if e := c.Peek(testKey); e.Data != "v1" || e.Fetching {
		t.Errorf("entry = %+v", e)
	}
}

func TestReload_SupersedesInFlightFetch(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})
	load := func(ctx context.Context, url string) (string, error) {
		if calls.Add(1) == 1 {
			<-gate
			return "slow-old", nil
		}
		return "fast-new", nil
	}
	c := New(context.Background(), load, Options{})

	c.Refresh(testKey)
	waitFor(t, "first fetch start", func() bool { return calls.Load() == 1 })

	e := c.Reload(context.Background(), testKey)
	if e.Data != "fast-new" {
		t.Errorf("Reload() Data = %q, want fast-new", e.Data)
	}

	close(gate)
	c.Close()

	if got := c.Peek(testKey); got.Data != "fast-new" || got.Fetching {
		t.Errorf("late superseded result leaked into entry: %+v", got)
	}
}

func TestUnconfiguredKeyIsNeverFetched(t *testing.T) {
	var calls atomic.Int32
	c := New(context.Background(), sequence(&calls, result{data: "v1"}), Options{})
	defer c.Close()

	key := Key{Dataset: "prizes"}
	e := c.Get(context.Background(), key)
	c.Refresh(key)
	c.Retry(context.Background(), key)
	if c.Revalidate(key) {
		t.Error("Revalidate() should not trigger for an unconfigured key")
	}

	if e.Status() != StatusDisabled {
		t.Errorf("Status() = %q, want disabled", e.Status())
	}
	if calls.Load() != 0 {
		t.Errorf("loader calls = %d, want 0", calls.Load())
	}
	if c.Peek(key) != nil {
		t.Error("unconfigured key should not occupy a slot")
	}
}

func TestRevalidate_OnlyWhenStale(t *testing.T) {
	clk := newClock()
	var calls atomic.Int32
	c := New(context.Background(), sequence(&calls, result{data: "v1"}, result{data: "v2"}), Options{Now: clk.Now})
	defer c.Close()

	c.Get(context.Background(), testKey)
	if c.Revalidate(testKey) {
		t.Error("Revalidate() refetched fresh data")
	}

	clk.Advance(DefaultStaleTime)
	if !c.Revalidate(testKey) {
		t.Error("Revalidate() ignored stale data")
	}
	waitFor(t, "revalidation", func() bool { return c.Peek(testKey).Data == "v2" })
}

func TestGet_StaleErrorIsRefetched(t *testing.T) {
	clk := newClock()
	var calls atomic.Int32
	c := New(context.Background(), sequence(&calls, result{err: errors.New("down")}, result{data: "v1"}), Options{Now: clk.Now})
	defer c.Close()

	c.Get(context.Background(), testKey)
	if e := c.Get(context.Background(), testKey); e.Fetching {
		t.Error("fresh failure should not be refetched on every read")
	}

	clk.Advance(DefaultStaleTime)
	c.Get(context.Background(), testKey)
	waitFor(t, "refetch after stale failure", func() bool { return c.Peek(testKey).Status() == StatusReady })
}

func TestGet_ContextDoneWhileLoading(t *testing.T) {
	gate := make(chan struct{})
	load := func(ctx context.Context, url string) (string, error) {
		<-gate
		return "v1", nil
	}
	c := New(context.Background(), load, Options{})
	defer c.Close()
	defer close(gate)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := c.Get(ctx, testKey)
	if e.Status() != StatusLoading || !e.Fetching {
		t.Errorf("entry = %+v, want loading", e)
	}
}

func TestOnFetchHook(t *testing.T) {
	var calls atomic.Int32
	var mu sync.Mutex
	var seen []error
	c := New(context.Background(), sequence(&calls, result{data: "v1"}, result{err: errors.New("down")}), Options{
		OnFetch: func(key Key, took time.Duration, err error) {
			mu.Lock()
			seen = append(seen, err)
			mu.Unlock()
		},
	})
	defer c.Close()

	c.Get(context.Background(), testKey)
	c.Retry(context.Background(), testKey)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != nil || seen[1] == nil {
		t.Errorf("OnFetch saw %v", seen)
	}
}

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Set(key string, val []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
	return nil
}

func TestSnapshotSeedsColdCache(t *testing.T) {
	clk := newClock()
	store := &memStore{data: map[string][]byte{}}

	var calls atomic.Int32
	warm := New(context.Background(), sequence(&calls, result{data: "v1"}), Options{Store: store, Now: clk.Now})
	warm.Get(context.Background(), testKey)
	warm.Close()

	clk.Advance(time.Hour)

	gate := make(chan struct{})
	cold := New(context.Background(), func(ctx context.Context, url string) (string, error) {
		<-gate
		return "v2", nil
	}, Options{Store: store, Now: clk.Now})
	defer cold.Close()
	defer close(gate)

	e := cold.Get(context.Background(), testKey)
	if e.Data != "v1" || !e.HasData {
		t.Errorf("cold Get() Data = %q, want the stored snapshot", e.Data)
	}
	if !e.Fetching {
		t.Error("seeded snapshot should be revalidated in the background")
	}
}

// blockingStore holds Set until release is closed.
type blockingStore struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingStore) Get(string) ([]byte, error) { return nil, nil }

func (b *blockingStore) Set(string, []byte, time.Duration) error {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return nil
}

func TestTriggerJoiningFinishingFetchDoesNotStickFetching(t *testing.T) {
	clk := newClock()
	store := &blockingStore{entered: make(chan struct{}), release: make(chan struct{})}
	var calls atomic.Int32
	c := New(context.Background(), sequence(&calls, result{data: "v1"}, result{data: "v2"}), Options{Store: store, Now: clk.Now})
	defer c.Close()

	first := c.trigger(testKey, false)
	<-store.entered

	// The loader has returned; the call is still writing its snapshot.
	joined := c.trigger(testKey, false)
	close(store.release)
	<-first
	<-joined

	e := c.Peek(testKey)
	if e.Data != "v1" || e.Fetching {
		t.Fatalf("after join entry = %+v, want v1 and not fetching", e)
	}

	clk.Advance(10 * time.Minute)
	if !c.Revalidate(testKey) {
		t.Error("Revalidate() should start a fetch for stale data")
	}
	waitFor(t, "stale refetch", func() bool {
		p := c.Peek(testKey)
		return p.Data == "v2" && !p.Fetching
	})
	if got := calls.Load(); got != 2 {
		t.Errorf("loader calls = %d, want 2", got)
	}
}
