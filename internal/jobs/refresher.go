package jobs

import (
	"context"
	"log"
	"time"
)

// RefreshAller starts a background refresh of every dataset.
type RefreshAller interface {
	RefreshAll()
}

// Refresher refreshes all datasets on a fixed interval, independent of page
// traffic.
type Refresher struct {
	datasets RefreshAller
	interval time.Duration
}

// NewRefresher creates a new refresher.
func NewRefresher(datasets RefreshAller, interval time.Duration) *Refresher {
	return &Refresher{
		datasets: datasets,
		interval: interval,
	}
}

// Start begins the refresh loop. It blocks until ctx is done.
func (r *Refresher) Start(ctx context.Context) {
	log.Printf("Refresher started (interval: %v)", r.interval)

	// Run immediately on start
	r.datasets.RefreshAll()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresher stopped")
			return
		case <-ticker.C:
			r.datasets.RefreshAll()
		}
	}
}
