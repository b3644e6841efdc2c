package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"innovata/internal/cache"
	"innovata/internal/catalog"
	"innovata/internal/dataset"
	"innovata/internal/sheet"
)

var (
	datasetItemsDesc = prometheus.NewDesc(
		"innovata_dataset_items",
		"Number of items currently held per dataset",
		[]string{"dataset"},
		nil,
	)
	datasetAgeDesc = prometheus.NewDesc(
		"innovata_dataset_age_seconds",
		"Seconds since the held data was fetched",
		[]string{"dataset"},
		nil,
	)
	datasetUpDesc = prometheus.NewDesc(
		"innovata_dataset_up",
		"1 when the dataset's last fetch succeeded, 0 otherwise",
		[]string{"dataset"},
		nil,
	)

	fetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "innovata_sheet_fetches_total",
		Help: "Completed sheet fetches by dataset and outcome",
	}, []string{"dataset", "outcome"})

	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "innovata_sheet_fetch_duration_seconds",
		Help:    "Sheet fetch and normalization latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"dataset"})
)

// Fetch outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeNetwork = "network_error"
	OutcomeParse   = "parse_error"
	OutcomeDomain  = "domain_error"
	OutcomeOther   = "error"
)

// DatasetCollector is a custom Prometheus collector that reads dataset
// status from the catalog on each scrape.
type DatasetCollector struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

// Describe sends the metric descriptors to the channel.
func (c *DatasetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- datasetItemsDesc
	ch <- datasetAgeDesc
	ch <- datasetUpDesc
}

// Collect emits item counts, data age and health for every configured dataset.
func (c *DatasetCollector) Collect(ch chan<- prometheus.Metric) {
	for _, st := range c.catalog.Statuses() {
		if st.State == cache.StatusDisabled {
			continue
		}
		up := 0.0
		if st.Error == "" && st.FetchedAt != nil {
			up = 1
		}
		ch <- prometheus.MustNewConstMetric(datasetUpDesc, prometheus.GaugeValue, up, st.Dataset)
		ch <- prometheus.MustNewConstMetric(datasetItemsDesc, prometheus.GaugeValue, float64(st.Items), st.Dataset)
		if st.FetchedAt != nil {
			age := c.now().Sub(*st.FetchedAt).Seconds()
			ch <- prometheus.MustNewConstMetric(datasetAgeDesc, prometheus.GaugeValue, age, st.Dataset)
		}
	}
}

var initOnce sync.Once

// Init registers the fetch metrics and the dataset collector on reg.
// Must be called once at startup; later calls are no-ops.
func Init(reg *prometheus.Registry, cat *catalog.Catalog) {
	initOnce.Do(func() {
		reg.MustRegister(fetchTotal, fetchDuration)
		reg.MustRegister(&DatasetCollector{catalog: cat, now: time.Now})
	})
}

// ObserveFetch records a completed fetch. It matches cache.Options.OnFetch.
func ObserveFetch(key cache.Key, took time.Duration, err error) {
	fetchTotal.WithLabelValues(key.Dataset, Outcome(err)).Inc()
	fetchDuration.WithLabelValues(key.Dataset).Observe(took.Seconds())
}

// Outcome classifies a fetch error for the outcome label.
func Outcome(err error) string {
	var (
		netErr    *sheet.NetworkError
		parseErr  *sheet.ParseError
		domainErr *dataset.DomainError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &netErr):
		return OutcomeNetwork
	case errors.As(err, &parseErr):
		return OutcomeParse
	case errors.As(err, &domainErr):
		return OutcomeDomain
	default:
		return OutcomeOther
	}
}
