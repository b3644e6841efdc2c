package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"innovata/internal/cache"
	"innovata/internal/catalog"
	"innovata/internal/config"
	"innovata/internal/dataset"
	"innovata/internal/sheet"
	"innovata/internal/testutil"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"success", nil, OutcomeOK},
		{"network", &sheet.NetworkError{URL: "https://x", Err: errors.New("refused")}, OutcomeNetwork},
		{"wrapped parse", fmt.Errorf("load: %w", &sheet.ParseError{Line: 2, Message: "bare quote"}), OutcomeParse},
		{"domain", &dataset.DomainError{Dataset: dataset.Formats, Message: "no data"}, OutcomeDomain},
		{"other", errors.New("boom"), OutcomeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outcome(tt.err); got != tt.want {
				t.Errorf("Outcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDatasetCollector(t *testing.T) {
	srv := testutil.NewSheetServer(t)
	cfg := &config.Config{ProjectsSheetURL: srv.SetCSV("/projects.csv", testutil.ProjectsCSV)}
	cat := catalog.New(context.Background(), cfg, config.DefaultTables(), sheet.NewFetcher(5*time.Second, sheet.FormatAuto), cache.Options{})
	defer cat.Close()
	cat.Projects(context.Background())

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(&DatasetCollector{catalog: cat, now: time.Now})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	got := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if len(m.GetLabel()) != 1 || m.GetLabel()[0].GetValue() != dataset.Projects {
				t.Errorf("%s has unexpected labels %v", mf.GetName(), m.GetLabel())
			}
			got[mf.GetName()] = m.GetGauge().GetValue()
		}
	}

	if got["innovata_dataset_items"] != 3 {
		t.Errorf("items = %v, want 3", got["innovata_dataset_items"])
	}
	if got["innovata_dataset_up"] != 1 {
		t.Errorf("up = %v, want 1", got["innovata_dataset_up"])
	}
	if _, ok := got["innovata_dataset_age_seconds"]; !ok {
		t.Error("age metric missing")
	}
}

func TestObserveFetch(t *testing.T) {
	key := cache.Key{Dataset: "observe-test", URL: "https://x"}
	ObserveFetch(key, 20*time.Millisecond, nil)
	ObserveFetch(key, 30*time.Millisecond, &sheet.ParseError{Message: "bad"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(fetchTotal, fetchDuration)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	counts := map[string]float64{}
	var observations uint64
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["dataset"] != key.Dataset {
				continue
			}
			switch mf.GetName() {
			case "innovata_sheet_fetches_total":
				counts[labels["outcome"]] = m.GetCounter().GetValue()
			case "innovata_sheet_fetch_duration_seconds":
				observations = m.GetHistogram().GetSampleCount()
			}
		}
	}

	if counts[OutcomeOK] != 1 || counts[OutcomeParse] != 1 {
		t.Errorf("fetch counts = %v", counts)
	}
	if observations != 2 {
		t.Errorf("duration observations = %d, want 2", observations)
	}
}
