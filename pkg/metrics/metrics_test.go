package metrics

import (
	"testing"
	"time"

	"github.com/yeisme/torrentvault/pkg/configs"
)

func TestInitMetricsRegisters(t *testing.T) {
	cfg := configs.MetricsConfig{Enabled: true, Namespace: "tvtest"}
	if err := InitMetrics(cfg); err != nil {
		t.Fatalf("InitMetrics: %v", err)
	}

	IngestTotal.WithLabelValues("music", OutcomeOK).Inc()
	BlobBytes.Add(128)
	ObserveStage("decode", time.Now())

	families, err := GetRegistry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := map[string]float64{}

	for _, f := range families {
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				found[f.GetName()] += c.GetValue()
			}
		}
	}

	if found["tvtest_ingest_total"] != 1 {
		t.Errorf("ingest_total = %v", found["tvtest_ingest_total"])
	}

	if found["tvtest_blob_bytes_total"] != 128 {
		t.Errorf("blob_bytes_total = %v", found["tvtest_blob_bytes_total"])
	}
}
