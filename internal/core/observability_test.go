package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorderObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	ctx := context.Background()
	rec.Observe(ctx, "missions.list", true, 2*time.Millisecond)
	rec.Observe(ctx, "missions.list", true, time.Millisecond)
	rec.Observe(ctx, "preference.set", false, time.Millisecond)
	rec.Observe(ctx, "", true, time.Millisecond)

	if got := testutil.ToFloat64(rec.results.WithLabelValues("missions.list", "success")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(rec.results.WithLabelValues("preference.set", "error")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if n := testutil.CollectAndCount(rec.results); n != 2 {
		t.Fatalf("expected 2 label sets, got %d", n)
	}
}

func TestPrometheusRecorderDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusRecorder(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPrometheusRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := NewPrometheusRecorder(nil); err != nil {
		t.Fatalf("nil registerer should skip registration: %v", err)
	}
}

func TestServiceWithPrometheus(t *testing.T) {
	rec, _ := NewPrometheusRecorder(nil)
	svc := NewService(NewDefaultCatalogStore(), nil, WithMetrics(rec))
	svc.Summary(context.Background())
	if got := testutil.ToFloat64(rec.results.WithLabelValues("summary", "success")); got != 1 {
		t.Fatalf("expected summary to be counted, got %v", got)
	}
}
