package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/hydroplan/core/metrics"
)

func TestPromSink_RecordEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}

	now := time.Now()
	if err := sink.RecordIteration(coremetrics.IterationEvent{RunID: "r", Iteration: 1, ShadowPrice: 0, Time: now}); err != nil {
		t.Fatalf("iteration: %v", err)
	}
	if err := sink.RecordIteration(coremetrics.IterationEvent{RunID: "r", Iteration: 2, ShadowPrice: 50, Time: now}); err != nil {
		t.Fatalf("iteration: %v", err)
	}
	if err := sink.RecordPlan(coremetrics.PlanEvent{RunID: "r", Converged: true, Iterations: 2, FinalPrice: 50, TotalCostUSD: 186000, HydroShare: 0.75, Time: now}); err != nil {
		t.Fatalf("plan: %v", err)
	}

	expected := `
# HELP plan_iterations_total Total number of shadow-price iterations solved
# TYPE plan_iterations_total counter
plan_iterations_total 2
`
	if err := testutil.CollectAndCompare(sink.iterations, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected iteration metrics: %v", err)
	}

	expected = `
# HELP plan_runs_total Total number of planning runs
# TYPE plan_runs_total counter
plan_runs_total{converged="true"} 1
`
	if err := testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected run metrics: %v", err)
	}

	if got := testutil.ToFloat64(sink.shadowPrice); got != 50 {
		t.Errorf("shadow price gauge: expected 50, got %v", got)
	}
	if got := testutil.ToFloat64(sink.hydroShare); got != 0.75 {
		t.Errorf("hydro share gauge: expected 0.75, got %v", got)
	}
}
