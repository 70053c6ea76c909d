package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/hydroplan/core/metrics"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	iterations  prometheus.Counter
	runs        *prometheus.CounterVec
	shadowPrice prometheus.Gauge
	totalCost   prometheus.Gauge
	hydroShare  prometheus.Gauge
}

// NewPromSink registers planner metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.PlanSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.PlanSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	iterations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_iterations_total",
		Help: "Total number of shadow-price iterations solved",
	})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_runs_total",
		Help: "Total number of planning runs",
	}, []string{"converged"})
	shadowPrice := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_shadow_price_usd_per_mwh",
		Help: "Water value of the latest planning run",
	})
	totalCost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_total_cost_usd",
		Help: "Thermal cost of the latest accepted schedule",
	})
	hydroShare := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_hydro_share",
		Help: "Fraction of demand served by hydro in the latest schedule",
	})

	s := &PromSink{iterations: iterations, runs: runs, shadowPrice: shadowPrice, totalCost: totalCost, hydroShare: hydroShare}
	collectors := []prometheus.Collector{iterations, runs, shadowPrice, totalCost, hydroShare}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordIteration counts iterations and tracks the trial price.
func (s *PromSink) RecordIteration(ev coremetrics.IterationEvent) error {
	s.iterations.Inc()
	s.shadowPrice.Set(ev.ShadowPrice)
	return nil
}

// RecordPlan updates the run counters and summary gauges.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.runs.WithLabelValues(strconv.FormatBool(ev.Converged)).Inc()
	s.shadowPrice.Set(ev.FinalPrice)
	s.totalCost.Set(ev.TotalCostUSD)
	s.hydroShare.Set(ev.HydroShare)
	return nil
}
