package metrics

import "time"

// IterationEvent captures one outer iteration of the equilibrium search.
type IterationEvent struct {
	RunID       string
	Iteration   int
	ShadowPrice float64
	Time        time.Time
}

// PlanSink records equilibrium iterations for observability purposes.
type PlanSink interface {
	RecordIteration(ev IterationEvent) error
}

// PlanEvent summarizes a finished planning run.
type PlanEvent struct {
	RunID        string
	Converged    bool
	Iterations   int
	FinalPrice   float64
	TotalCostUSD float64
	HydroShare   float64
	Time         time.Time
}

// PlanRecorder records run summaries.
type PlanRecorder interface {
	RecordPlan(ev PlanEvent) error
}

// MonthEvent is the dispatch of a single month from the accepted schedule.
type MonthEvent struct {
	RunID           string
	Month           int
	DemandMW        float64
	HydroMW         float64
	ThermalMW       float64
	LossesMW        float64
	ReservoirEndMWh float64
	CostUSD         float64
	ShadowPrice     float64
	Time            time.Time
}

// MonthRecorder records per-month dispatch points.
type MonthRecorder interface {
	RecordMonths(evs []MonthEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordIteration(IterationEvent) error { return nil }
func (NopSink) RecordPlan(PlanEvent) error           { return nil }
func (NopSink) RecordMonths([]MonthEvent) error      { return nil }
