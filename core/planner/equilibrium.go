package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/hydroplan/core/logger"
	"github.com/kilianp07/hydroplan/core/metrics"
	"github.com/kilianp07/hydroplan/core/model"
)

// Planner searches for the shadow-price fixed point of an annual
// hydrothermal schedule: the single water value under which every month's
// independent dispatch is consistent with the reservoir balance.
type Planner struct {
	params model.SystemParameters
	log    logger.Logger
	sink   metrics.PlanSink
	runID  string
}

// New validates the parameters and builds a planner. A nil logger or sink
// is replaced by a no-op implementation.
func New(params model.SystemParameters, log logger.Logger, sink metrics.PlanSink) (*Planner, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("system parameters: %w", err)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{params: params, log: log, sink: sink}, nil
}

// SetRunID tags metric events emitted by subsequent runs.
func (p *Planner) SetRunID(id string) { p.runID = id }

// Run iterates the shadow price to equilibrium. The returned schedule is
// the last iteration's records; Converged reports whether the price
// stabilized before the iteration cap. Infeasible or numerically failed
// months abort the run with the month context attached.
func (p *Planner) Run(ctx context.Context, demandsMW, inflowsMWh []float64) (*model.Schedule, error) {
	if len(demandsMW) != model.MonthsPerYear {
		return nil, fmt.Errorf("expected %d monthly demands, got %d", model.MonthsPerYear, len(demandsMW))
	}
	if len(inflowsMWh) != model.MonthsPerYear {
		return nil, fmt.Errorf("expected %d monthly inflows, got %d", model.MonthsPerYear, len(inflowsMWh))
	}

	price := 0.0
	var history []model.PricePoint
	var prev, records []model.MonthRecord

	for iter := 1; iter <= p.params.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		records, err = p.solveYear(demandsMW, inflowsMWh, price)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		history = append(history, model.PricePoint{Iteration: iter, Price: price})
		if err := p.sink.RecordIteration(metrics.IterationEvent{
			RunID: p.runID, Iteration: iter, ShadowPrice: price, Time: time.Now(),
		}); err != nil {
			p.log.Warnf("metrics sink: %v", err)
		}

		next := RevisePrice(records, p.params)
		p.log.Debugw("iteration solved", map[string]any{
			"iteration":     iter,
			"price":         price,
			"revised_price": next,
		})

		if math.Abs(next-price) < p.params.PriceToleranceUSD || p.dispatchUnchanged(prev, records) {
			schedule := p.finish(records, price, iter, true, history)
			p.log.Infof("equilibrium reached after %d iterations at %.2f $/MWh", iter, price)
			return schedule, nil
		}
		prev = records
		price = next
	}

	p.log.Warnf("shadow price did not stabilize within %d iterations, returning last schedule", p.params.MaxIterations)
	return p.finish(records, price, p.params.MaxIterations, false, history), nil
}

// solveYear dispatches the twelve months in order under one trial price,
// carrying the reservoir volume forward month to month.
func (p *Planner) solveYear(demandsMW, inflowsMWh []float64, price float64) ([]model.MonthRecord, error) {
	reservoir := p.params.ReservoirInitialMWh
	records := make([]model.MonthRecord, 0, model.MonthsPerYear)
	for i := 0; i < model.MonthsPerYear; i++ {
		rec, err := SolveMonth(i+1, demandsMW[i], inflowsMWh[i], reservoir, price, p.params)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		reservoir = rec.ReservoirEndMWh
	}
	return records, nil
}

// dispatchUnchanged reports whether two consecutive iterations produced the
// same generation plan within tolerance.
func (p *Planner) dispatchUnchanged(prev, cur []model.MonthRecord) bool {
	if len(prev) != len(cur) {
		return false
	}
	tol := p.params.BalanceTolerance * math.Max(1, p.params.HydroMaxMW+p.params.ThermalMaxMW)
	for i := range cur {
		if math.Abs(prev[i].HydroMW-cur[i].HydroMW) > tol ||
			math.Abs(prev[i].ThermalMW-cur[i].ThermalMW) > tol {
			return false
		}
	}
	return true
}

func (p *Planner) finish(records []model.MonthRecord, price float64, iterations int, converged bool, history []model.PricePoint) *model.Schedule {
	schedule := &model.Schedule{
		Months:     records,
		FinalPrice: price,
		Iterations: iterations,
		Converged:  converged,
		History:    history,
	}
	now := time.Now()
	if rec, ok := p.sink.(metrics.PlanRecorder); ok {
		if err := rec.RecordPlan(metrics.PlanEvent{
			RunID:        p.runID,
			Converged:    converged,
			Iterations:   iterations,
			FinalPrice:   price,
			TotalCostUSD: schedule.TotalCostUSD(),
			HydroShare:   schedule.HydroShare(),
			Time:         now,
		}); err != nil {
			p.log.Warnf("metrics sink: %v", err)
		}
	}
	if rec, ok := p.sink.(metrics.MonthRecorder); ok {
		evs := make([]metrics.MonthEvent, 0, len(records))
		for _, r := range records {
			evs = append(evs, metrics.MonthEvent{
				RunID:           p.runID,
				Month:           r.Month,
				DemandMW:        r.DemandMW,
				HydroMW:         r.HydroMW,
				ThermalMW:       r.ThermalMW,
				LossesMW:        r.LossesMW,
				ReservoirEndMWh: r.ReservoirEndMWh,
				CostUSD:         r.CostUSD,
				ShadowPrice:     r.ShadowPrice,
				Time:            now,
			})
		}
		if err := rec.RecordMonths(evs); err != nil {
			p.log.Warnf("metrics sink: %v", err)
		}
	}
	return schedule
}
