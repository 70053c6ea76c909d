package planner

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/kilianp07/hydroplan/core/model"
	"github.com/kilianp07/hydroplan/internal/nlp"
)

func testParams() model.SystemParameters {
	return model.SystemParameters{
		ThermalCostUSDPerMWh: 50,
		HydroMinMW:           50,
		HydroMaxMW:           400,
		ThermalMinMW:         100,
		ThermalMaxMW:         600,
		ReservoirMinMWh:      500,
		ReservoirMaxMWh:      4000,
		ReservoirInitialMWh:  1500,
		LossCoefficient:      0.0001,
		TransmissionLimitMW:  800,
		PeriodHours:          2,
		PriceToleranceUSD:    1e-3,
		BalanceTolerance:     1e-6,
		MaxIterations:        20,
	}
}

func checkRecord(t *testing.T, r model.MonthRecord, params model.SystemParameters) {
	t.Helper()
	tol := 1e-3
	if balance := r.HydroMW + r.ThermalMW - r.LossesMW - r.DemandMW; math.Abs(balance) > tol {
		t.Errorf("month %d: power balance off by %g", r.Month, balance)
	}
	if r.HydroMW < params.HydroMinMW-tol || r.HydroMW > params.HydroMaxMW+tol {
		t.Errorf("month %d: hydro %g outside [%g, %g]", r.Month, r.HydroMW, params.HydroMinMW, params.HydroMaxMW)
	}
	if r.ThermalMW < params.ThermalMinMW-tol || r.ThermalMW > params.ThermalMaxMW+tol {
		t.Errorf("month %d: thermal %g outside [%g, %g]", r.Month, r.ThermalMW, params.ThermalMinMW, params.ThermalMaxMW)
	}
	if r.ReservoirEndMWh < params.ReservoirMinMWh-tol || r.ReservoirEndMWh > params.ReservoirMaxMWh+tol {
		t.Errorf("month %d: reservoir %g outside [%g, %g]", r.Month, r.ReservoirEndMWh, params.ReservoirMinMWh, params.ReservoirMaxMWh)
	}
	water := r.ReservoirStartMWh + r.InflowMWh - r.HydroMW*params.PeriodHours
	if math.Abs(water-r.ReservoirEndMWh) > tol {
		t.Errorf("month %d: water balance off by %g", r.Month, water-r.ReservoirEndMWh)
	}
}

func TestSolveMonth_FreeWaterMaximizesHydro(t *testing.T) {
	params := testParams()
	rec, err := SolveMonth(1, 500, 850, 1500, 0, params)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	checkRecord(t, rec, params)
	if math.Abs(rec.HydroMW-params.HydroMaxMW) > 1e-3 {
		t.Fatalf("expected hydro at maximum with free water, got %g", rec.HydroMW)
	}
	if rec.ShadowPrice != 0 {
		t.Fatalf("recorded price should be 0, got %g", rec.ShadowPrice)
	}
}

func TestSolveMonth_WaterLimited(t *testing.T) {
	params := testParams()
	// Only 300 MW of hydro can run before the reservoir floor binds.
	rec, err := SolveMonth(8, 530, 550, 550, 0, params)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	checkRecord(t, rec, params)
	if math.Abs(rec.HydroMW-300) > 1e-3 {
		t.Fatalf("expected water-limited hydro of 300, got %g", rec.HydroMW)
	}
	if math.Abs(rec.ReservoirEndMWh-params.ReservoirMinMWh) > 1e-3 {
		t.Fatalf("expected reservoir at minimum, got %g", rec.ReservoirEndMWh)
	}
}

func TestSolveMonth_PriceMonotonicity(t *testing.T) {
	params := testParams()
	prices := []float64{0, 10, 25, 49, 50, 60, 100}
	var prev float64 = math.Inf(1)
	for _, price := range prices {
		rec, err := SolveMonth(1, 500, 850, 1500, price, params)
		if err != nil {
			t.Fatalf("solve at price %g: %v", price, err)
		}
		checkRecord(t, rec, params)
		if rec.HydroMW > prev+1e-3 {
			t.Fatalf("hydro increased from %g to %g when price rose to %g", prev, rec.HydroMW, price)
		}
		prev = rec.HydroMW
	}
}

func TestSolveMonth_ExpensiveWaterMinimizesHydro(t *testing.T) {
	params := testParams()
	rec, err := SolveMonth(1, 500, 850, 1500, 80, params)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	checkRecord(t, rec, params)
	if math.Abs(rec.HydroMW-params.HydroMinMW) > 1e-3 {
		t.Fatalf("expected hydro at minimum with expensive water, got %g", rec.HydroMW)
	}
}

func TestSolveMonth_TransmissionLimit(t *testing.T) {
	params := testParams()
	_, err := SolveMonth(4, 900, 850, 1500, 0, params)
	var infeasible *MonthInfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected MonthInfeasibleError, got %v", err)
	}
	if infeasible.Month != 4 {
		t.Fatalf("expected month 4, got %d", infeasible.Month)
	}
}

func TestSolveMonth_DemandBeyondCapacity(t *testing.T) {
	params := testParams()
	params.TransmissionLimitMW = 0
	_, err := SolveMonth(2, 1200, 850, 1500, 0, params)
	var infeasible *MonthInfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected MonthInfeasibleError, got %v", err)
	}
	found := false
	for _, c := range infeasible.Conflicts {
		if c == "thermal maximum" || c == "hydro maximum" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a generation capacity conflict, got %v", infeasible.Conflicts)
	}
}

func TestSolveMonth_WaterShortage(t *testing.T) {
	params := testParams()
	// 30 MW of water-backed hydro is below the hydro minimum.
	_, err := SolveMonth(3, 500, 60, 500, 0, params)
	var infeasible *MonthInfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected MonthInfeasibleError, got %v", err)
	}
	if infeasible.Month != 3 {
		t.Fatalf("expected month 3, got %d", infeasible.Month)
	}
	found := false
	for _, c := range infeasible.Conflicts {
		if c == "reservoir minimum" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected reservoir minimum conflict, got %v", infeasible.Conflicts)
	}
}

func TestSolveMonth_LossLimitedCapacity(t *testing.T) {
	params := testParams()
	params.LossCoefficient = 0.001
	_, err := SolveMonth(1, 300, 850, 1500, 0, params)
	var infeasible *MonthInfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected MonthInfeasibleError, got %v", err)
	}
}

func TestSolveMonth_SolverFailure(t *testing.T) {
	orig := nlpSolve
	nlpSolve = func(nlp.Problem, float64) (*nlp.Result, error) {
		return nil, fmt.Errorf("simulated numerical failure")
	}
	defer func() { nlpSolve = orig }()

	params := testParams()
	_, err := SolveMonth(5, 500, 850, 1500, 0, params)
	var failure *SolverFailureError
	if !errors.As(err, &failure) {
		t.Fatalf("expected SolverFailureError, got %v", err)
	}
	if failure.Month != 5 {
		t.Fatalf("expected month 5, got %d", failure.Month)
	}
}

func TestSolveMonth_Deterministic(t *testing.T) {
	params := testParams()
	a, err := SolveMonth(1, 500, 850, 1500, 10, params)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	b, err := SolveMonth(1, 500, 850, 1500, 10, params)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if a != b {
		t.Fatalf("solver is not deterministic: %+v vs %+v", a, b)
	}
}
