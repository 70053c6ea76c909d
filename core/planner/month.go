package planner

import (
	"fmt"
	"math"

	"github.com/kilianp07/hydroplan/core/model"
	"github.com/kilianp07/hydroplan/internal/nlp"
)

// hydroTieBreak is a relative discount applied to the water value inside the
// solver objective. When the shadow price exactly equals the thermal unit
// cost the two plants are cost-indifferent; the discount makes the solver
// deterministically prefer water, keeping the price fixed point stable. The
// discount shifts the preference threshold by 0.1% of the thermal cost.
const hydroTieBreak = 1e-3

// nlpSolve points to the nonlinear solver. Tests override it to simulate
// numerical failures.
var nlpSolve = nlp.Solve

// namedBound pairs a hydro-generation bound with the constraint it came from.
type namedBound struct {
	value float64
	name  string
}

// requiredGenerationMW solves S - k*S^2 = demand for total generation S,
// taking the smaller root of the quadratic. A negative discriminant means
// the demand exceeds the loss-limited capacity of the line.
func requiredGenerationMW(demandMW, lossCoef float64) (float64, bool) {
	if lossCoef == 0 {
		return demandMW, true
	}
	disc := 1 - 4*lossCoef*demandMW
	if disc < 0 {
		return 0, false
	}
	return (1 - math.Sqrt(disc)) / (2 * lossCoef), true
}

// SolveMonth dispatches a single month against the given shadow price. It is
// a pure function of its inputs: the same arguments always produce the same
// record. Infeasible constraint sets return *MonthInfeasibleError; numerical
// solver trouble returns *SolverFailureError.
func SolveMonth(month int, demandMW, inflowMWh, reservoirStartMWh, shadowPrice float64, params model.SystemParameters) (model.MonthRecord, error) {
	infeasible := func(conflicts ...string) (model.MonthRecord, error) {
		return model.MonthRecord{}, &MonthInfeasibleError{
			Month:             month,
			DemandMW:          demandMW,
			InflowMWh:         inflowMWh,
			ReservoirStartMWh: reservoirStartMWh,
			ShadowPrice:       shadowPrice,
			Conflicts:         conflicts,
		}
	}

	tol := params.BalanceTolerance * math.Max(1, demandMW)

	totalMW, ok := requiredGenerationMW(demandMW, params.LossCoefficient)
	if !ok {
		return infeasible("demand beyond loss-limited line capacity")
	}
	if params.TransmissionLimitMW > 0 && totalMW > params.TransmissionLimitMW+tol {
		return infeasible("transmission limit")
	}

	// Every constraint reduces to a bound on hydro output once the power
	// balance fixes total generation. The intersection gives the feasible
	// hydro interval; an empty intersection names the conflicting pair.
	lo := namedBound{params.HydroMinMW, "hydro minimum"}
	if b := totalMW - params.ThermalMaxMW; b > lo.value {
		lo = namedBound{b, "thermal maximum"}
	}
	if b := (reservoirStartMWh + inflowMWh - params.ReservoirMaxMWh) / params.PeriodHours; b > lo.value {
		lo = namedBound{b, "reservoir maximum"}
	}
	hi := namedBound{params.HydroMaxMW, "hydro maximum"}
	if b := totalMW - params.ThermalMinMW; b < hi.value {
		hi = namedBound{b, "thermal minimum"}
	}
	if b := (reservoirStartMWh + inflowMWh - params.ReservoirMinMWh) / params.PeriodHours; b < hi.value {
		hi = namedBound{b, "reservoir minimum"}
	}
	if lo.value > hi.value+tol {
		return infeasible(lo.name, hi.name)
	}

	record, err := solveDispatch(month, demandMW, inflowMWh, reservoirStartMWh, shadowPrice, totalMW, lo.value, hi.value, tol, params)
	if err != nil {
		return model.MonthRecord{}, err
	}
	return record, nil
}

// solveDispatch runs the nonlinear program and maps its solution back onto
// the exact power-balance curve.
func solveDispatch(month int, demandMW, inflowMWh, reservoirStartMWh, shadowPrice, totalMW, hydroLo, hydroHi, tol float64, params model.SystemParameters) (model.MonthRecord, error) {
	waterValue := shadowPrice - hydroTieBreak*params.ThermalCostUSDPerMWh

	problem := nlp.Problem{
		Objective: func(x []float64) float64 {
			return (params.ThermalCostUSDPerMWh*x[1] + waterValue*x[0]) * params.PeriodHours
		},
		Bounds: [][2]float64{
			{params.HydroMinMW, params.HydroMaxMW},
			{params.ThermalMinMW, params.ThermalMaxMW},
		},
		EqCons: []nlp.Constraint{
			func(x []float64) float64 {
				total := x[0] + x[1]
				return total - params.LossCoefficient*total*total - demandMW
			},
		},
		IneqCons: []nlp.Constraint{
			func(x []float64) float64 {
				return reservoirStartMWh + inflowMWh - x[0]*params.PeriodHours - params.ReservoirMinMWh
			},
			func(x []float64) float64 {
				return params.ReservoirMaxMWh - (reservoirStartMWh + inflowMWh - x[0]*params.PeriodHours)
			},
		},
		X0: []float64{
			(params.HydroMinMW + params.HydroMaxMW) / 2,
			(params.ThermalMinMW + params.ThermalMaxMW) / 2,
		},
	}
	if params.TransmissionLimitMW > 0 {
		problem.IneqCons = append(problem.IneqCons, func(x []float64) float64 {
			return params.TransmissionLimitMW - (x[0] + x[1])
		})
	}

	res, err := nlpSolve(problem, tol)
	if err != nil {
		return model.MonthRecord{}, &SolverFailureError{Month: month, ShadowPrice: shadowPrice, Err: err}
	}

	// Restoration: keep the solver's hydro decision, then recover thermal
	// from the exact balance so the record satisfies it to round-off. The
	// solver may sit a hair outside a bound because constraints are
	// penalized; within tolerance that is projected back, beyond tolerance
	// it is rejected.
	hydro := res.X[0]
	if hydro < hydroLo-tol || hydro > hydroHi+tol {
		return model.MonthRecord{}, &SolverFailureError{Month: month, ShadowPrice: shadowPrice,
			Err: fmt.Errorf("solution %.4f MW outside feasible hydro interval [%.4f, %.4f]", hydro, hydroLo, hydroHi)}
	}
	hydro = math.Min(math.Max(hydro, hydroLo), hydroHi)
	thermal := totalMW - hydro
	losses := params.LossCoefficient * totalMW * totalMW
	end := reservoirStartMWh + inflowMWh - hydro*params.PeriodHours

	return model.MonthRecord{
		Month:             month,
		DemandMW:          demandMW,
		InflowMWh:         inflowMWh,
		HydroMW:           hydro,
		ThermalMW:         thermal,
		LossesMW:          losses,
		ReservoirStartMWh: reservoirStartMWh,
		ReservoirEndMWh:   end,
		CostUSD:           thermal * params.PeriodHours * params.ThermalCostUSDPerMWh,
		ShadowPrice:       shadowPrice,
	}, nil
}

