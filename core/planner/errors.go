package planner

import (
	"fmt"
	"strings"
)

// MonthInfeasibleError reports that a month's constraint set has no feasible
// operating point under the current reservoir state and shadow price. It
// names the conflicting constraints so the caller can adjust parameters.
type MonthInfeasibleError struct {
	Month             int
	DemandMW          float64
	InflowMWh         float64
	ReservoirStartMWh float64
	ShadowPrice       float64
	Conflicts         []string
}

func (e *MonthInfeasibleError) Error() string {
	return fmt.Sprintf(
		"month %d infeasible (demand=%.2f MW, inflow=%.2f MWh, reservoir=%.2f MWh, price=%.2f $/MWh): conflicting constraints: %s",
		e.Month, e.DemandMW, e.InflowMWh, e.ReservoirStartMWh, e.ShadowPrice,
		strings.Join(e.Conflicts, ", "))
}

// SolverFailureError reports that the nonlinear solve failed numerically on
// a month that passed the feasibility pre-flight.
type SolverFailureError struct {
	Month       int
	ShadowPrice float64
	Err         error
}

func (e *SolverFailureError) Error() string {
	return fmt.Sprintf("month %d solver failure (price=%.2f $/MWh): %v", e.Month, e.ShadowPrice, e.Err)
}

func (e *SolverFailureError) Unwrap() error { return e.Err }
