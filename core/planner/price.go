package planner

import (
	"math"

	"github.com/kilianp07/hydroplan/core/model"
)

// RevisePrice derives the next trial water value from the realized scarcity
// of a solved year. When any month presses the reservoir against its lower
// bound the marginal month is served by thermal generation, so at
// equilibrium the water value must equal the thermal unit cost. With slack
// everywhere the stored water has no scarcity value.
//
// The rule is a pure function of the records so it can be tested against
// hand-built scarcity scenarios independently of the solver.
func RevisePrice(records []model.MonthRecord, params model.SystemParameters) float64 {
	for _, r := range records {
		if waterConstrained(r, params) {
			return params.ThermalCostUSDPerMWh
		}
	}
	return 0
}

// waterConstrained reports whether the reservoir lower bound binds at the
// end of the month.
func waterConstrained(r model.MonthRecord, params model.SystemParameters) bool {
	tol := params.BalanceTolerance * math.Max(1, params.ReservoirMaxMWh)
	return r.ReservoirEndMWh <= params.ReservoirMinMWh+tol
}
