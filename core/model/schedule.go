package model

// PricePoint records the shadow price used during one outer iteration.
type PricePoint struct {
	Iteration int
	Price     float64
}

// Schedule is the result of an equilibrium run: the final iteration's
// twelve month records plus the convergence bookkeeping.
type Schedule struct {
	Months     []MonthRecord
	FinalPrice float64
	Iterations int
	Converged  bool
	History    []PricePoint
}

// TotalCostUSD sums the thermal cost over the horizon.
func (s *Schedule) TotalCostUSD() float64 {
	var total float64
	for _, m := range s.Months {
		total += m.CostUSD
	}
	return total
}

// TotalDemandMW sums demand over the horizon.
func (s *Schedule) TotalDemandMW() float64 {
	var total float64
	for _, m := range s.Months {
		total += m.DemandMW
	}
	return total
}

// HydroShare is the fraction of total demand served by hydro generation.
func (s *Schedule) HydroShare() float64 {
	demand := s.TotalDemandMW()
	if demand == 0 {
		return 0
	}
	var hydro float64
	for _, m := range s.Months {
		hydro += m.HydroMW
	}
	return hydro / demand
}

// ThermalShare is the fraction of total demand served by thermal generation.
func (s *Schedule) ThermalShare() float64 {
	demand := s.TotalDemandMW()
	if demand == 0 {
		return 0
	}
	var thermal float64
	for _, m := range s.Months {
		thermal += m.ThermalMW
	}
	return thermal / demand
}
