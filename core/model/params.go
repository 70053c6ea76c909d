package model

import "fmt"

// MonthsPerYear is the fixed planning horizon of the annual schedule.
const MonthsPerYear = 12

// SystemParameters describes the two-plant system and the numerical policy
// of the planner. The value is immutable during a run; every solver call
// receives it by value.
type SystemParameters struct {
	// ThermalCostUSDPerMWh is the linear fuel cost of the thermal plant.
	ThermalCostUSDPerMWh float64

	// Generation limits in MW.
	HydroMinMW   float64
	HydroMaxMW   float64
	ThermalMinMW float64
	ThermalMaxMW float64

	// Reservoir volumes in MWh-equivalent stored energy.
	ReservoirMinMWh     float64
	ReservoirMaxMWh     float64
	ReservoirInitialMWh float64

	// LossCoefficient models quadratic transmission losses:
	// losses = LossCoefficient * (hydro + thermal)^2, in MW.
	LossCoefficient float64

	// TransmissionLimitMW caps total generation on the line. Zero disables
	// the constraint.
	TransmissionLimitMW float64

	// PeriodHours converts MW of hydro output into MWh-equivalent drawn
	// from the reservoir over one month of the schedule.
	PeriodHours float64

	// PriceToleranceUSD is the convergence tolerance on the shadow price
	// between outer iterations.
	PriceToleranceUSD float64

	// BalanceTolerance is the relative tolerance applied to the power
	// balance and to bound checks on solver output.
	BalanceTolerance float64

	// MaxIterations caps the outer shadow-price iteration.
	MaxIterations int
}

// Validate checks that the parameter set describes a solvable system.
func (p SystemParameters) Validate() error {
	if p.ThermalCostUSDPerMWh <= 0 {
		return fmt.Errorf("thermal cost must be positive")
	}
	if p.HydroMinMW < 0 || p.HydroMaxMW < p.HydroMinMW {
		return fmt.Errorf("hydro bounds [%v, %v] invalid", p.HydroMinMW, p.HydroMaxMW)
	}
	if p.ThermalMinMW < 0 || p.ThermalMaxMW < p.ThermalMinMW {
		return fmt.Errorf("thermal bounds [%v, %v] invalid", p.ThermalMinMW, p.ThermalMaxMW)
	}
	if p.ReservoirMaxMWh < p.ReservoirMinMWh {
		return fmt.Errorf("reservoir bounds [%v, %v] invalid", p.ReservoirMinMWh, p.ReservoirMaxMWh)
	}
	if p.ReservoirInitialMWh < p.ReservoirMinMWh || p.ReservoirInitialMWh > p.ReservoirMaxMWh {
		return fmt.Errorf("initial reservoir volume %v outside [%v, %v]",
			p.ReservoirInitialMWh, p.ReservoirMinMWh, p.ReservoirMaxMWh)
	}
	if p.LossCoefficient < 0 {
		return fmt.Errorf("loss coefficient must not be negative")
	}
	if p.TransmissionLimitMW < 0 {
		return fmt.Errorf("transmission limit must not be negative")
	}
	if p.PeriodHours <= 0 {
		return fmt.Errorf("period hours must be positive")
	}
	if p.PriceToleranceUSD <= 0 {
		return fmt.Errorf("price tolerance must be positive")
	}
	if p.BalanceTolerance <= 0 {
		return fmt.Errorf("balance tolerance must be positive")
	}
	if p.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive")
	}
	return nil
}
