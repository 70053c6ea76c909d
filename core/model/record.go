package model

// MonthRecord is the accepted dispatch for a single month of the horizon.
// Records are produced once per outer iteration and are immutable after the
// month's solve completes.
type MonthRecord struct {
	Month int // 1-based calendar index

	DemandMW  float64 // exogenous load
	InflowMWh float64 // exogenous reservoir inflow

	HydroMW   float64 // solved hydro generation
	ThermalMW float64 // solved thermal generation
	LossesMW  float64 // transmission losses at the solved operating point

	ReservoirStartMWh float64
	ReservoirEndMWh   float64

	// CostUSD is the thermal fuel cost only. Water carries no cash cost,
	// only the opportunity cost priced by ShadowPrice.
	CostUSD float64

	// ShadowPrice is the water value ($/MWh) this month was solved against.
	ShadowPrice float64
}

// HydroEnergyMWh is the reservoir energy drawn by the month's hydro output.
func (r MonthRecord) HydroEnergyMWh(periodHours float64) float64 {
	return r.HydroMW * periodHours
}
