package config

import (
	"fmt"

	"github.com/kilianp07/hydroplan/core/model"
)

// SystemConfig maps the two-plant system description from the configuration
// file onto model.SystemParameters.
type SystemConfig struct {
	ThermalCostUSDPerMWh float64 `json:"thermal_cost_usd_per_mwh"`
	HydroMinMW           float64 `json:"hydro_min_mw"`
	HydroMaxMW           float64 `json:"hydro_max_mw"`
	ThermalMinMW         float64 `json:"thermal_min_mw"`
	ThermalMaxMW         float64 `json:"thermal_max_mw"`
	ReservoirMinMWh      float64 `json:"reservoir_min_mwh"`
	ReservoirMaxMWh      float64 `json:"reservoir_max_mwh"`
	ReservoirInitialMWh  float64 `json:"reservoir_initial_mwh"`
	LossCoefficient      float64 `json:"loss_coefficient"`
	TransmissionLimitMW  float64 `json:"transmission_limit_mw"`
	PeriodHours          float64 `json:"period_hours"`
	PriceToleranceUSD    float64 `json:"price_tolerance_usd"`
	BalanceTolerance     float64 `json:"balance_tolerance"`
	MaxIterations        int     `json:"max_iterations"`
}

// SetDefaults applies the reference system used when a field is omitted.
func (c *SystemConfig) SetDefaults() {
	if c.ThermalCostUSDPerMWh == 0 {
		c.ThermalCostUSDPerMWh = 50
	}
	if c.HydroMaxMW == 0 {
		c.HydroMinMW = 50
		c.HydroMaxMW = 400
	}
	if c.ThermalMaxMW == 0 {
		c.ThermalMinMW = 100
		c.ThermalMaxMW = 600
	}
	if c.LossCoefficient == 0 {
		c.LossCoefficient = 0.0001
	}
	if c.TransmissionLimitMW == 0 {
		c.TransmissionLimitMW = 800
	}
	if c.PeriodHours == 0 {
		c.PeriodHours = 1
	}
	if c.PriceToleranceUSD == 0 {
		c.PriceToleranceUSD = 1e-3
	}
	if c.BalanceTolerance == 0 {
		c.BalanceTolerance = 1e-6
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 20
	}
}

// Parameters builds the immutable parameter value passed to the planner.
func (c SystemConfig) Parameters() model.SystemParameters {
	return model.SystemParameters{
		ThermalCostUSDPerMWh: c.ThermalCostUSDPerMWh,
		HydroMinMW:           c.HydroMinMW,
		HydroMaxMW:           c.HydroMaxMW,
		ThermalMinMW:         c.ThermalMinMW,
		ThermalMaxMW:         c.ThermalMaxMW,
		ReservoirMinMWh:      c.ReservoirMinMWh,
		ReservoirMaxMWh:      c.ReservoirMaxMWh,
		ReservoirInitialMWh:  c.ReservoirInitialMWh,
		LossCoefficient:      c.LossCoefficient,
		TransmissionLimitMW:  c.TransmissionLimitMW,
		PeriodHours:          c.PeriodHours,
		PriceToleranceUSD:    c.PriceToleranceUSD,
		BalanceTolerance:     c.BalanceTolerance,
		MaxIterations:        c.MaxIterations,
	}
}

// Validate checks the assembled parameters.
func (c SystemConfig) Validate() error {
	if err := c.Parameters().Validate(); err != nil {
		return fmt.Errorf("system: %w", err)
	}
	return nil
}
