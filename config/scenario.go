package config

import (
	"fmt"

	"github.com/kilianp07/hydroplan/core/model"
)

// ScenarioConfig holds the exogenous monthly series.
type ScenarioConfig struct {
	DemandsMW  []float64 `json:"demands_mw"`
	InflowsMWh []float64 `json:"inflows_mwh"`
}

// Validate checks that both series cover the full horizon.
func (c ScenarioConfig) Validate() error {
	if len(c.DemandsMW) != model.MonthsPerYear {
		return fmt.Errorf("scenario: expected %d monthly demands, got %d", model.MonthsPerYear, len(c.DemandsMW))
	}
	if len(c.InflowsMWh) != model.MonthsPerYear {
		return fmt.Errorf("scenario: expected %d monthly inflows, got %d", model.MonthsPerYear, len(c.InflowsMWh))
	}
	for i, d := range c.DemandsMW {
		if d < 0 {
			return fmt.Errorf("scenario: demand for month %d is negative", i+1)
		}
	}
	for i, f := range c.InflowsMWh {
		if f < 0 {
			return fmt.Errorf("scenario: inflow for month %d is negative", i+1)
		}
	}
	return nil
}
