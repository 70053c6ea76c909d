// Package report renders an accepted schedule for human consumption: a CSV
// file of the monthly records and a console summary. Both are projections of
// the MonthRecord sequence; no figure is recomputed through a separate path.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kilianp07/hydroplan/core/model"
)

var csvHeader = []string{
	"month", "demand_mw", "inflow_mwh", "hydro_mw", "thermal_mw", "losses_mw",
	"reservoir_start_mwh", "reservoir_end_mwh", "cost_usd", "shadow_price_usd_per_mwh",
}

// WriteCSV serializes the schedule's month records.
func WriteCSV(w io.Writer, s *model.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range s.Months {
		row := []string{
			strconv.Itoa(m.Month),
			formatFloat(m.DemandMW),
			formatFloat(m.InflowMWh),
			formatFloat(m.HydroMW),
			formatFloat(m.ThermalMW),
			formatFloat(m.LossesMW),
			formatFloat(m.ReservoirStartMWh),
			formatFloat(m.ReservoirEndMWh),
			formatFloat(m.CostUSD),
			formatFloat(m.ShadowPrice),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the schedule to the given path.
func WriteCSVFile(path string, s *model.Schedule) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, s); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
