package report

import (
	"fmt"
	"io"

	"github.com/kilianp07/hydroplan/core/model"
)

// WriteSummary prints the schedule in a compact human-readable form: one
// line per month followed by the annual aggregates.
func WriteSummary(w io.Writer, s *model.Schedule) error {
	if _, err := fmt.Fprintln(w, "--- Annual Hydrothermal Dispatch ---"); err != nil {
		return err
	}
	fmt.Fprintf(w, "%-5s %10s %10s %10s %10s %12s %12s\n",
		"Month", "Demand", "Hydro", "Thermal", "Losses", "Reservoir", "Cost")
	for _, m := range s.Months {
		fmt.Fprintf(w, "%-5d %8.2f MW %8.2f MW %8.2f MW %8.2f MW %8.2f MWh $%10.2f\n",
			m.Month, m.DemandMW, m.HydroMW, m.ThermalMW, m.LossesMW, m.ReservoirEndMWh, m.CostUSD)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Water value:        $%.2f/MWh\n", s.FinalPrice)
	fmt.Fprintf(w, "Hydro share:        %.1f%%\n", s.HydroShare()*100)
	fmt.Fprintf(w, "Total thermal cost: $%.2f\n", s.TotalCostUSD())
	status := "converged"
	if !s.Converged {
		status = "NOT converged"
	}
	_, err := fmt.Fprintf(w, "Equilibrium:        %s after %d iterations\n", status, s.Iterations)
	return err
}
