package planner

import (
	"testing"

	"github.com/kilianp07/hydroplan/core/model"
)

func slackRecords(params model.SystemParameters) []model.MonthRecord {
	records := make([]model.MonthRecord, model.MonthsPerYear)
	for i := range records {
		records[i] = model.MonthRecord{
			Month:           i + 1,
			ReservoirEndMWh: params.ReservoirMinMWh + 250,
		}
	}
	return records
}

func TestRevisePrice_Abundant(t *testing.T) {
	params := testParams()
	if price := RevisePrice(slackRecords(params), params); price != 0 {
		t.Fatalf("expected zero water value with slack everywhere, got %g", price)
	}
}

func TestRevisePrice_ScarceMonth(t *testing.T) {
	params := testParams()
	records := slackRecords(params)
	records[7].ReservoirEndMWh = params.ReservoirMinMWh
	price := RevisePrice(records, params)
	if price != params.ThermalCostUSDPerMWh {
		t.Fatalf("expected price at thermal cost %g, got %g", params.ThermalCostUSDPerMWh, price)
	}
}

func TestRevisePrice_BindingWithinTolerance(t *testing.T) {
	params := testParams()
	records := slackRecords(params)
	records[0].ReservoirEndMWh = params.ReservoirMinMWh + 1e-6
	if price := RevisePrice(records, params); price != params.ThermalCostUSDPerMWh {
		t.Fatalf("expected a bound within tolerance to count as binding, got %g", price)
	}
}
