package model

import (
	"math"
	"testing"
)

func TestScheduleAggregates(t *testing.T) {
	s := &Schedule{
		Months: []MonthRecord{
			{DemandMW: 500, HydroMW: 400, ThermalMW: 120, CostUSD: 12000},
			{DemandMW: 500, HydroMW: 300, ThermalMW: 220, CostUSD: 22000},
		},
	}
	if got := s.TotalCostUSD(); got != 34000 {
		t.Fatalf("total cost: expected 34000, got %v", got)
	}
	if got := s.TotalDemandMW(); got != 1000 {
		t.Fatalf("total demand: expected 1000, got %v", got)
	}
	if got := s.HydroShare(); math.Abs(got-0.7) > 1e-12 {
		t.Fatalf("hydro share: expected 0.7, got %v", got)
	}
	if got := s.ThermalShare(); math.Abs(got-0.34) > 1e-12 {
		t.Fatalf("thermal share: expected 0.34, got %v", got)
	}
}

func TestScheduleAggregates_Empty(t *testing.T) {
	s := &Schedule{}
	if s.TotalCostUSD() != 0 || s.HydroShare() != 0 || s.ThermalShare() != 0 {
		t.Fatalf("empty schedule should aggregate to zero")
	}
}

func TestMonthRecordHydroEnergy(t *testing.T) {
	r := MonthRecord{HydroMW: 300}
	if got := r.HydroEnergyMWh(2); got != 600 {
		t.Fatalf("expected 600 MWh, got %v", got)
	}
}
