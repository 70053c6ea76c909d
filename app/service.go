// Package app wires configuration, logging, metrics sinks and the planner
// into a runnable service.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/kilianp07/hydroplan/config"
	coremetrics "github.com/kilianp07/hydroplan/core/metrics"
	"github.com/kilianp07/hydroplan/core/model"
	"github.com/kilianp07/hydroplan/core/planner"
	"github.com/kilianp07/hydroplan/infra/logger"
	"github.com/kilianp07/hydroplan/infra/metrics"
	"github.com/kilianp07/hydroplan/infra/report"
)

// Service runs one planning pass and renders its result.
type Service struct {
	cfg         *config.Config
	planner     *planner.Planner
	log         logger.Logger
	runID       string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.PlanSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.PlanSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	pl, err := planner.New(cfg.System.Parameters(), logger.New("planner"), sink)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	pl.SetRunID(runID)

	return &Service{
		cfg:         cfg,
		planner:     pl,
		log:         logg,
		runID:       runID,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run executes the equilibrium search and writes the configured reports.
// With Prometheus enabled it then serves /metrics until the context is
// cancelled so the run can be scraped.
func (s *Service) Run(ctx context.Context) error {
	s.log.Infof("planning run %s starting", s.runID)
	schedule, err := s.planner.Run(ctx, s.cfg.Scenario.DemandsMW, s.cfg.Scenario.InflowsMWh)
	if err != nil {
		return err
	}
	if !schedule.Converged {
		s.log.Warnf("schedule is best-effort: price did not stabilize")
	}
	if err := s.report(schedule); err != nil {
		return err
	}
	if s.promEnabled {
		s.log.Infof("serving metrics on %s until interrupted", s.promPort)
		return metrics.StartPromServer(ctx, s.promPort)
	}
	return nil
}

func (s *Service) report(schedule *model.Schedule) error {
	if s.cfg.Report.CSVPath != "" {
		if err := report.WriteCSVFile(s.cfg.Report.CSVPath, schedule); err != nil {
			return err
		}
		s.log.Infof("schedule written to %s", s.cfg.Report.CSVPath)
	}
	if s.cfg.Report.Console {
		if err := report.WriteSummary(os.Stdout, schedule); err != nil {
			return err
		}
	}
	return nil
}
