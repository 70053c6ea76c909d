package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []PlanSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...PlanSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordIteration forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordIteration(ev IterationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordIteration(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPlan forwards run summaries to sinks that support them.
func (m *MultiSink) RecordPlan(ev PlanEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PlanRecorder); ok {
			if err := rec.RecordPlan(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordMonths forwards month points to sinks that support them.
func (m *MultiSink) RecordMonths(evs []MonthEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(MonthRecorder); ok {
			if err := rec.RecordMonths(evs); err != nil {
				return err
			}
		}
	}
	return nil
}
