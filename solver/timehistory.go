package solver

import (
	"log/slog"

	"github.com/strandeng/strand/model"
)

// TimeHistorySolver validates a transient model and then fails: the time
// integration scheme is not implemented yet. Validation runs first so a model
// that would never be solvable is reported as such rather than as merely
// unsupported.
//
// TODO: Newmark-beta integration once damping assembly lands.
type TimeHistorySolver struct{}

// NewTimeHistory returns the (stub) time-history solver.
func NewTimeHistory() *TimeHistorySolver { return &TimeHistorySolver{} }

// ValidateModel checks the transient prerequisites: densities for the mass
// matrix and at least one time-dependent load worth integrating.
func (s *TimeHistorySolver) ValidateModel(m *model.Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, id := range m.ElementIDs() {
		e := m.Elements[id]
		mt, err := m.Material(e.Material)
		if err != nil {
			return err
		}
		if !mt.Props.HasDensity() {
			return ErrNoDensity
		}
	}
	hasTransient := false
	for _, l := range m.Loads {
		if l.Kind == model.Seismic {
			hasTransient = true
			break
		}
	}
	if !hasTransient {
		slog.Warn("time-history model carries no time-dependent load")
	}
	return nil
}

// Solve always fails after validation.
func (s *TimeHistorySolver) Solve(m *model.Model) (*model.Results, error) {
	if err := s.ValidateModel(m); err != nil {
		return nil, err
	}
	return nil, model.Unsupported("time-history integration")
}
