// Package solver runs analyses on a structural model. Each analysis type has
// its own solver behind a common interface; the Runner dispatches on the
// requested type and is the entry point most callers want.
package solver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/strandeng/strand/model"
)

var (
	// ErrUnconstrained is returned when a static model carries no nodal
	// constraint at all; the system would be a free-floating mechanism.
	ErrUnconstrained = errors.New("solver: model has no nodal constraints")

	// ErrNoDensity is returned when a dynamic analysis finds a material
	// without density.
	ErrNoDensity = errors.New("solver: dynamic analysis requires density on every material")
)

// conditionWarnLimit is the estimated condition number above which a static
// solve logs an accuracy warning before proceeding.
const conditionWarnLimit = 1e12

// Solver runs one analysis type against a model.
type Solver interface {
	// ValidateModel checks the model for the requirements of this analysis
	// without assembling anything.
	ValidateModel(m *model.Model) error

	// Solve validates, assembles and solves, returning the analysis results.
	Solve(m *model.Model) (*model.Results, error)
}

// For returns the solver for an analysis type. Buckling and NonlinearStatic
// are declared in the model vocabulary but have no solver yet.
func For(t model.AnalysisType) (Solver, error) {
	switch t {
	case model.Static:
		return NewStatic(), nil
	case model.Modal:
		return NewModal(), nil
	case model.TimeHistory:
		return NewTimeHistory(), nil
	}
	return nil, model.Unsupported(t.String() + " analysis")
}

// Runner dispatches analysis requests to the matching solver.
type Runner struct{}

// NewRunner returns an analysis dispatcher.
func NewRunner() *Runner { return &Runner{} }

// RunAnalysis runs one analysis of the given type.
func (r *Runner) RunAnalysis(m *model.Model, t model.AnalysisType) (*model.Results, error) {
	s, err := For(t)
	if err != nil {
		return nil, err
	}
	slog.Info("running analysis", "type", t.String())
	res, err := s.Solve(m)
	if err != nil {
		return nil, fmt.Errorf("%s analysis: %w", t, err)
	}
	return res, nil
}

// RunAnalyses runs several analyses against the same model. With failFast the
// first error aborts the batch; otherwise every analysis is attempted and the
// errors are joined, with a nil placeholder in the result slice for each
// failed run.
func (r *Runner) RunAnalyses(m *model.Model, types []model.AnalysisType, failFast bool) ([]*model.Results, error) {
	results := make([]*model.Results, 0, len(types))
	var errs []error
	for _, t := range types {
		res, err := r.RunAnalysis(m, t)
		if err != nil {
			if failFast {
				return results, err
			}
			errs = append(errs, err)
			results = append(results, nil)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}
