package solver

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/assemble"
	"github.com/strandeng/strand/element"
	"github.com/strandeng/strand/linalg"
	"github.com/strandeng/strand/model"
)

// StaticSolver performs linear static analysis: assemble K and f, enforce
// constraints by the penalty method, solve K·u = f, then post-process
// reactions, strain energy and element internal forces.
type StaticSolver struct{}

// NewStatic returns a linear static solver.
func NewStatic() *StaticSolver { return &StaticSolver{} }

// ValidateModel checks that the model is well formed and statically solvable:
// at least one prescribed DOF must exist. A model without loads is legal and
// yields the zero solution, but it is logged since it is rarely intended.
func (s *StaticSolver) ValidateModel(m *model.Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if assemble.PrescribedCount(m) == 0 {
		return ErrUnconstrained
	}
	if len(m.Loads) == 0 {
		slog.Warn("static model carries no loads; solution will be zero")
	}
	return nil
}

// Solve runs the static analysis.
func (s *StaticSolver) Solve(m *model.Model) (*model.Results, error) {
	if err := s.ValidateModel(m); err != nil {
		return nil, err
	}

	asm := assemble.New(m)
	k, err := asm.Stiffness()
	if err != nil {
		return nil, err
	}
	f, err := asm.Loads()
	if err != nil {
		return nil, err
	}

	// Constraint application mutates the system in place; keep the
	// unconstrained pair for reaction and energy recovery afterwards.
	k0 := mat.DenseCopyOf(k)
	f0 := mat.NewVecDense(f.Len(), nil)
	f0.CopyVec(f)

	pinned, err := asm.ApplyConstraints(k, f)
	if err != nil {
		return nil, err
	}

	if cond, err := linalg.ConditionNumber(k); err == nil {
		if math.IsInf(cond, 1) || cond > conditionWarnLimit {
			slog.Warn("stiffness matrix is ill-conditioned; results may be inaccurate",
				"condition", cond)
		}
	}

	u, err := s.solveSystem(m.Settings, k, f)
	if err != nil {
		return nil, err
	}

	// Reactions are K₀·u − f₀ on the unconstrained system: at free DOFs the
	// imbalance vanishes up to round-off, at prescribed DOFs it is the support
	// force. The penalty-augmented pair would only reproduce the solve
	// residual, which is near zero everywhere.
	reactions := linalg.MulVec(k0, u)
	reactions.SubVec(reactions, f0)

	res := model.NewResults(model.Static, u, reactions)
	res.AutoRestrained = pinned
	res.StrainEnergy = linalg.StrainEnergy(k0, u)
	res.Convergence = model.Convergence{
		Iterations:   1,
		ResidualNorm: linalg.ResidualNorm(k, u, f),
		Converged:    true,
		Tolerance:    m.Settings.Tolerance,
	}
	if err := s.recoverForces(m, asm, u, res); err != nil {
		return nil, err
	}

	slog.Info("static analysis complete",
		"maxDisplacement", res.MaxDisplacement(),
		"strainEnergy", res.StrainEnergy)
	return res, nil
}

func (s *StaticSolver) solveSystem(settings model.Settings, k *mat.Dense, f *mat.VecDense) (*mat.VecDense, error) {
	family := settings.Solver
	if family == model.Sparse {
		slog.Warn("sparse solver not available; falling back to direct")
		family = model.Direct
	}
	switch family {
	case model.Iterative:
		return linalg.SolveIterative(k, f)
	default:
		return linalg.Solve(k, f)
	}
}

func (s *StaticSolver) recoverForces(m *model.Model, asm *assemble.Assembler, u *mat.VecDense, res *model.Results) error {
	plan := asm.Plan()
	for _, id := range m.ElementIDs() {
		e := m.Elements[id]
		nodes, err := m.ElementNodes(e)
		if err != nil {
			return err
		}
		mt, err := m.Material(e.Material)
		if err != nil {
			return err
		}
		sub := linalg.Subvector(u, plan.ElementIndices(e))
		forces, err := element.RecoverForces(e, mt, nodes, sub)
		if err != nil {
			return fmt.Errorf("element %d: %w", e.ID, err)
		}
		res.ElementForces[e.ID] = forces
	}
	return nil
}
