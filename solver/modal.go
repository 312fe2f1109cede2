package solver

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/assemble"
	"github.com/strandeng/strand/linalg"
	"github.com/strandeng/strand/model"
)

const (
	// defaultEigenModes is used when Settings.EigenModes is unset.
	defaultEigenModes = 10

	// modalFullLimit is the system size up to which the full symmetric
	// eigen-decomposition is used; above it the solver extracts only the
	// requested modes by shifted power iteration.
	modalFullLimit = 1000

	eigenTolerance     = 1e-10
	eigenMaxIterations = 1000
)

// ModalSolver extracts natural frequencies and mode shapes from the
// generalized eigenproblem K·φ = ω²·M·φ. The mass matrix is reduced away
// through its Cholesky factor; when M is not positive definite (models whose
// numbering scheme leaves massless rows) the solver degrades to the
// eigenvalues of K alone, with a warning, so a result is still produced.
type ModalSolver struct{}

// NewModal returns a modal analysis solver.
func NewModal() *ModalSolver { return &ModalSolver{} }

// ValidateModel checks that every material referenced by an element carries a
// density; mass assembly would fail without one. An unconstrained model is
// legal here but will report near-zero rigid-body frequencies first.
func (s *ModalSolver) ValidateModel(m *model.Model) error {
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
	if assemble.PrescribedCount(m) == 0 {
		slog.Warn("modal model is unconstrained; expect rigid-body modes")
	}
	return nil
}

// Solve runs the modal analysis.
func (s *ModalSolver) Solve(m *model.Model) (*model.Results, error) {
	if err := s.ValidateModel(m); err != nil {
		return nil, err
	}

	asm := assemble.New(m)
	k, err := asm.Stiffness()
	if err != nil {
		return nil, err
	}
	mass, err := asm.Mass()
	if err != nil {
		return nil, err
	}

	// Constraints act on the stiffness side only; the penalty pushes the
	// constrained modes far above the structural band.
	n := asm.Plan().TotalDofs()
	zero := mat.NewVecDense(n, nil)
	pinned, err := asm.ApplyConstraints(k, zero)
	if err != nil {
		return nil, err
	}

	modes := m.Settings.EigenModes
	if modes <= 0 {
		modes = defaultEigenModes
	}
	if modes > n {
		modes = n
	}

	values, vectors, err := s.eigenpairs(k, mass, modes)
	if err != nil {
		return nil, err
	}

	res := model.NewResults(model.Modal, nil, nil)
	res.AutoRestrained = pinned
	res.Frequencies = make([]float64, len(values))
	for i, lambda := range values {
		if lambda < 0 {
			lambda = 0 // round-off below a rigid-body mode
		}
		res.Frequencies[i] = math.Sqrt(lambda) / (2.0 * math.Pi)
	}
	res.ModeShapes = vectors
	res.Convergence = model.Convergence{Iterations: 1, Converged: true, Tolerance: m.Settings.Tolerance}

	slog.Info("modal analysis complete", "modes", len(values))
	if len(res.Frequencies) > 0 {
		slog.Info("fundamental frequency", "hz", res.Frequencies[0])
	}
	return res, nil
}

// eigenpairs solves the generalized problem, returning the lowest `modes`
// eigenvalues ascending with their eigenvectors as columns.
func (s *ModalSolver) eigenpairs(k, mass *mat.Dense, modes int) ([]float64, *mat.Dense, error) {
	n, _ := k.Dims()

	reduced, l, ok := reduceGeneralized(k, mass)
	if !ok {
		slog.Warn("mass matrix is not positive definite; solving stiffness-only eigenproblem")
		reduced = symmetrize(k)
		l = nil
	}

	var values []float64
	var vectors *mat.Dense
	if n < modalFullLimit {
		all, allVectors, err := linalg.EigenSymmetric(reduced)
		if err != nil {
			return nil, nil, err
		}
		values = all[:modes]
		vectors = mat.DenseCopyOf(allVectors.Slice(0, n, 0, modes))
	} else {
		subset, subsetVectors, err := linalg.EigenSubset(reduced, modes, eigenTolerance, eigenMaxIterations)
		if err != nil {
			return nil, nil, err
		}
		order := linalg.SortedAscending(subset)
		values = make([]float64, len(order))
		vectors = mat.NewDense(n, len(order), nil)
		col := make([]float64, n)
		for i, from := range order {
			values[i] = subset[from]
			mat.Col(col, from, subsetVectors)
			vectors.SetCol(i, col)
		}
	}

	if l != nil {
		// Back-transform the reduced eigenvectors: φ = L⁻ᵀ·z.
		var phi mat.Dense
		if err := phi.Solve(l.T(), vectors); err != nil {
			return nil, nil, err
		}
		vectors = &phi
	}
	return values, vectors, nil
}

// reduceGeneralized turns K·φ = λ·M·φ into the standard symmetric problem
// A·z = λ·z with A = L⁻¹·K·L⁻ᵀ, M = L·Lᵀ. Returns ok=false when M has no
// Cholesky factor.
func reduceGeneralized(k, mass *mat.Dense) (*mat.Dense, *mat.TriDense, bool) {
	n, _ := mass.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(mass.At(i, j)+mass.At(j, i)))
		}
	}
	var ch mat.Cholesky
	if !ch.Factorize(sym) {
		return nil, nil, false
	}
	l := mat.NewTriDense(n, mat.Lower, nil)
	ch.LTo(l)

	var y mat.Dense
	if err := y.Solve(l, k); err != nil {
		return nil, nil, false
	}
	var z mat.Dense
	if err := z.Solve(l, y.T()); err != nil {
		return nil, nil, false
	}
	a := mat.DenseCopyOf(z.T())
	return symmetrize(a), l, true
}

// symmetrize averages a matrix with its transpose, absorbing the round-off
// the two triangular solves introduce.
func symmetrize(a *mat.Dense) *mat.Dense {
	n, _ := a.Dims()
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return out
}
