// Package linalg is the dense linear-algebra kernel behind the solvers:
// method-selecting linear solves, symmetric eigen-decomposition, scatter
// assembly of element contributions, and the penalty mechanics used for
// boundary-condition enforcement. All matrices are gonum dense types.
package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrSingularMatrix is returned when a direct factorization detects a
	// non-invertible system.
	ErrSingularMatrix = errors.New("linalg: singular matrix")

	// ErrNotSymmetric is returned when an operation requires symmetry.
	ErrNotSymmetric = errors.New("linalg: matrix is not symmetric")

	// ErrConvergenceFailure is returned when an iterative method exhausts its
	// iteration budget before reaching tolerance.
	ErrConvergenceFailure = errors.New("linalg: iteration budget exhausted")

	// ErrNotPositiveDefinite is returned when a Cholesky factorization fails.
	ErrNotPositiveDefinite = errors.New("linalg: matrix is not positive definite")
)

const (
	// directSizeLimit is the largest system solved by LU before Solve falls
	// back to iterative methods.
	directSizeLimit = 1000

	// cgTolerance and cgMaxIterations bound the conjugate gradient solve.
	cgTolerance     = 1e-10
	cgMaxIterations = 1000
)

// Solve solves A·x = b, picking a method from the matrix properties:
// Cholesky for symmetric positive-definite systems, LU for general systems
// up to directSizeLimit, conjugate gradient beyond that. A failed Cholesky
// factorization degrades to LU rather than aborting, since the
// positive-definiteness screen is only a heuristic.
func Solve(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	if err := checkSystem(a, b); err != nil {
		return nil, err
	}
	if IsSymmetric(a, symmetryTolerance) && IsPositiveDefinite(a) {
		x, err := SolveCholesky(a, b)
		if err == nil {
			return x, nil
		}
		if !errors.Is(err, ErrNotPositiveDefinite) {
			return nil, err
		}
	}
	n, _ := a.Dims()
	if n < directSizeLimit {
		return SolveLU(a, b)
	}
	return SolveIterative(a, b)
}

// SolveCholesky solves via Cholesky factorization. The matrix must be
// symmetric positive definite.
func SolveCholesky(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	if err := checkSystem(a, b); err != nil {
		return nil, err
	}
	sym, err := toSym(a)
	if err != nil {
		return nil, err
	}
	var ch mat.Cholesky
	if ok := ch.Factorize(sym); !ok {
		return nil, ErrNotPositiveDefinite
	}
	var x mat.VecDense
	if err := ch.SolveVecTo(&x, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	return &x, nil
}

// SolveLU solves via LU factorization with partial pivoting. An exactly
// singular system is reported as ErrSingularMatrix; a merely ill-conditioned
// one returns the computed solution.
func SolveLU(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	if err := checkSystem(a, b); err != nil {
		return nil, err
	}
	var lu mat.LU
	lu.Factorize(a)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, b); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
			return &x, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	return &x, nil
}

// SolveQR solves via QR factorization.
func SolveQR(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	if err := checkSystem(a, b); err != nil {
		return nil, err
	}
	var qr mat.QR
	qr.Factorize(a)
	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
			return &x, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	return &x, nil
}

// SolveIterative solves with conjugate gradient when the system is symmetric
// positive definite, and otherwise falls back to the direct LU path.
func SolveIterative(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	if err := checkSystem(a, b); err != nil {
		return nil, err
	}
	if IsSymmetric(a, symmetryTolerance) && IsPositiveDefinite(a) {
		return ConjugateGradient(a, b, cgTolerance, cgMaxIterations)
	}
	return SolveLU(a, b)
}

// ConjugateGradient solves a symmetric positive-definite system iteratively,
// starting from the zero vector. Convergence is judged on the residual norm
// relative to ‖b‖, so penalty-scaled systems terminate on the same tolerance
// as well-scaled ones. It fails with ErrConvergenceFailure when the target is
// not met within maxIterations; a partially converged result is never
// returned.
func ConjugateGradient(a *mat.Dense, b *mat.VecDense, tol float64, maxIterations int) (*mat.VecDense, error) {
	if err := checkSystem(a, b); err != nil {
		return nil, err
	}
	n := b.Len()
	x := mat.NewVecDense(n, nil)

	r := mat.NewVecDense(n, nil)
	r.CopyVec(b) // r = b - A·0
	p := mat.NewVecDense(n, nil)
	p.CopyVec(r)
	ap := mat.NewVecDense(n, nil)

	rsOld := mat.Dot(r, r)
	target := tol * math.Sqrt(rsOld)
	if rsOld == 0 {
		return x, nil
	}
	for iter := 0; iter < maxIterations; iter++ {
		ap.MulVec(a, p)
		denom := mat.Dot(p, ap)
		if denom == 0 {
			return nil, fmt.Errorf("%w after %d iterations", ErrConvergenceFailure, iter)
		}
		alpha := rsOld / denom
		x.AddScaledVec(x, alpha, p)
		r.AddScaledVec(r, -alpha, ap)

		rsNew := mat.Dot(r, r)
		if math.Sqrt(rsNew) < target {
			return x, nil
		}
		p.AddScaledVec(r, rsNew/rsOld, p)
		rsOld = rsNew
	}
	return nil, fmt.Errorf("%w after %d iterations", ErrConvergenceFailure, maxIterations)
}

func checkSystem(a *mat.Dense, b *mat.VecDense) error {
	r, c := a.Dims()
	if r != c {
		return fmt.Errorf("%w: matrix is %dx%d, want square", ErrDimensionMismatch, r, c)
	}
	if r != b.Len() {
		return fmt.Errorf("%w: matrix is %dx%d, vector has %d entries", ErrDimensionMismatch, r, c, b.Len())
	}
	return nil
}

// toSym copies a symmetric Dense into a SymDense, averaging the strict
// triangles to absorb assembly round-off.
func toSym(a *mat.Dense) (*mat.SymDense, error) {
	if !IsSymmetric(a, symmetryTolerance) {
		return nil, ErrNotSymmetric
	}
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s, nil
}
