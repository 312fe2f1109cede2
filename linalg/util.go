package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// symmetryTolerance bounds the pairwise comparison in IsSymmetric.
const symmetryTolerance = 1e-12

// IsSymmetric reports whether the matrix is square and symmetric within the
// given absolute tolerance.
func IsSymmetric(a *mat.Dense, tol float64) bool {
	r, c := a.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if math.Abs(a.At(i, j)-a.At(j, i)) > tol {
				return false
			}
		}
	}
	return true
}

// IsPositiveDefinite is a coarse screen: it only checks that every diagonal
// entry is positive, which is necessary but not sufficient. Callers that need
// certainty must attempt the Cholesky factorization.
func IsPositiveDefinite(a *mat.Dense) bool {
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		if a.At(i, i) <= 0 {
			return false
		}
	}
	return true
}

// ConditionNumber estimates the 2-norm condition number from the singular
// values. Numerically singular matrices report +Inf.
func ConditionNumber(a *mat.Dense) (float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		return 0, fmt.Errorf("linalg: SVD factorization failed")
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, fmt.Errorf("linalg: SVD produced no singular values")
	}
	max, min := values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	if min < 1e-14 {
		return math.Inf(1), nil
	}
	return max / min, nil
}

// FrobeniusNorm returns the Frobenius norm of the matrix.
func FrobeniusNorm(a *mat.Dense) float64 {
	return mat.Norm(a, 2)
}

// ResidualNorm returns ‖b − A·x‖₂ for a candidate solution x.
func ResidualNorm(a *mat.Dense, x, b *mat.VecDense) float64 {
	n := b.Len()
	r := mat.NewVecDense(n, nil)
	r.MulVec(a, x)
	r.SubVec(b, r)
	return mat.Norm(r, 2)
}

// Submatrix extracts the entries of a at the cross product of the given row
// and column indices.
func Submatrix(a *mat.Dense, rows, cols []int) *mat.Dense {
	sub := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			sub.Set(i, j, a.At(r, c))
		}
	}
	return sub
}

// Subvector extracts the entries of v at the given indices.
func Subvector(v *mat.VecDense, indices []int) *mat.VecDense {
	sub := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		sub.SetVec(i, v.AtVec(idx))
	}
	return sub
}

// ExpandSolution rebuilds a full-size solution vector from a reduced solve:
// free DOFs take the reduced solution entries and constrained DOFs take
// their prescribed values.
func ExpandSolution(reduced *mat.VecDense, freeDofs, constrainedDofs []int, prescribed []float64, totalDofs int) *mat.VecDense {
	full := mat.NewVecDense(totalDofs, nil)
	for i, dof := range freeDofs {
		full.SetVec(dof, reduced.AtVec(i))
	}
	for i, dof := range constrainedDofs {
		full.SetVec(dof, prescribed[i])
	}
	return full
}

// MulVec returns K·u as a fresh vector; used for element force recovery and
// reaction computation.
func MulVec(k *mat.Dense, u *mat.VecDense) *mat.VecDense {
	n, _ := k.Dims()
	out := mat.NewVecDense(n, nil)
	out.MulVec(k, u)
	return out
}

// StrainEnergy returns ½·uᵀ·K·u.
func StrainEnergy(k *mat.Dense, u *mat.VecDense) float64 {
	ku := MulVec(k, u)
	return 0.5 * mat.Dot(u, ku)
}
