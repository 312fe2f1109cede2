package linalg

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EigenSymmetric computes the full eigen-decomposition of a symmetric matrix.
// Eigenvalues are returned in ascending order with the matching eigenvectors
// as columns.
func EigenSymmetric(a *mat.Dense) ([]float64, *mat.Dense, error) {
	sym, err := toSym(a)
	if err != nil {
		return nil, nil, err
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("linalg: symmetric eigen-decomposition failed")
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)
	return values, &vectors, nil
}

// EigenSubset extracts the first numModes eigenpairs by power iteration on a
// sequence of shifted matrices, each shift taken from the previously found
// eigenvalue plus a small offset. The method is approximate and unsuitable
// for clustered or repeated eigenvalues; it trades accuracy for scalability
// on systems too large for a full decomposition.
func EigenSubset(a *mat.Dense, numModes int, tol float64, maxIterations int) ([]float64, *mat.Dense, error) {
	n, c := a.Dims()
	if n != c {
		return nil, nil, fmt.Errorf("%w: matrix is %dx%d, want square", ErrDimensionMismatch, n, c)
	}
	if numModes > n {
		numModes = n
	}

	values := make([]float64, numModes)
	vectors := mat.NewDense(n, numModes, nil)
	shifted := mat.NewDense(n, n, nil)

	for mode := 0; mode < numModes; mode++ {
		shift := 0.0
		if mode > 0 {
			shift = values[mode-1] + 1e-6
		}
		shifted.Copy(a)
		for i := 0; i < n; i++ {
			shifted.Set(i, i, a.At(i, i)-shift)
		}

		value, vector, err := powerIteration(shifted, tol, maxIterations)
		if err != nil {
			return nil, nil, err
		}
		values[mode] = value + shift
		vectors.SetCol(mode, vector.RawVector().Data)
	}
	return values, vectors, nil
}

// powerIteration finds the dominant eigenpair of a symmetric matrix from a
// random start vector, using the Rayleigh quotient as the eigenvalue
// estimate.
func powerIteration(a *mat.Dense, tol float64, maxIterations int) (float64, *mat.VecDense, error) {
	n, _ := a.Dims()
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, rand.Float64())
	}
	normalize(v)

	av := mat.NewVecDense(n, nil)
	lambda := 0.0
	for iter := 0; iter < maxIterations; iter++ {
		av.MulVec(a, v)
		next := mat.Dot(v, av)
		normalize(av)
		v.CopyVec(av)

		if math.Abs(next-lambda) < tol {
			return next, v, nil
		}
		lambda = next
	}
	return 0, nil, fmt.Errorf("%w after %d iterations", ErrConvergenceFailure, maxIterations)
}

func normalize(v *mat.VecDense) {
	norm := mat.Norm(v, 2)
	if norm > 0 {
		v.ScaleVec(1.0/norm, v)
	}
}

// SortedAscending returns indices that order the values ascending, without
// reordering the inputs. Used to pair eigenvalues with their columns after a
// subset extraction.
func SortedAscending(values []float64) []int {
	scratch := append([]float64(nil), values...)
	order := make([]int, len(values))
	floats.Argsort(scratch, order)
	return order
}
