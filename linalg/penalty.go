package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	// PenaltyStiffness is the diagonal term added to enforce a prescribed
	// DOF value without resizing the system.
	PenaltyStiffness = 1e12

	// couplingTolerance is the absolute threshold below which a row/column
	// entry counts as structurally zero when scanning for uncoupled DOFs.
	couplingTolerance = 1e-12
)

// ApplyPenalties enforces prescribed DOF values on an assembled system by
// the penalty method: each constrained diagonal gains PenaltyStiffness and
// the load entry gains PenaltyStiffness times the prescribed value. Applying
// the same constraint twice only stacks penalty terms, so the solved value at
// the DOF stays the prescribed one.
func ApplyPenalties(k *mat.Dense, f *mat.VecDense, dofs []int, values []float64) error {
	if len(dofs) != len(values) {
		return fmt.Errorf("%w: %d constrained DOFs, %d prescribed values",
			ErrDimensionMismatch, len(dofs), len(values))
	}
	n, _ := k.Dims()
	for i, dof := range dofs {
		if dof < 0 || dof >= n {
			return fmt.Errorf("%w: constrained DOF %d exceeds system size %d",
				ErrDimensionMismatch, dof, n)
		}
		k.Set(dof, dof, k.At(dof, dof)+PenaltyStiffness)
		f.SetVec(dof, f.AtVec(dof)+PenaltyStiffness*values[i])
	}
	return nil
}

// RestrainUncoupled pins every DOF whose row and column hold no stiffness at
// all to zero displacement, and returns the pinned indices. This keeps a
// system with unconnected DOFs solvable, but a non-empty return is a
// diagnosable symptom of a modeling gap, not a correctness guarantee.
func RestrainUncoupled(k *mat.Dense, f *mat.VecDense) []int {
	n, _ := k.Dims()
	var pinned []int
	for i := 0; i < n; i++ {
		if coupled(k, i, n) {
			continue
		}
		k.Set(i, i, PenaltyStiffness)
		f.SetVec(i, 0)
		pinned = append(pinned, i)
	}
	return pinned
}

func coupled(k *mat.Dense, i, n int) bool {
	if abs(k.At(i, i)) > couplingTolerance {
		return true
	}
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		if abs(k.At(i, j)) > couplingTolerance || abs(k.At(j, i)) > couplingTolerance {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
