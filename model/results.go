package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Convergence records the termination state of the solve stage.
type Convergence struct {
	Iterations   int
	ResidualNorm float64
	Converged    bool
	Tolerance    float64
}

// ElementForces holds recovered internal forces for one element in its local
// axes. Fields not applicable to the element family stay NaN.
type ElementForces struct {
	Axial   float64
	ShearY  float64
	ShearZ  float64
	MomentX float64
	MomentY float64
	MomentZ float64
}

// TrussForces builds the force record for an axial-only member.
func TrussForces(axial float64) ElementForces {
	f := emptyForces()
	f.Axial = axial
	return f
}

// BeamForces builds the force record for a planar bending member.
func BeamForces(axial, shear, moment float64) ElementForces {
	f := emptyForces()
	f.Axial = axial
	f.ShearY = shear
	f.MomentZ = moment
	return f
}

func emptyForces() ElementForces {
	nan := math.NaN()
	return ElementForces{Axial: nan, ShearY: nan, ShearZ: nan, MomentX: nan, MomentY: nan, MomentZ: nan}
}

// Results is the output of one analysis run.
//
// Displacements and Reactions are indexed by the global DOF numbering of the
// run. Modal runs leave them empty and report through Frequencies and
// ModeShapes instead.
type Results struct {
	Type          AnalysisType
	Displacements *mat.VecDense
	Reactions     *mat.VecDense

	// Frequencies holds natural frequencies in Hz, ascending, for Modal runs.
	Frequencies []float64
	// ModeShapes holds one eigenvector per column, matching Frequencies.
	ModeShapes *mat.Dense

	ElementForces map[int]ElementForces
	StrainEnergy  float64
	Convergence   Convergence

	// AutoRestrained lists global DOFs the singularity safety net pinned to
	// zero because no element coupled them. Non-empty values usually point at
	// a modeling error (unconnected nodes).
	AutoRestrained []int
}

// NewResults builds a result set for the given analysis type.
func NewResults(t AnalysisType, displacements, reactions *mat.VecDense) *Results {
	return &Results{
		Type:          t,
		Displacements: displacements,
		Reactions:     reactions,
		ElementForces: make(map[int]ElementForces),
	}
}

// MaxDisplacement returns the largest absolute displacement component.
func (r *Results) MaxDisplacement() float64 {
	return maxAbs(r.Displacements)
}

// MaxReaction returns the largest absolute reaction component.
func (r *Results) MaxReaction() float64 {
	return maxAbs(r.Reactions)
}

// DisplacementAt returns the displacement at a global DOF index, or false if
// the index is out of range.
func (r *Results) DisplacementAt(dof int) (float64, bool) {
	if r.Displacements == nil || dof < 0 || dof >= r.Displacements.Len() {
		return 0, false
	}
	return r.Displacements.AtVec(dof), true
}

// ReactionAt returns the reaction at a global DOF index, or false if the
// index is out of range.
func (r *Results) ReactionAt(dof int) (float64, bool) {
	if r.Reactions == nil || dof < 0 || dof >= r.Reactions.Len() {
		return 0, false
	}
	return r.Reactions.AtVec(dof), true
}

func maxAbs(v *mat.VecDense) float64 {
	if v == nil {
		return 0
	}
	max := 0.0
	for i := 0; i < v.Len(); i++ {
		if a := math.Abs(v.AtVec(i)); a > max {
			max = a
		}
	}
	return max
}
