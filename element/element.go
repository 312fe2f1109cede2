// Package element implements the per-family element formulations: local
// stiffness and mass matrices in the element's natural coordinate system and
// the transformation to global axes. Families are dispatched through ForType,
// so an unknown or unimplemented family always surfaces as an explicit
// unsupported error instead of a silently wrong matrix.
package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/model"
)

// zeroLengthTolerance is the node distance below which a two-node element is
// rejected as degenerate.
const zeroLengthTolerance = 1e-12

// Formulation computes the characteristic matrices of one element family.
// Implementations receive the resolved, ordered node list alongside the
// element so geometric terms (length, direction cosines) come from the
// actual mesh.
type Formulation interface {
	// LocalStiffness returns the stiffness matrix in local element axes.
	LocalStiffness(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error)

	// Transformation returns the local-to-global transformation matrix T,
	// sized like the local stiffness. Global stiffness is Tᵀ·K·T.
	Transformation(nodes []*model.Node) (*mat.Dense, error)

	// Mass returns the element mass matrix in global axes.
	Mass(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error)
}

// ForType returns the formulation for an element family. Plate, shell and
// solid families return a formulation whose every method fails unsupported.
func ForType(t model.ElementType) Formulation {
	switch t {
	case model.Truss2D:
		return truss2D{}
	case model.Truss3D:
		return truss3D{}
	case model.Beam2D, model.Frame2D:
		return beam2D{}
	case model.Beam3D, model.Frame3D:
		return frame3D{}
	default:
		return unsupported{family: t}
	}
}

// GlobalStiffness derives the global-axis stiffness Tᵀ·K_local·T for one
// element.
func GlobalStiffness(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
	f := ForType(e.Type)
	local, err := f.LocalStiffness(e, mt, nodes)
	if err != nil {
		return nil, err
	}
	t, err := f.Transformation(nodes)
	if err != nil {
		return nil, err
	}
	n, _ := local.Dims()
	tmp := mat.NewDense(n, n, nil)
	tmp.Mul(local, t)
	global := mat.NewDense(n, n, nil)
	global.Mul(t.T(), tmp)
	return global, nil
}

// MassMatrix computes the element mass matrix for one element.
func MassMatrix(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
	return ForType(e.Type).Mass(e, mt, nodes)
}

// length returns the distance between the two end nodes, failing on
// coincident nodes so no formulation ever divides by zero.
func length(nodes []*model.Node) (float64, error) {
	if len(nodes) != 2 {
		return 0, fmt.Errorf("%w: line element requires exactly 2 nodes, got %d",
			model.ErrInvalidModel, len(nodes))
	}
	dx := nodes[1].X - nodes[0].X
	dy := nodes[1].Y - nodes[0].Y
	dz := nodes[1].Z - nodes[0].Z
	l := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if l < zeroLengthTolerance {
		return 0, fmt.Errorf("%w: element has zero length (coincident nodes %d and %d)",
			model.ErrInvalidModel, nodes[0].ID, nodes[1].ID)
	}
	return l, nil
}

// unsupported is the formulation for declared-only element families.
type unsupported struct {
	family model.ElementType
}

func (u unsupported) LocalStiffness(*model.Element, *model.Material, []*model.Node) (*mat.Dense, error) {
	return nil, model.Unsupported(u.family.String() + " element formulation")
}

func (u unsupported) Transformation([]*model.Node) (*mat.Dense, error) {
	return nil, model.Unsupported(u.family.String() + " element formulation")
}

func (u unsupported) Mass(*model.Element, *model.Material, []*model.Node) (*mat.Dense, error) {
	return nil, model.Unsupported(u.family.String() + " element formulation")
}
