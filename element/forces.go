package element

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/model"
)

// RecoverForces computes the internal end forces of one element from its
// global displacement sub-vector: displacements are rotated into local axes,
// multiplied by the local stiffness, and reported at the second end node
// following the usual sign convention (positive axial = tension).
func RecoverForces(e *model.Element, mt *model.Material, nodes []*model.Node, globalDisp *mat.VecDense) (model.ElementForces, error) {
	f := ForType(e.Type)
	local, err := f.LocalStiffness(e, mt, nodes)
	if err != nil {
		return model.ElementForces{}, err
	}
	t, err := f.Transformation(nodes)
	if err != nil {
		return model.ElementForces{}, err
	}

	n, _ := local.Dims()
	localDisp := mat.NewVecDense(n, nil)
	localDisp.MulVec(t, globalDisp)
	localForce := mat.NewVecDense(n, nil)
	localForce.MulVec(local, localDisp)

	switch e.Type {
	case model.Truss2D:
		return model.TrussForces(localForce.AtVec(2)), nil
	case model.Truss3D:
		return model.TrussForces(localForce.AtVec(3)), nil
	case model.Beam2D, model.Frame2D:
		return model.BeamForces(
			localForce.AtVec(3),
			localForce.AtVec(4),
			localForce.AtVec(5),
		), nil
	case model.Beam3D, model.Frame3D:
		return model.ElementForces{
			Axial:   localForce.AtVec(6),
			ShearY:  localForce.AtVec(7),
			ShearZ:  localForce.AtVec(8),
			MomentX: localForce.AtVec(9),
			MomentY: localForce.AtVec(10),
			MomentZ: localForce.AtVec(11),
		}, nil
	}
	return model.ElementForces{}, model.Unsupported(e.Type.String() + " force recovery")
}
