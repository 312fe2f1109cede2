package element

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/model"
)

// frame3D is the 12-DOF space frame: 2 nodes × (ux, uy, uz, θx, θy, θz),
// combining axial, torsional and biaxial bending stiffness. The Beam3D
// family shares this formulation.
type frame3D struct{}

func (frame3D) LocalStiffness(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
	area, err := requireArea(e)
	if err != nil {
		return nil, err
	}
	iy := e.Section.InertiaY
	if iy <= 0 {
		return nil, model.MissingProperty("moment of inertia about y")
	}
	iz := e.Section.InertiaZ
	if iz <= 0 {
		return nil, model.MissingProperty("moment of inertia about z")
	}
	j := e.Section.Torsion
	if j <= 0 {
		return nil, model.MissingProperty("torsional constant")
	}
	young, err := requireYoung(mt)
	if err != nil {
		return nil, err
	}
	shear, err := mt.ShearModulus()
	if err != nil {
		return nil, err
	}
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}
	l2 := l * l
	l3 := l2 * l

	k := mat.NewDense(12, 12, nil)

	// Axial.
	eaL := young * area / l
	k.Set(0, 0, eaL)
	k.Set(0, 6, -eaL)
	k.Set(6, 0, -eaL)
	k.Set(6, 6, eaL)

	// Torsion.
	gjL := shear * j / l
	k.Set(3, 3, gjL)
	k.Set(3, 9, -gjL)
	k.Set(9, 3, -gjL)
	k.Set(9, 9, gjL)

	// Bending about local y (displacements in the x-z plane).
	eiy := young * iy
	k.Set(2, 2, 12*eiy/l3)
	k.Set(2, 4, 6*eiy/l2)
	k.Set(2, 8, -12*eiy/l3)
	k.Set(2, 10, 6*eiy/l2)
	k.Set(4, 2, 6*eiy/l2)
	k.Set(4, 4, 4*eiy/l)
	k.Set(4, 8, -6*eiy/l2)
	k.Set(4, 10, 2*eiy/l)
	k.Set(8, 2, -12*eiy/l3)
	k.Set(8, 4, -6*eiy/l2)
	k.Set(8, 8, 12*eiy/l3)
	k.Set(8, 10, -6*eiy/l2)
	k.Set(10, 2, 6*eiy/l2)
	k.Set(10, 4, 2*eiy/l)
	k.Set(10, 8, -6*eiy/l2)
	k.Set(10, 10, 4*eiy/l)

	// Bending about local z (displacements in the x-y plane).
	eiz := young * iz
	k.Set(1, 1, 12*eiz/l3)
	k.Set(1, 5, -6*eiz/l2)
	k.Set(1, 7, -12*eiz/l3)
	k.Set(1, 11, -6*eiz/l2)
	k.Set(5, 1, -6*eiz/l2)
	k.Set(5, 5, 4*eiz/l)
	k.Set(5, 7, 6*eiz/l2)
	k.Set(5, 11, 2*eiz/l)
	k.Set(7, 1, -12*eiz/l3)
	k.Set(7, 5, 6*eiz/l2)
	k.Set(7, 7, 12*eiz/l3)
	k.Set(7, 11, 6*eiz/l2)
	k.Set(11, 1, -6*eiz/l2)
	k.Set(11, 5, 2*eiz/l)
	k.Set(11, 7, 6*eiz/l2)
	k.Set(11, 11, 4*eiz/l)

	return k, nil
}

func (frame3D) Transformation(nodes []*model.Node) (*mat.Dense, error) {
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}

	// Local x runs along the element.
	xl := [3]float64{
		(nodes[1].X - nodes[0].X) / l,
		(nodes[1].Y - nodes[0].Y) / l,
		(nodes[1].Z - nodes[0].Z) / l,
	}

	// Local y from x × global-Z; when the element is parallel to global Z
	// that cross product degenerates, so fall back to global Y.
	yl := cross(xl, [3]float64{0, 0, 1})
	if norm(yl) < 1e-6 {
		yl = cross(xl, [3]float64{0, 1, 0})
	}
	yl = unit(yl)
	zl := cross(xl, yl)

	rotation := [3][3]float64{
		{xl[0], xl[1], xl[2]},
		{yl[0], yl[1], yl[2]},
		{zl[0], zl[1], zl[2]},
	}

	// One 3x3 rotation block per translation/rotation triplet per node.
	t := mat.NewDense(12, 12, nil)
	for block := 0; block < 4; block++ {
		base := block * 3
		for i := 0; i < 3; i++ {
			for jj := 0; jj < 3; jj++ {
				t.Set(base+i, base+jj, rotation[i][jj])
			}
		}
	}
	return t, nil
}

func (frame3D) Mass(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
	area, err := requireArea(e)
	if err != nil {
		return nil, err
	}
	density, err := requireDensity(mt)
	if err != nil {
		return nil, err
	}
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}

	// Lumped translational mass with a simplified rotary inertia term.
	mass := density * area * l
	nodeMass := mass / 2.0
	rotary := mass * l * l / 12.0

	m := mat.NewDense(12, 12, nil)
	for d := 0; d < 3; d++ {
		m.Set(d, d, nodeMass)
		m.Set(d+6, d+6, nodeMass)
	}
	for d := 3; d < 6; d++ {
		m.Set(d, d, rotary)
		m.Set(d+6, d+6, rotary)
	}
	return m, nil
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func unit(v [3]float64) [3]float64 {
	n := norm(v)
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}
