package element

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/model"
)

// beam2D is the planar Euler-Bernoulli beam: 2 nodes × (ux, uy, θz). The
// Frame2D family shares this formulation.
type beam2D struct{}

func (beam2D) LocalStiffness(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
	area, err := requireArea(e)
	if err != nil {
		return nil, err
	}
	inertia := e.Section.InertiaZ
	if inertia <= 0 {
		return nil, model.MissingProperty("moment of inertia about z")
	}
	young, err := requireYoung(mt)
	if err != nil {
		return nil, err
	}
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}

	ea := young * area
	ei := young * inertia
	l2 := l * l
	l3 := l2 * l

	k := mat.NewDense(6, 6, nil)

	// Axial terms.
	k.Set(0, 0, ea/l)
	k.Set(0, 3, -ea/l)
	k.Set(3, 0, -ea/l)
	k.Set(3, 3, ea/l)

	// Bending terms, closed-form Euler-Bernoulli.
	k.Set(1, 1, 12*ei/l3)
	k.Set(1, 2, 6*ei/l2)
	k.Set(1, 4, -12*ei/l3)
	k.Set(1, 5, 6*ei/l2)
	k.Set(2, 1, 6*ei/l2)
	k.Set(2, 2, 4*ei/l)
	k.Set(2, 4, -6*ei/l2)
	k.Set(2, 5, 2*ei/l)
	k.Set(4, 1, -12*ei/l3)
	k.Set(4, 2, -6*ei/l2)
	k.Set(4, 4, 12*ei/l3)
	k.Set(4, 5, -6*ei/l2)
	k.Set(5, 1, 6*ei/l2)
	k.Set(5, 2, 2*ei/l)
	k.Set(5, 4, -6*ei/l2)
	k.Set(5, 5, 4*ei/l)

	return k, nil
}

func (beam2D) Transformation(nodes []*model.Node) (*mat.Dense, error) {
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}
	c := (nodes[1].X - nodes[0].X) / l
	s := (nodes[1].Y - nodes[0].Y) / l

	// Planar rotation about the out-of-plane axis; θz is invariant.
	t := mat.NewDense(6, 6, nil)
	for n := 0; n < 2; n++ {
		base := n * 3
		t.Set(base, base, c)
		t.Set(base, base+1, s)
		t.Set(base+1, base, -s)
		t.Set(base+1, base+1, c)
		t.Set(base+2, base+2, 1)
	}
	return t, nil
}

func (beam2D) Mass(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
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

	mass := density * area * l
	m := mat.NewDense(6, 6, nil)

	// Axial terms.
	m.Set(0, 0, mass/3.0)
	m.Set(0, 3, mass/6.0)
	m.Set(3, 0, mass/6.0)
	m.Set(3, 3, mass/3.0)

	// Transverse and rotary terms of the consistent beam mass matrix.
	m.Set(1, 1, 13.0*mass/35.0)
	m.Set(1, 2, 11.0*mass*l/210.0)
	m.Set(1, 4, 9.0*mass/70.0)
	m.Set(1, 5, -13.0*mass*l/420.0)

	m.Set(2, 1, 11.0*mass*l/210.0)
	m.Set(2, 2, mass*l*l/105.0)
	m.Set(2, 4, 13.0*mass*l/420.0)
	m.Set(2, 5, -mass*l*l/140.0)

	m.Set(4, 1, 9.0*mass/70.0)
	m.Set(4, 2, 13.0*mass*l/420.0)
	m.Set(4, 4, 13.0*mass/35.0)
	m.Set(4, 5, -11.0*mass*l/210.0)

	m.Set(5, 1, -13.0*mass*l/420.0)
	m.Set(5, 2, -mass*l*l/140.0)
	m.Set(5, 4, -11.0*mass*l/210.0)
	m.Set(5, 5, mass*l*l/105.0)

	return m, nil
}
