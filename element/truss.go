package element

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/model"
)

// truss2D is the planar axial-only member: 2 nodes × (ux, uy).
type truss2D struct{}

func (truss2D) LocalStiffness(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
	area, err := requireArea(e)
	if err != nil {
		return nil, err
	}
	young, err := requireYoung(mt)
	if err != nil {
		return nil, err
	}
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}

	// Axial stiffness EA/L coupling the two end translations along the
	// local x axis; transverse rows stay zero.
	k := mat.NewDense(4, 4, nil)
	eaL := young * area / l
	k.Set(0, 0, eaL)
	k.Set(0, 2, -eaL)
	k.Set(2, 0, -eaL)
	k.Set(2, 2, eaL)
	return k, nil
}

func (truss2D) Transformation(nodes []*model.Node) (*mat.Dense, error) {
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}
	c := (nodes[1].X - nodes[0].X) / l
	s := (nodes[1].Y - nodes[0].Y) / l

	t := mat.NewDense(4, 4, nil)
	for n := 0; n < 2; n++ {
		base := n * 2
		t.Set(base, base, c)
		t.Set(base, base+1, s)
		t.Set(base+1, base, -s)
		t.Set(base+1, base+1, c)
	}
	return t, nil
}

func (truss2D) Mass(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
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

	// Consistent mass with the classic 1/3-1/6 end distribution, identical
	// per translational direction, so it is already in global axes.
	mass := density * area * l
	m := mat.NewDense(4, 4, nil)
	for d := 0; d < 2; d++ {
		m.Set(d, d, mass/3.0)
		m.Set(d+2, d+2, mass/3.0)
		m.Set(d, d+2, mass/6.0)
		m.Set(d+2, d, mass/6.0)
	}
	return m, nil
}

// truss3D is the spatial axial-only member: 2 nodes × (ux, uy, uz).
type truss3D struct{}

func (truss3D) LocalStiffness(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
	area, err := requireArea(e)
	if err != nil {
		return nil, err
	}
	young, err := requireYoung(mt)
	if err != nil {
		return nil, err
	}
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}

	k := mat.NewDense(6, 6, nil)
	eaL := young * area / l
	k.Set(0, 0, eaL)
	k.Set(0, 3, -eaL)
	k.Set(3, 0, -eaL)
	k.Set(3, 3, eaL)
	return k, nil
}

func (truss3D) Transformation(nodes []*model.Node) (*mat.Dense, error) {
	l, err := length(nodes)
	if err != nil {
		return nil, err
	}
	cx := (nodes[1].X - nodes[0].X) / l
	cy := (nodes[1].Y - nodes[0].Y) / l
	cz := (nodes[1].Z - nodes[0].Z) / l

	// Only the axial rows carry direction cosines; the transverse local
	// rows never meet stiffness and are left zero.
	t := mat.NewDense(6, 6, nil)
	t.Set(0, 0, cx)
	t.Set(0, 1, cy)
	t.Set(0, 2, cz)
	t.Set(3, 3, cx)
	t.Set(3, 4, cy)
	t.Set(3, 5, cz)
	return t, nil
}

func (truss3D) Mass(e *model.Element, mt *model.Material, nodes []*model.Node) (*mat.Dense, error) {
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
	for d := 0; d < 3; d++ {
		m.Set(d, d, mass/3.0)
		m.Set(d+3, d+3, mass/3.0)
		m.Set(d, d+3, mass/6.0)
		m.Set(d+3, d, mass/6.0)
	}
	return m, nil
}

func requireArea(e *model.Element) (float64, error) {
	if e.Section.Area <= 0 {
		return 0, model.MissingProperty("cross-sectional area")
	}
	return e.Section.Area, nil
}

func requireYoung(mt *model.Material) (float64, error) {
	if mt.Props.YoungModulus <= 0 {
		return 0, model.MissingProperty("Young's modulus")
	}
	return mt.Props.YoungModulus, nil
}

func requireDensity(mt *model.Material) (float64, error) {
	if !mt.Props.HasDensity() {
		return 0, model.MissingProperty("density")
	}
	return mt.Props.Density, nil
}
